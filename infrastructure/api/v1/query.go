package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/verdantiq/greenrag/application/service"
	"github.com/verdantiq/greenrag/domain/search"
	"github.com/verdantiq/greenrag/infrastructure/api/middleware"
	"github.com/verdantiq/greenrag/infrastructure/api/v1/dto"
)

// QueryRouter handles retrieval-augmented question answering.
type QueryRouter struct {
	retrieval *service.RetrievalService
	threshold float64
	topK      int
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewQueryRouter creates a QueryRouter. threshold and topK are the
// configured defaults applied when a request omits them; non-positive
// values fall back to the package defaults.
func NewQueryRouter(retrieval *service.RetrievalService, threshold float64, topK int, logger *slog.Logger) *QueryRouter {
	if threshold <= 0 {
		threshold = search.DefaultThreshold
	}
	if topK <= 0 {
		topK = search.DefaultTopK
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryRouter{
		retrieval: retrieval,
		threshold: threshold,
		topK:      topK,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

// Routes returns the chi router for query endpoints.
func (rt *QueryRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", rt.Query)
	return router
}

// Query handles POST /api/v1/query.
func (rt *QueryRouter) Query(w http.ResponseWriter, req *http.Request) {
	var body dto.QueryRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: %s", middleware.ErrValidation, "malformed JSON body"), rt.logger)
		return
	}
	if err := rt.validate.Struct(body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: %s", middleware.ErrValidation, err), rt.logger)
		return
	}

	threshold := rt.threshold
	if body.Threshold != nil {
		threshold = *body.Threshold
	}
	topK := rt.topK
	if body.TopK != nil {
		topK = *body.TopK
	}

	answer, err := rt.retrieval.Query(req.Context(), search.NewRequest(body.Query, threshold, topK))
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	resp := dto.QueryResponse{
		Answer:  answer.Text(),
		Matches: make([]dto.QueryMatch, len(answer.Matches())),
	}
	for i, match := range answer.Matches() {
		resp.Matches[i] = dto.QueryMatch{
			DocumentName: match.DocumentName(),
			ChunkIndex:   match.ChunkIndex(),
			ChunkText:    match.ChunkText(),
			Similarity:   match.Similarity(),
		}
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}
