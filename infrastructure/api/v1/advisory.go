package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/verdantiq/greenrag/application/service"
	"github.com/verdantiq/greenrag/domain/advisory"
	"github.com/verdantiq/greenrag/infrastructure/api/middleware"
	"github.com/verdantiq/greenrag/infrastructure/api/v1/dto"
)

// AdvisoryRouter serves cached-or-generated advisory content.
type AdvisoryRouter struct {
	advisory *service.AdvisoryService
	pregen   *service.PregenService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAdvisoryRouter creates an AdvisoryRouter.
func NewAdvisoryRouter(advisorySvc *service.AdvisoryService, pregen *service.PregenService, logger *slog.Logger) *AdvisoryRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdvisoryRouter{
		advisory: advisorySvc,
		pregen:   pregen,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Routes returns the chi router for advisory endpoints. Pregeneration is
// an operator action and sits behind the admin key.
func (rt *AdvisoryRouter) Routes(adminKey string) chi.Router {
	router := chi.NewRouter()

	router.Post("/{kind}", rt.GetOrGenerate)

	router.Group(func(r chi.Router) {
		r.Use(middleware.AdminKey(adminKey))
		r.Post("/pregenerate", rt.Pregenerate)
	})

	return router
}

// GetOrGenerate handles POST /api/v1/advisory/{kind}.
func (rt *AdvisoryRouter) GetOrGenerate(w http.ResponseWriter, req *http.Request) {
	kind, err := advisory.ParseKind(chi.URLParam(req, "kind"))
	if err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusNotFound, err.Error()), rt.logger)
		return
	}

	var body dto.AdvisoryRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: %s", middleware.ErrValidation, "malformed JSON body"), rt.logger)
		return
	}
	if err := rt.validate.Struct(body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: %s", middleware.ErrValidation, err), rt.logger)
		return
	}

	dims := dimensionsFromDTO(kind, body)
	if err := dims.Validate(kind); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: %s", middleware.ErrValidation, err), rt.logger)
		return
	}

	content, err := rt.advisory.GetOrGenerate(req.Context(), kind, dims)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, contentToDTO(content))
}

// Pregenerate handles POST /api/v1/advisory/pregenerate. The batch runs
// synchronously; the response is the full batch report.
func (rt *AdvisoryRouter) Pregenerate(w http.ResponseWriter, req *http.Request) {
	var body dto.PregenRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: %s", middleware.ErrValidation, "malformed JSON body"), rt.logger)
		return
	}
	if err := rt.validate.Struct(body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: %s", middleware.ErrValidation, err), rt.logger)
		return
	}

	tuples := make([]advisory.Dimensions, len(body.Tuples))
	for i, t := range body.Tuples {
		tuples[i] = advisory.NewDimensions(t.CategoryType, t.CategoryName, t.Subcategory, t.Industry, t.CompanySize)
	}

	report, err := rt.pregen.Run(req.Context(), service.Matrix(tuples, body.StrategyTypes))
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	resp := dto.PregenResponse{
		Total:     report.Total,
		Generated: report.Generated,
		Cached:    report.Cached,
		Failures:  make([]dto.PregenFailure, len(report.Failures)),
	}
	for i, failure := range report.Failures {
		resp.Failures[i] = dto.PregenFailure{
			Kind:     string(failure.Item.Kind),
			CacheKey: failure.Item.Dimensions.CacheKey(failure.Item.Kind),
			Error:    failure.Error,
		}
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

func dimensionsFromDTO(kind advisory.Kind, body dto.AdvisoryRequest) advisory.Dimensions {
	if kind == advisory.KindFinancial {
		return advisory.NewFinancialDimensions(
			body.CategoryType, body.CategoryName, body.Subcategory,
			body.Industry, body.CompanySize, body.StrategyType,
		)
	}
	return advisory.NewDimensions(
		body.CategoryType, body.CategoryName, body.Subcategory,
		body.Industry, body.CompanySize,
	)
}

func contentToDTO(content advisory.Content) dto.AdvisoryResponse {
	resp := dto.AdvisoryResponse{
		Kind:   string(content.Kind()),
		Source: string(content.Source()),
	}
	switch content.Kind() {
	case advisory.KindScenario:
		resp.Scenario = content.Scenario()
	case advisory.KindStrategy:
		if bundle, ok := content.Strategy(); ok {
			actions := make([]dto.StrategyAction, len(bundle.Actions))
			for i, a := range bundle.Actions {
				actions[i] = dto.StrategyAction{Title: a.Title, Description: a.Description, Timeframe: a.Timeframe}
			}
			resp.Strategy = &dto.StrategyPayload{Summary: bundle.Summary, Actions: actions, Risks: bundle.Risks}
		}
	case advisory.KindFinancial:
		if analysis, ok := content.Financial(); ok {
			resp.Financial = &dto.FinancialPayload{
				Summary:         analysis.Summary,
				InvestmentRange: analysis.InvestmentRange,
				PaybackPeriod:   analysis.PaybackPeriod,
				CostDrivers:     analysis.CostDrivers,
				Benefits:        analysis.Benefits,
			}
		}
	}
	return resp
}
