// Package v1 implements the v1 REST routes.
package v1

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verdantiq/greenrag/application/service"
	"github.com/verdantiq/greenrag/domain/document"
	"github.com/verdantiq/greenrag/infrastructure/api/middleware"
	"github.com/verdantiq/greenrag/infrastructure/api/v1/dto"
	"github.com/verdantiq/greenrag/infrastructure/tracking"
)

// maxUploadBytes caps document uploads at 32 MiB.
const maxUploadBytes = 32 << 20

// DocumentsRouter handles document upload, listing, status, and deletion.
type DocumentsRouter struct {
	ingest   *service.IngestService
	progress *tracking.Progress
	logger   *slog.Logger
}

// NewDocumentsRouter creates a DocumentsRouter.
func NewDocumentsRouter(ingest *service.IngestService, progress *tracking.Progress, logger *slog.Logger) *DocumentsRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentsRouter{ingest: ingest, progress: progress, logger: logger}
}

// Routes returns the chi router for document endpoints.
func (rt *DocumentsRouter) Routes(adminKey string) chi.Router {
	router := chi.NewRouter()

	router.Get("/", rt.List)
	router.Get("/status", rt.Status)

	router.Group(func(r chi.Router) {
		r.Use(middleware.AdminKey(adminKey))
		r.Post("/", rt.Upload)
		r.Delete("/{name}", rt.Delete)
	})

	return router
}

// Upload handles POST /api/v1/documents: a multipart upload processed
// synchronously through the ingestion pipeline. A pipeline failure still
// answers 200 with the failed record, since the document and its record
// exist; only transport-level problems are errors.
func (rt *DocumentsRouter) Upload(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "expected a multipart upload with a \"file\" part"), rt.logger)
		return
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "missing \"file\" part"), rt.logger)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}
	if len(data) > maxUploadBytes {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusRequestEntityTooLarge, "document exceeds the upload size limit"), rt.logger)
		return
	}

	name, err := rt.ingest.Ingest(ctx, header.Filename, data)
	if err != nil && name == "" {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	record, getErr := rt.ingest.Status(ctx, name)
	if getErr != nil {
		middleware.WriteError(w, req, getErr, rt.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.DocumentUploadResponse{
		Name:        record.DocumentName(),
		Status:      string(record.Status()),
		ChunksCount: record.ChunksCount(),
		Error:       record.ErrorMessage(),
	})
}

// List handles GET /api/v1/documents.
func (rt *DocumentsRouter) List(w http.ResponseWriter, req *http.Request) {
	records, err := rt.ingest.List(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	resp := dto.DocumentListResponse{Documents: make([]dto.DocumentRecord, len(records))}
	for i, record := range records {
		resp.Documents[i] = recordToDTO(record)
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

// Status handles GET /api/v1/documents/status: the live progress view,
// including in-flight chunk counts for documents still processing.
func (rt *DocumentsRouter) Status(w http.ResponseWriter, req *http.Request) {
	views := rt.progress.Snapshot()

	resp := dto.DocumentStatusResponse{Documents: make([]dto.DocumentProgress, len(views))}
	for i, view := range views {
		record := view.Record()
		resp.Documents[i] = dto.DocumentProgress{
			Name:        record.DocumentName(),
			Status:      string(record.Status()),
			ChunksCount: record.ChunksCount(),
			LiveChunks:  view.LiveChunks(),
			Error:       record.ErrorMessage(),
			UpdatedAt:   record.UpdatedAt(),
		}
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /api/v1/documents/{name}.
func (rt *DocumentsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")
	if name == "" {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "document name is required"), rt.logger)
		return
	}

	if err := rt.ingest.Delete(req.Context(), name); err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"deleted": name})
}

func recordToDTO(record document.ProcessingRecord) dto.DocumentRecord {
	return dto.DocumentRecord{
		Name:        record.DocumentName(),
		Status:      string(record.Status()),
		ChunksCount: record.ChunksCount(),
		Error:       record.ErrorMessage(),
		CreatedAt:   record.CreatedAt(),
		UpdatedAt:   record.UpdatedAt(),
	}
}
