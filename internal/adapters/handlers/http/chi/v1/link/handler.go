package link

import (
	"log/slog"
	"share-safely/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 link routes
type HandlerV1 struct {
	linkService port.LinkService
	storage     port.BlobStorage
	logger      *slog.Logger
}

// NewLinkHandlerV1 creates HandlerV1. The storage is only used to stream
// bytes for local download targets.
func NewLinkHandlerV1(service port.LinkService, storage port.BlobStorage, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		linkService: service,
		storage:     storage,
		logger:      logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.IssueLinkV1)
	router.Get("/validate/{token}", h.ValidateTokenV1)
	router.Get("/download/{token}", h.DownloadV1)
	router.Delete("/{linkID}", h.RevokeLinkV1)

	return router
}
