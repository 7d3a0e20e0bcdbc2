package file

import (
	"encoding/json"
	"errors"
	"net/http"
	"share-safely/internal/core/domain"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1GetFileResponse is the response to get file metadata
type V1GetFileResponse struct {
	FileID       uuid.UUID  `json:"file_id"`
	OriginalName string     `json:"original_name"`
	ContentType  string     `json:"content_type"`
	SizeBytes    int64      `json:"size_bytes"`
	UploadedAt   time.Time  `json:"uploaded_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Status       string     `json:"status"`
}

// GetFileV1 is the function that handles file metadata lookup
func (h *HandlerV1) GetFileV1(w http.ResponseWriter, r *http.Request) {

	fileID := chi.URLParam(r, "fileID")
	uuidFileID, parseErr := uuid.Parse(fileID)
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}

	metadata, err := h.fileService.GetFile(r.Context(), uuidFileID)
	switch {
	case errors.Is(err, domain.ErrFileNotFound):
		http.Error(w, "file not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error getting file", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := V1GetFileResponse{
			FileID:       metadata.ID,
			OriginalName: metadata.OriginalName,
			ContentType:  metadata.ContentType,
			SizeBytes:    metadata.SizeBytes,
			UploadedAt:   metadata.UploadedAt,
			ExpiresAt:    metadata.ExpiresAt,
			Status:       string(metadata.Status),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
	}
}
