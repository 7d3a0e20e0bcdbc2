package file

import (
	"encoding/json"
	"errors"
	"net/http"
	"share-safely/internal/core/domain"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// V1UploadFileResponse is the response to a file upload
type V1UploadFileResponse struct {
	FileID       uuid.UUID  `json:"file_id"`
	OriginalName string     `json:"original_name"`
	ContentType  string     `json:"content_type"`
	SizeBytes    int64      `json:"size_bytes"`
	UploadedAt   time.Time  `json:"uploaded_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Status       string     `json:"status"`
}

// UploadFileV1 accepts a multipart form with a "file" part and an optional
// "ttl_minutes" field giving the file its own expiry
func (h *HandlerV1) UploadFileV1(w http.ResponseWriter, r *http.Request) {

	f, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file part is required", http.StatusBadRequest)
		return
	}
	defer f.Close()

	var ttl *time.Duration
	if v := r.FormValue("ttl_minutes"); v != "" {
		minutes, parseErr := strconv.Atoi(v)
		if parseErr != nil || minutes < 1 {
			http.Error(w, "ttl_minutes must be a positive integer", http.StatusBadRequest)
			return
		}
		d := time.Duration(minutes) * time.Minute
		ttl = &d
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	metadata, uploadErr := h.fileService.Upload(r.Context(), header.Filename, contentType, header.Size, f, ttl, r.RemoteAddr)
	switch {
	case errors.Is(uploadErr, domain.ErrInvalidFileType), errors.Is(uploadErr, domain.ErrFileSizeTooBig):
		http.Error(w, uploadErr.Error(), http.StatusBadRequest)
		return
	case uploadErr != nil:
		h.logger.Error("error uploading file", "error", uploadErr)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := V1UploadFileResponse{
			FileID:       metadata.ID,
			OriginalName: metadata.OriginalName,
			ContentType:  metadata.ContentType,
			SizeBytes:    metadata.SizeBytes,
			UploadedAt:   metadata.UploadedAt,
			ExpiresAt:    metadata.ExpiresAt,
			Status:       string(metadata.Status),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
	}
}
