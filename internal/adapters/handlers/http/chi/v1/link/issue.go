package link

import (
	"encoding/json"
	"errors"
	"net/http"
	"share-safely/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// V1IssueLinkRequest is the request to issue a download link
type V1IssueLinkRequest struct {
	FileID     uuid.UUID `json:"file_id"`
	TTLMinutes int       `json:"ttl_minutes"`
}

// V1IssueLinkResponse is the response to issue a download link
type V1IssueLinkResponse struct {
	LinkID    uuid.UUID `json:"link_id"`
	FileID    uuid.UUID `json:"file_id"`
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Status    string    `json:"status"`
}

// IssueLinkV1 is the function that handles link issuance
func (h *HandlerV1) IssueLinkV1(w http.ResponseWriter, r *http.Request) {

	var req V1IssueLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.FileID == uuid.Nil {
		http.Error(w, "file_id is required", http.StatusBadRequest)
		return
	}

	issued, err := h.linkService.Issue(r.Context(), req.FileID, req.TTLMinutes, r.RemoteAddr)
	switch {
	case errors.Is(err, domain.ErrInvalidTTL):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrFileNotFound):
		http.Error(w, "file not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrFileExpired):
		http.Error(w, "file expired", http.StatusGone)
		return
	case errors.Is(err, domain.ErrObjectMissing):
		h.logger.Error("blob missing for active file", "fileID", req.FileID)
		http.Error(w, "storage object missing", http.StatusConflict)
		return
	case err != nil:
		h.logger.Error("error issuing link", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := V1IssueLinkResponse{
			LinkID:    issued.ID,
			FileID:    issued.FileID,
			Token:     issued.Token,
			URL:       issued.URL,
			CreatedAt: issued.CreatedAt,
			ExpiresAt: issued.ExpiresAt,
			Status:    string(issued.Status),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
	}
}
