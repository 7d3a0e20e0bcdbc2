package link

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1RevokeLinkResponse is the response to revoke a link
type V1RevokeLinkResponse struct {
	Revoked bool `json:"revoked"`
}

// RevokeLinkV1 is the function that handles link revocation. Revoking an
// unknown or already revoked link reports revoked=false, not an error.
func (h *HandlerV1) RevokeLinkV1(w http.ResponseWriter, r *http.Request) {

	linkID := chi.URLParam(r, "linkID")
	uuidLinkID, parseErr := uuid.Parse(linkID)
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}

	revoked, err := h.linkService.Revoke(r.Context(), uuidLinkID)
	if err != nil {
		h.logger.Error("error revoking link", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(V1RevokeLinkResponse{Revoked: revoked}); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
