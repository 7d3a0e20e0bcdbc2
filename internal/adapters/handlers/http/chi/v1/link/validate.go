package link

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// V1ValidateTokenResponse is the response to validate a token
type V1ValidateTokenResponse struct {
	Valid bool `json:"valid"`
}

// ValidateTokenV1 is the function that handles token validation
func (h *HandlerV1) ValidateTokenV1(w http.ResponseWriter, r *http.Request) {

	token := chi.URLParam(r, "token")

	valid, err := h.linkService.Validate(r.Context(), token)
	if err != nil {
		h.logger.Error("error validating token", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(V1ValidateTokenResponse{Valid: valid}); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
