package link

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"share-safely/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

// DownloadV1 resolves a token to its download target. A delegated target
// redirects the client straight at the object store; a local target streams
// the bytes through this process.
func (h *HandlerV1) DownloadV1(w http.ResponseWriter, r *http.Request) {

	token := chi.URLParam(r, "token")

	target, err := h.linkService.Resolve(r.Context(), token, r.RemoteAddr)
	switch {
	case errors.Is(err, domain.ErrTokenNotFound):
		http.Error(w, "link not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrLinkExpired):
		http.Error(w, "link expired", http.StatusGone)
		return
	case errors.Is(err, domain.ErrLinkRevoked):
		http.Error(w, "link revoked", http.StatusGone)
		return
	case errors.Is(err, domain.ErrObjectMissing):
		h.logger.Error("download hit missing blob", "token", token)
		http.Error(w, "storage object missing", http.StatusConflict)
		return
	case err != nil:
		h.logger.Error("error resolving download", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	if target.Kind == domain.DownloadTargetDelegated {
		http.Redirect(w, r, target.URL, http.StatusFound)
		return
	}

	stream, err := h.storage.Get(r.Context(), target.StorageKey)
	if err != nil {
		h.logger.Error("error opening local object", "error", err, "key", target.StorageKey)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", target.FileName))
	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, stream); err != nil {
		h.logger.Error("error streaming object", "error", err, "key", target.StorageKey)
	}
}
