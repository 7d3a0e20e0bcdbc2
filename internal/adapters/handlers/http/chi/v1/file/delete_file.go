package file

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DeleteFileV1 is the function that handles explicit file deletion
func (h *HandlerV1) DeleteFileV1(w http.ResponseWriter, r *http.Request) {

	fileID := chi.URLParam(r, "fileID")
	uuidFileID, parseErr := uuid.Parse(fileID)
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}

	deleted, err := h.fileService.DeleteFile(r.Context(), uuidFileID, r.RemoteAddr)
	if err != nil {
		h.logger.Error("error deleting file", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	if !deleted {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
