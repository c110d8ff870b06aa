package documents

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/JaimeStill/portfolio-api/pkg/handlers"
)

// FileHandler streams stored documents to anonymous callers.
type FileHandler struct {
	store  Store
	logger *slog.Logger
}

func NewFileHandler(store Store, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		store:  store,
		logger: logger.With("handler", "files"),
	}
}

// Serve handles GET /files/{path...}.
func (h *FileHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("path")

	w.Header().Set("Access-Control-Allow-Origin", "*")

	rc, err := h.store.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			handlers.RespondJSON(w, http.StatusNotFound, map[string]string{
				"message": "File not found",
				"path":    key,
			})
			return
		}
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if ct, ok := contentTypes[path.Ext(key)]; ok {
		contentType = ct
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)

	if rs, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, path.Base(key), time.Time{}, rs)
		return
	}

	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("file stream interrupted", "path", key, "error", err)
	}
}
