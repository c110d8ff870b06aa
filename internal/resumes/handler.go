package resumes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/portfolio-api/internal/auth"
	"github.com/JaimeStill/portfolio-api/internal/documents"
	"github.com/JaimeStill/portfolio-api/pkg/handlers"
	"github.com/JaimeStill/portfolio-api/pkg/routes"
)

type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "resumes"),
		maxUploadSize: maxUploadSize,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/resume",
		Tags:        []string{"Resume"},
		Description: "The current resume document",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Current, OpenAPI: Spec.Current},
			{Method: "POST", Pattern: "", Handler: auth.Protect(h.Upload), OpenAPI: Spec.Upload},
			{Method: "DELETE", Pattern: "", Handler: auth.Protect(h.Delete), OpenAPI: Spec.Delete},
		},
	}
}

// Current handles GET /resume.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	res, err := h.sys.Current(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, res)
}

// Upload handles POST /resume with a multipart "pdf" file.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	form, err := documents.ParseForm(w, r, h.maxUploadSize, "pdf")
	if err != nil {
		handlers.RespondError(w, h.logger, documents.FormStatus(err), err)
		return
	}
	defer form.Close()

	res, err := h.sys.Upload(r.Context(), form.Files["pdf"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, res)
}

// Delete handles DELETE /resume.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context()); err != nil {
		h.respondError(w, err)
		return
	}
	handlers.RespondMessage(w, http.StatusOK, "Resume deleted successfully")
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		handlers.RespondMessage(w, http.StatusNotFound, "No resume uploaded")
		return
	}
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}
