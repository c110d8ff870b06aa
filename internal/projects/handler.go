package projects

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/portfolio-api/internal/auth"
	"github.com/JaimeStill/portfolio-api/internal/documents"
	"github.com/JaimeStill/portfolio-api/pkg/handlers"
	"github.com/JaimeStill/portfolio-api/pkg/routes"
	"github.com/JaimeStill/portfolio-api/pkg/validation"
)

// Handler provides HTTP handlers for project endpoints.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a projects HTTP handler. Request bodies larger than
// maxUploadSize are rejected before parsing.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "projects"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group configuration for project endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/projects",
		Tags:        []string{"Projects"},
		Description: "Portfolio projects and their documents",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.ListPublished, OpenAPI: Spec.ListPublished},
			{Method: "GET", Pattern: "/all", Handler: auth.Protect(h.List), OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Get, OpenAPI: Spec.Get},
			{Method: "POST", Pattern: "", Handler: auth.Protect(h.Create), OpenAPI: Spec.Create},
			{Method: "POST", Pattern: "/{id}", Handler: auth.Protect(h.Update), OpenAPI: Spec.Update},
			{Method: "PUT", Pattern: "/{id}", Handler: auth.Protect(h.Update), OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: auth.Protect(h.Delete), OpenAPI: Spec.Delete},
		},
	}
}

// ListPublished handles GET /projects.
func (h *Handler) ListPublished(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.ListPublished(r.Context(), FiltersFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// List handles GET /projects/all, including unpublished projects.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.List(r.Context(), FiltersFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get handles GET /projects/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	result, err := h.sys.Get(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create handles POST /projects with a multipart form.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	form, published, errs, err := h.parseForm(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, documents.FormStatus(err), err)
		return
	}
	defer form.Close()

	if err := errs.Err(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnprocessableEntity, err)
		return
	}

	cmd := CreateCommand{
		Title:       form.Value("title"),
		Description: form.Optional("description"),
		Category:    Category(form.Value("category")),
		IsPublished: published,
		Primary:     form.Files["pdf"],
		Summary:     form.Files["summary_pdf"],
	}

	result, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update handles POST and PUT /projects/{id}. Multipart forms may carry
// replacement files; JSON bodies change metadata only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var cmd UpdateCommand

	if isJSON(r) {
		var body updateRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize)).Decode(&body); err != nil {
			handlers.RespondError(w, h.logger, documents.FormStatus(err), err)
			return
		}
		cmd = body.command()
	} else {
		form, published, errs, err := h.parseForm(w, r)
		if err != nil {
			handlers.RespondError(w, h.logger, documents.FormStatus(err), err)
			return
		}
		defer form.Close()

		if err := errs.Err(); err != nil {
			handlers.RespondError(w, h.logger, http.StatusUnprocessableEntity, err)
			return
		}

		cmd = UpdateCommand{
			Title:       form.Optional("title"),
			Description: form.Optional("description"),
			IsPublished: published,
			Primary:     form.Files["pdf"],
			Summary:     form.Files["summary_pdf"],
		}
		if c := form.Optional("category"); c != nil {
			category := Category(*c)
			cmd.Category = &category
		}
	}

	result, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /projects/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondMessage(w, http.StatusOK, "Project deleted successfully")
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}

type updateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *Category `json:"category"`
	IsPublished *bool     `json:"is_published"`
}

func (u updateRequest) command() UpdateCommand {
	return UpdateCommand{
		Title:       u.Title,
		Description: u.Description,
		Category:    u.Category,
		IsPublished: u.IsPublished,
	}
}

func isJSON(r *http.Request) bool {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt == "application/json"
}

// parseForm reads the project form. An unparsable is_published is reported
// as a validation error.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) (*documents.Form, *bool, validation.Errors, error) {
	form, err := documents.ParseForm(w, r, h.maxUploadSize, "pdf", "summary_pdf")
	if err != nil {
		return nil, nil, nil, err
	}

	errs := validation.Errors{}
	var published *bool

	if v := form.Optional("is_published"); v != nil {
		b, err := strconv.ParseBool(*v)
		if err != nil {
			errs.Add("is_published", "The is published field must be true or false.")
		} else {
			published = &b
		}
	}

	return form, published, errs, nil
}
