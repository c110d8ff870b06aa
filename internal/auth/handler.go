package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/portfolio-api/pkg/handlers"
	"github.com/JaimeStill/portfolio-api/pkg/routes"
	"github.com/JaimeStill/portfolio-api/pkg/validation"
)

type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "auth"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "",
		Tags:        []string{"Auth"},
		Description: "Admin sessions",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/login", Handler: h.Login, OpenAPI: Spec.Login},
			{Method: "POST", Pattern: "/logout", Handler: Protect(h.Logout), OpenAPI: Spec.Logout},
			{Method: "GET", Pattern: "/me", Handler: Protect(h.Me), OpenAPI: Spec.Me},
		},
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := validation.Struct(creds).Err(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnprocessableEntity, err)
		return
	}

	token, err := h.sys.Login(r.Context(), creds)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, token)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Logout(r.Context(), BearerToken(r)); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"id":    p.UserID,
		"email": p.Email,
	})
}
