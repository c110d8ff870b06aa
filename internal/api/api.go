// Package api assembles the portfolio domain systems into the JSON API module.
package api

import (
	"net/http"

	"github.com/JaimeStill/portfolio-api/internal/auth"
	"github.com/JaimeStill/portfolio-api/internal/config"
	"github.com/JaimeStill/portfolio-api/internal/infrastructure"
	"github.com/JaimeStill/portfolio-api/pkg/middleware"
	"github.com/JaimeStill/portfolio-api/pkg/module"
	"github.com/JaimeStill/portfolio-api/pkg/openapi"
)

// NewModule builds the API module mounted at cfg.API.BasePath along with the
// domain systems behind it.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, *Domain, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, runtime, domain, cfg.API.BasePath)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.TrimSlash("/files/"))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(auth.Middleware(domain.Auth, runtime.Logger))

	return m, domain, nil
}
