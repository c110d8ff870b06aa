package main

import (
	"net/http"

	"github.com/JaimeStill/portfolio-api/internal/api"
	"github.com/JaimeStill/portfolio-api/internal/config"
	"github.com/JaimeStill/portfolio-api/internal/infrastructure"
	"github.com/JaimeStill/portfolio-api/pkg/middleware"
	"github.com/JaimeStill/portfolio-api/pkg/module"
	"github.com/JaimeStill/portfolio-api/web/docs"
)

type Modules struct {
	API    *module.Module
	Docs   *module.Module
	Domain *api.Domain
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, domain, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	docsModule, err := docs.NewModule("/docs", cfg.API.OpenAPI.Title, cfg.API.BasePath+"/openapi.json")
	if err != nil {
		return nil, err
	}
	docsModule.Use(middleware.Logger(infra.Logger.With("module", "docs")))

	return &Modules{
		API:    apiModule,
		Docs:   docsModule,
		Domain: domain,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Docs)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	return router
}
