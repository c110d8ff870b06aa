package api

import (
	"net/http"
	"time"

	"github.com/JaimeStill/portfolio-api/internal/auth"
	"github.com/JaimeStill/portfolio-api/internal/documents"
	"github.com/JaimeStill/portfolio-api/internal/projects"
	"github.com/JaimeStill/portfolio-api/internal/resumes"
	"github.com/JaimeStill/portfolio-api/pkg/handlers"
	"github.com/JaimeStill/portfolio-api/pkg/openapi"
	"github.com/JaimeStill/portfolio-api/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	basePath string,
) {
	authHandler := auth.NewHandler(domain.Auth, runtime.Logger)
	projectsHandler := projects.NewHandler(domain.Projects, runtime.Logger, runtime.MaxUploadSize)
	resumesHandler := resumes.NewHandler(domain.Resumes, runtime.Logger, runtime.MaxUploadSize)
	filesHandler := documents.NewFileHandler(domain.Documents, runtime.Logger)

	routes.Register(
		mux,
		basePath,
		spec,
		statusRoutes(),
		authHandler.Routes(),
		projectsHandler.Routes(),
		resumesHandler.Routes(),
		routes.Group{
			Prefix:      "/files",
			Tags:        []string{"Files"},
			Description: "Stored document downloads",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/{path...}", Handler: filesHandler.Serve, OpenAPI: documents.FileOperation},
			},
		},
	)
}

func statusRoutes() routes.Group {
	return routes.Group{
		Prefix: "",
		Tags:   []string{"Status"},
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "/test",
				Handler: handleTest,
				OpenAPI: &openapi.Operation{
					Summary: "API status check",
					Responses: map[int]*openapi.Response{
						200: {Description: "API is reachable"},
					},
				},
			},
		},
	}
}

func handleTest(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"message":   "API is working!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
