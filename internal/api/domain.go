package api

import (
	"github.com/JaimeStill/portfolio-api/internal/auth"
	"github.com/JaimeStill/portfolio-api/internal/config"
	"github.com/JaimeStill/portfolio-api/internal/documents"
	"github.com/JaimeStill/portfolio-api/internal/projects"
	"github.com/JaimeStill/portfolio-api/internal/resumes"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents documents.Store
	Auth      auth.System
	Projects  projects.System
	Resumes   resumes.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	db := runtime.Database.Connection()
	docs := documents.New(runtime.Storage, runtime.Logger)

	return &Domain{
		Documents: docs,
		Auth:      auth.New(db, runtime.Logger, cfg.Auth.TokenTTLDuration()),
		Projects: projects.New(
			projects.NewRecords(db),
			docs,
			runtime.Logger,
			runtime.MaxDocumentSize,
		),
		Resumes: resumes.New(
			resumes.NewRecords(db),
			docs,
			runtime.Logger,
			runtime.MaxDocumentSize,
		),
	}
}
