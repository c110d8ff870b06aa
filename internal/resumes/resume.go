// Package resumes owns the single current resume and its document.
package resumes

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/portfolio-api/internal/documents"
)

// Folder is the document store folder holding resume files.
const Folder = "resume"

type Resume struct {
	ID              uuid.UUID     `json:"id"`
	PrimaryDocument documents.Ref `json:"primary_document"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
