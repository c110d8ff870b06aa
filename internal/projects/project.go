package projects

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/portfolio-api/internal/documents"
)

// Folder is the document store folder holding project files.
const Folder = "projects"

// Category classifies a project.
type Category string

const (
	CategorySingleFamily          Category = "single_family"
	CategoryMultiFamilyCommercial Category = "multi_family_commercial"
	CategoryLandEntitlements      Category = "land_entitlements"
)

// Categories lists every accepted category.
var Categories = []Category{
	CategorySingleFamily,
	CategoryMultiFamilyCommercial,
	CategoryLandEntitlements,
}

// Project is a portfolio entry with its primary document and an optional
// summary document.
type Project struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Description     *string        `json:"description"`
	Category        Category       `json:"category"`
	PrimaryDocument documents.Ref  `json:"primary_document"`
	SummaryDocument *documents.Ref `json:"summary_document"`
	IsPublished     bool           `json:"is_published"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// metadata carries the validated descriptive fields of a project.
type metadata struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description *string  `json:"description"`
	Category    Category `json:"category" validate:"required,oneof=single_family multi_family_commercial land_entitlements"`
}

// CreateCommand holds the fields and files of a new project. IsPublished
// defaults to true when nil.
type CreateCommand struct {
	Title       string
	Description *string
	Category    Category
	IsPublished *bool
	Primary     *documents.Upload
	Summary     *documents.Upload
}

// UpdateCommand changes only the supplied fields. A supplied empty
// Description clears it.
type UpdateCommand struct {
	Title       *string
	Description *string
	Category    *Category
	IsPublished *bool
	Primary     *documents.Upload
	Summary     *documents.Upload
}

func (c UpdateCommand) apply(p *Project) {
	if c.Title != nil {
		p.Title = *c.Title
	}
	if c.Description != nil {
		p.Description = c.Description
		if *c.Description == "" {
			p.Description = nil
		}
	}
	if c.Category != nil {
		p.Category = *c.Category
	}
	if c.IsPublished != nil {
		p.IsPublished = *c.IsPublished
	}
}
