package projects

import (
	"github.com/JaimeStill/portfolio-api/internal/documents"
	"github.com/JaimeStill/portfolio-api/pkg/openapi"
)

type spec struct {
	ListPublished *openapi.Operation
	List          *openapi.Operation
	Get           *openapi.Operation
	Create        *openapi.Operation
	Update        *openapi.Operation
	Delete        *openapi.Operation
}

var categoryEnum = []string{
	string(CategorySingleFamily),
	string(CategoryMultiFamilyCommercial),
	string(CategoryLandEntitlements),
}

var formFields = map[string]*openapi.Schema{
	"title":        {Type: "string", Description: "Project title (max 255 characters)"},
	"description":  {Type: "string"},
	"category":     {Type: "string", Enum: categoryEnum},
	"pdf":          {Type: "string", Format: "binary", Description: "Pro forma document: pdf, xlsx or xls up to 10 MiB"},
	"summary_pdf":  {Type: "string", Format: "binary", Description: "Optional summary PDF up to 10 MiB"},
	"is_published": {Type: "boolean"},
}

var idParam = openapi.PathParam("id", "Project UUID")

// Spec contains OpenAPI operation definitions for all project endpoints.
var Spec = spec{
	ListPublished: &openapi.Operation{
		Summary:     "List published projects",
		Description: "Returns published projects, newest first",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("category", "string", "Filter by category", false),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Published projects",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Project")}},
				},
			},
		},
	},
	List: &openapi.Operation{
		Summary:     "List all projects",
		Description: "Returns every project including unpublished ones, newest first",
		Security:    openapi.BearerAuth,
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("category", "string", "Filter by category", false),
			openapi.QueryParam("search", "string", "Search title and description", false),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "All projects",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Project")}},
				},
			},
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Get: &openapi.Operation{
		Summary:    "Get project",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Project", "Project"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create project",
		Description: "Stores the uploaded documents and creates the project",
		Security:    openapi.BearerAuth,
		RequestBody: openapi.RequestBodyMultipart(formFields, "title", "category", "pdf"),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Project created", "Project"),
			401: openapi.ResponseRef("Unauthorized"),
			422: openapi.ResponseRef("ValidationError"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update project",
		Description: "Changes only the supplied fields. Replacement files are stored before the previous files are removed",
		Security:    openapi.BearerAuth,
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyMultipart(formFields),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Project updated", "Project"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
			422: openapi.ResponseRef("ValidationError"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete project",
		Description: "Removes the project's documents, then the project",
		Security:    openapi.BearerAuth,
		Parameters:  []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Project deleted", "Message"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"DocumentRef": documents.RefSchema,
		"Project": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":               {Type: "string", Format: "uuid"},
				"title":            {Type: "string"},
				"description":      {Type: "string"},
				"category":         {Type: "string", Enum: categoryEnum},
				"primary_document": openapi.SchemaRef("DocumentRef"),
				"summary_document": openapi.SchemaRef("DocumentRef"),
				"is_published":     {Type: "boolean"},
				"created_at":       {Type: "string", Format: "date-time"},
				"updated_at":       {Type: "string", Format: "date-time"},
			},
			Required: []string{"id", "title", "category", "primary_document", "is_published"},
		},
	}
}
