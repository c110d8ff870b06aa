package resumes

import (
	"github.com/JaimeStill/portfolio-api/internal/documents"
	"github.com/JaimeStill/portfolio-api/pkg/openapi"
)

type spec struct {
	Current *openapi.Operation
	Upload  *openapi.Operation
	Delete  *openapi.Operation
}

var Spec = spec{
	Current: &openapi.Operation{
		Summary: "Get current resume",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Current resume", "Resume"),
			404: openapi.ResponseJSON("No resume uploaded", "Message"),
		},
	},
	Upload: &openapi.Operation{
		Summary:     "Upload resume",
		Description: "Stores the PDF and replaces the current resume",
		Security:    openapi.BearerAuth,
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Schema{
			"pdf": {Type: "string", Format: "binary", Description: "Resume PDF up to 10 MiB"},
		}, "pdf"),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Resume uploaded", "Resume"),
			401: openapi.ResponseRef("Unauthorized"),
			422: openapi.ResponseRef("ValidationError"),
		},
	},
	Delete: &openapi.Operation{
		Summary:  "Delete resume",
		Security: openapi.BearerAuth,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resume deleted", "Message"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseJSON("No resume uploaded", "Message"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"DocumentRef": documents.RefSchema,
		"Resume": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":               {Type: "string", Format: "uuid"},
				"primary_document": openapi.SchemaRef("DocumentRef"),
				"created_at":       {Type: "string", Format: "date-time"},
				"updated_at":       {Type: "string", Format: "date-time"},
			},
			Required: []string{"id", "primary_document"},
		},
	}
}
