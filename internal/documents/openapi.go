package documents

import "github.com/JaimeStill/portfolio-api/pkg/openapi"

// RefSchema describes a stored document reference.
var RefSchema = &openapi.Schema{
	Type: "object",
	Properties: map[string]*openapi.Schema{
		"path":          {Type: "string", Description: "Storage path, served under /files/{path}"},
		"original_name": {Type: "string", Description: "Client filename at upload"},
		"size_bytes":    {Type: "integer", Format: "int64"},
		"content_type":  {Type: "string"},
		"page_count":    {Type: "integer", Description: "Page count (PDFs only)"},
	},
	Required: []string{"path", "original_name"},
}

var FileOperation = &openapi.Operation{
	Summary:     "Download stored file",
	Description: "Streams a stored document with a permissive CORS header",
	Tags:        []string{"Files"},
	Parameters: []*openapi.Parameter{
		{Name: "path", In: "path", Required: true, Schema: &openapi.Schema{Type: "string"}},
	},
	Responses: map[int]*openapi.Response{
		200: {Description: "File bytes"},
		404: openapi.ResponseRef("NotFound"),
	},
}
