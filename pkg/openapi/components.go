package openapi

var messageSchema = &Schema{
	Type: "object",
	Properties: map[string]*Schema{
		"message": {Type: "string"},
	},
}

func messageResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Message")},
		},
	}
}

// NewComponents returns the schemas, responses, and security schemes shared
// by every domain.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Message": messageSchema,
			"ValidationError": {
				Type: "object",
				Properties: map[string]*Schema{
					"message": {Type: "string"},
					"errors": {
						Type:        "object",
						Description: "Field name mapped to its validation messages",
					},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":   messageResponse("Malformed request"),
			"Unauthorized": messageResponse("Missing or invalid bearer token"),
			"Forbidden":    messageResponse("Admin capability required"),
			"NotFound":     messageResponse("Resource not found"),
			"Conflict":     messageResponse("Resource already exists"),
			"ValidationError": {
				Description: "One or more fields failed validation",
				Content: map[string]*MediaType{
					"application/json": {Schema: SchemaRef("ValidationError")},
				},
			},
		},
		SecuritySchemes: map[string]*SecurityScheme{
			"bearerAuth": {
				Type:        "http",
				Scheme:      "bearer",
				Description: "Token issued by POST /api/login",
			},
		},
	}
}

// AddSchemas merges schemas into the component set.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}
