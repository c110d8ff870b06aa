package auth

import "github.com/JaimeStill/portfolio-api/pkg/openapi"

type spec struct {
	Login  *openapi.Operation
	Logout *openapi.Operation
	Me     *openapi.Operation
}

var Spec = spec{
	Login: &openapi.Operation{
		Summary:     "Log in",
		Description: "Exchanges admin credentials for a bearer token",
		RequestBody: openapi.RequestBodyJSON("Credentials", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Issued token", "Token"),
			401: openapi.ResponseRef("Unauthorized"),
			422: openapi.ResponseRef("ValidationError"),
		},
	},
	Logout: &openapi.Operation{
		Summary:     "Log out",
		Description: "Revokes the calling bearer token",
		Security:    openapi.BearerAuth,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Token revoked", "Message"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Me: &openapi.Operation{
		Summary:  "Current admin",
		Security: openapi.BearerAuth,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Authenticated admin", "Principal"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	user := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":         {Type: "string", Format: "uuid"},
			"name":       {Type: "string"},
			"email":      {Type: "string", Format: "email"},
			"created_at": {Type: "string", Format: "date-time"},
			"updated_at": {Type: "string", Format: "date-time"},
		},
	}

	return map[string]*openapi.Schema{
		"Credentials": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"email":    {Type: "string", Format: "email"},
				"password": {Type: "string"},
			},
			Required: []string{"email", "password"},
		},
		"Token": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"token":      {Type: "string"},
				"token_type": {Type: "string", Example: "Bearer"},
				"expires_at": {Type: "string", Format: "date-time"},
				"user":       user,
			},
		},
		"Principal": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":    {Type: "string", Format: "uuid"},
				"email": {Type: "string", Format: "email"},
			},
		},
	}
}
