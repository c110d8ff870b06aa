package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/portfolio-api/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Portfolio API", "0.1.0")
	spec.SetDescription("projects and resume")
	spec.AddServer("")
	spec.AddServer("https://portfolio.example.com")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("OpenAPI = %q", spec.OpenAPI)
	}
	if spec.Info.Description != "projects and resume" {
		t.Errorf("Description = %q", spec.Info.Description)
	}
	if len(spec.Servers) != 1 {
		t.Errorf("Servers = %d, want 1", len(spec.Servers))
	}

	for _, name := range []string{"NotFound", "ValidationError", "Unauthorized", "Forbidden"} {
		if spec.Components.Responses[name] == nil {
			t.Errorf("missing response %q", name)
		}
	}
	if spec.Components.SecuritySchemes["bearerAuth"] == nil {
		t.Error("missing bearerAuth security scheme")
	}
}

func TestComponents_AddSchemas(t *testing.T) {
	c := openapi.NewComponents()
	c.AddSchemas(map[string]*openapi.Schema{
		"Project": {Type: "object"},
	})

	if c.Schemas["Project"] == nil || c.Schemas["Message"] == nil {
		t.Errorf("schemas = %v", c.Schemas)
	}
}

func TestRequestBodyMultipart(t *testing.T) {
	body := openapi.RequestBodyMultipart(map[string]*openapi.Schema{
		"pdf": {Type: "string", Format: "binary"},
	}, "pdf")

	if !body.Required {
		t.Error("Required = false, want true")
	}
	schema := body.Content["multipart/form-data"].Schema
	if len(schema.Required) != 1 || schema.Required[0] != "pdf" {
		t.Errorf("Required = %v", schema.Required)
	}
}

func TestWriteJSON(t *testing.T) {
	spec := openapi.NewSpec("Portfolio API", "0.1.0")
	path := filepath.Join(t.TempDir(), "openapi.json")

	if err := openapi.WriteJSON(spec, path); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("written file is not JSON: %v", err)
	}
	if result["openapi"] != "3.1.0" {
		t.Errorf("openapi = %v", result["openapi"])
	}

	if err := openapi.WriteJSON(spec, "/nonexistent/dir/openapi.json"); err == nil {
		t.Error("WriteJSON() to invalid path succeeded")
	}
}

func TestServeSpec(t *testing.T) {
	w := httptest.NewRecorder()
	openapi.ServeSpec([]byte(`{"openapi":"3.1.0"}`))(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
	}
	if w.Body.String() != `{"openapi":"3.1.0"}` {
		t.Errorf("body = %q", w.Body.String())
	}
}
