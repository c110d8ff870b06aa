// Package docs serves the Scalar API reference page for the published
// OpenAPI document.
package docs

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/portfolio-api/pkg/module"
)

//go:embed index.html
var indexHTML string

var index = template.Must(template.New("index").Parse(indexHTML))

// NewModule renders the reference page once and mounts it at prefix.
func NewModule(prefix, title, specURL string) (*module.Module, error) {
	var buf bytes.Buffer
	data := struct{ Title, SpecURL string }{title, specURL}
	if err := index.Execute(&buf, data); err != nil {
		return nil, err
	}
	page := buf.Bytes()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(page)
	})

	return module.New(prefix, mux), nil
}
