// Package routes declares HTTP routes alongside their OpenAPI operations and
// registers both in a single pass.
package routes

import (
	"net/http"

	"github.com/JaimeStill/portfolio-api/pkg/openapi"
)

// Route binds a method and pattern to a handler. Routes without an OpenAPI
// operation are served but left out of the spec.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// AddToSpec records the group's operations under basePath and merges its schemas.
func (g *Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addToSpec(basePath, nil, spec)
}

func (g *Group) addToSpec(basePath string, parentTags []string, spec *openapi.Spec) {
	tags := g.Tags
	if len(tags) == 0 {
		tags = parentTags
	}

	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = tags
		}

		path := basePath + g.Prefix + route.Pattern
		item, ok := spec.Paths[path]
		if !ok {
			item = &openapi.PathItem{}
			spec.Paths[path] = item
		}

		switch route.Method {
		case http.MethodGet:
			item.Get = op
		case http.MethodPost:
			item.Post = op
		case http.MethodPut:
			item.Put = op
		case http.MethodDelete:
			item.Delete = op
		}
	}

	for _, child := range g.Children {
		child.addToSpec(basePath+g.Prefix, tags, spec)
	}
}

func (g *Group) register(mux *http.ServeMux, prefix string) {
	for _, route := range g.Routes {
		mux.HandleFunc(route.Method+" "+prefix+g.Prefix+route.Pattern, route.Handler)
	}
	for _, child := range g.Children {
		child.register(mux, prefix+g.Prefix)
	}
}

// Register adds every group's routes to mux and their operations to spec.
// Mux patterns are relative to basePath, which the owning module strips.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, g := range groups {
		g.register(mux, "")
		g.AddToSpec(basePath, spec)
	}
}
