package query_test

import (
	"testing"

	"github.com/JaimeStill/portfolio-api/pkg/query"
)

func projectProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "projects", "p").
		Project("id", "ID").
		Project("title", "Title").
		Project("description", "Description").
		Project("category", "Category").
		Project("is_published", "IsPublished").
		Project("created_at", "CreatedAt")
}

func TestBuilder_BuildList(t *testing.T) {
	search := "grove"

	tests := []struct {
		name     string
		build    func(*query.Builder) *query.Builder
		wantSQL  string
		wantArgs int
	}{
		{
			name:    "default sort",
			build:   func(b *query.Builder) *query.Builder { return b },
			wantSQL: "SELECT p.id, p.title, p.description, p.category, p.is_published, p.created_at FROM public.projects p ORDER BY p.created_at ASC",
		},
		{
			name: "published newest first",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereTrue("IsPublished").OrderBy("CreatedAt", true)
			},
			wantSQL: "SELECT p.id, p.title, p.description, p.category, p.is_published, p.created_at FROM public.projects p WHERE p.is_published ORDER BY p.created_at DESC",
		},
		{
			name: "category filter numbers params",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereTrue("IsPublished").
					WhereEquals("Category", "single_family").
					WhereSearch(&search, "Title", "Description").
					OrderBy("", true)
			},
			wantSQL:  "SELECT p.id, p.title, p.description, p.category, p.is_published, p.created_at FROM public.projects p WHERE p.is_published AND p.category = $1 AND (p.title ILIKE $2 OR p.description ILIKE $3) ORDER BY p.created_at DESC",
			wantArgs: 3,
		},
		{
			name: "nil and empty ignored",
			build: func(b *query.Builder) *query.Builder {
				empty := ""
				return b.WhereEquals("Category", nil).WhereSearch(&empty, "Title").WhereSearch(nil, "Title")
			},
			wantSQL: "SELECT p.id, p.title, p.description, p.category, p.is_published, p.created_at FROM public.projects p ORDER BY p.created_at ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.build(query.NewBuilder(projectProjection(), "CreatedAt")).BuildList()

			if sql != tt.wantSQL {
				t.Errorf("sql =\n%s\nwant\n%s", sql, tt.wantSQL)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("len(args) = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}
}

func TestBuilder_BuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(projectProjection(), "CreatedAt").BuildSingle("ID", "abc")

	want := "SELECT p.id, p.title, p.description, p.category, p.is_published, p.created_at FROM public.projects p WHERE p.id = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("args = %v", args)
	}
}
