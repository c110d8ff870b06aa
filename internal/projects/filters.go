package projects

import (
	"net/url"

	"github.com/JaimeStill/portfolio-api/pkg/query"
)

// Filters narrows a project listing.
type Filters struct {
	Category      *Category
	Search        *string
	PublishedOnly bool
}

// FiltersFromQuery reads ?category= and ?search= from the query string.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		category := Category(c)
		f.Category = &category
	}
	if s := values.Get("search"); s != "" {
		f.Search = &s
	}

	return f
}

// Apply adds the filter conditions to qb.
func (f Filters) Apply(qb *query.Builder) *query.Builder {
	if f.PublishedOnly {
		qb.WhereTrue("IsPublished")
	}
	if f.Category != nil {
		qb.WhereEquals("Category", string(*f.Category))
	}
	return qb.WhereSearch(f.Search, "Title", "Description")
}
