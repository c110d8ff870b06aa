// Package query builds parameterized SQL from a projection of table columns
// onto view field names.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view field names to qualified table columns. Column
// order follows registration order, which is the scan order for rows.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []string
	views   map[string]string
}

// NewProjectionMap creates a projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make([]string, 0),
		views:   make(map[string]string),
	}
}

// Project registers column under the view name.
func (p *ProjectionMap) Project(column, view string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.columns = append(p.columns, qualified)
	p.views[view] = qualified
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the aliased table reference for a FROM clause.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column resolves a view name to its qualified column. Unknown names are
// returned unchanged.
func (p *ProjectionMap) Column(view string) string {
	if col, ok := p.views[view]; ok {
		return col
	}
	return view
}

// Columns returns the comma-separated select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// ColumnList returns a copy of the qualified columns.
func (p *ProjectionMap) ColumnList() []string {
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}
