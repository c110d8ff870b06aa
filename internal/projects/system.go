// Package projects owns portfolio project records and the lifecycle of the
// documents they reference.
package projects

import (
	"context"

	"github.com/google/uuid"
)

// System defines project retrieval and the admin-only mutations. Mutating
// calls require the admin capability on ctx.
type System interface {
	// ListPublished returns published projects, newest first.
	ListPublished(ctx context.Context, filters Filters) ([]Project, error)

	// List returns every project, newest first.
	List(ctx context.Context, filters Filters) ([]Project, error)

	Get(ctx context.Context, id uuid.UUID) (*Project, error)
	Create(ctx context.Context, cmd CreateCommand) (*Project, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
