package resumes

import (
	"context"

	"github.com/JaimeStill/portfolio-api/internal/documents"
)

// System defines access to the current resume. Upload and Delete require
// the admin capability on ctx.
type System interface {
	Current(ctx context.Context) (*Resume, error)

	// Upload stores file and makes it the only resume.
	Upload(ctx context.Context, file *documents.Upload) (*Resume, error)

	Delete(ctx context.Context) error
}
