package projects

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/portfolio-api/internal/auth"
	"github.com/JaimeStill/portfolio-api/internal/documents"
	"github.com/JaimeStill/portfolio-api/pkg/validation"
)

type repo struct {
	records Records
	store   documents.Store
	logger  *slog.Logger
	maxSize int64
}

// New creates the project System. Uploaded files are limited to maxSize bytes.
func New(records Records, store documents.Store, logger *slog.Logger, maxSize int64) System {
	return &repo{
		records: records,
		store:   store,
		logger:  logger.With("system", "projects"),
		maxSize: maxSize,
	}
}

func (r *repo) ListPublished(ctx context.Context, filters Filters) ([]Project, error) {
	filters.PublishedOnly = true
	filters.Search = nil
	return r.records.List(ctx, filters)
}

func (r *repo) List(ctx context.Context, filters Filters) ([]Project, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return r.records.List(ctx, filters)
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	p, err := r.records.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) validate(p *Project, primary, summary *documents.Upload, primaryRequired bool) error {
	errs := validation.Struct(metadata{
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
	})

	if primary != nil || primaryRequired {
		errs.Merge(documents.PDFOrSpreadsheetRule(r.maxSize).Check("pdf", primary))
	}
	if summary != nil {
		errs.Merge(documents.PDFRule(r.maxSize).Check("summary_pdf", summary))
	}

	return errs.Err()
}

// Create validates every field and file before the first store write, then
// stores the files and inserts the record. Files stored for a failed insert
// are removed again.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Project, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	p := Project{
		ID:          uuid.New(),
		Title:       cmd.Title,
		Description: cmd.Description,
		Category:    cmd.Category,
		IsPublished: true,
	}
	if p.Description != nil && *p.Description == "" {
		p.Description = nil
	}
	if cmd.IsPublished != nil {
		p.IsPublished = *cmd.IsPublished
	}

	if err := r.validate(&p, cmd.Primary, cmd.Summary, true); err != nil {
		return nil, err
	}

	primary, err := r.store.Put(ctx, Folder, cmd.Primary)
	if err != nil {
		return nil, err
	}
	p.PrimaryDocument = primary

	if cmd.Summary != nil {
		summary, err := r.store.Put(ctx, Folder, cmd.Summary)
		if err != nil {
			r.discard(ctx, primary.Path)
			return nil, err
		}
		p.SummaryDocument = &summary
	}

	created, err := r.records.Insert(ctx, p)
	if err != nil {
		r.discard(ctx, primary.Path)
		if p.SummaryDocument != nil {
			r.discard(ctx, p.SummaryDocument.Path)
		}
		return nil, err
	}

	r.logger.Info("project created", "id", created.ID, "title", created.Title)
	return &created, nil
}

// Update stores replacement files first, swaps the references in the record,
// and only then deletes the files they replaced.
func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Project, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	existing, err := r.records.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p := existing
	cmd.apply(&p)

	if err := r.validate(&p, cmd.Primary, cmd.Summary, false); err != nil {
		return nil, err
	}

	var stored []string

	if cmd.Primary != nil {
		ref, err := r.store.Put(ctx, Folder, cmd.Primary)
		if err != nil {
			return nil, err
		}
		p.PrimaryDocument = ref
		stored = append(stored, ref.Path)
	}

	if cmd.Summary != nil {
		ref, err := r.store.Put(ctx, Folder, cmd.Summary)
		if err != nil {
			r.discard(ctx, stored...)
			return nil, err
		}
		p.SummaryDocument = &ref
		stored = append(stored, ref.Path)
	}

	updated, err := r.records.Update(ctx, p)
	if err != nil {
		r.discard(ctx, stored...)
		return nil, err
	}

	if cmd.Primary != nil {
		r.discard(ctx, existing.PrimaryDocument.Path)
	}
	if cmd.Summary != nil && existing.SummaryDocument != nil {
		r.discard(ctx, existing.SummaryDocument.Path)
	}

	r.logger.Info("project updated", "id", updated.ID, "title", updated.Title)
	return &updated, nil
}

// Delete removes the project's files before its record. A storage failure
// leaves the record in place so the delete can be retried.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := auth.RequireAdmin(ctx); err != nil {
		return err
	}

	p, err := r.records.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := r.store.Delete(ctx, p.PrimaryDocument.Path); err != nil {
		return err
	}
	if p.SummaryDocument != nil {
		if err := r.store.Delete(ctx, p.SummaryDocument.Path); err != nil {
			return err
		}
	}

	if err := r.records.Delete(ctx, id); err != nil {
		return err
	}

	r.logger.Info("project deleted", "id", id)
	return nil
}

// discard removes files no record references. Failures only orphan the
// file, so they are logged rather than returned.
func (r *repo) discard(ctx context.Context, paths ...string) {
	for _, path := range paths {
		if err := r.store.Delete(ctx, path); err != nil {
			r.logger.Warn("failed to remove unreferenced document", "path", path, "error", err)
		}
	}
}
