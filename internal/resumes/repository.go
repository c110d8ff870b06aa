package resumes

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/portfolio-api/internal/auth"
	"github.com/JaimeStill/portfolio-api/internal/documents"
)

type repo struct {
	records Records
	store   documents.Store
	logger  *slog.Logger
	maxSize int64
}

// New creates the resume System. Uploaded files are limited to maxSize bytes.
func New(records Records, store documents.Store, logger *slog.Logger, maxSize int64) System {
	return &repo{
		records: records,
		store:   store,
		logger:  logger.With("system", "resumes"),
		maxSize: maxSize,
	}
}

func (r *repo) Current(ctx context.Context) (*Resume, error) {
	res, err := r.records.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Upload stores the new file, swaps the record, then removes the previous
// file. A failure before the swap leaves the previous resume current.
func (r *repo) Upload(ctx context.Context, file *documents.Upload) (*Resume, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := documents.PDFRule(r.maxSize).Check("pdf", file).Err(); err != nil {
		return nil, err
	}

	previous, err := r.records.Current(ctx)
	hasPrevious := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	ref, err := r.store.Put(ctx, Folder, file)
	if err != nil {
		return nil, err
	}

	created, err := r.records.Replace(ctx, Resume{ID: uuid.New(), PrimaryDocument: ref})
	if err != nil {
		if derr := r.store.Delete(ctx, ref.Path); derr != nil {
			r.logger.Warn("failed to remove unreferenced document", "path", ref.Path, "error", derr)
		}
		return nil, err
	}

	if hasPrevious {
		if err := r.store.Delete(ctx, previous.PrimaryDocument.Path); err != nil {
			r.logger.Warn("failed to remove superseded resume", "path", previous.PrimaryDocument.Path, "error", err)
		}
	}

	r.logger.Info("resume uploaded", "id", created.ID, "original_name", created.PrimaryDocument.OriginalName)
	return &created, nil
}

// Delete removes the current resume's file before its record.
func (r *repo) Delete(ctx context.Context) error {
	if err := auth.RequireAdmin(ctx); err != nil {
		return err
	}

	current, err := r.records.Current(ctx)
	if err != nil {
		return err
	}

	if err := r.store.Delete(ctx, current.PrimaryDocument.Path); err != nil {
		return err
	}
	if err := r.records.Delete(ctx, current.ID); err != nil {
		return err
	}

	r.logger.Info("resume deleted", "id", current.ID)
	return nil
}
