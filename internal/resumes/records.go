package resumes

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/portfolio-api/pkg/repository"
)

// Records persists the resume row. At most one row exists.
type Records interface {
	Current(ctx context.Context) (Resume, error)

	// Replace removes every existing row and inserts r in one transaction.
	Replace(ctx context.Context, r Resume) (Resume, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

const columns = `id, primary_path, primary_original_name, primary_size_bytes,
	primary_content_type, primary_page_count, created_at, updated_at`

func scanResume(s repository.Scanner) (Resume, error) {
	var (
		r     Resume
		size  sql.NullInt64
		pages sql.NullInt32
	)

	err := s.Scan(
		&r.ID, &r.PrimaryDocument.Path, &r.PrimaryDocument.OriginalName, &size,
		&r.PrimaryDocument.ContentType, &pages, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return r, err
	}

	if size.Valid {
		r.PrimaryDocument.SizeBytes = &size.Int64
	}
	if pages.Valid {
		n := int(pages.Int32)
		r.PrimaryDocument.PageCount = &n
	}
	return r, nil
}

type pgRecords struct {
	db *sql.DB
}

// NewRecords creates Records over the resumes table.
func NewRecords(db *sql.DB) Records {
	return &pgRecords{db: db}
}

func (p *pgRecords) Current(ctx context.Context) (Resume, error) {
	q := "SELECT " + columns + " FROM resumes ORDER BY created_at DESC LIMIT 1"

	r, err := repository.QueryOne(ctx, p.db, q, nil, scanResume)
	if err != nil {
		return Resume{}, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return r, nil
}

func (p *pgRecords) Replace(ctx context.Context, r Resume) (Resume, error) {
	q := `
		INSERT INTO resumes (id, primary_path, primary_original_name, primary_size_bytes,
			primary_content_type, primary_page_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + columns

	doc := r.PrimaryDocument
	args := []any{r.ID, doc.Path, doc.OriginalName, doc.SizeBytes, doc.ContentType, doc.PageCount}

	created, err := repository.WithTx(ctx, p.db, func(tx *sql.Tx) (Resume, error) {
		if _, err := tx.ExecContext(ctx, "DELETE FROM resumes"); err != nil {
			return Resume{}, fmt.Errorf("remove previous resume: %w", err)
		}
		return repository.QueryOne(ctx, tx, q, args, scanResume)
	})
	if err != nil {
		return Resume{}, fmt.Errorf("replace resume: %w", err)
	}
	return created, nil
}

func (p *pgRecords) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, p.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM resumes WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return nil
}
