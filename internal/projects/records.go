package projects

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/portfolio-api/internal/documents"
	"github.com/JaimeStill/portfolio-api/pkg/query"
	"github.com/JaimeStill/portfolio-api/pkg/repository"
)

// Records persists project rows. Implementations hold no entity state
// between calls.
type Records interface {
	List(ctx context.Context, filters Filters) ([]Project, error)
	Get(ctx context.Context, id uuid.UUID) (Project, error)
	Insert(ctx context.Context, p Project) (Project, error)
	Update(ctx context.Context, p Project) (Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var projection = query.
	NewProjectionMap("public", "projects", "p").
	Project("id", "ID").
	Project("title", "Title").
	Project("description", "Description").
	Project("category", "Category").
	Project("primary_path", "PrimaryPath").
	Project("primary_original_name", "PrimaryOriginalName").
	Project("primary_size_bytes", "PrimarySizeBytes").
	Project("primary_content_type", "PrimaryContentType").
	Project("primary_page_count", "PrimaryPageCount").
	Project("summary_path", "SummaryPath").
	Project("summary_original_name", "SummaryOriginalName").
	Project("summary_size_bytes", "SummarySizeBytes").
	Project("summary_content_type", "SummaryContentType").
	Project("summary_page_count", "SummaryPageCount").
	Project("is_published", "IsPublished").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

const returning = `RETURNING id, title, description, category,
	primary_path, primary_original_name, primary_size_bytes, primary_content_type, primary_page_count,
	summary_path, summary_original_name, summary_size_bytes, summary_content_type, summary_page_count,
	is_published, created_at, updated_at`

func scanProject(s repository.Scanner) (Project, error) {
	var (
		p       Project
		summary struct {
			path, name, contentType sql.NullString
			size                    sql.NullInt64
			pages                   sql.NullInt32
		}
		primarySize  sql.NullInt64
		primaryPages sql.NullInt32
	)

	err := s.Scan(
		&p.ID, &p.Title, &p.Description, &p.Category,
		&p.PrimaryDocument.Path, &p.PrimaryDocument.OriginalName, &primarySize,
		&p.PrimaryDocument.ContentType, &primaryPages,
		&summary.path, &summary.name, &summary.size, &summary.contentType, &summary.pages,
		&p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}

	p.PrimaryDocument.SizeBytes = nullInt64(primarySize)
	p.PrimaryDocument.PageCount = nullInt(primaryPages)

	if summary.path.Valid {
		p.SummaryDocument = &documents.Ref{
			Path:         summary.path.String,
			OriginalName: summary.name.String,
			SizeBytes:    nullInt64(summary.size),
			ContentType:  summary.contentType.String,
			PageCount:    nullInt(summary.pages),
		}
	}

	return p, nil
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullInt(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}

// summaryArgs flattens an optional reference into nullable column values.
func summaryArgs(ref *documents.Ref) []any {
	if ref == nil {
		return []any{nil, nil, nil, nil, nil}
	}
	return []any{ref.Path, ref.OriginalName, ref.SizeBytes, ref.ContentType, ref.PageCount}
}

type pgRecords struct {
	db *sql.DB
}

// NewRecords creates Records over the projects table.
func NewRecords(db *sql.DB) Records {
	return &pgRecords{db: db}
}

func (r *pgRecords) List(ctx context.Context, filters Filters) ([]Project, error) {
	qb := query.NewBuilder(projection, "CreatedAt").OrderBy("CreatedAt", true)
	filters.Apply(qb)

	q, args := qb.BuildList()
	projects, err := repository.QueryMany(ctx, r.db, q, args, scanProject)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	return projects, nil
}

func (r *pgRecords) Get(ctx context.Context, id uuid.UUID) (Project, error) {
	q, args := query.NewBuilder(projection, "CreatedAt").BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProject)
	if err != nil {
		return Project{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return p, nil
}

func (r *pgRecords) Insert(ctx context.Context, p Project) (Project, error) {
	q := `
		INSERT INTO projects (
			id, title, description, category,
			primary_path, primary_original_name, primary_size_bytes, primary_content_type, primary_page_count,
			summary_path, summary_original_name, summary_size_bytes, summary_content_type, summary_page_count,
			is_published
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		` + returning

	args := []any{
		p.ID, p.Title, p.Description, p.Category,
		p.PrimaryDocument.Path, p.PrimaryDocument.OriginalName, p.PrimaryDocument.SizeBytes,
		p.PrimaryDocument.ContentType, p.PrimaryDocument.PageCount,
	}
	args = append(args, summaryArgs(p.SummaryDocument)...)
	args = append(args, p.IsPublished)

	created, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Project, error) {
		return repository.QueryOne(ctx, tx, q, args, scanProject)
	})
	if err != nil {
		return Project{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return created, nil
}

func (r *pgRecords) Update(ctx context.Context, p Project) (Project, error) {
	q := `
		UPDATE projects SET
			title = $2, description = $3, category = $4,
			primary_path = $5, primary_original_name = $6, primary_size_bytes = $7,
			primary_content_type = $8, primary_page_count = $9,
			summary_path = $10, summary_original_name = $11, summary_size_bytes = $12,
			summary_content_type = $13, summary_page_count = $14,
			is_published = $15, updated_at = NOW()
		WHERE id = $1
		` + returning

	args := []any{
		p.ID, p.Title, p.Description, p.Category,
		p.PrimaryDocument.Path, p.PrimaryDocument.OriginalName, p.PrimaryDocument.SizeBytes,
		p.PrimaryDocument.ContentType, p.PrimaryDocument.PageCount,
	}
	args = append(args, summaryArgs(p.SummaryDocument)...)
	args = append(args, p.IsPublished)

	updated, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Project, error) {
		return repository.QueryOne(ctx, tx, q, args, scanProject)
	})
	if err != nil {
		return Project{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return updated, nil
}

func (r *pgRecords) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM projects WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}
