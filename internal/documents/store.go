package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/JaimeStill/portfolio-api/pkg/storage"
)

// Store persists uploaded files under logical folders and addresses them by
// the opaque path it returns.
type Store interface {
	// Put writes u under folder with a generated collision-free name.
	Put(ctx context.Context, folder string, u *Upload) (Ref, error)

	// Delete removes the file at path. An absent file is not an error.
	Delete(ctx context.Context, path string) error

	Exists(ctx context.Context, path string) (bool, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// List returns every stored file under folder.
	List(ctx context.Context, folder string) ([]Entry, error)
}

// Entry is a stored file as reported by List.
type Entry struct {
	Path      string
	SizeBytes int64
	ModTime   time.Time
}

type store struct {
	blobs  storage.System
	logger *slog.Logger
}

// New creates a Store backed by blobs.
func New(blobs storage.System, logger *slog.Logger) Store {
	return &store{
		blobs:  blobs,
		logger: logger.With("system", "documents"),
	}
}

func (s *store) Put(ctx context.Context, folder string, u *Upload) (Ref, error) {
	folder = strings.Trim(folder, "/")
	if folder == "" || strings.Contains(folder, "..") {
		return Ref{}, fmt.Errorf("%w: %q", ErrInvalidFolder, folder)
	}

	key := path.Join(folder, uuid.NewString()+u.Ext())
	contentType := u.ContentType()

	var pageCount *int
	if contentType == "application/pdf" {
		pageCount = s.pageCount(u)
	}

	size, err := s.write(ctx, key, u)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: put %s: %w", ErrStorage, key, err)
	}
	s.logger.Info("document stored", "path", key, "original_name", u.Filename, "size", size)

	return Ref{
		Path:         key,
		OriginalName: filepath.Base(u.Filename),
		SizeBytes:    &size,
		ContentType:  contentType,
		PageCount:    pageCount,
	}, nil
}

// write hands the upload to blob storage and reports the bytes written.
// Seekable streams pass through untouched so backends can size and rewind
// them; anything else is counted as it is copied.
func (s *store) write(ctx context.Context, key string, u *Upload) (int64, error) {
	if rs, ok := u.Reader.(io.ReadSeeker); ok {
		size, err := remaining(rs)
		if err != nil {
			return 0, err
		}
		if err := s.blobs.Store(ctx, key, rs); err != nil {
			return 0, err
		}
		return size, nil
	}

	counter := &countingReader{r: u.Reader}
	if err := s.blobs.Store(ctx, key, counter); err != nil {
		return 0, err
	}
	return counter.n, nil
}

// pageCount reads the PDF page tree when the stream can be rewound afterwards.
func (s *store) pageCount(u *Upload) *int {
	rs, ok := u.Reader.(io.ReadSeeker)
	if !ok {
		return nil
	}

	count, err := api.PageCount(rs, model.NewDefaultConfiguration())
	if _, seekErr := rs.Seek(0, io.SeekStart); seekErr != nil {
		s.logger.Warn("failed to rewind upload", "filename", u.Filename, "error", seekErr)
		return nil
	}
	if err != nil {
		s.logger.Warn("failed to extract pdf page count", "filename", u.Filename, "error", err)
		return nil
	}
	return &count
}

func (s *store) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	if err := s.blobs.Delete(ctx, path); err != nil {
		return fmt.Errorf("%w: delete %s: %w", ErrStorage, path, err)
	}
	s.logger.Info("document deleted", "path", path)
	return nil
}

func (s *store) Exists(ctx context.Context, path string) (bool, error) {
	ok, err := s.blobs.Validate(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidKey) {
			return false, nil
		}
		return false, fmt.Errorf("%w: stat %s: %w", ErrStorage, path, err)
	}
	return ok, nil
}

func (s *store) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	rc, err := s.blobs.Open(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorage, path, err)
	}
	return rc, nil
}

func (s *store) List(ctx context.Context, folder string) ([]Entry, error) {
	objects, err := s.blobs.List(ctx, strings.Trim(folder, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrStorage, folder, err)
	}

	entries := make([]Entry, len(objects))
	for i, o := range objects {
		entries[i] = Entry{Path: o.Key, SizeBytes: o.Size, ModTime: o.ModTime}
	}
	return entries, nil
}
