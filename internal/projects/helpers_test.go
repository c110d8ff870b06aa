package projects_test

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/portfolio-api/internal/auth"
	"github.com/JaimeStill/portfolio-api/internal/documents"
	"github.com/JaimeStill/portfolio-api/internal/documents/documentstest"
	"github.com/JaimeStill/portfolio-api/internal/projects"
)

const maxSize = 10 << 20

// memoryRecords keeps projects in a map. Timestamps come from clock so tests
// control creation order.
type memoryRecords struct {
	mu         sync.Mutex
	rows       map[uuid.UUID]projects.Project
	clock      func() time.Time
	failInsert error
}

func newMemoryRecords() *memoryRecords {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	return &memoryRecords{
		rows: make(map[uuid.UUID]projects.Project),
		clock: func() time.Time {
			n++
			return base.Add(time.Duration(n) * time.Minute)
		},
	}
}

func (m *memoryRecords) List(ctx context.Context, filters projects.Filters) ([]projects.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []projects.Project{}
	for _, p := range m.rows {
		if filters.PublishedOnly && !p.IsPublished {
			continue
		}
		if filters.Category != nil && p.Category != *filters.Category {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryRecords) Get(ctx context.Context, id uuid.UUID) (projects.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.rows[id]
	if !ok {
		return projects.Project{}, projects.ErrNotFound
	}
	return p, nil
}

func (m *memoryRecords) Insert(ctx context.Context, p projects.Project) (projects.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failInsert != nil {
		return projects.Project{}, m.failInsert
	}

	p.CreatedAt = m.clock()
	p.UpdatedAt = p.CreatedAt
	m.rows[p.ID] = p
	return p, nil
}

func (m *memoryRecords) Update(ctx context.Context, p projects.Project) (projects.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.rows[p.ID]
	if !ok {
		return projects.Project{}, projects.ErrNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = m.clock()
	m.rows[p.ID] = p
	return p, nil
}

func (m *memoryRecords) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return projects.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryRecords) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// failingDeletes wraps a Store so Delete reports a storage failure.
type failingDeletes struct {
	documents.Store
}

func (failingDeletes) Delete(ctx context.Context, path string) error {
	return errors.Join(documents.ErrStorage, errors.New("disk unavailable"))
}

func adminContext() context.Context {
	return auth.WithPrincipal(context.Background(), &auth.Principal{
		UserID: uuid.New(),
		Email:  "admin@example.com",
		Admin:  true,
	})
}

type fixture struct {
	sys     projects.System
	records *memoryRecords
	store   documents.Store
	dir     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, dir := documentstest.NewStore(t)
	records := newMemoryRecords()

	return &fixture{
		sys:     projects.New(records, store, documentstest.Logger(), maxSize),
		records: records,
		store:   store,
		dir:     dir,
	}
}

// storedFiles lists every file under dir, relative and slash-separated.
func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", dir, err)
	}

	slices.Sort(files)
	return files
}

func exists(t *testing.T, store documents.Store, path string) bool {
	t.Helper()
	ok, err := store.Exists(context.Background(), path)
	if err != nil {
		t.Fatalf("Exists(%q) failed: %v", path, err)
	}
	return ok
}

// pdfOfSize pads a valid PDF to n bytes.
func pdfOfSize(n int) []byte {
	data := documentstest.PDF(1)
	if len(data) < n {
		data = append(data, make([]byte, n-len(data))...)
	}
	return data
}

func ptr[T any](v T) *T {
	return &v
}
