// Package orphans reconciles the document store against project and resume
// records. Nothing in the request path calls it; it backs the admin CLI.
package orphans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/JaimeStill/portfolio-api/internal/documents"
	"github.com/JaimeStill/portfolio-api/internal/projects"
	"github.com/JaimeStill/portfolio-api/internal/resumes"
)

// Sweeper finds and removes stored files no record references.
type Sweeper struct {
	store    documents.Store
	projects projects.System
	resumes  resumes.System
	grace    time.Duration
	logger   *slog.Logger
}

// New creates a Sweeper. Files younger than grace are never reported: a
// create, update, or resume upload stores its file before writing the record
// that references it.
func New(store documents.Store, p projects.System, r resumes.System, grace time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		projects: p,
		resumes:  r,
		grace:    grace,
		logger:   logger.With("system", "orphans"),
	}
}

// Find returns unreferenced paths under the project and resume folders,
// sorted. ctx must carry the admin capability.
//
// The store is listed before references are read, so a file whose record
// commits in between is seen as referenced or, if stored later, not seen.
func (s *Sweeper) Find(ctx context.Context) ([]string, error) {
	cutoff := time.Now().Add(-s.grace)

	var stored []documents.Entry
	for _, folder := range []string{projects.Folder, resumes.Folder} {
		entries, err := s.store.List(ctx, folder)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", folder, err)
		}
		stored = append(stored, entries...)
	}

	referenced, err := s.referenced(ctx)
	if err != nil {
		return nil, err
	}

	var orphans []string
	for _, e := range stored {
		if _, ok := referenced[e.Path]; ok {
			continue
		}
		if e.ModTime.After(cutoff) {
			s.logger.Debug("skipping recent file", "path", e.Path, "mod_time", e.ModTime)
			continue
		}
		orphans = append(orphans, e.Path)
	}

	slices.Sort(orphans)
	return orphans, nil
}

// Delete removes each path and reports how many were removed. Failures are
// collected rather than stopping the sweep.
func (s *Sweeper) Delete(ctx context.Context, paths []string) (int, error) {
	var (
		removed int
		errs    []error
	)
	for _, p := range paths {
		if err := s.store.Delete(ctx, p); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}
		s.logger.Info("orphan removed", "path", p)
		removed++
	}
	return removed, errors.Join(errs...)
}

func (s *Sweeper) referenced(ctx context.Context) (map[string]struct{}, error) {
	refs := make(map[string]struct{})

	all, err := s.projects.List(ctx, projects.Filters{})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	for _, p := range all {
		refs[p.PrimaryDocument.Path] = struct{}{}
		if p.SummaryDocument != nil {
			refs[p.SummaryDocument.Path] = struct{}{}
		}
	}

	current, err := s.resumes.Current(ctx)
	switch {
	case errors.Is(err, resumes.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("current resume: %w", err)
	default:
		refs[current.PrimaryDocument.Path] = struct{}{}
	}

	return refs, nil
}
