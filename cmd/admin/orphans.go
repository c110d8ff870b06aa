package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/portfolio-api/internal/documents"
	"github.com/JaimeStill/portfolio-api/internal/orphans"
	"github.com/JaimeStill/portfolio-api/internal/projects"
	"github.com/JaimeStill/portfolio-api/internal/resumes"
)

func newOrphansCommand() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "List stored documents no project or resume references",
		Long: `Lists files under the projects/ and resume/ folders that no record references.
Files newer than documents.orphan_grace are skipped as uploads still in flight.
Files are only removed when --delete is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(true)
			if err != nil {
				return err
			}
			defer s.close()

			db := s.infra.Database.Connection()
			logger := s.infra.Logger
			maxSize := s.cfg.Documents.MaxSizeBytes()
			store := documents.New(s.infra.Storage, logger)

			sweeper := orphans.New(
				store,
				projects.New(projects.NewRecords(db), store, logger, maxSize),
				resumes.New(resumes.NewRecords(db), store, logger, maxSize),
				s.cfg.Documents.OrphanGraceDuration(),
				logger,
			)

			ctx := adminContext(cmd.Context())
			found, err := sweeper.Find(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(found) == 0 {
				fmt.Fprintln(out, "No orphaned documents.")
				return nil
			}
			for _, p := range found {
				fmt.Fprintln(out, p)
			}

			if !remove {
				fmt.Fprintf(out, "%d orphaned documents. Re-run with --delete to remove them.\n", len(found))
				return nil
			}

			removed, err := sweeper.Delete(ctx, found)
			fmt.Fprintf(out, "Removed %d of %d orphaned documents.\n", removed, len(found))
			return err
		},
	}

	cmd.Flags().BoolVar(&remove, "delete", false, "remove the orphaned documents")
	return cmd
}
