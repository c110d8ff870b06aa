package main

import (
	"fmt"

	"github.com/spf13/cobra"

	schema "github.com/JaimeStill/portfolio-api/internal/database"
)

func newMigrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrate.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(false)
			if err != nil {
				return err
			}
			defer s.close()

			return schema.Migrate(s.infra.Database.Connection(), s.infra.Logger.With("system", "migrations"))
		},
	})

	migrate.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(false)
			if err != nil {
				return err
			}
			defer s.close()

			version, dirty, err := schema.Version(s.infra.Database.Connection())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "version %d", version)
			if dirty {
				fmt.Fprint(cmd.OutOrStdout(), " (dirty)")
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	})

	return migrate
}
