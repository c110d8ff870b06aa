package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/portfolio-api/internal/auth"
)

func newAdminCommand() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	admin.AddCommand(newAdminCreateCommand())
	admin.AddCommand(newAdminListCommand())
	admin.AddCommand(newAdminDeleteCommand())
	return admin
}

func authSystem(s *session) auth.System {
	return auth.New(s.infra.Database.Connection(), s.infra.Logger, s.cfg.Auth.TokenTTLDuration())
}

func newAdminCreateCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create <email> <password>",
		Short: "Create an admin account, or reset the password of an existing one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(false)
			if err != nil {
				return err
			}
			defer s.close()

			user, created, err := authSystem(s).Save(cmd.Context(), name, args[0], args[1])
			if err != nil {
				return err
			}

			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Admin user created: %s\n", user.Email)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Admin password updated: %s\n", user.Email)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Admin", "display name for a new account")
	return cmd
}

func newAdminListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List admin accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(false)
			if err != nil {
				return err
			}
			defer s.close()

			users, err := authSystem(s).List(cmd.Context())
			if err != nil {
				return err
			}

			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCREATED")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
}

func newAdminDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <email>",
		Short: "Delete an admin account and its tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(false)
			if err != nil {
				return err
			}
			defer s.close()

			if err := authSystem(s).DeleteByEmail(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "User %s deleted.\n", args[0])
			return nil
		},
	}
}
