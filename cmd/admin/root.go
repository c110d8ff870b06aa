package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/portfolio-api/internal/auth"
	"github.com/JaimeStill/portfolio-api/internal/config"
	"github.com/JaimeStill/portfolio-api/internal/infrastructure"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "portfolio-admin",
		Short:        "Portfolio maintenance commands",
		Long:         `Manages admin accounts, applies schema migrations, and sweeps orphaned documents.`,
		SilenceUsage: true,
	}

	root.AddCommand(newAdminCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newOrphansCommand())
	return root
}

// session is the infrastructure a single command runs against.
type session struct {
	cfg   *config.Config
	infra *infrastructure.Infrastructure
}

// open loads configuration and connects the database. Storage is started
// only when withStorage is set.
func open(withStorage bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("config finalize failed: %w", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	if err := infra.Database.Start(infra.Lifecycle); err != nil {
		return nil, err
	}
	if withStorage {
		if err := infra.Storage.Start(infra.Lifecycle); err != nil {
			infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())
			return nil, err
		}
	}

	return &session{cfg: cfg, infra: infra}, nil
}

func (s *session) close() {
	if err := s.infra.Lifecycle.Shutdown(s.cfg.ShutdownTimeoutDuration()); err != nil {
		s.infra.Logger.Error("shutdown failed", "error", err)
	}
}

// adminContext carries the admin capability for operations that check it.
func adminContext(ctx context.Context) context.Context {
	return auth.WithPrincipal(ctx, &auth.Principal{Email: "portfolio-admin", Admin: true})
}
