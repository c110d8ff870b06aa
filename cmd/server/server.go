package main

import (
	"context"
	"time"

	"github.com/JaimeStill/portfolio-api/internal/config"
	"github.com/JaimeStill/portfolio-api/internal/infrastructure"
	"github.com/JaimeStill/portfolio-api/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
	)

	return &Server{
		cfg:     cfg,
		infra:   infra,
		modules: modules,
		http:    server.New(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start brings up infrastructure, ensures the bootstrap admin, and begins
// serving.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.seedAdmin(s.infra.Lifecycle.Context()); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

func (s *Server) seedAdmin(ctx context.Context) error {
	auth := s.cfg.Auth
	if !auth.Bootstrap() {
		return nil
	}

	user, created, err := s.modules.Domain.Auth.EnsureAdmin(ctx, auth.BootstrapName, auth.BootstrapEmail, auth.BootstrapPassword)
	if err != nil {
		return err
	}
	if created {
		s.infra.Logger.Info("bootstrap admin created", "email", user.Email)
	}
	return nil
}
