package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FlamingoLogic/chat-markdown-app/internal/auth"
	"github.com/FlamingoLogic/chat-markdown-app/internal/config"
	"github.com/FlamingoLogic/chat-markdown-app/internal/handler"
	"github.com/FlamingoLogic/chat-markdown-app/internal/repository"
	"github.com/FlamingoLogic/chat-markdown-app/internal/service/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/service/library/converter"
)

func main() {
	configFile := flag.String("config", "", "Optional YAML config file (same keys as the environment)")
	flag.Parse()

	// Load configuration (.env is read inside Load)
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logger, logCloser, err := config.NewLogger(cfg, os.Stdout, "server")
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"backend", cfg.Backend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Persistence
	backend, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open %s backend: %v", cfg.Backend, err)
	}
	defer backend.Close()

	// Library
	defaults, err := library.LoadDefaults()
	if err != nil {
		log.Fatalf("Failed to load defaults: %v", err)
	}
	tree, err := library.NewTreeManager(backend.Gateway, backend.TxManager, defaults, logger)
	if err != nil {
		log.Fatalf("Failed to create tree manager: %v", err)
	}
	if err := tree.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize library: %v", err)
	}
	uploads := library.NewUploadService(tree, converter.NewConverterRegistry(), logger)

	// Auth gate
	passwords, err := auth.NewPasswordAuthenticator(
		cfg.SitePasswordHash, cfg.SitePassword,
		cfg.ManagerPasswordHash, cfg.ManagerPassword,
	)
	if err != nil {
		log.Fatalf("Failed to configure passwords: %v", err)
	}
	sessions, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}
	verifier := auth.ChainVerifier{sessions}
	if cfg.JWKSURL != "" {
		remote, err := auth.NewRemoteVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create remote verifier: %v", err)
		}
		verifier = append(verifier, remote)
	}
	defer verifier.Close()

	logger.Info("services initialized")

	router := handler.NewRouter(handler.RouterDeps{
		Tree:        tree,
		Uploads:     uploads,
		Passwords:   passwords,
		Sessions:    sessions,
		Verifier:    verifier,
		Backend:     backend.Name,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}
}
