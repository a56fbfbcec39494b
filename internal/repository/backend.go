// Package repository opens the persistence backend chosen in configuration.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/FlamingoLogic/chat-markdown-app/internal/config"
	"github.com/FlamingoLogic/chat-markdown-app/internal/domain/repositories"
	"github.com/FlamingoLogic/chat-markdown-app/internal/repository/file"
	"github.com/FlamingoLogic/chat-markdown-app/internal/repository/memory"
	"github.com/FlamingoLogic/chat-markdown-app/internal/repository/postgres"
	"github.com/FlamingoLogic/chat-markdown-app/internal/repository/sqlite"
)

// Backend bundles a gateway with the transaction manager that groups its writes
type Backend struct {
	Name      string
	Gateway   repositories.Gateway
	TxManager repositories.TransactionManager
}

// Close releases connections or file handles held by the gateway
func (b *Backend) Close() error {
	if c, ok := b.Gateway.(repositories.Closer); ok {
		return c.Close()
	}
	return nil
}

// Purge drops everything the backend stores
func (b *Backend) Purge(ctx context.Context) error {
	p, ok := b.Gateway.(repositories.Purger)
	if !ok {
		return fmt.Errorf("%s backend cannot be purged", b.Name)
	}
	return p.Purge(ctx)
}

// Open creates the backend named by cfg.Backend
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	logger = logger.With("backend", cfg.Backend)

	switch cfg.Backend {
	case config.BackendMemory:
		return &Backend{
			Name:      cfg.Backend,
			Gateway:   memory.NewGateway(),
			TxManager: repositories.PassthroughTxManager{},
		}, nil

	case config.BackendFile:
		g, err := file.NewGateway(cfg.DataDir, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("file storage ready", "dir", cfg.DataDir)
		return &Backend{Name: cfg.Backend, Gateway: g, TxManager: repositories.PassthroughTxManager{}}, nil

	case config.BackendSQLite:
		g, err := sqlite.Open(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("sqlite storage ready", "path", cfg.SQLitePath)
		return &Backend{Name: cfg.Backend, Gateway: g, TxManager: sqlite.NewTransactionManager(g.DB())}, nil

	case config.BackendPostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		tables := postgres.NewTableNames(cfg.TablePrefix)
		g, err := postgres.NewGateway(ctx, pool, tables, logger)
		if err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("postgres storage ready", "table", tables.LibraryState)
		return &Backend{Name: cfg.Backend, Gateway: g, TxManager: postgres.NewTransactionManager(pool, logger)}, nil
	}

	return nil, fmt.Errorf("unknown persistence backend %q", cfg.Backend)
}
