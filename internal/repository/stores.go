package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/silis/backend/internal/config"
)

// Stores bundles the repositories of one storage backend.
type Stores struct {
	Backend     string
	Submissions SubmissionRepository
	News        NewsRepository
	Content     ContentRepository
	DB          DB

	close func(ctx context.Context) error
}

// Close releases the backend connection.
func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewMemoryStores returns empty in-process repositories.
func NewMemoryStores() *Stores {
	return &Stores{
		Backend:     config.BackendMemory,
		Submissions: NewMemorySubmissionRepository(),
		News:        NewMemoryNewsRepository(),
		Content:     NewMemoryContentRepository(),
		DB:          memoryDB{},
	}
}

// Open connects to the backend named by cfg.DatabaseURL. MongoDB indexes
// are ensured on connect; PostgreSQL schemas are applied by cmd/migrate.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	backend, err := cfg.Backend()
	if err != nil {
		return nil, err
	}

	switch backend {
	case config.BackendMemory:
		slog.Warn("using in-memory storage, data is lost on restart")
		return NewMemoryStores(), nil

	case config.BackendPostgres:
		connectCtx, cancel := withTimeout(ctx, cfg.DBTimeout)
		defer cancel()
		pool, err := NewPool(connectCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return &Stores{
			Backend:     backend,
			Submissions: NewPgSubmissionRepository(pool, cfg.DBTimeout),
			News:        NewPgNewsRepository(pool, cfg.DBTimeout),
			Content:     NewPgContentRepository(pool, cfg.DBTimeout),
			DB:          pool,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	default:
		client, err := ConnectMongo(ctx, cfg.DatabaseURL, cfg.DBTimeout)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.DBName)

		indexCtx, cancel := withTimeout(ctx, cfg.DBTimeout)
		defer cancel()
		if err := EnsureMongoIndexes(indexCtx, db); err != nil {
			slog.Warn("mongo index creation failed", "error", err)
		}
		return &Stores{
			Backend:     backend,
			Submissions: NewMongoSubmissionRepository(db, cfg.DBTimeout),
			News:        NewMongoNewsRepository(db, cfg.DBTimeout),
			Content:     NewMongoContentRepository(db, cfg.DBTimeout),
			DB:          MongoPinger{Client: client},
			close:       client.Disconnect,
		}, nil
	}
}
