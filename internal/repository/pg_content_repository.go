package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/silis/backend/internal/model"
)

// PgContentRepository keeps the site content as a JSONB row keyed by type.
type PgContentRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewPgContentRepository(pool *pgxpool.Pool, timeout time.Duration) *PgContentRepository {
	return &PgContentRepository{pool: pool, timeout: timeout}
}

var _ ContentRepository = (*PgContentRepository)(nil)

func (r *PgContentRepository) Get(ctx context.Context) (*model.ContentDocument, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	doc := model.ContentDocument{Type: model.ContentType}
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT data, created_at, updated_at FROM site_content WHERE type = $1`,
		model.ContentType,
	).Scan(&raw, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get site content: %w", err)
	}
	if err := json.Unmarshal(raw, &doc.Data); err != nil {
		return nil, fmt.Errorf("decode site content: %w", err)
	}
	return &doc, nil
}

func (r *PgContentRepository) Insert(ctx context.Context, doc *model.ContentDocument) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := json.Marshal(doc.Data)
	if err != nil {
		return fmt.Errorf("encode site content: %w", err)
	}
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO site_content (type, data, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		model.ContentType, raw, doc.CreatedAt, doc.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert site content: %w", err)
	}
	return nil
}

// Replace upserts the row; created_at of an existing row is kept.
func (r *PgContentRepository) Replace(ctx context.Context, doc *model.ContentDocument) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := json.Marshal(doc.Data)
	if err != nil {
		return fmt.Errorf("encode site content: %w", err)
	}
	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = doc.UpdatedAt
	}
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO site_content (type, data, created_at, updated_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (type) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		model.ContentType, raw, createdAt, doc.UpdatedAt,
	); err != nil {
		return fmt.Errorf("replace site content: %w", err)
	}
	return nil
}

func (r *PgContentRepository) Delete(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.pool.Exec(ctx, `DELETE FROM site_content WHERE type = $1`, model.ContentType); err != nil {
		return fmt.Errorf("delete site content: %w", err)
	}
	return nil
}
