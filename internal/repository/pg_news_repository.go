package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/silis/backend/internal/model"
)

// PgNewsRepository is the PostgreSQL implementation of NewsRepository.
type PgNewsRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewPgNewsRepository(pool *pgxpool.Pool, timeout time.Duration) *PgNewsRepository {
	return &PgNewsRepository{pool: pool, timeout: timeout}
}

var _ NewsRepository = (*PgNewsRepository)(nil)

const newsColumns = `id, title, excerpt, content, date, created_at, updated_at, published, author`

func scanArticle(row pgx.Row) (*model.NewsArticle, error) {
	var a model.NewsArticle
	if err := row.Scan(&a.ID, &a.Title, &a.Excerpt, &a.Content, &a.Date,
		&a.CreatedAt, &a.UpdatedAt, &a.Published, &a.Author); err != nil {
		return nil, err
	}
	a.Date = a.Date.UTC()
	return &a, nil
}

func newsWhere(filter model.NewsFilter) (string, []any) {
	if filter.Published == nil {
		return "", nil
	}
	return " WHERE published = $1", []any{*filter.Published}
}

func (r *PgNewsRepository) Insert(ctx context.Context, n *model.NewsArticle) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO news (`+newsColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, n.Title, n.Excerpt, n.Content, n.Date, n.CreatedAt, n.UpdatedAt, n.Published, n.Author,
	)
	if err != nil {
		return fmt.Errorf("insert news: %w", err)
	}
	return nil
}

func (r *PgNewsRepository) FindByID(ctx context.Context, id string) (*model.NewsArticle, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	a, err := scanArticle(r.pool.QueryRow(ctx, `SELECT `+newsColumns+` FROM news WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find news: %w", err)
	}
	return a, nil
}

// List returns articles ordered by date descending, newest creation first
// within a day.
func (r *PgNewsRepository) List(ctx context.Context, filter model.NewsFilter, skip, limit int) ([]*model.NewsArticle, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	where, args := newsWhere(filter)
	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	args = append(args, limit, skip)

	rows, err := r.pool.Query(ctx,
		`SELECT `+newsColumns+` FROM news`+where+
			` ORDER BY date DESC, created_at DESC
			  LIMIT $`+strconv.Itoa(limitArg)+` OFFSET $`+strconv.Itoa(offsetArg),
		args...)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	defer rows.Close()

	articles := []*model.NewsArticle{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan news: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (r *PgNewsRepository) Count(ctx context.Context, filter model.NewsFilter) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	where, args := newsWhere(filter)
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM news`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count news: %w", err)
	}
	return n, nil
}

// Update builds a SET clause from the non-nil fields of changes.
func (r *PgNewsRepository) Update(ctx context.Context, id string, changes model.NewsChanges) (*model.NewsArticle, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var sets []string
	var args []any
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	if changes.Title != nil {
		set("title", *changes.Title)
	}
	if changes.Excerpt != nil {
		set("excerpt", *changes.Excerpt)
	}
	if changes.Content != nil {
		set("content", *changes.Content)
	}
	if changes.Date != nil {
		set("date", *changes.Date)
	}
	if changes.Published != nil {
		set("published", *changes.Published)
	}
	switch {
	case changes.ClearAuthor:
		sets = append(sets, "author = NULL")
	case changes.Author != nil:
		set("author", *changes.Author)
	}
	set("updated_at", changes.UpdatedAt)
	args = append(args, id)

	a, err := scanArticle(r.pool.QueryRow(ctx,
		`UPDATE news SET `+strings.Join(sets, ", ")+
			` WHERE id = $`+strconv.Itoa(len(args))+
			` RETURNING `+newsColumns,
		args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update news: %w", err)
	}
	return a, nil
}

func (r *PgNewsRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
