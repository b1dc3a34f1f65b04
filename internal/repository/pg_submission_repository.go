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

// PgSubmissionRepository is the PostgreSQL implementation of SubmissionRepository.
type PgSubmissionRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewPgSubmissionRepository creates a PgSubmissionRepository backed by the given pool.
func NewPgSubmissionRepository(pool *pgxpool.Pool, timeout time.Duration) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool, timeout: timeout}
}

var _ SubmissionRepository = (*PgSubmissionRepository)(nil)

const submissionColumns = `id, name, phone, email, organization, comment, agree,
	created_at, updated_at, ip_address, status`

func scanSubmission(row pgx.Row) (*model.ContactSubmission, error) {
	var s model.ContactSubmission
	if err := row.Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.Organization, &s.Comment, &s.Agree,
		&s.CreatedAt, &s.UpdatedAt, &s.IPAddress, &s.Status); err != nil {
		return nil, err
	}
	return &s, nil
}

// submissionWhere builds the WHERE clause for filter; placeholders start at $1.
func submissionWhere(filter model.SubmissionFilter) (string, []any) {
	var conditions []string
	var args []any
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if !filter.CreatedSince.IsZero() {
		args = append(args, filter.CreatedSince)
		conditions = append(conditions, "created_at >= $"+strconv.Itoa(len(args)))
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// Insert stores a new contact_submissions row.
func (r *PgSubmissionRepository) Insert(ctx context.Context, s *model.ContactSubmission) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_submissions (`+submissionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.ID, s.Name, s.Phone, s.Email, s.Organization, s.Comment, s.Agree,
		s.CreatedAt, s.UpdatedAt, s.IPAddress, string(s.Status),
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *PgSubmissionRepository) FindByID(ctx context.Context, id string) (*model.ContactSubmission, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	s, err := scanSubmission(r.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM contact_submissions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find submission: %w", err)
	}
	return s, nil
}

// List returns submissions matching filter ordered by created_at descending.
func (r *PgSubmissionRepository) List(ctx context.Context, filter model.SubmissionFilter, skip, limit int) ([]*model.ContactSubmission, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	where, args := submissionWhere(filter)
	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	args = append(args, limit, skip)

	query := `SELECT ` + submissionColumns + ` FROM contact_submissions` + where +
		` ORDER BY created_at DESC, id
		  LIMIT $` + strconv.Itoa(limitArg) + ` OFFSET $` + strconv.Itoa(offsetArg)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	submissions := []*model.ContactSubmission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

func (r *PgSubmissionRepository) Count(ctx context.Context, filter model.SubmissionFilter) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	where, args := submissionWhere(filter)
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_submissions`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}

func (r *PgSubmissionRepository) UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus, at time.Time) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_submissions SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), at, id)
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
