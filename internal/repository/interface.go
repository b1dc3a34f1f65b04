package repository

import (
	"context"
	"time"

	"github.com/silis/backend/internal/model"
)

// DB checks that the storage connection is alive.
type DB interface {
	Ping(ctx context.Context) error
}

// SubmissionRepository persists contact-form submissions.
type SubmissionRepository interface {
	Insert(ctx context.Context, s *model.ContactSubmission) error
	FindByID(ctx context.Context, id string) (*model.ContactSubmission, error)
	// List returns matching submissions, newest first.
	List(ctx context.Context, filter model.SubmissionFilter, skip, limit int) ([]*model.ContactSubmission, error)
	Count(ctx context.Context, filter model.SubmissionFilter) (int64, error)
	// UpdateStatus sets status and updated_at. ErrNotFound when id is unknown.
	UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus, at time.Time) error
}

// NewsRepository persists news articles keyed by their application id.
type NewsRepository interface {
	Insert(ctx context.Context, n *model.NewsArticle) error
	FindByID(ctx context.Context, id string) (*model.NewsArticle, error)
	// List returns matching articles, latest date first.
	List(ctx context.Context, filter model.NewsFilter, skip, limit int) ([]*model.NewsArticle, error)
	Count(ctx context.Context, filter model.NewsFilter) (int64, error)
	// Update applies changes and returns the stored article.
	Update(ctx context.Context, id string, changes model.NewsChanges) (*model.NewsArticle, error)
	Delete(ctx context.Context, id string) error
}

// ContentRepository persists the singleton site-content document.
type ContentRepository interface {
	// Get returns ErrNotFound when no document has been stored yet.
	Get(ctx context.Context) (*model.ContentDocument, error)
	Insert(ctx context.Context, doc *model.ContentDocument) error
	// Replace overwrites the stored document, creating it if needed.
	Replace(ctx context.Context, doc *model.ContentDocument) error
	Delete(ctx context.Context) error
}
