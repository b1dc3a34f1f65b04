package service

import (
	"context"

	"github.com/silis/backend/internal/model"
)

// SubmissionService handles contact-form submissions.
type SubmissionService interface {
	// Submit validates, sanitizes and stores form, then sends the admin and
	// client e-mails. E-mail failures are logged and never returned.
	Submit(ctx context.Context, form model.SubmissionForm) (*model.ContactSubmission, error)

	// List returns a page of submissions, newest first. An unknown status
	// filter is ignored.
	List(ctx context.Context, status string, skip, limit int) (*model.SubmissionPage, error)

	// UpdateStatus moves a submission to status. Any transition between the
	// known statuses is allowed.
	UpdateStatus(ctx context.Context, id, status string) error
}
