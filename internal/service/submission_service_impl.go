package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/silis/backend/internal/apperr"
	"github.com/silis/backend/internal/logging"
	"github.com/silis/backend/internal/model"
	"github.com/silis/backend/internal/notify"
	"github.com/silis/backend/internal/repository"
	"github.com/silis/backend/internal/security"
)

// submissionServiceImpl is the production implementation of SubmissionService.
type submissionServiceImpl struct {
	repo     repository.SubmissionRepository
	notifier notify.Notifier
	now      func() time.Time
}

// NewSubmissionService creates a SubmissionService. notifier may be nil, in
// which case no e-mails are sent.
func NewSubmissionService(repo repository.SubmissionRepository, notifier notify.Notifier) SubmissionService {
	return &submissionServiceImpl{repo: repo, notifier: notifier, now: time.Now}
}

func (s *submissionServiceImpl) Submit(ctx context.Context, form model.SubmissionForm) (*model.ContactSubmission, error) {
	if err := security.RequireConsent(form.Agree); err != nil {
		return nil, err
	}
	email, err := security.ValidateEmail(form.Email)
	if err != nil {
		return nil, err
	}
	phone, err := security.ValidatePhone(form.Phone)
	if err != nil {
		return nil, err
	}
	name, err := cleanText("name", form.Name, security.MinNameLength, security.MaxNameLength)
	if err != nil {
		return nil, err
	}
	organization, err := cleanText("organization", form.Organization, 0, security.MaxOrganizationLength)
	if err != nil {
		return nil, err
	}
	comment, err := cleanText("comment", form.Comment, 0, security.MaxCommentLength)
	if err != nil {
		return nil, err
	}

	sub := &model.ContactSubmission{
		ID:           uuid.NewString(),
		Name:         name,
		Phone:        phone,
		Email:        email,
		Organization: organization,
		Comment:      comment,
		Agree:        true,
		CreatedAt:    s.now().UTC(),
		IPAddress:    strings.TrimSpace(form.ClientIP),
		Status:       model.StatusNew,
	}
	if err := s.repo.Insert(ctx, sub); err != nil {
		return nil, apperr.Persistence("insert submission", err)
	}
	slog.InfoContext(ctx, "contact submission saved", "submission_id", sub.ID)

	s.notify(ctx, sub)
	return sub, nil
}

// notify sends both e-mails concurrently and waits for them. The request
// context is detached so a client disconnect does not abort delivery.
func (s *submissionServiceImpl) notify(ctx context.Context, sub *model.ContactSubmission) {
	if s.notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	sends := []struct {
		kind string
		fn   func(context.Context, *model.ContactSubmission) error
	}{
		{"admin", s.notifier.NotifyAdmin},
		{"client", s.notifier.ConfirmClient},
	}
	results := make([]bool, len(sends))

	var wg sync.WaitGroup
	for i, send := range sends {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := send.fn(ctx, sub); err != nil {
				slog.ErrorContext(ctx, "notification e-mail failed",
					"kind", send.kind,
					"submission_id", sub.ID,
					"error", err,
				)
				return
			}
			results[i] = true
		}()
	}
	wg.Wait()

	slog.InfoContext(ctx, "notification e-mails processed",
		"submission_id", sub.ID,
		"admin_sent", results[0],
		"client_sent", results[1],
	)
}

func (s *submissionServiceImpl) List(ctx context.Context, status string, skip, limit int) (*model.SubmissionPage, error) {
	skip, limit = clampPage(skip, limit)

	var filter model.SubmissionFilter
	if st := model.SubmissionStatus(strings.TrimSpace(status)); st.Valid() {
		filter.Status = st
	}

	items, err := s.repo.List(ctx, filter, skip, limit)
	if err != nil {
		return nil, apperr.Persistence("list submissions", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, apperr.Persistence("count submissions", err)
	}
	if items == nil {
		items = []*model.ContactSubmission{}
	}
	return &model.SubmissionPage{
		Submissions: items,
		Total:       total,
		Skip:        skip,
		Limit:       limit,
		HasMore:     int64(skip+len(items)) < total,
	}, nil
}

func (s *submissionServiceImpl) UpdateStatus(ctx context.Context, id, status string) error {
	st := model.SubmissionStatus(status)
	if !st.Valid() {
		return apperr.Validation("status", "Некорректный статус. Допустимые значения: new, processed, replied")
	}
	if err := s.repo.UpdateStatus(ctx, id, st, s.now().UTC()); err != nil {
		return apperr.Persistence("update submission status", err)
	}
	logging.SecurityEvent(ctx, "SUBMISSION_STATUS_UPDATED",
		"submission "+id+" status changed to "+status, "")
	return nil
}
