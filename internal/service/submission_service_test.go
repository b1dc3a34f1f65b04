package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/silis/backend/internal/apperr"
	"github.com/silis/backend/internal/model"
	"github.com/silis/backend/internal/notify"
	"github.com/silis/backend/internal/repository"
)

var testNow = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func validForm() model.SubmissionForm {
	return model.SubmissionForm{
		Name:     "Ann",
		Phone:    "89142870753",
		Email:    "a@b.com",
		Agree:    true,
		ClientIP: "203.0.113.9",
	}
}

func newTestSubmissionService(repo *mockSubmissionRepository, n *mockNotifier) *submissionServiceImpl {
	var notifier notify.Notifier
	if n != nil {
		notifier = n
	}
	return &submissionServiceImpl{repo: repo, notifier: notifier, now: fixedClock(testNow)}
}

// ---------------------------------------------------------------------------
// Submit
// ---------------------------------------------------------------------------

func TestSubmissionService_Submit_StoresNewSubmission(t *testing.T) {
	var saved *model.ContactSubmission
	repo := &mockSubmissionRepository{
		insertFunc: func(ctx context.Context, s *model.ContactSubmission) error {
			saved = s
			return nil
		},
	}
	n := &mockNotifier{}
	svc := newTestSubmissionService(repo, n)

	form := validForm()
	form.Email = "  Ann@Example.COM "
	form.Comment = "<b>Хочу курс</b>"
	sub, err := svc.Submit(context.Background(), form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil {
		t.Fatal("expected Insert to be called")
	}
	if sub.ID == "" || sub.ID != saved.ID {
		t.Errorf("expected generated id, got %q", sub.ID)
	}
	if saved.Status != model.StatusNew {
		t.Errorf("expected status=new, got %q", saved.Status)
	}
	if saved.Email != "ann@example.com" {
		t.Errorf("expected lower-cased email, got %q", saved.Email)
	}
	if saved.Comment != "bХочу курс/b" {
		t.Errorf("expected sanitized comment, got %q", saved.Comment)
	}
	if !saved.CreatedAt.Equal(testNow) {
		t.Errorf("expected created_at %v, got %v", testNow, saved.CreatedAt)
	}
	if saved.IPAddress != "203.0.113.9" {
		t.Errorf("expected client ip, got %q", saved.IPAddress)
	}
	if len(n.adminSent) != 1 || len(n.clientSent) != 1 {
		t.Errorf("expected both e-mails, got admin=%d client=%d", len(n.adminSent), len(n.clientSent))
	}
}

func TestSubmissionService_Submit_ValidationFailsBeforeInsert(t *testing.T) {
	cases := map[string]func(f *model.SubmissionForm){
		"no consent":    func(f *model.SubmissionForm) { f.Agree = false },
		"bad email":     func(f *model.SubmissionForm) { f.Email = "not-an-email" },
		"short phone":   func(f *model.SubmissionForm) { f.Phone = "12345" },
		"short name":    func(f *model.SubmissionForm) { f.Name = "A" },
		"long name":     func(f *model.SubmissionForm) { f.Name = strings.Repeat("я", 101) },
		"long comment":  func(f *model.SubmissionForm) { f.Comment = fmt.Sprintf("%2001s", "x") },
		"markup name":   func(f *model.SubmissionForm) { f.Name = "<<>>" },
		"long org name": func(f *model.SubmissionForm) { f.Organization = fmt.Sprintf("%201s", "x") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &mockSubmissionRepository{
				insertFunc: func(ctx context.Context, s *model.ContactSubmission) error {
					t.Error("Insert should not be called")
					return nil
				},
			}
			n := &mockNotifier{}
			svc := newTestSubmissionService(repo, n)

			form := validForm()
			mutate(&form)
			_, err := svc.Submit(context.Background(), form)

			var ve *apperr.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(n.adminSent)+len(n.clientSent) != 0 {
				t.Error("no e-mail should be sent")
			}
		})
	}
}

func TestSubmissionService_Submit_NoConsentProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("agree=false is always rejected and never stored", prop.ForAll(
		func(name, phone, email, comment string) bool {
			inserted := false
			repo := &mockSubmissionRepository{
				insertFunc: func(ctx context.Context, s *model.ContactSubmission) error {
					inserted = true
					return nil
				},
			}
			svc := newTestSubmissionService(repo, nil)
			_, err := svc.Submit(context.Background(), model.SubmissionForm{
				Name: name, Phone: phone, Email: email, Comment: comment, Agree: false,
			})
			var ve *apperr.ValidationError
			return errors.As(err, &ve) && !inserted
		},
		gen.AnyString(),
		gen.NumString(),
		gen.AlphaString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestSubmissionService_Submit_InsertErrorIsPersistenceError(t *testing.T) {
	repo := &mockSubmissionRepository{
		insertFunc: func(ctx context.Context, s *model.ContactSubmission) error {
			return errors.New("connection reset")
		},
	}
	n := &mockNotifier{}
	svc := newTestSubmissionService(repo, n)

	_, err := svc.Submit(context.Background(), validForm())
	var pe *apperr.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if len(n.adminSent) != 0 {
		t.Error("e-mails must not be sent when the insert fails")
	}
}

func TestSubmissionService_Submit_EmailFailureIsNotFatal(t *testing.T) {
	inserts := 0
	repo := &mockSubmissionRepository{
		insertFunc: func(ctx context.Context, s *model.ContactSubmission) error {
			inserts++
			return nil
		},
	}
	n := &mockNotifier{adminErr: errors.New("smtp down"), clientErr: errors.New("smtp down")}
	svc := newTestSubmissionService(repo, n)

	sub, err := svc.Submit(context.Background(), validForm())
	if err != nil {
		t.Fatalf("e-mail failure must not fail the submission: %v", err)
	}
	if sub.ID == "" {
		t.Error("expected an id")
	}
	if inserts != 1 {
		t.Errorf("expected exactly one insert, got %d", inserts)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestSubmissionService_List_ClampsAndFilters(t *testing.T) {
	var gotSkip, gotLimit int
	var gotFilter model.SubmissionFilter
	repo := &mockSubmissionRepository{
		listFunc: func(ctx context.Context, f model.SubmissionFilter, skip, limit int) ([]*model.ContactSubmission, error) {
			gotFilter, gotSkip, gotLimit = f, skip, limit
			return []*model.ContactSubmission{{ID: "a"}, {ID: "b"}}, nil
		},
		countFunc: func(ctx context.Context, f model.SubmissionFilter) (int64, error) {
			return 5, nil
		},
	}
	svc := newTestSubmissionService(repo, nil)

	page, err := svc.List(context.Background(), "processed", -3, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSkip != 0 || gotLimit != MaxPageLimit {
		t.Errorf("expected skip=0 limit=100, got skip=%d limit=%d", gotSkip, gotLimit)
	}
	if gotFilter.Status != model.StatusProcessed {
		t.Errorf("expected processed filter, got %q", gotFilter.Status)
	}
	if !page.HasMore || page.Total != 5 || len(page.Submissions) != 2 {
		t.Errorf("unexpected page: %+v", page)
	}

	_, err = svc.List(context.Background(), "deleted", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotFilter.Status != "" {
		t.Errorf("unknown status must be ignored, got %q", gotFilter.Status)
	}
	if gotLimit != MinPageLimit {
		t.Errorf("expected limit clamped to 1, got %d", gotLimit)
	}
}

func TestSubmissionService_List_HasMoreProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("has_more == skip+returned < total and returned <= limit", prop.ForAll(
		func(total, skip, limit int) bool {
			stored := repository.NewMemorySubmissionRepository()
			for i := 0; i < total; i++ {
				_ = stored.Insert(context.Background(), &model.ContactSubmission{
					ID:        fmt.Sprintf("s-%d", i),
					CreatedAt: testNow.Add(time.Duration(i) * time.Minute),
					Status:    model.StatusNew,
				})
			}
			svc := &submissionServiceImpl{repo: stored, now: fixedClock(testNow)}
			page, err := svc.List(context.Background(), "", skip, limit)
			if err != nil {
				return false
			}
			returned := len(page.Submissions)
			return page.HasMore == (int64(page.Skip+returned) < page.Total) &&
				returned <= page.Limit &&
				page.Limit >= MinPageLimit && page.Limit <= MaxPageLimit
		},
		gen.IntRange(0, 25),
		gen.IntRange(-5, 30),
		gen.IntRange(-5, 150),
	))

	properties.TestingRun(t)
}

// ---------------------------------------------------------------------------
// UpdateStatus
// ---------------------------------------------------------------------------

func TestSubmissionService_UpdateStatus(t *testing.T) {
	var gotStatus model.SubmissionStatus
	var gotAt time.Time
	repo := &mockSubmissionRepository{
		updateStatusFunc: func(ctx context.Context, id string, status model.SubmissionStatus, at time.Time) error {
			if id != "sub-1" {
				return repository.ErrNotFound
			}
			gotStatus, gotAt = status, at
			return nil
		},
	}
	svc := newTestSubmissionService(repo, nil)

	if err := svc.UpdateStatus(context.Background(), "sub-1", "replied"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus != model.StatusReplied || !gotAt.Equal(testNow) {
		t.Errorf("unexpected update: %q at %v", gotStatus, gotAt)
	}

	err := svc.UpdateStatus(context.Background(), "sub-1", "archived")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}

	err = svc.UpdateStatus(context.Background(), "missing", "new")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
