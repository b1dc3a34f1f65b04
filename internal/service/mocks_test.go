package service

import (
	"context"
	"sync"
	"time"

	"github.com/silis/backend/internal/model"
)

// ---------------------------------------------------------------------------
// mockSubmissionRepository
// ---------------------------------------------------------------------------

type mockSubmissionRepository struct {
	insertFunc       func(ctx context.Context, s *model.ContactSubmission) error
	findByIDFunc     func(ctx context.Context, id string) (*model.ContactSubmission, error)
	listFunc         func(ctx context.Context, f model.SubmissionFilter, skip, limit int) ([]*model.ContactSubmission, error)
	countFunc        func(ctx context.Context, f model.SubmissionFilter) (int64, error)
	updateStatusFunc func(ctx context.Context, id string, status model.SubmissionStatus, at time.Time) error
}

func (m *mockSubmissionRepository) Insert(ctx context.Context, s *model.ContactSubmission) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, s)
	}
	return nil
}

func (m *mockSubmissionRepository) FindByID(ctx context.Context, id string) (*model.ContactSubmission, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSubmissionRepository) List(ctx context.Context, f model.SubmissionFilter, skip, limit int) ([]*model.ContactSubmission, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, f, skip, limit)
	}
	return nil, nil
}

func (m *mockSubmissionRepository) Count(ctx context.Context, f model.SubmissionFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, f)
	}
	return 0, nil
}

func (m *mockSubmissionRepository) UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus, at time.Time) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, at)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockNewsRepository
// ---------------------------------------------------------------------------

type mockNewsRepository struct {
	insertFunc   func(ctx context.Context, n *model.NewsArticle) error
	findByIDFunc func(ctx context.Context, id string) (*model.NewsArticle, error)
	listFunc     func(ctx context.Context, f model.NewsFilter, skip, limit int) ([]*model.NewsArticle, error)
	countFunc    func(ctx context.Context, f model.NewsFilter) (int64, error)
	updateFunc   func(ctx context.Context, id string, c model.NewsChanges) (*model.NewsArticle, error)
	deleteFunc   func(ctx context.Context, id string) error
}

func (m *mockNewsRepository) Insert(ctx context.Context, n *model.NewsArticle) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, n)
	}
	return nil
}

func (m *mockNewsRepository) FindByID(ctx context.Context, id string) (*model.NewsArticle, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockNewsRepository) List(ctx context.Context, f model.NewsFilter, skip, limit int) ([]*model.NewsArticle, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, f, skip, limit)
	}
	return nil, nil
}

func (m *mockNewsRepository) Count(ctx context.Context, f model.NewsFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, f)
	}
	return 0, nil
}

func (m *mockNewsRepository) Update(ctx context.Context, id string, c model.NewsChanges) (*model.NewsArticle, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, c)
	}
	return &model.NewsArticle{ID: id}, nil
}

func (m *mockNewsRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockContentRepository
// ---------------------------------------------------------------------------

type mockContentRepository struct {
	getFunc     func(ctx context.Context) (*model.ContentDocument, error)
	insertFunc  func(ctx context.Context, doc *model.ContentDocument) error
	replaceFunc func(ctx context.Context, doc *model.ContentDocument) error
	deleteFunc  func(ctx context.Context) error
}

func (m *mockContentRepository) Get(ctx context.Context) (*model.ContentDocument, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return nil, nil
}

func (m *mockContentRepository) Insert(ctx context.Context, doc *model.ContentDocument) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, doc)
	}
	return nil
}

func (m *mockContentRepository) Replace(ctx context.Context, doc *model.ContentDocument) error {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, doc)
	}
	return nil
}

func (m *mockContentRepository) Delete(ctx context.Context) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockNotifier
// ---------------------------------------------------------------------------

type mockNotifier struct {
	mu         sync.Mutex
	adminErr   error
	clientErr  error
	adminSent  []*model.ContactSubmission
	clientSent []*model.ContactSubmission
}

func (m *mockNotifier) NotifyAdmin(_ context.Context, s *model.ContactSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adminSent = append(m.adminSent, s)
	return m.adminErr
}

func (m *mockNotifier) ConfirmClient(_ context.Context, s *model.ContactSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clientSent = append(m.clientSent, s)
	return m.clientErr
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
