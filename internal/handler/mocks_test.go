package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/silis/backend/internal/model"
)

// ---------------------------------------------------------------------------
// Mock services
// ---------------------------------------------------------------------------

type mockSubmissionService struct {
	submitFunc       func(ctx context.Context, form model.SubmissionForm) (*model.ContactSubmission, error)
	listFunc         func(ctx context.Context, status string, skip, limit int) (*model.SubmissionPage, error)
	updateStatusFunc func(ctx context.Context, id, status string) error
}

func (m *mockSubmissionService) Submit(ctx context.Context, form model.SubmissionForm) (*model.ContactSubmission, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, form)
	}
	return &model.ContactSubmission{ID: "sub-1"}, nil
}

func (m *mockSubmissionService) List(ctx context.Context, status string, skip, limit int) (*model.SubmissionPage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, status, skip, limit)
	}
	return &model.SubmissionPage{Submissions: []*model.ContactSubmission{}}, nil
}

func (m *mockSubmissionService) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

type mockNewsService struct {
	createFunc func(ctx context.Context, in model.NewsInput) (*model.NewsArticle, error)
	getFunc    func(ctx context.Context, id string) (*model.NewsArticle, error)
	listFunc   func(ctx context.Context, filter model.NewsFilter, skip, limit int) (*model.NewsPage, error)
	updateFunc func(ctx context.Context, id string, upd model.NewsUpdate) (*model.NewsArticle, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockNewsService) Create(ctx context.Context, in model.NewsInput) (*model.NewsArticle, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return &model.NewsArticle{ID: "news-1"}, nil
}

func (m *mockNewsService) Get(ctx context.Context, id string) (*model.NewsArticle, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.NewsArticle{ID: id}, nil
}

func (m *mockNewsService) List(ctx context.Context, filter model.NewsFilter, skip, limit int) (*model.NewsPage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter, skip, limit)
	}
	return &model.NewsPage{News: []*model.NewsArticle{}}, nil
}

func (m *mockNewsService) Update(ctx context.Context, id string, upd model.NewsUpdate) (*model.NewsArticle, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, upd)
	}
	return &model.NewsArticle{ID: id}, nil
}

func (m *mockNewsService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockContentService struct {
	getFunc       func(ctx context.Context) model.SiteContent
	adminViewFunc func(ctx context.Context) (model.SiteContent, model.ContentMeta, error)
	updateFunc    func(ctx context.Context, upd model.ContentUpdate) (*model.ContentUpdateResult, error)
	resetFunc     func(ctx context.Context) (model.SiteContent, error)
}

func (m *mockContentService) Get(ctx context.Context) model.SiteContent {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return model.DefaultSiteContent()
}

func (m *mockContentService) AdminView(ctx context.Context) (model.SiteContent, model.ContentMeta, error) {
	if m.adminViewFunc != nil {
		return m.adminViewFunc(ctx)
	}
	return model.DefaultSiteContent(), model.ContentMeta{IsDefault: true}, nil
}

func (m *mockContentService) Update(ctx context.Context, upd model.ContentUpdate) (*model.ContentUpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, upd)
	}
	return &model.ContentUpdateResult{Data: model.DefaultSiteContent()}, nil
}

func (m *mockContentService) Reset(ctx context.Context) (model.SiteContent, error) {
	if m.resetFunc != nil {
		return m.resetFunc(ctx)
	}
	return model.DefaultSiteContent(), nil
}

type mockAdminService struct {
	statsFunc       func(ctx context.Context) (*model.AdminStats, error)
	submissionsFunc func(ctx context.Context, status string, skip, limit int) (*model.SubmissionPage, error)
	newsFunc        func(ctx context.Context, filter model.NewsFilter, skip, limit int) (*model.NewsPage, error)
}

func (m *mockAdminService) Stats(ctx context.Context) (*model.AdminStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return &model.AdminStats{}, nil
}

func (m *mockAdminService) Submissions(ctx context.Context, status string, skip, limit int) (*model.SubmissionPage, error) {
	if m.submissionsFunc != nil {
		return m.submissionsFunc(ctx, status, skip, limit)
	}
	return &model.SubmissionPage{Submissions: []*model.ContactSubmission{}}, nil
}

func (m *mockAdminService) News(ctx context.Context, filter model.NewsFilter, skip, limit int) (*model.NewsPage, error) {
	if m.newsFunc != nil {
		return m.newsFunc(ctx, filter, skip, limit)
	}
	return &model.NewsPage{News: []*model.NewsArticle{}}, nil
}

type mockAuthenticator struct {
	authorizeFunc      func(ctx context.Context, header string) error
	loginFunc          func(ctx context.Context, password string) (string, error)
	changePasswordFunc func(ctx context.Context, current, next string) (string, error)
}

func (m *mockAuthenticator) Authorize(ctx context.Context, header string) error {
	if m.authorizeFunc != nil {
		return m.authorizeFunc(ctx, header)
	}
	return nil
}

func (m *mockAuthenticator) Login(ctx context.Context, password string) (string, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, password)
	}
	return "token", nil
}

func (m *mockAuthenticator) ChangePassword(ctx context.Context, current, next string) (string, error) {
	if m.changePasswordFunc != nil {
		return m.changePasswordFunc(ctx, current, next)
	}
	return "hash", nil
}

type mockDB struct {
	pingFunc func(ctx context.Context) error
}

func (m *mockDB) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v: %s", err, rec.Body.String())
	}
	return body
}
