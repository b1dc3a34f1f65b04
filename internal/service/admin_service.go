package service

import (
	"context"
	"time"

	"github.com/silis/backend/internal/apperr"
	"github.com/silis/backend/internal/model"
	"github.com/silis/backend/internal/repository"
	"github.com/silis/backend/internal/security"
)

// RecentWindow is how far back AdminStats.RecentSubmissions looks.
const RecentWindow = 7 * 24 * time.Hour

// AdminService backs the admin dashboard views.
type AdminService interface {
	Stats(ctx context.Context) (*model.AdminStats, error)
	// Submissions is SubmissionService.List with every text field of the
	// returned records sanitized again before display.
	Submissions(ctx context.Context, status string, skip, limit int) (*model.SubmissionPage, error)
	// News lists articles regardless of publication unless filter says otherwise.
	News(ctx context.Context, filter model.NewsFilter, skip, limit int) (*model.NewsPage, error)
}

type adminService struct {
	submissionRepo repository.SubmissionRepository
	newsRepo       repository.NewsRepository
	submissions    SubmissionService
	news           NewsService
	now            func() time.Time
}

// NewAdminService creates an AdminService.
func NewAdminService(
	submissionRepo repository.SubmissionRepository,
	newsRepo repository.NewsRepository,
	submissions SubmissionService,
	news NewsService,
) AdminService {
	return &adminService{
		submissionRepo: submissionRepo,
		newsRepo:       newsRepo,
		submissions:    submissions,
		news:           news,
		now:            time.Now,
	}
}

func (s *adminService) Stats(ctx context.Context) (*model.AdminStats, error) {
	published := true
	var stats model.AdminStats
	var err error

	if stats.TotalNews, err = s.newsRepo.Count(ctx, model.NewsFilter{}); err != nil {
		return nil, apperr.Persistence("count news", err)
	}
	if stats.PublishedNews, err = s.newsRepo.Count(ctx, model.NewsFilter{Published: &published}); err != nil {
		return nil, apperr.Persistence("count published news", err)
	}
	if stats.TotalContactSubmissions, err = s.submissionRepo.Count(ctx, model.SubmissionFilter{}); err != nil {
		return nil, apperr.Persistence("count submissions", err)
	}
	since := s.now().UTC().Add(-RecentWindow)
	if stats.RecentSubmissions, err = s.submissionRepo.Count(ctx, model.SubmissionFilter{CreatedSince: since}); err != nil {
		return nil, apperr.Persistence("count recent submissions", err)
	}
	return &stats, nil
}

func (s *adminService) Submissions(ctx context.Context, status string, skip, limit int) (*model.SubmissionPage, error) {
	page, err := s.submissions.List(ctx, status, skip, limit)
	if err != nil {
		return nil, err
	}
	for _, sub := range page.Submissions {
		sanitizeSubmission(sub)
	}
	return page, nil
}

func (s *adminService) News(ctx context.Context, filter model.NewsFilter, skip, limit int) (*model.NewsPage, error) {
	return s.news.List(ctx, filter, skip, limit)
}

func sanitizeSubmission(sub *model.ContactSubmission) {
	clean := func(v string) string { return security.SanitizeText(v, security.DefaultMaxLength) }
	sub.Name = clean(sub.Name)
	sub.Phone = clean(sub.Phone)
	sub.Email = clean(sub.Email)
	sub.Organization = clean(sub.Organization)
	sub.Comment = security.SanitizeText(sub.Comment, security.MaxCommentLength)
	sub.IPAddress = clean(sub.IPAddress)
}
