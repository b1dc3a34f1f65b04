package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/silis/backend/internal/apperr"
	"github.com/silis/backend/internal/model"
	"github.com/silis/backend/internal/repository"
	"github.com/silis/backend/internal/security"
)

// NewsService manages news articles.
type NewsService interface {
	Create(ctx context.Context, in model.NewsInput) (*model.NewsArticle, error)
	Get(ctx context.Context, id string) (*model.NewsArticle, error)
	List(ctx context.Context, filter model.NewsFilter, skip, limit int) (*model.NewsPage, error)
	// Update applies only the supplied fields and always refreshes updated_at.
	Update(ctx context.Context, id string, upd model.NewsUpdate) (*model.NewsArticle, error)
	Delete(ctx context.Context, id string) error
}

type newsService struct {
	repo repository.NewsRepository
	now  func() time.Time
}

// NewNewsService creates a NewsService.
func NewNewsService(repo repository.NewsRepository) NewsService {
	return &newsService{repo: repo, now: time.Now}
}

// ParseNewsDate accepts a calendar date (2006-01-02) or an RFC 3339
// timestamp and returns UTC midnight of that date.
func ParseNewsDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if d, err := time.Parse(model.DateLayout, raw); err == nil {
		return d, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		y, m, d := ts.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, apperr.Validation("date", "Некорректная дата %q, ожидается формат ГГГГ-ММ-ДД", raw)
}

func cleanTitle(v string) (string, error) {
	return cleanText("title", v, security.MinTitleLength, security.MaxTitleLength)
}

func cleanExcerpt(v string) (string, error) {
	return cleanText("excerpt", v, security.MinExcerptLength, security.MaxExcerptLength)
}

func cleanContent(v string) (string, error) {
	return cleanText("content", v, security.MinContentLength, security.MaxContentLength)
}

func cleanAuthor(v string) (string, error) {
	return cleanText("author", v, 0, security.MaxAuthorLength)
}

func (s *newsService) Create(ctx context.Context, in model.NewsInput) (*model.NewsArticle, error) {
	title, err := cleanTitle(in.Title)
	if err != nil {
		return nil, err
	}
	excerpt, err := cleanExcerpt(in.Excerpt)
	if err != nil {
		return nil, err
	}
	content, err := cleanContent(in.Content)
	if err != nil {
		return nil, err
	}
	date, err := ParseNewsDate(in.Date)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	article := &model.NewsArticle{
		ID:        uuid.NewString(),
		Title:     title,
		Excerpt:   excerpt,
		Content:   content,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
		Published: true,
	}
	if in.Published != nil {
		article.Published = *in.Published
	}
	if in.Author != nil {
		author, err := cleanAuthor(*in.Author)
		if err != nil {
			return nil, err
		}
		if author != "" {
			article.Author = &author
		}
	}

	if err := s.repo.Insert(ctx, article); err != nil {
		return nil, apperr.Persistence("insert news", err)
	}
	return article, nil
}

func (s *newsService) Get(ctx context.Context, id string) (*model.NewsArticle, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Persistence("find news", err)
	}
	return a, nil
}

func (s *newsService) List(ctx context.Context, filter model.NewsFilter, skip, limit int) (*model.NewsPage, error) {
	skip, limit = clampPage(skip, limit)

	items, err := s.repo.List(ctx, filter, skip, limit)
	if err != nil {
		return nil, apperr.Persistence("list news", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, apperr.Persistence("count news", err)
	}
	if items == nil {
		items = []*model.NewsArticle{}
	}
	return &model.NewsPage{
		News:    items,
		Total:   total,
		Skip:    skip,
		Limit:   limit,
		HasMore: int64(skip+len(items)) < total,
	}, nil
}

// requireValue rejects an explicit null on a field that cannot be empty.
func requireValue[T any](field string, o model.Optional[T]) error {
	if o.Set && o.Null {
		return apperr.Validation(field, "поле %s не может быть null", field)
	}
	return nil
}

func (s *newsService) Update(ctx context.Context, id string, upd model.NewsUpdate) (*model.NewsArticle, error) {
	for _, err := range []error{
		requireValue("title", upd.Title),
		requireValue("excerpt", upd.Excerpt),
		requireValue("content", upd.Content),
		requireValue("date", upd.Date),
		requireValue("published", upd.Published),
	} {
		if err != nil {
			return nil, err
		}
	}

	changes := model.NewsChanges{UpdatedAt: s.now().UTC()}
	if upd.Title.Present() {
		v, err := cleanTitle(upd.Title.Value)
		if err != nil {
			return nil, err
		}
		changes.Title = &v
	}
	if upd.Excerpt.Present() {
		v, err := cleanExcerpt(upd.Excerpt.Value)
		if err != nil {
			return nil, err
		}
		changes.Excerpt = &v
	}
	if upd.Content.Present() {
		v, err := cleanContent(upd.Content.Value)
		if err != nil {
			return nil, err
		}
		changes.Content = &v
	}
	if upd.Date.Present() {
		d, err := ParseNewsDate(upd.Date.Value)
		if err != nil {
			return nil, err
		}
		changes.Date = &d
	}
	if upd.Published.Present() {
		v := upd.Published.Value
		changes.Published = &v
	}
	if upd.Author.Set {
		if upd.Author.Null {
			changes.ClearAuthor = true
		} else {
			v, err := cleanAuthor(upd.Author.Value)
			if err != nil {
				return nil, err
			}
			if v == "" {
				changes.ClearAuthor = true
			} else {
				changes.Author = &v
			}
		}
	}

	a, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, apperr.Persistence("update news", err)
	}
	return a, nil
}

func (s *newsService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Persistence("delete news", err)
	}
	return nil
}
