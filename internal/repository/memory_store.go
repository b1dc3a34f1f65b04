package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/silis/backend/internal/model"
)

// The Memory* repositories back DATABASE_URL=memory:// and the handler
// tests. Every read and write copies records so callers never share state
// with the store.

// MemorySubmissionRepository is an in-process SubmissionRepository.
type MemorySubmissionRepository struct {
	mu          sync.RWMutex
	submissions map[string]model.ContactSubmission
}

func NewMemorySubmissionRepository() *MemorySubmissionRepository {
	return &MemorySubmissionRepository{submissions: map[string]model.ContactSubmission{}}
}

var _ SubmissionRepository = (*MemorySubmissionRepository)(nil)

func copySubmission(s model.ContactSubmission) *model.ContactSubmission {
	if s.UpdatedAt != nil {
		at := *s.UpdatedAt
		s.UpdatedAt = &at
	}
	return &s
}

func matchSubmission(s model.ContactSubmission, f model.SubmissionFilter) bool {
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if !f.CreatedSince.IsZero() && s.CreatedAt.Before(f.CreatedSince) {
		return false
	}
	return true
}

func (r *MemorySubmissionRepository) Insert(_ context.Context, s *model.ContactSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions[s.ID] = *copySubmission(*s)
	return nil
}

func (r *MemorySubmissionRepository) FindByID(_ context.Context, id string) (*model.ContactSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.submissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copySubmission(s), nil
}

func (r *MemorySubmissionRepository) List(_ context.Context, filter model.SubmissionFilter, skip, limit int) ([]*model.ContactSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]model.ContactSubmission, 0, len(r.submissions))
	for _, s := range r.submissions {
		if matchSubmission(s, filter) {
			all = append(all, s)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	start, end := pageBounds(len(all), skip, limit)
	out := make([]*model.ContactSubmission, 0, end-start)
	for _, s := range all[start:end] {
		out = append(out, copySubmission(s))
	}
	return out, nil
}

func (r *MemorySubmissionRepository) Count(_ context.Context, filter model.SubmissionFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, s := range r.submissions {
		if matchSubmission(s, filter) {
			n++
		}
	}
	return n, nil
}

func (r *MemorySubmissionRepository) UpdateStatus(_ context.Context, id string, status model.SubmissionStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.submissions[id]
	if !ok {
		return ErrNotFound
	}
	s.Status = status
	s.UpdatedAt = &at
	r.submissions[id] = s
	return nil
}

// MemoryNewsRepository is an in-process NewsRepository.
type MemoryNewsRepository struct {
	mu   sync.RWMutex
	news map[string]model.NewsArticle
}

func NewMemoryNewsRepository() *MemoryNewsRepository {
	return &MemoryNewsRepository{news: map[string]model.NewsArticle{}}
}

var _ NewsRepository = (*MemoryNewsRepository)(nil)

func copyArticle(a model.NewsArticle) *model.NewsArticle {
	if a.Author != nil {
		author := *a.Author
		a.Author = &author
	}
	return &a
}

func matchArticle(a model.NewsArticle, f model.NewsFilter) bool {
	return f.Published == nil || a.Published == *f.Published
}

func (r *MemoryNewsRepository) Insert(_ context.Context, n *model.NewsArticle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.news[n.ID] = *copyArticle(*n)
	return nil
}

func (r *MemoryNewsRepository) FindByID(_ context.Context, id string) (*model.NewsArticle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.news[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyArticle(a), nil
}

func (r *MemoryNewsRepository) List(_ context.Context, filter model.NewsFilter, skip, limit int) ([]*model.NewsArticle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]model.NewsArticle, 0, len(r.news))
	for _, a := range r.news {
		if matchArticle(a, filter) {
			all = append(all, a)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Date.Equal(all[j].Date) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].Date.After(all[j].Date)
	})

	start, end := pageBounds(len(all), skip, limit)
	out := make([]*model.NewsArticle, 0, end-start)
	for _, a := range all[start:end] {
		out = append(out, copyArticle(a))
	}
	return out, nil
}

func (r *MemoryNewsRepository) Count(_ context.Context, filter model.NewsFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, a := range r.news {
		if matchArticle(a, filter) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryNewsRepository) Update(_ context.Context, id string, changes model.NewsChanges) (*model.NewsArticle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.news[id]
	if !ok {
		return nil, ErrNotFound
	}
	changes.Apply(&a)
	r.news[id] = a
	return copyArticle(a), nil
}

func (r *MemoryNewsRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.news[id]; !ok {
		return ErrNotFound
	}
	delete(r.news, id)
	return nil
}

// MemoryContentRepository is an in-process ContentRepository.
type MemoryContentRepository struct {
	mu  sync.RWMutex
	doc *model.ContentDocument
}

func NewMemoryContentRepository() *MemoryContentRepository {
	return &MemoryContentRepository{}
}

var _ ContentRepository = (*MemoryContentRepository)(nil)

func copyContent(d *model.ContentDocument) *model.ContentDocument {
	out := *d
	out.Data = d.Data.Clone()
	return &out
}

func (r *MemoryContentRepository) Get(_ context.Context) (*model.ContentDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.doc == nil {
		return nil, ErrNotFound
	}
	return copyContent(r.doc), nil
}

func (r *MemoryContentRepository) Insert(_ context.Context, doc *model.ContentDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = copyContent(doc)
	return nil
}

func (r *MemoryContentRepository) Replace(_ context.Context, doc *model.ContentDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := copyContent(doc)
	if r.doc != nil && next.CreatedAt.IsZero() {
		next.CreatedAt = r.doc.CreatedAt
	}
	r.doc = next
	return nil
}

func (r *MemoryContentRepository) Delete(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = nil
	return nil
}

type memoryDB struct{}

func (memoryDB) Ping(context.Context) error { return nil }
