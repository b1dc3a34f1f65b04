package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/silis/backend/internal/apperr"
	"github.com/silis/backend/internal/model"
	"github.com/silis/backend/internal/repository"
	"github.com/silis/backend/internal/security"
)

// ContentService manages the singleton site-content document.
type ContentService interface {
	// Get returns the stored content, materializing the defaults on first
	// use. It never fails; storage errors degrade to the defaults.
	Get(ctx context.Context) model.SiteContent

	// AdminView returns the content with its timestamps. Nothing is stored
	// when the document is missing.
	AdminView(ctx context.Context) (model.SiteContent, model.ContentMeta, error)

	// Update replaces each supplied top-level key after sanitizing it.
	Update(ctx context.Context, upd model.ContentUpdate) (*model.ContentUpdateResult, error)

	// Reset discards the stored document and stores the defaults again.
	Reset(ctx context.Context) (model.SiteContent, error)
}

type contentService struct {
	repo repository.ContentRepository
	now  func() time.Time
}

// NewContentService creates a ContentService.
func NewContentService(repo repository.ContentRepository) ContentService {
	return &contentService{repo: repo, now: time.Now}
}

func (s *contentService) defaultDocument() *model.ContentDocument {
	now := s.now().UTC()
	return &model.ContentDocument{
		Type:      model.ContentType,
		Data:      model.DefaultSiteContent(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *contentService) Get(ctx context.Context) model.SiteContent {
	doc, err := s.repo.Get(ctx)
	switch {
	case err == nil:
		return doc.Data
	case errors.Is(err, repository.ErrNotFound):
		def := s.defaultDocument()
		if err := s.repo.Insert(ctx, def); err != nil {
			slog.WarnContext(ctx, "storing default site content failed", "error", err)
		}
		return def.Data
	default:
		slog.WarnContext(ctx, "reading site content failed, serving defaults", "error", err)
		return model.DefaultSiteContent()
	}
}

func (s *contentService) AdminView(ctx context.Context) (model.SiteContent, model.ContentMeta, error) {
	doc, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return model.DefaultSiteContent(), model.ContentMeta{IsDefault: true}, nil
	}
	if err != nil {
		return model.SiteContent{}, model.ContentMeta{}, apperr.Persistence("get site content", err)
	}
	created, updated := doc.CreatedAt, doc.UpdatedAt
	return doc.Data, model.ContentMeta{CreatedAt: &created, UpdatedAt: &updated}, nil
}

func (s *contentService) Update(ctx context.Context, upd model.ContentUpdate) (*model.ContentUpdateResult, error) {
	if upd.Contacts.Set && upd.Contacts.Null {
		return nil, apperr.Validation(model.ContentKeyContacts, "поле contacts не может быть null")
	}
	if upd.Packages.Set && upd.Packages.Null {
		return nil, apperr.Validation(model.ContentKeyPackages, "поле packages не может быть null")
	}
	if !upd.Contacts.Present() && !upd.Packages.Present() {
		return nil, apperr.Validation("", "Нет данных для обновления")
	}

	doc, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		doc, err = s.defaultDocument(), nil
	}
	if err != nil {
		return nil, apperr.Persistence("get site content", err)
	}

	var fields []string
	if upd.Contacts.Present() {
		contacts, err := security.SanitizeJSON(upd.Contacts.Value)
		if err != nil {
			return nil, apperr.Validation(model.ContentKeyContacts, "некорректные контакты")
		}
		doc.Data.Contacts = contacts
		fields = append(fields, model.ContentKeyContacts)
	}
	if upd.Packages.Present() {
		packages, err := security.SanitizeJSON(upd.Packages.Value)
		if err != nil {
			return nil, apperr.Validation(model.ContentKeyPackages, "некорректные пакеты")
		}
		for i := range packages.B2B {
			packages.B2B[i].FreeLesson = nil
		}
		doc.Data.Packages = packages
		fields = append(fields, model.ContentKeyPackages)
	}

	doc.Type = model.ContentType
	doc.UpdatedAt = s.now().UTC()
	if err := s.repo.Replace(ctx, doc); err != nil {
		return nil, apperr.Persistence("replace site content", err)
	}
	slog.InfoContext(ctx, "site content updated", "fields", fields)
	return &model.ContentUpdateResult{Data: doc.Data, UpdatedFields: fields}, nil
}

func (s *contentService) Reset(ctx context.Context) (model.SiteContent, error) {
	if err := s.repo.Delete(ctx); err != nil {
		return model.SiteContent{}, apperr.Persistence("delete site content", err)
	}
	def := s.defaultDocument()
	if err := s.repo.Insert(ctx, def); err != nil {
		return model.SiteContent{}, apperr.Persistence("insert site content", err)
	}
	slog.InfoContext(ctx, "site content reset to defaults")
	return def.Data, nil
}
