package handler

import (
	"net/http"

	"github.com/silis/backend/internal/repository"
	"github.com/silis/backend/internal/service"
	"github.com/silis/backend/pkg/auth"
)

// RouterConfig carries everything NewRouter wires into the mux.
type RouterConfig struct {
	DB           repository.DB
	FrontendURL  string
	MaxBodyBytes int64
	Auth         auth.Authenticator

	Submissions service.SubmissionService
	News        service.NewsService
	Content     service.ContentService
	Admin       service.AdminService
}

// NewRouter builds the /api mux wrapped in the standard middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	h := New(cfg.DB, cfg.FrontendURL)
	submissionHandler := NewSubmissionHandler(cfg.Submissions)
	newsHandler := NewNewsHandler(cfg.News)
	contentHandler := NewContentHandler(cfg.Content)
	adminHandler := NewAdminHandler(cfg.Auth, cfg.Admin, cfg.Submissions)

	requireAdmin := auth.RequireAdmin(cfg.Auth)
	wrapAdmin := func(fn http.HandlerFunc) http.Handler { return requireAdmin(fn) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/{$}", h.Root)
	mux.HandleFunc("GET /api/health", h.Health)

	mux.HandleFunc("POST /api/contact-form", submissionHandler.Submit)
	mux.HandleFunc("GET /api/contact-submissions", submissionHandler.List)
	mux.HandleFunc("PUT /api/contact-submissions/{id}/status", submissionHandler.UpdateStatus)

	mux.HandleFunc("GET /api/news", newsHandler.List)
	mux.HandleFunc("POST /api/news", newsHandler.Create)
	mux.HandleFunc("GET /api/news/{id}", newsHandler.Get)
	mux.HandleFunc("PUT /api/news/{id}", newsHandler.Update)
	mux.HandleFunc("DELETE /api/news/{id}", newsHandler.Delete)

	mux.HandleFunc("GET /api/content", contentHandler.Get)

	mux.HandleFunc("POST /api/admin/login", adminHandler.Login)
	mux.Handle("POST /api/admin/change-password", wrapAdmin(adminHandler.ChangePassword))
	mux.Handle("GET /api/admin/stats", wrapAdmin(adminHandler.Stats))
	mux.Handle("GET /api/admin/submissions", wrapAdmin(adminHandler.Submissions))
	mux.Handle("PUT /api/admin/submissions/{id}/status", wrapAdmin(adminHandler.UpdateSubmissionStatus))
	mux.Handle("GET /api/admin/news", wrapAdmin(adminHandler.News))

	mux.Handle("GET /api/admin/content", wrapAdmin(contentHandler.AdminGet))
	mux.Handle("PUT /api/admin/content", wrapAdmin(contentHandler.Update))
	mux.Handle("POST /api/admin/content", wrapAdmin(contentHandler.Update))
	mux.Handle("POST /api/admin/content/reset", wrapAdmin(contentHandler.Reset))
	mux.Handle("PUT /api/admin/contacts", wrapAdmin(contentHandler.UpdateContacts))
	mux.Handle("PUT /api/admin/packages", wrapAdmin(contentHandler.UpdatePackages))

	return RequestLogger(SecurityHeaders(h.CORS(BodyLimit(cfg.MaxBodyBytes)(mux))))
}
