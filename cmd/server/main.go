package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/silis/backend/internal/config"
	"github.com/silis/backend/internal/handler"
	"github.com/silis/backend/internal/logging"
	"github.com/silis/backend/internal/notify"
	"github.com/silis/backend/internal/repository"
	"github.com/silis/backend/internal/service"
	"github.com/silis/backend/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx := context.Background()
	stores, err := repository.Open(ctx, cfg)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stores.Close(closeCtx); err != nil {
			slog.Error("closing storage failed", "error", err)
		}
	}()

	transport, err := notify.NewTransport(cfg.Mail)
	if err != nil {
		logging.Fatal("failed to configure mail transport", "error", err)
	}
	mailer := notify.NewMailer(transport, cfg.Mail.From, cfg.Mail.AdminTo, cfg.Mail.Timeout)

	authenticator := auth.NewSharedSecret(cfg.AdminPasswordHash, cfg.AdminInsecureDefault)
	switch authenticator.Mode() {
	case auth.ModeInsecureDefault:
		slog.Warn("ADMIN_INSECURE_DEFAULT is set: any bearer token is accepted and the default admin password works")
	case auth.ModeLocked:
		slog.Warn("ADMIN_PASSWORD_HASH is not set: admin endpoints are disabled")
	}
	if authenticator.WeakHash() {
		slog.Warn("ADMIN_PASSWORD_HASH is the hash of an empty password: set a real admin password")
	}

	submissionService := service.NewSubmissionService(stores.Submissions, mailer)
	newsService := service.NewNewsService(stores.News)
	contentService := service.NewContentService(stores.Content)
	adminService := service.NewAdminService(stores.Submissions, stores.News, submissionService, newsService)

	router := handler.NewRouter(handler.RouterConfig{
		DB:           stores.DB,
		FrontendURL:  cfg.FrontendURL,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Auth:         authenticator,
		Submissions:  submissionService,
		News:         newsService,
		Content:      contentService,
		Admin:        adminService,
	})

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server listening",
			"addr", server.Addr,
			"storage", stores.Backend,
			"mail_transport", cfg.Mail.Transport,
			"admin_mode", string(authenticator.Mode()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
