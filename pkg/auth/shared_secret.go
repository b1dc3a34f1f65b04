package auth

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/silis/backend/internal/apperr"
)

// Authenticator guards the admin surface. SharedSecret is the only
// implementation today; per-session tokens can replace it without touching
// handlers or services.
type Authenticator interface {
	// Authorize checks the raw Authorization header value.
	Authorize(ctx context.Context, header string) error
	// Login exchanges the plaintext password for a bearer token.
	Login(ctx context.Context, password string) (string, error)
	// ChangePassword verifies current and returns the hash to configure for next.
	ChangePassword(ctx context.Context, current, next string) (string, error)
}

// Mode describes how a SharedSecret was configured.
type Mode string

const (
	ModeConfigured      Mode = "configured"
	ModeInsecureDefault Mode = "insecure-default"
	ModeLocked          Mode = "locked"
)

const bearerPrefix = "Bearer "

var (
	errMissingHeader = &apperr.UnauthorizedError{Reason: "Требуется авторизация"}
	errBadFormat     = &apperr.UnauthorizedError{Reason: "Некорректный формат токена"}
	errBadPassword   = &apperr.UnauthorizedError{Reason: "Неверный пароль"}
	errLocked        = &apperr.UnauthorizedError{Reason: "Администрирование отключено: не задан ADMIN_PASSWORD_HASH"}
)

// SharedSecret compares bearer tokens against one configured password hash.
//
// With no hash configured the admin surface is locked unless insecureDefault
// is set, in which case any well-formed bearer token is accepted and Login
// accepts DefaultInsecurePassword. That mode exists for local development
// only and is announced at startup.
type SharedSecret struct {
	expectedHash string
	mode         Mode
}

// NewSharedSecret builds a SharedSecret for the configured hash.
func NewSharedSecret(expectedHash string, insecureDefault bool) *SharedSecret {
	s := &SharedSecret{expectedHash: strings.TrimSpace(expectedHash)}
	switch {
	case s.expectedHash != "":
		s.mode = ModeConfigured
	case insecureDefault:
		s.mode = ModeInsecureDefault
	default:
		s.mode = ModeLocked
	}
	return s
}

var _ Authenticator = (*SharedSecret)(nil)

// Mode reports the effective configuration.
func (s *SharedSecret) Mode() Mode { return s.mode }

// WeakHash reports whether the configured hash is EmptyPasswordHash, which
// lets anyone log in with an empty password.
func (s *SharedSecret) WeakHash() bool {
	return s.mode == ModeConfigured && strings.EqualFold(s.expectedHash, EmptyPasswordHash)
}

// Authorize accepts "Bearer <hash>" when the hash matches exactly.
func (s *SharedSecret) Authorize(_ context.Context, header string) error {
	if header == "" {
		return errMissingHeader
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return errBadFormat
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return errBadFormat
	}

	switch s.mode {
	case ModeInsecureDefault:
		return nil
	case ModeLocked:
		return errLocked
	}
	if !tokensEqual(token, s.expectedHash) {
		return errBadPassword
	}
	return nil
}

// Login returns the password hash as the bearer token.
func (s *SharedSecret) Login(ctx context.Context, password string) (string, error) {
	if err := s.verify(ctx, password); err != nil {
		return "", err
	}
	return HashPassword(password), nil
}

// ChangePassword returns the hash of next after verifying current. Storing
// the hash in ADMIN_PASSWORD_HASH is left to the operator.
func (s *SharedSecret) ChangePassword(ctx context.Context, current, next string) (string, error) {
	if utf8.RuneCountInString(next) < MinPasswordLength {
		return "", apperr.Validation("new_password", "Новый пароль должен содержать не менее %d символов", MinPasswordLength)
	}
	if err := s.verify(ctx, current); err != nil {
		return "", err
	}
	return HashPassword(next), nil
}

func (s *SharedSecret) verify(ctx context.Context, password string) error {
	expected := s.expectedHash
	switch s.mode {
	case ModeLocked:
		return errLocked
	case ModeInsecureDefault:
		slog.WarnContext(ctx, "using default admin password, set ADMIN_PASSWORD_HASH in production")
		expected = HashPassword(DefaultInsecurePassword)
	}
	if !VerifyPassword(password, expected) {
		return errBadPassword
	}
	return nil
}
