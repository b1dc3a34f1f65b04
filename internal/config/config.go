// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends selected by the DATABASE_URL scheme.
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Mail transports.
const (
	TransportSMTP = "smtp"
	TransportHTTP = "http"
	TransportLog  = "log"
)

// Config is the full runtime configuration.
type Config struct {
	ListenAddr  string
	FrontendURL string
	LogLevel    string

	DatabaseURL string
	DBName      string
	DBTimeout   time.Duration

	AdminPasswordHash    string
	AdminInsecureDefault bool

	MaxBodyBytes int64

	Mail MailConfig
}

// MailConfig configures the notifier.
type MailConfig struct {
	Transport    string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	APIURL       string
	APIKey       string
	From         string
	AdminTo      string
	Timeout      time.Duration
}

// Load reads .env (if present) and the environment, applies defaults and
// validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	var errs []error
	duration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(get(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return d
	}
	integer := func(key, def string) int64 {
		n, err := strconv.ParseInt(get(key, def), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return n
	}

	cfg := &Config{
		ListenAddr:           get("LISTEN_ADDR", ":8080"),
		FrontendURL:          get("FRONTEND_URL", "*"),
		LogLevel:             get("LOG_LEVEL", "INFO"),
		DatabaseURL:          get("DATABASE_URL", "mongodb://localhost:27017"),
		DBName:               get("DB_NAME", "silis"),
		DBTimeout:            duration("DB_TIMEOUT", "5s"),
		AdminPasswordHash:    strings.ToLower(get("ADMIN_PASSWORD_HASH", "")),
		AdminInsecureDefault: get("ADMIN_INSECURE_DEFAULT", "false") == "true",
		MaxBodyBytes:         integer("MAX_BODY_BYTES", "10485760"),
		Mail: MailConfig{
			SMTPHost:     get("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:     int(integer("SMTP_PORT", "587")),
			SMTPUser:     get("SMTP_USER", ""),
			SMTPPassword: get("SMTP_PASSWORD", ""),
			APIURL:       get("MAIL_API_URL", ""),
			APIKey:       get("MAIL_API_KEY", ""),
			From:         get("EMAIL_FROM", "silisykt@mail.ru"),
			AdminTo:      get("EMAIL_TO", "silisykt@mail.ru"),
			Timeout:      duration("MAIL_TIMEOUT", "10s"),
		},
	}

	// SMTP is only meaningful with credentials; otherwise messages are logged.
	defTransport := TransportLog
	if cfg.Mail.SMTPUser != "" && cfg.Mail.SMTPPassword != "" {
		defTransport = TransportSMTP
	}
	cfg.Mail.Transport = strings.ToLower(get("MAIL_TRANSPORT", defTransport))

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Backend returns the storage backend implied by DatabaseURL.
func (c *Config) Backend() (string, error) {
	u, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return "", fmt.Errorf("DATABASE_URL: %w", err)
	}
	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	case "postgres", "postgresql":
		return BackendPostgres, nil
	case "memory":
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("DATABASE_URL: unsupported scheme %q", u.Scheme)
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Backend(); err != nil {
		errs = append(errs, err)
	}
	if c.DBTimeout <= 0 {
		errs = append(errs, errors.New("DB_TIMEOUT must be positive"))
	}
	if c.Mail.Timeout <= 0 {
		errs = append(errs, errors.New("MAIL_TIMEOUT must be positive"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if h := c.AdminPasswordHash; h != "" {
		if b, err := hex.DecodeString(h); err != nil || len(b) != 32 {
			errs = append(errs, errors.New("ADMIN_PASSWORD_HASH must be a 64-character SHA-256 hex digest"))
		}
	}
	switch c.Mail.Transport {
	case TransportSMTP, TransportLog:
	case TransportHTTP:
		if c.Mail.APIURL == "" {
			errs = append(errs, errors.New("MAIL_TRANSPORT=http requires MAIL_API_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("MAIL_TRANSPORT: unsupported transport %q", c.Mail.Transport))
	}
	return errors.Join(errs...)
}
