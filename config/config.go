package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"solar-quote-backend/pkg/validation"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	ProviderPostmark = "postmark"
	ProviderSMTP     = "smtp"
)

type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	GinMode   string `env:"GIN_MODE"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`

	// Email provider selection. postmark talks to the HTTP API, smtp uses a relay.
	EmailProvider string `env:"EMAIL_PROVIDER" envDefault:"postmark" validate:"oneof=postmark smtp"`
	EmailAPIKey   string `env:"EMAIL_SERVICE_API_KEY" validate:"required_if=EmailProvider postmark"`
	SMTPHost      string `env:"SMTP_HOST" validate:"required_if=EmailProvider smtp"`
	SMTPPort      int    `env:"SMTP_PORT" envDefault:"587" validate:"required_if=EmailProvider smtp"`
	SMTPUser      string `env:"SMTP_USER" validate:"required_if=EmailProvider smtp"`
	SMTPPass      string `env:"SMTP_PASS" validate:"required_if=EmailProvider smtp"`
	SMTPSecure    bool   `env:"SMTP_SECURE"`

	// Addresses
	BusinessEmail string `env:"BUSINESS_EMAIL" validate:"required,email"`
	FromEmail     string `env:"FROM_EMAIL" validate:"required,email"`
	ReplyToEmail  string `env:"REPLY_TO_EMAIL" validate:"omitempty,email"`

	// Business details shown in outbound mail
	BusinessName      string `env:"BUSINESS_NAME" envDefault:"The Energy Planet Australia"`
	BusinessShortName string `env:"BUSINESS_SHORT_NAME" envDefault:"The Energy Planet"`
	BusinessPhone     string `env:"BUSINESS_PHONE" envDefault:"+61 433 866 320"`
	BusinessAddress   string `env:"BUSINESS_ADDRESS" envDefault:"23 Birmingham Street, Spotswood, Victoria 3015"`
	BusinessTimezone  string `env:"BUSINESS_TIMEZONE" envDefault:"Australia/Melbourne" validate:"timezone"`
	PhoneRegion       string `env:"PHONE_REGION" envDefault:"AU" validate:"len=2"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Redis/Upstash, optional. Rate limiting falls back to memory without it.
	RedisURL      string `env:"REDIS_URL"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	QuoteRateLimit         int `env:"QUOTE_RATE_LIMIT" envDefault:"5" validate:"gt=0"`
	QuoteRateWindowSeconds int `env:"QUOTE_RATE_WINDOW_SECONDS" envDefault:"60" validate:"gt=0"`

	// Operator diagnostics are only mounted when a signing secret is set.
	DiagnosticsJWTSecret string `env:"DIAGNOSTICS_JWT_SECRET"`
}

// ConfigError lists every environment variable that is missing or malformed.
type ConfigError struct {
	Missing []string
	Invalid []string
}

func (e *ConfigError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "Missing required environment variables: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "Invalid environment variables: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; absence is fine
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.AllowedOrigins = trimOrigins(cfg.AllowedOrigins)

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.DiagnosticsJWTSecret == "" {
		log.Println("WARNING: DIAGNOSTICS_JWT_SECRET not configured. Diagnostic endpoints are disabled.")
	}

	return &cfg, nil
}

// Validate checks the email configuration and returns a *ConfigError naming
// every variable that needs attention.
func (c *Config) Validate() error {
	v := validation.New()
	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	cfgErr := &ConfigError{}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "required_if":
			cfgErr.Missing = append(cfgErr.Missing, fe.Field())
		default:
			cfgErr.Invalid = append(cfgErr.Invalid, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
	}
	return cfgErr
}

// Location resolves the business time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ReplyTo is the address customers reach when replying to a confirmation.
func (c *Config) ReplyTo() string {
	if c.ReplyToEmail != "" {
		return c.ReplyToEmail
	}
	return c.BusinessEmail
}

func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.QuoteRateWindowSeconds) * time.Second
}

func trimOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		// Strip trailing slash so "https://site.com/" matches the Origin header
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
