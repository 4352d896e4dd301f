package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Profile store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config errors
var (
	ErrUnknownDriver    = errors.New("profile store must be sqlite or postgres")
	ErrMissingDSN       = errors.New("postgres profile store needs a DSN")
	ErrUnknownLogFormat = errors.New("log format must be text or json")
	ErrWeakSigningKey   = errors.New("production needs a signing key of at least 32 bytes")
	ErrNonPositive      = errors.New("durations must be greater than zero")
)

// devSigningKey signs session tokens outside production.
const devSigningKey = "heavygym-development-signing-key"

// Config holds runtime settings for the client.
type Config struct {
	Env string

	SQLitePath   string
	ProfileStore string // DriverSQLite or DriverPostgres
	PostgresDSN  string
	SlowQueryMs  int

	JWTSigningKey string
	SessionTTL    time.Duration
	CallTimeout   time.Duration

	// Resolver requires a stored training profile in addition to the flag.
	RequireTrainingProfile bool

	WebhookURL   string
	ResendAPIKey string
	EmailFrom    string
	CoachEmail   string

	LogFormat string
	LogLevel  string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.Env = "development"
	c.SQLitePath = "heavygym.db"
	c.ProfileStore = DriverSQLite
	c.SlowQueryMs = 50
	c.JWTSigningKey = devSigningKey
	c.SessionTTL = 7 * 24 * time.Hour
	c.CallTimeout = 10 * time.Second
	c.EmailFrom = "Heavy Gym <noreply@heavygym.se>"
	c.LogFormat = LogFormatText
	c.LogLevel = "info"
}

// IsProduction reports whether Env is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks the combined settings.
// PRE: Config is loaded
// POST: Returns nil if the client can start with these settings
func (c *Config) Validate() error {
	switch c.ProfileStore {
	case DriverSQLite:
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.ProfileStore)
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("%w: %q", ErrUnknownLogFormat, c.LogFormat)
	}
	if c.SessionTTL <= 0 || c.CallTimeout <= 0 {
		return ErrNonPositive
	}
	if c.IsProduction() && (c.JWTSigningKey == devSigningKey || len(c.JWTSigningKey) < 32) {
		return ErrWeakSigningKey
	}
	return nil
}

// Load builds a Config from defaults, the optional JSON file and the
// environment. args excludes the program name.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	fs := flag.NewFlagSet("heavygym", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var path string
	fs.StringVar(&path, "c", "", "path to JSON config file")
	fs.StringVar(&path, "config", "", "path to JSON config file")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	if path == "" {
		path = getenv("HEAVYGYM_CONFIG")
	}
	if path != "" {
		if err := loadJSON(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg, getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromOS is Load over os.Args and os.Getenv.
func LoadFromOS() (*Config, error) {
	return Load(os.Args[1:], os.Getenv)
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	cfg.Env = envOrDefault(getenv, "HEAVYGYM_ENV", cfg.Env)
	cfg.SQLitePath = envOrDefault(getenv, "HEAVYGYM_SQLITE_PATH", cfg.SQLitePath)
	cfg.ProfileStore = envOrDefault(getenv, "HEAVYGYM_PROFILE_STORE", cfg.ProfileStore)
	cfg.PostgresDSN = envOrDefault(getenv, "HEAVYGYM_POSTGRES_DSN", cfg.PostgresDSN)
	cfg.JWTSigningKey = envOrDefault(getenv, "HEAVYGYM_JWT_KEY", cfg.JWTSigningKey)
	cfg.WebhookURL = envOrDefault(getenv, "HEAVYGYM_WEBHOOK_URL", cfg.WebhookURL)
	cfg.ResendAPIKey = envOrDefault(getenv, "HEAVYGYM_RESEND_KEY", cfg.ResendAPIKey)
	cfg.EmailFrom = envOrDefault(getenv, "HEAVYGYM_RESEND_FROM", cfg.EmailFrom)
	cfg.CoachEmail = envOrDefault(getenv, "HEAVYGYM_COACH_EMAIL", cfg.CoachEmail)
	cfg.LogFormat = envOrDefault(getenv, "HEAVYGYM_LOG_FORMAT", cfg.LogFormat)
	cfg.LogLevel = envOrDefault(getenv, "HEAVYGYM_LOG_LEVEL", cfg.LogLevel)

	var err error
	if cfg.SessionTTL, err = envDuration(getenv, "HEAVYGYM_SESSION_TTL", cfg.SessionTTL); err != nil {
		return err
	}
	if cfg.CallTimeout, err = envDuration(getenv, "HEAVYGYM_CALL_TIMEOUT", cfg.CallTimeout); err != nil {
		return err
	}
	if v := getenv("HEAVYGYM_SLOW_QUERY_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HEAVYGYM_SLOW_QUERY_MS: %w", err)
		}
		cfg.SlowQueryMs = n
	}
	if v := getenv("HEAVYGYM_REQUIRE_TRAINING_PROFILE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HEAVYGYM_REQUIRE_TRAINING_PROFILE: %w", err)
		}
		cfg.RequireTrainingProfile = b
	}
	return nil
}

func envOrDefault(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
