package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"folio/internal/cache"
)

// ConfigFileEnv names the environment variable holding an optional TOML
// file. Values from the file are overridden by environment variables.
const ConfigFileEnv = "FOLIO_CONFIG"

const DefaultAPIBaseURL = "http://localhost:5135"

var validLanguages = []string{"en", "sv", "ar"}

type Config struct {
	// HTTP Server
	Port string

	// Remote backend API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Local persistence for session tokens and the activity log
	SQLiteDBPath string

	// CV cache
	CacheBackend string
	RedisAddr    string
	CVCacheTTL   time.Duration

	// AMQP; an empty URL disables mutation events
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google sign-in button; empty hides it
	GoogleClientID string

	// Google Sheets export
	GoogleSpreadsheetID   string
	GoogleSheetName       string
	GoogleCredentialsFile string

	DefaultLanguage string
	LogLevel        string

	// Token store key used by folioctl
	CLISessionKey string

	// Browser sessions saved longer ago are purged by folio-worker; matches the cookie MaxAge
	SessionMaxAge time.Duration
}

// fileConfig is the TOML layout. Durations are written as Go duration
// strings ("15s").
type fileConfig struct {
	Port         string `toml:"port"`
	SQLiteDBPath string `toml:"sqlite_db_path"`
	LogLevel     string `toml:"log_level"`
	Language     string `toml:"default_language"`
	API          struct {
		BaseURL string `toml:"base_url"`
		Timeout string `toml:"timeout"`
	} `toml:"api"`
	Cache struct {
		Backend   string `toml:"backend"`
		RedisAddr string `toml:"redis_addr"`
		TTL       string `toml:"ttl"`
	} `toml:"cache"`
	AMQP struct {
		URL      string `toml:"url"`
		Exchange string `toml:"exchange"`
		Queue    string `toml:"queue"`
	} `toml:"amqp"`
	Google struct {
		ClientID        string `toml:"client_id"`
		SpreadsheetID   string `toml:"spreadsheet_id"`
		SheetName       string `toml:"sheet_name"`
		CredentialsFile string `toml:"credentials_file"`
	} `toml:"google"`
	CLI struct {
		SessionKey string `toml:"session_key"`
	} `toml:"cli"`
	Session struct {
		MaxAge string `toml:"max_age"`
	} `toml:"session"`
}

func defaults() *Config {
	return &Config{
		Port:            "8080",
		APIBaseURL:      DefaultAPIBaseURL,
		HTTPTimeout:     15 * time.Second,
		SQLiteDBPath:    "./data/folio.db",
		CacheBackend:    "lru",
		RedisAddr:       "localhost:6379",
		CVCacheTTL:      10 * time.Minute,
		AMQPExchange:    "folio",
		AMQPQueue:       "folio_activity",
		GoogleSheetName: "Months",
		DefaultLanguage: "en",
		LogLevel:        "info",
		CLISessionKey:   "cli",
		SessionMaxAge:   30 * 24 * time.Hour,
	}
}

// Load builds the configuration from defaults, the optional TOML file named
// by FOLIO_CONFIG and finally the environment.
func Load() (*Config, error) {
	cfg := defaults()
	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, key, v string) error {
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config file %s: invalid %s %q: %w", path, key, v, err)
		}
		*dst = d
		return nil
	}

	set(&c.Port, fc.Port)
	set(&c.SQLiteDBPath, fc.SQLiteDBPath)
	set(&c.LogLevel, fc.LogLevel)
	set(&c.DefaultLanguage, fc.Language)
	set(&c.APIBaseURL, fc.API.BaseURL)
	set(&c.CacheBackend, fc.Cache.Backend)
	set(&c.RedisAddr, fc.Cache.RedisAddr)
	set(&c.AMQPURL, fc.AMQP.URL)
	set(&c.AMQPExchange, fc.AMQP.Exchange)
	set(&c.AMQPQueue, fc.AMQP.Queue)
	set(&c.GoogleClientID, fc.Google.ClientID)
	set(&c.GoogleSpreadsheetID, fc.Google.SpreadsheetID)
	set(&c.GoogleSheetName, fc.Google.SheetName)
	set(&c.GoogleCredentialsFile, fc.Google.CredentialsFile)
	set(&c.CLISessionKey, fc.CLI.SessionKey)

	if err := setDuration(&c.HTTPTimeout, "api.timeout", fc.API.Timeout); err != nil {
		return err
	}
	if err := setDuration(&c.SessionMaxAge, "session.max_age", fc.Session.MaxAge); err != nil {
		return err
	}
	return setDuration(&c.CVCacheTTL, "cache.ttl", fc.Cache.TTL)
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.APIBaseURL = getEnv("API_BASE_URL", c.APIBaseURL)
	c.HTTPTimeout = getEnvDuration("HTTP_TIMEOUT", c.HTTPTimeout)
	c.SQLiteDBPath = getEnv("SQLITE_DB_PATH", c.SQLiteDBPath)

	c.CacheBackend = getEnv("CACHE_BACKEND", c.CacheBackend)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.CVCacheTTL = getEnvDuration("CV_CACHE_TTL", c.CVCacheTTL)

	c.AMQPURL = getEnv("AMQP_URL", c.AMQPURL)
	c.AMQPExchange = getEnv("AMQP_EXCHANGE", c.AMQPExchange)
	c.AMQPQueue = getEnv("AMQP_QUEUE", c.AMQPQueue)

	c.GoogleClientID = getEnv("GOOGLE_CLIENT_ID", c.GoogleClientID)
	c.GoogleSpreadsheetID = getEnv("GOOGLE_SPREADSHEET_ID", c.GoogleSpreadsheetID)
	c.GoogleSheetName = getEnv("GOOGLE_SHEET_NAME", c.GoogleSheetName)
	c.GoogleCredentialsFile = getEnv("GOOGLE_CREDENTIALS_FILE", c.GoogleCredentialsFile)

	c.DefaultLanguage = getEnv("DEFAULT_LANGUAGE", c.DefaultLanguage)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.CLISessionKey = getEnv("CLI_SESSION_KEY", c.CLISessionKey)
	c.SessionMaxAge = getEnvDuration("SESSION_MAX_AGE", c.SessionMaxAge)
}

// EventsEnabled reports whether mutation events should be published.
func (c *Config) EventsEnabled() bool {
	return c.AMQPURL != ""
}

// ExportEnabled reports whether the Google Sheets export is configured.
func (c *Config) ExportEnabled() bool {
	return c.GoogleSpreadsheetID != "" && c.GoogleCredentialsFile != ""
}

// Validate validates the configuration and returns all problems at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if u, err := url.Parse(c.APIBaseURL); err != nil || u.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': must be an absolute URL", c.APIBaseURL))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", u.Scheme))
	}

	if c.HTTPTimeout < 0 {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must not be negative", c.HTTPTimeout))
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else if c.SQLiteDBPath != ":memory:" {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if !cache.BackendType(c.CacheBackend).IsValid() {
		errors = append(errors, fmt.Sprintf("invalid cache backend '%s': must be one of %v", c.CacheBackend, cache.BackendTypes()))
	}
	if cache.BackendType(c.CacheBackend) == cache.RedisBackend && c.RedisAddr == "" {
		errors = append(errors, "Redis address is required when using redis cache backend")
	}
	if c.CVCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid CV cache TTL %v: must be at least 1 second", c.CVCacheTTL))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.GoogleSpreadsheetID != "" {
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when a spreadsheet ID is set")
		}
		if c.GoogleCredentialsFile == "" {
			errors = append(errors, "GOOGLE_CREDENTIALS_FILE is required when a spreadsheet ID is set")
		} else if _, err := os.Stat(c.GoogleCredentialsFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("Google credentials file does not exist: %s", c.GoogleCredentialsFile))
		}
	}

	if !slices.Contains(validLanguages, c.DefaultLanguage) {
		errors = append(errors, fmt.Sprintf("invalid default language '%s': must be one of %v", c.DefaultLanguage, validLanguages))
	}

	if c.CLISessionKey == "" {
		errors = append(errors, "CLI session key cannot be empty")
	}
	if c.SessionMaxAge < 0 {
		errors = append(errors, fmt.Sprintf("invalid session max age %v: must not be negative", c.SessionMaxAge))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
