package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// Config is the full runtime configuration, read from the environment (and .env when present).
type Config struct {
	Port           string   `envconfig:"PORT" default:"8080"`
	BaseURL        string   `envconfig:"BASE_URL" default:"http://localhost:8080"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat      string   `envconfig:"LOG_FORMAT" default:"text"`

	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	SessionIdle   time.Duration `envconfig:"SESSION_IDLE" default:"30m"`

	// --- Persistence Adapter ---
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"memory"`
	SQLitePath     string `envconfig:"SQLITE_PATH" default:"data/studio.db"`
	DynamoTable    string `envconfig:"DYNAMODB_TABLE"`
	AWSRegion      string `envconfig:"AWS_REGION"`

	// --- Artwork Record Store ---
	ArtworkBackend string `envconfig:"ARTWORK_BACKEND" default:"local"`
	DatabaseDSN    string `envconfig:"DB_DSN"`

	// --- Accounts ---
	OwnerEmail    string        `envconfig:"OWNER_EMAIL" default:"admin@studio.local"`
	OwnerPassword string        `envconfig:"OWNER_PASSWORD" required:"true"`
	AuthLatency   time.Duration `envconfig:"AUTH_LATENCY" default:"0s"`

	// --- Contact notification relay ---
	NotifyEndpoint string `envconfig:"NOTIFY_ENDPOINT"`
	NotifyPhone    string `envconfig:"NOTIFY_PHONE"`
	NotifyAPIKey   string `envconfig:"NOTIFY_API_KEY"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`

	UploadDir      string `envconfig:"UPLOAD_DIR" default:"uploads"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"52428800"`
}

// Load reads .env (if any) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn("Could not find or load .env file, relying on system environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	cfg.ArtworkBackend = strings.ToLower(strings.TrimSpace(cfg.ArtworkBackend))
	return &cfg, nil
}

// ConfigureLogging applies LOG_LEVEL and LOG_FORMAT to the global logger.
func (c *Config) ConfigureLogging() {
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("level", c.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// SecureCookies reports whether the site is served over https, so cookies must be marked Secure.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(c.BaseURL)), "https://")
}

// NotifyConfigured reports whether all three relay settings are present.
func (c *Config) NotifyConfigured() bool {
	return c.NotifyEndpoint != "" && c.NotifyPhone != "" && c.NotifyAPIKey != ""
}
