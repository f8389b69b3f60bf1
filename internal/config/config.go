package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the Echo Lens console
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8080"`

	// Classifier configuration
	ClassifierURL  string        `env:"CLASSIFIER_URL,default=https://exoplanet-hunt-api.onrender.com"`
	PredictPath    string        `env:"PREDICT_PATH,default=/predict"`
	CSVPath        string        `env:"CSV_PATH,default=/predict-csv"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=60s"`
	RetryCount     int           `env:"RETRY_COUNT,default=0"`

	// Presentation timing
	RevealDelay       time.Duration `env:"REVEAL_DELAY,default=1s"`
	NarrativeInterval time.Duration `env:"NARRATIVE_INTERVAL,default=1500ms"`
	FactInterval      time.Duration `env:"FACT_INTERVAL,default=10s"`

	// Optional extra content
	FactsFeedURL string `env:"FACTS_FEED_URL"`
	CatalogFile  string `env:"CATALOG_FILE"`

	// Hunt archive
	ArchiveEnabled  bool   `env:"ARCHIVE_ENABLED,default=true"`
	DeploymentMode  string `env:"DEPLOYMENT_MODE,default=local"`
	LocalReportsDir string `env:"LOCAL_REPORTS_DIR,default=./reports"`
	GCSBucket       string `env:"GCS_BUCKET"`

	// OpenAI configuration (briefings fall back to a template without a key)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4.1"`

	// Local testing configuration
	MockupMode bool `env:"MOCKUP_MODE,default=false"`

	// Rate limiting for hunt and upload requests
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS,default=2"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST,default=5"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=auto"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom loads configuration through an arbitrary lookuper
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the loaded values are consistent
func (c *Config) Validate() error {
	u, err := url.Parse(c.ClassifierURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid CLASSIFIER_URL %q", c.ClassifierURL)
	}
	if !strings.HasPrefix(c.PredictPath, "/") {
		return fmt.Errorf("PREDICT_PATH must start with '/', got %q", c.PredictPath)
	}
	if !strings.HasPrefix(c.CSVPath, "/") {
		return fmt.Errorf("CSV_PATH must start with '/', got %q", c.CSVPath)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.RetryCount < 0 {
		return fmt.Errorf("RETRY_COUNT must not be negative, got %d", c.RetryCount)
	}
	if c.RevealDelay < 0 {
		return fmt.Errorf("REVEAL_DELAY must not be negative, got %s", c.RevealDelay)
	}
	if c.NarrativeInterval <= 0 || c.FactInterval <= 0 {
		return fmt.Errorf("NARRATIVE_INTERVAL and FACT_INTERVAL must be positive")
	}
	if c.FactsFeedURL != "" {
		if u, err := url.Parse(c.FactsFeedURL); err != nil || u.Host == "" {
			return fmt.Errorf("invalid FACTS_FEED_URL %q", c.FactsFeedURL)
		}
	}

	switch c.DeploymentMode {
	case "local":
	case "gcs":
		if c.ArchiveEnabled && c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when DEPLOYMENT_MODE is gcs")
		}
	default:
		return fmt.Errorf("unsupported DEPLOYMENT_MODE %q", c.DeploymentMode)
	}

	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit settings must not be negative")
	}
	return nil
}

// PredictURL is the full address of the single-system prediction endpoint
func (c *Config) PredictURL() string {
	return strings.TrimRight(c.ClassifierURL, "/") + c.PredictPath
}

// CSVURL is the full address of the bulk CSV prediction endpoint
func (c *Config) CSVURL() string {
	return strings.TrimRight(c.ClassifierURL, "/") + c.CSVPath
}
