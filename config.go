package passaporteweb

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings needed to reach the PassaporteWeb service.
type Config struct {
	// URL is the base URL of the service, e.g. "https://app.passaporteweb.com.br".
	URL string `yaml:"url"`
	// ApplicationToken and ApplicationSecret are the registered application's
	// credential pair, sent as HTTP Basic auth.
	ApplicationToken  string `yaml:"application_token"`
	ApplicationSecret string `yaml:"application_secret"`
	// UserToken is an optional end-user session token. When set, user-scoped
	// calls (notification listing, counting, marking read) run under it.
	UserToken string `yaml:"user_token,omitempty"`
	// Timeout bounds each HTTP call. Zero means a 10-second default.
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// Logger receives transport logs. Nil means slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// ConfigFromEnv builds a Config from PASSAPORTEWEB_* environment variables,
// loading a .env file first when one exists in the working directory.
//
//	PASSAPORTEWEB_URL
//	PASSAPORTEWEB_APPLICATION_TOKEN
//	PASSAPORTEWEB_APPLICATION_SECRET
//	PASSAPORTEWEB_USER_TOKEN
//	PASSAPORTEWEB_TIMEOUT (a time.Duration string, e.g. "15s")
func ConfigFromEnv() (*Config, error) {
	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		URL:               os.Getenv("PASSAPORTEWEB_URL"),
		ApplicationToken:  os.Getenv("PASSAPORTEWEB_APPLICATION_TOKEN"),
		ApplicationSecret: os.Getenv("PASSAPORTEWEB_APPLICATION_SECRET"),
		UserToken:         os.Getenv("PASSAPORTEWEB_USER_TOKEN"),
	}
	if raw := os.Getenv("PASSAPORTEWEB_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing PASSAPORTEWEB_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// Validate checks that the config is usable and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	if c.URL == "" {
		errs = append(errs, errors.New("url is required"))
	}
	if c.ApplicationToken == "" {
		errs = append(errs, errors.New("application_token is required"))
	}
	if c.ApplicationSecret == "" {
		errs = append(errs, errors.New("application_secret is required"))
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	return errors.Join(errs...)
}
