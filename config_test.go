package passaporteweb_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cotelha/passaporteweb"
)

func TestLoadConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passaporteweb.yaml")
	data := []byte(`url: https://app.passaporteweb.example
application_token: tok-123
application_secret: sec-456
user_token: usr-789
timeout: 15s
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := passaporteweb.LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.URL != "https://app.passaporteweb.example" {
		t.Errorf("unexpected url %q", cfg.URL)
	}
	if cfg.ApplicationToken != "tok-123" || cfg.ApplicationSecret != "sec-456" {
		t.Errorf("unexpected credentials %q/%q", cfg.ApplicationToken, cfg.ApplicationSecret)
	}
	if cfg.UserToken != "usr-789" {
		t.Errorf("unexpected user token %q", cfg.UserToken)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected a valid config, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := passaporteweb.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestConfigValidateReportsEveryProblem(t *testing.T) {
	cfg := &passaporteweb.Config{Timeout: -time.Second}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"url", "application_token", "application_secret", "timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected validation error to mention %q, got: %v", want, err)
		}
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("PASSAPORTEWEB_URL", "https://env.passaporteweb.example")
	t.Setenv("PASSAPORTEWEB_APPLICATION_TOKEN", "env-tok")
	t.Setenv("PASSAPORTEWEB_APPLICATION_SECRET", "env-sec")
	t.Setenv("PASSAPORTEWEB_USER_TOKEN", "")
	t.Setenv("PASSAPORTEWEB_TIMEOUT", "30s")

	cfg, err := passaporteweb.ConfigFromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.URL != "https://env.passaporteweb.example" {
		t.Errorf("unexpected url %q", cfg.URL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected a valid config, got %v", err)
	}
}

func TestConfigFromEnvBadTimeout(t *testing.T) {
	t.Setenv("PASSAPORTEWEB_TIMEOUT", "soon")

	if _, err := passaporteweb.ConfigFromEnv(); err == nil {
		t.Fatal("expected an error for an unparseable timeout")
	}
}
