package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  token:
    secret: unit-test-secret-value
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.App.Environment != EnvDevelopment {
		t.Errorf("expected default environment, got %q", cfg.App.Environment)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Auth.Token.TTL != 60*time.Second {
		t.Errorf("expected default TTL 60s, got %v", cfg.Auth.Token.TTL)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("expected default bcrypt cost 12, got %d", cfg.Auth.BcryptCost)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("QUOTES_AUTH_TOKEN_SECRET", "secret-from-env")
	t.Setenv("QUOTES_SERVER_PORT", "9999")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Auth.Token.Secret != "secret-from-env" {
		t.Errorf("expected env secret, got %q", cfg.Auth.Token.Secret)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected env port 9999, got %d", cfg.Server.Port)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	os.Unsetenv("QUOTES_AUTH_TOKEN_SECRET")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error for missing secret")
	}
	if !strings.Contains(err.Error(), "secret") {
		t.Errorf("error should name the secret, got %v", err)
	}
}

func TestValidate_PlaceholderSecretInProduction(t *testing.T) {
	for _, secret := range []string{"secret", "changeme", "CHANGEME", "dev-secret", ""} {
		cfg := &Config{}
		cfg.App.Environment = "production"
		cfg.Auth.Token.Secret = secret
		cfg.ApplyDefaults()

		if err := cfg.Validate(); err == nil {
			t.Errorf("secret %q must be rejected in production", secret)
		}
	}
}

func TestValidate_PlaceholderSecretInDevelopment(t *testing.T) {
	cfg := &Config{}
	cfg.App.Environment = EnvDevelopment
	cfg.Auth.Token.Secret = "dev-secret"
	cfg.ApplyDefaults()

	// Placeholders are tolerated in development; empty never is.
	if err := cfg.Validate(); err != nil {
		t.Errorf("placeholder secret should pass in development, got %v", err)
	}

	cfg.Auth.Token.Secret = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty secret must be rejected even in development")
	}
}

func TestValidate_RealSecretInProduction(t *testing.T) {
	cfg := &Config{}
	cfg.App.Environment = "production"
	cfg.Auth.Token.Secret = "a-real-32-byte-random-secret-val"
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}
