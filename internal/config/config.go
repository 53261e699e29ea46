// Package config loads and validates service configuration from a YAML file
// and environment variables (QUOTES_* with viper, .env via godotenv).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/skillsenselab/quotes/internal/auth/token"
	"github.com/skillsenselab/quotes/internal/logger"
	"github.com/skillsenselab/quotes/internal/server"
	"github.com/skillsenselab/quotes/internal/store"
)

// EnvDevelopment marks a local development deployment; it is the only
// environment where a placeholder token secret is tolerated.
const EnvDevelopment = "development"

// insecureSecrets are placeholder values that must never reach production.
// Startup fails hard when one of them is configured outside development.
var insecureSecrets = map[string]bool{
	"":            true,
	"secret":      true,
	"changeme":    true,
	"change-me":   true,
	"dev-secret":  true,
	"placeholder": true,
}

// App holds service identity configuration.
type App struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
}

// Seed optionally bootstraps an initial user at startup.
type Seed struct {
	Username string `yaml:"username" mapstructure:"username"`
	Email    string `yaml:"email" mapstructure:"email"`
	Password string `yaml:"password" mapstructure:"password"`
}

// Auth holds the authentication configuration.
type Auth struct {
	Token      token.Config `yaml:"token" mapstructure:"token"`
	BcryptCost int          `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`
	Seed       Seed         `yaml:"seed" mapstructure:"seed"`
}

// Config is the root service configuration.
type Config struct {
	App      App           `yaml:"app" mapstructure:"app"`
	Server   server.Config `yaml:"server" mapstructure:"server"`
	Database store.Config  `yaml:"database" mapstructure:"database"`
	Auth     Auth          `yaml:"auth" mapstructure:"auth"`
	Log      logger.Config `yaml:"log" mapstructure:"log"`
}

// ApplyDefaults fills zero-valued fields across all sections.
func (c *Config) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "quotes"
	}
	if c.App.Environment == "" {
		c.App.Environment = EnvDevelopment
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 12
	}
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Auth.Token.ApplyDefaults()
	c.Log.ApplyDefaults()
}

// Validate checks the configuration. A missing or placeholder token secret
// outside development is fatal here, at startup, never per-request.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if insecureSecrets[strings.ToLower(c.Auth.Token.Secret)] {
		if c.App.Environment != EnvDevelopment {
			return fmt.Errorf("auth.token.secret is empty or a known placeholder; refusing to start in %q", c.App.Environment)
		}
		if c.Auth.Token.Secret == "" {
			return fmt.Errorf("auth.token.secret is required (set QUOTES_AUTH_TOKEN_SECRET)")
		}
	}
	return c.Auth.Token.Validate()
}

// Load reads configuration from the optional YAML file at path, then overlays
// QUOTES_* environment variables. A .env file in the working directory is
// loaded first when present.
func Load(path string) (*Config, error) {
	// Missing .env is fine; variables may come from the real environment.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("QUOTES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// bindEnvKeys registers the keys viper should read from the environment.
// AutomaticEnv alone does not surface nested keys during Unmarshal.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"app.name",
		"app.environment",
		"server.host",
		"server.port",
		"database.dsn",
		"database.log_level",
		"auth.token.secret",
		"auth.token.issuer",
		"auth.token.ttl",
		"auth.bcrypt_cost",
		"auth.seed.username",
		"auth.seed.email",
		"auth.seed.password",
		"log.level",
		"log.format",
	} {
		_ = v.BindEnv(key)
	}
}
