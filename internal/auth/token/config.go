package token

import (
	"errors"
	"time"
)

// DefaultTTL is the access-token lifetime when none is configured. Tokens are
// deliberately short-lived; callers are expected to re-authenticate.
const DefaultTTL = 60 * time.Second

// Config configures the JWT token service. Only HMAC signing is supported;
// the symmetric secret comes from process-wide configuration and its
// freshness is enforced at startup by config validation.
type Config struct {
	// Secret is the HMAC signing key (required).
	Secret string `yaml:"secret" mapstructure:"secret"`

	// Issuer is the "iss" claim. When set, it is also enforced on Parse.
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// TTL is the access-token lifetime (default: 60s).
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ApplyDefaults fills in zero-value fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("token: secret is required")
	}
	if c.TTL < 0 {
		return errors.New("token: ttl must be positive")
	}
	return nil
}
