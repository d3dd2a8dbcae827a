package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultTokenTTL is the lifetime of issued tokens when none is configured.
	DefaultTokenTTL = 24 * time.Hour
	// DefaultHashCost is the bcrypt work factor when none is configured.
	DefaultHashCost = 12
)

// DevelopmentSecret is only accepted outside production.
const DevelopmentSecret = "productmanager-dev-secret-change-me"

// Config holds the process-wide authentication settings. It is built once at
// startup and passed by value.
type Config struct {
	Secret   []byte
	TokenTTL time.Duration
	HashCost int
}

func (c Config) withDefaults() Config {
	if c.TokenTTL <= 0 {
		c.TokenTTL = DefaultTokenTTL
	}
	if c.HashCost == 0 {
		c.HashCost = DefaultHashCost
	}
	return c
}

// NewHasherFromConfig builds the credential hasher for cfg.
func NewHasherFromConfig(cfg Config) (*Hasher, error) {
	return NewHasher(cfg.withDefaults().HashCost)
}

// NewTokenServiceFromConfig builds the token service for cfg.
func NewTokenServiceFromConfig(cfg Config, opts ...TokenOption) (*TokenService, error) {
	cfg = cfg.withDefaults()
	return NewTokenService(cfg.Secret, cfg.TokenTTL, opts...)
}

func validCost(cost int) bool {
	return cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost
}
