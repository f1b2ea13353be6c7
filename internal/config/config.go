// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds the server settings.
type Config struct {
	Port         int           `validate:"min=1,max=65535"`
	JWTSecret    string        `validate:"required,min=16"`
	TokenTTL     time.Duration `validate:"min=0"`
	DBPath       string
	SeedFixtures bool
	BcryptCost   int    `validate:"omitempty,min=4,max=31"`
	LogLevel     string `validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat    string `validate:"oneof=text json"`
}

// Load reads the configuration from environment variables and validates it.
//
// Environment variables:
//
//	PORT:          listen port (default: 8080)
//	JWT_SECRET:    HMAC key for bearer tokens, at least 16 characters (required)
//	TOKEN_TTL:     token lifetime as a Go duration, 0 for no expiry (default: 0)
//	DB_PATH:       SQLite database file; empty keeps data in memory
//	SEED_FIXTURES: insert the sample members, groups and expenses (default: true)
//	BCRYPT_COST:   bcrypt cost for new passwords (default: bcrypt.DefaultCost)
//	LOG_LEVEL:     debug, info, warn, error (default: info)
//	LOG_FORMAT:    text or json (default: text)
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	env := func(key, fallback string) string {
		if value := getenv(key); value != "" {
			return value
		}
		return fallback
	}

	var errs []error

	port, err := strconv.Atoi(env("PORT", "8080"))
	if err != nil {
		errs = append(errs, fmt.Errorf("PORT: %w", err))
	}
	ttl, err := time.ParseDuration(env("TOKEN_TTL", "0s"))
	if err != nil {
		errs = append(errs, fmt.Errorf("TOKEN_TTL: %w", err))
	}
	seed, err := strconv.ParseBool(env("SEED_FIXTURES", "true"))
	if err != nil {
		errs = append(errs, fmt.Errorf("SEED_FIXTURES: %w", err))
	}
	cost, err := strconv.Atoi(env("BCRYPT_COST", "0"))
	if err != nil {
		errs = append(errs, fmt.Errorf("BCRYPT_COST: %w", err))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	cfg := &Config{
		Port:         port,
		JWTSecret:    getenv("JWT_SECRET"),
		TokenTTL:     ttl,
		DBPath:       getenv("DB_PATH"),
		SeedFixtures: seed,
		BcryptCost:   cost,
		LogLevel:     strings.ToLower(env("LOG_LEVEL", "info")),
		LogFormat:    strings.ToLower(env("LOG_FORMAT", "text")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", describe(err))
	}
	return cfg, nil
}

var envNames = map[string]string{
	"Port":       "PORT",
	"JWTSecret":  "JWT_SECRET",
	"TokenTTL":   "TOKEN_TTL",
	"BcryptCost": "BCRYPT_COST",
	"LogLevel":   "LOG_LEVEL",
	"LogFormat":  "LOG_FORMAT",
}

// describe names failing fields by their environment variable.
func describe(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	errs := make([]error, len(fieldErrs))
	for i, fe := range fieldErrs {
		name := envNames[fe.Field()]
		if name == "" {
			name = fe.Field()
		}
		if fe.Param() != "" {
			errs[i] = fmt.Errorf("%s failed %s=%s", name, fe.Tag(), fe.Param())
		} else {
			errs[i] = fmt.Errorf("%s failed %s", name, fe.Tag())
		}
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
