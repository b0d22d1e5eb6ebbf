// Package config holds the settings of the grouprank commands.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultMaxRemaining = 16
	// Every remaining match doubles the work of a prediction
	limitMaxRemaining = 30
)

var ErrTooManyRemaining = errors.New("too many remaining matches")

type Config struct {
	// The most unplayed matches a prediction is run for
	MaxRemaining int
	LogLevel     slog.Level
	// Listen address of the server
	Addr           string
	AllowedOrigins []string
}

// Load reads the configuration from the environment.
// A .env file in the working directory is loaded first when it exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	maxRemaining := defaultMaxRemaining
	if s := os.Getenv("GROUPRANK_MAX_REMAINING"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid GROUPRANK_MAX_REMAINING environment variable: %w", err)
		}
		if n < 0 || n > limitMaxRemaining {
			return nil, fmt.Errorf("GROUPRANK_MAX_REMAINING must be between 0 and %d, got %d", limitMaxRemaining, n)
		}
		maxRemaining = n
	}

	logLevel := slog.LevelInfo
	if s := os.Getenv("GROUPRANK_LOG_LEVEL"); s != "" {
		if err := logLevel.UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("invalid GROUPRANK_LOG_LEVEL environment variable: %w", err)
		}
	}

	addr := os.Getenv("GROUPRANK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	origins := []string{"*"}
	if s := os.Getenv("GROUPRANK_ALLOWED_ORIGINS"); s != "" {
		origins = origins[:0]
		for _, o := range strings.Split(s, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	cfg := &Config{
		MaxRemaining:   maxRemaining,
		LogLevel:       logLevel,
		Addr:           addr,
		AllowedOrigins: origins,
	}

	return cfg, nil
}

// Returns ErrTooManyRemaining when a prediction over the given
// number of unplayed matches should not be run
func (c *Config) CheckRemaining(remaining int) error {
	if remaining > c.MaxRemaining {
		return fmt.Errorf("%w: %d, the limit is %d", ErrTooManyRemaining, remaining, c.MaxRemaining)
	}
	return nil
}
