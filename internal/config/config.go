// Package config loads application configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/naka-gawa/gsoc-explorer/internal/domain"
)

// Config holds the application configuration.
type Config struct {
	GitHubToken   string
	CountMode     domain.CountMode
	HTTPCache     bool
	DebounceDelay time.Duration
}

// HasGitHubToken reports whether a credential is configured.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}

// Load reads configuration from environment variables, after merging in any
// variables defined in ./.env. Variables already set in the environment win.
// GITHUB_TOKEN is optional here; without it every fetch reports a configuration error.
// Optional variables with defaults: EXPLORER_COUNT_MODE (link), EXPLORER_HTTP_CACHE (true),
// EXPLORER_DEBOUNCE (500ms).
func Load() (*Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv paths. Missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", p, err)
		}
	}

	countMode := domain.CountModeLink
	if v, ok := os.LookupEnv("EXPLORER_COUNT_MODE"); ok && v != "" {
		switch mode := domain.CountMode(strings.ToLower(strings.TrimSpace(v))); mode {
		case domain.CountModeLink, domain.CountModeGraphQL:
			countMode = mode
		default:
			return nil, fmt.Errorf("EXPLORER_COUNT_MODE has invalid value %q: want %q or %q", v, domain.CountModeLink, domain.CountModeGraphQL)
		}
	}

	httpCache := true
	if v, ok := os.LookupEnv("EXPLORER_HTTP_CACHE"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("EXPLORER_HTTP_CACHE has invalid bool %q: %w", v, err)
		}
		httpCache = parsed
	}

	debounce := 500 * time.Millisecond
	if v, ok := os.LookupEnv("EXPLORER_DEBOUNCE"); ok && v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("EXPLORER_DEBOUNCE has invalid duration %q: %w", v, err)
		}
		if parsed < 0 {
			return nil, fmt.Errorf("EXPLORER_DEBOUNCE must not be negative, got %s", parsed)
		}
		debounce = parsed
	}

	return &Config{
		GitHubToken:   strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		CountMode:     countMode,
		HTTPCache:     httpCache,
		DebounceDelay: debounce,
	}, nil
}
