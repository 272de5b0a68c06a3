package templatecache

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/notifykit/templatecache/cache"
	"github.com/notifykit/templatecache/errors"
)

// Defaults applied by Config.withDefaults.
const (
	// DefaultAPIBaseURL is the hosting API endpoint used when none is configured.
	DefaultAPIBaseURL = "https://api.github.com"

	// DefaultBranch is the branch used for latest-commit lookups when none is configured.
	DefaultBranch = "main"
)

// Environment variable names read by FromEnv.
const (
	EnvRepository    = "TEMPLATECACHE_REPOSITORY"
	EnvToken         = "TEMPLATECACHE_TOKEN"
	EnvAPIBaseURL    = "TEMPLATECACHE_API_URL"
	EnvBasePath      = "TEMPLATECACHE_BASE_PATH"
	EnvDefaultBranch = "TEMPLATECACHE_DEFAULT_BRANCH"
	EnvCacheCapacity = "TEMPLATECACHE_CACHE_CAPACITY"
)

// Config carries everything needed to construct a Client. It is validated
// once at construction so misconfiguration fails fast instead of surfacing
// as a confusing runtime fetch error.
type Config struct {
	// Repository identifies where templates live. Accepts an HTTP(S) URL,
	// an SSH reference, or owner/name shorthand. Required.
	Repository string

	// Token authenticates hosting-API requests. Required.
	Token string

	// APIBaseURL overrides the hosting API endpoint.
	// Defaults to DefaultAPIBaseURL.
	APIBaseURL string

	// TemplateBasePath is prefixed to every template path before lookup.
	// Optional.
	TemplateBasePath string

	// DefaultBranch is the branch consulted for latest-commit lookups.
	// Defaults to DefaultBranch.
	DefaultBranch string

	// CacheCapacity bounds the content cache entry count.
	// Defaults to cache.DefaultCapacity.
	CacheCapacity int
}

// FromEnv builds a Config from TEMPLATECACHE_* environment variables.
// An unparseable cache capacity is reported immediately rather than being
// silently ignored.
func FromEnv() (Config, error) {
	cfg := Config{
		Repository:       os.Getenv(EnvRepository),
		Token:            os.Getenv(EnvToken),
		APIBaseURL:       os.Getenv(EnvAPIBaseURL),
		TemplateBasePath: os.Getenv(EnvBasePath),
		DefaultBranch:    os.Getenv(EnvDefaultBranch),
	}

	if raw := os.Getenv(EnvCacheCapacity); raw != "" {
		capacity, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, errors.Wrapf(err, errors.CodeInvalidConfig,
				"invalid %s: %q is not an integer", EnvCacheCapacity, raw)
		}
		cfg.CacheCapacity = capacity
	}

	return cfg, nil
}

// withDefaults returns a copy with empty optional fields filled in.
func (c Config) withDefaults() Config {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.DefaultBranch == "" {
		c.DefaultBranch = DefaultBranch
	}
	if c.CacheCapacity == 0 {
		c.CacheCapacity = cache.DefaultCapacity
	}
	return c
}

// Validate checks the configuration and reports every problem at once in a
// single aggregated error, rather than failing on the first missing field.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Repository) == "" {
		problems = append(problems, "repository is required")
	}
	if strings.TrimSpace(c.Token) == "" {
		problems = append(problems, "token is required")
	}
	if c.APIBaseURL != "" {
		if parsed, err := url.Parse(c.APIBaseURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			problems = append(problems, fmt.Sprintf("api base url %q is not a valid http(s) url", c.APIBaseURL))
		}
	}
	if c.CacheCapacity < 0 {
		problems = append(problems, fmt.Sprintf("cache capacity must not be negative (got %d)", c.CacheCapacity))
	}

	if len(problems) > 0 {
		return errors.Newf(errors.CodeInvalidConfig, "invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
