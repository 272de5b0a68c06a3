package templatecache

import (
	"log/slog"

	"github.com/notifykit/templatecache/cache"
)

// ClientOption configures a Client at construction.
type ClientOption func(*Client)

// WithLogger sets the logger used for diagnostic records.
// By default the client logs nothing.
//
// Example:
//
//	client, _ := templatecache.NewClient(provider, cfg,
//	    templatecache.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFallbackPolicy sets the policy applied to requests without a commit.
// The default is FallbackPendingOnly.
func WithFallbackPolicy(policy FallbackPolicy) ClientOption {
	return func(c *Client) {
		c.policy = policy
	}
}

// WithCache replaces the client's content cache.
// Useful for sharing one cache between clients or for test isolation.
func WithCache(contentCache *cache.Cache) ClientOption {
	return func(c *Client) {
		if contentCache != nil {
			c.cache = contentCache
		}
	}
}
