package templatecache

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/notifykit/templatecache/cache"
	"github.com/notifykit/templatecache/errors"
)

// previewUnavailableMessage is presented when a request carries no commit
// and the fallback policy refuses a live preview.
const previewUnavailableMessage = "Preview is not available for this notification."

// Client retrieves template content pinned to specific commits, caching
// results so repeated previews of the same (repository, path, commit) triple
// never re-hit the hosting API.
//
// A Client owns its cache exclusively and carries no other state across
// calls. Construct one per process or per request as lifetime requirements
// dictate; there is no ambient singleton.
//
// Example:
//
//	provider, err := rest.New(rest.WithToken(cfg.Token))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := templatecache.NewClient(provider, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	content, err := client.TemplateContentByCommit(ctx, "emails/welcome.pug", sha)
type Client struct {
	provider ContentProvider
	repo     Repository
	basePath string
	branch   string
	cache    *cache.Cache
	policy   FallbackPolicy
	logger   *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// NewClient creates a Client backed by the given transport provider.
// The configuration is validated eagerly: a missing token, an unparseable
// repository reference, or a bad API base URL fails here, before any
// network activity.
func NewClient(provider ContentProvider, cfg Config, opts ...ClientOption) (*Client, error) {
	if provider == nil {
		return nil, errors.New(errors.CodeInvalidInput, "provider must not be nil")
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repo, err := ParseRepository(cfg.Repository)
	if err != nil {
		return nil, err
	}

	c := &Client{
		provider: provider,
		repo:     repo,
		basePath: cfg.TemplateBasePath,
		branch:   cfg.DefaultBranch,
		cache:    cache.New(cfg.CacheCapacity),
		policy:   FallbackPendingOnly,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// TemplateContentByCommit returns the decoded content of templatePath as it
// existed at commitSHA.
//
// Results are cached per (repository, resolved path, commit): a second call
// with identical arguments is served from memory without a network call.
// Failures carry user-safe messages; callers may present
// errors.GetMessage(err) directly.
func (c *Client) TemplateContentByCommit(ctx context.Context, templatePath, commitSHA string) (string, error) {
	if commitSHA == "" {
		return "", errors.New(errors.CodeInvalidInput, "commit reference must not be empty")
	}

	resolved, err := ResolvePath(templatePath, c.basePath)
	if err != nil {
		return "", err
	}

	key := c.repo.FullName() + ":" + resolved + ":" + commitSHA
	if content, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return content, nil
	}
	c.misses.Add(1)

	c.logger.DebugContext(ctx, "fetching template content",
		"repository", c.repo.FullName(),
		"commit", commitSHA,
		"requested_path", templatePath,
		"resolved_path", resolved,
	)

	content, err := c.provider.FileContent(ctx, c.repo.Owner, c.repo.Name, resolved, commitSHA)
	if err != nil {
		return "", err
	}

	// Content at a fixed commit is immutable, so the entry never goes stale.
	c.cache.Set(key, content)

	return content, nil
}

// LatestCommit resolves the current tip commit SHA of the configured default
// branch. The result is never cached: by definition "latest" must not be
// served stale.
func (c *Client) LatestCommit(ctx context.Context) (string, error) {
	c.logger.DebugContext(ctx, "resolving latest commit",
		"repository", c.repo.FullName(),
		"branch", c.branch,
	)

	return c.provider.LatestCommit(ctx, c.repo.Owner, c.repo.Name, c.branch)
}

// TemplateContent serves a preview request. Requests with a commit behave
// exactly like TemplateContentByCommit. Requests without one consult the
// fallback policy: if a live preview is permitted the latest default-branch
// commit is substituted, otherwise the preview is refused.
func (c *Client) TemplateContent(ctx context.Context, req ContentRequest) (string, error) {
	if req.CommitSHA != "" {
		return c.TemplateContentByCommit(ctx, req.TemplatePath, req.CommitSHA)
	}

	if !c.policy.allows(req.PendingSend) {
		return "", errors.New(errors.CodeNotFound, previewUnavailableMessage)
	}

	sha, err := c.LatestCommit(ctx)
	if err != nil {
		return "", err
	}

	return c.TemplateContentByCommit(ctx, req.TemplatePath, sha)
}

// Repository returns the canonical repository this client reads from.
func (c *Client) Repository() Repository {
	return c.repo
}

// Stats returns cache effectiveness counters.
func (c *Client) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
