// Package sdk provides a ContentProvider implementation using the go-github SDK.
//
// This package wraps github.com/google/go-github/v67, mapping its responses
// and errors onto the templatecache contract. Best for applications that are
// already using go-github or need advanced authentication such as GitHub
// Apps.
package sdk

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/go-github/v67/github"

	"github.com/notifykit/templatecache"
	"github.com/notifykit/templatecache/errors"
)

// Provider implements templatecache.ContentProvider using the go-github SDK.
type Provider struct {
	client *github.Client
}

// config holds configuration for Provider.
type config struct {
	client *github.Client
	token  string
}

// Option configures the SDK provider.
type Option func(*config) error

// WithToken sets the authentication token for the SDK provider.
func WithToken(token string) Option {
	return func(cfg *config) error {
		if token == "" {
			err := errors.New(errors.CodeInvalidInput, "token cannot be empty")
			return errors.WithContext(err, "field", "token")
		}
		cfg.token = token
		return nil
	}
}

// WithClient sets a custom GitHub client for the SDK provider.
// This allows full control over the HTTP client configuration,
// authentication, and other advanced settings.
func WithClient(client *github.Client) Option {
	return func(cfg *config) error {
		if client == nil {
			err := errors.New(errors.CodeInvalidInput, "client cannot be nil")
			return errors.WithContext(err, "field", "client")
		}
		cfg.client = client
		return nil
	}
}

// New creates a provider using the GitHub SDK.
//
// Example with token authentication:
//
//	provider, err := sdk.New(sdk.WithToken("ghp_..."))
//
// Example with custom client:
//
//	ghClient := github.NewClient(&http.Client{Timeout: 30 * time.Second})
//	provider, err := sdk.New(sdk.WithClient(ghClient))
func New(opts ...Option) (*Provider, error) {
	cfg := &config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// If no client was provided, create a default one
	if cfg.client == nil {
		if cfg.token == "" {
			err := errors.New(errors.CodeInvalidInput, "either token or client must be provided")
			return nil, errors.WithContext(err, "field", "token or client")
		}
		cfg.client = github.NewClient(nil).WithAuthToken(cfg.token)
	}

	return &Provider{client: cfg.client}, nil
}

// FileContent retrieves the decoded text content of path at ref.
func (p *Provider) FileContent(ctx context.Context, owner, name, path, ref string) (string, error) {
	opts := &github.RepositoryContentGetOptions{Ref: ref}

	fileContent, _, resp, err := p.client.Repositories.GetContents(ctx, owner, name, path, opts)
	if err != nil {
		return "", p.classify(err, resp, false)
	}
	if fileContent == nil {
		// GetContents returns directory listings through its second result;
		// a template path must always name a file.
		return "", errors.New(errors.CodeInvalidResponse, "GitHub returned an unexpected content payload.")
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInvalidResponse, "GitHub returned content that could not be decoded.")
	}

	return content, nil
}

// LatestCommit resolves the current tip commit SHA of branch.
func (p *Provider) LatestCommit(ctx context.Context, owner, name, branch string) (string, error) {
	sha, resp, err := p.client.Repositories.GetCommitSHA1(ctx, owner, name, branch, "")
	if err != nil {
		return "", p.classify(err, resp, true)
	}
	if sha == "" {
		return "", errors.New(errors.CodeInvalidResponse, "GitHub returned an unexpected commit payload.")
	}

	return sha, nil
}

// classify maps go-github errors onto the shared status classifier.
func (p *Provider) classify(err error, resp *github.Response, lookup bool) error {
	statusCode := 0
	var header http.Header
	if resp != nil {
		statusCode = resp.StatusCode
		header = resp.Header
	}

	// The SDK surfaces the upstream message pre-parsed; re-encode it so the
	// classifier sees the same body shape the raw API returns.
	var body []byte
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Message != "" {
		body, _ = json.Marshal(struct {
			Message string `json:"message"`
		}{ghErr.Message})
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		if statusCode == 0 {
			statusCode = http.StatusForbidden
		}
		if header.Get("X-Ratelimit-Remaining") == "" {
			header = http.Header{"X-Ratelimit-Remaining": []string{"0"}}
		}
	}

	if statusCode == 0 {
		return errors.Wrap(err, errors.CodeNetwork, "failed to reach GitHub")
	}

	if lookup {
		return templatecache.ClassifyCommitLookupError(statusCode, header, body)
	}
	return templatecache.ClassifyContentError(statusCode, header, body)
}
