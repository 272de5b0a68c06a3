// Package rest provides a ContentProvider implementation that talks to the
// hosting REST API directly over HTTP.
//
// The provider pins its requests to a specific API version and disables
// transport-layer caching: the client's own content cache is authoritative,
// so every request that reaches this provider is meant to hit the network.
package rest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/notifykit/templatecache"
	"github.com/notifykit/templatecache/errors"
)

const (
	defaultBaseURL = "https://api.github.com"
	acceptHeader   = "application/vnd.github+json"
	apiVersion     = "2022-11-28"
)

// Provider implements templatecache.ContentProvider over plain HTTP.
type Provider struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// config holds configuration for Provider.
type config struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures the REST provider.
type Option func(*config) error

// WithToken sets the bearer token used to authenticate requests.
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

// WithBaseURL overrides the hosting API endpoint.
// An empty value keeps the default (https://api.github.com).
func WithBaseURL(baseURL string) Option {
	return func(cfg *config) error {
		cfg.baseURL = strings.TrimSuffix(baseURL, "/")
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client, for timeout control or
// instrumented transports.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) error {
		if client == nil {
			err := errors.New(errors.CodeInvalidInput, "http client cannot be nil")
			return errors.WithContext(err, "field", "http client")
		}
		cfg.httpClient = client
		return nil
	}
}

// New creates a REST provider.
//
// Example:
//
//	provider, err := rest.New(rest.WithToken("ghp_..."))
func New(opts ...Option) (*Provider, error) {
	cfg := &config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.token == "" {
		err := errors.New(errors.CodeInvalidInput, "token must be provided")
		return nil, errors.WithContext(err, "field", "token")
	}
	if cfg.baseURL == "" {
		cfg.baseURL = defaultBaseURL
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Provider{
		httpClient: cfg.httpClient,
		baseURL:    cfg.baseURL,
		token:      cfg.token,
	}, nil
}

// FileContent retrieves the decoded text content of path at ref.
func (p *Provider) FileContent(ctx context.Context, owner, name, path, ref string) (string, error) {
	requestURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		p.baseURL,
		url.PathEscape(owner),
		url.PathEscape(name),
		encodePath(path),
		url.QueryEscape(ref),
	)

	status, header, body, err := p.get(ctx, requestURL)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", templatecache.ClassifyContentError(status, header, body)
	}

	var payload struct {
		Content  *string `json:"content"`
		Encoding *string `json:"encoding"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Content == nil || payload.Encoding == nil {
		return "", errors.New(errors.CodeInvalidResponse, "GitHub returned an unexpected content payload.")
	}
	if *payload.Encoding != "base64" {
		return "", errors.Newf(errors.CodeInvalidResponse,
			"GitHub returned content in unsupported encoding %q.", *payload.Encoding)
	}

	// The API wraps base64 at fixed column widths; strip the line breaks
	// before decoding.
	raw := strings.NewReplacer("\n", "", "\r", "").Replace(*payload.Content)
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInvalidResponse, "GitHub returned content that could not be decoded.")
	}

	return string(decoded), nil
}

// LatestCommit resolves the current tip commit SHA of branch.
func (p *Provider) LatestCommit(ctx context.Context, owner, name, branch string) (string, error) {
	requestURL := fmt.Sprintf("%s/repos/%s/%s/commits/%s",
		p.baseURL,
		url.PathEscape(owner),
		url.PathEscape(name),
		url.PathEscape(branch),
	)

	status, header, body, err := p.get(ctx, requestURL)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", templatecache.ClassifyCommitLookupError(status, header, body)
	}

	var payload struct {
		SHA *string `json:"sha"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.SHA == nil {
		return "", errors.New(errors.CodeInvalidResponse, "GitHub returned an unexpected commit payload.")
	}

	return *payload.SHA, nil
}

// get issues an authenticated GET and returns the raw response.
func (p *Provider) get(ctx context.Context, requestURL string) (int, http.Header, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, nil, nil, errors.Wrap(err, errors.CodeInternal, "failed to build request")
	}

	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("Cache-Control", "no-store")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, errors.Wrap(err, errors.CodeNetwork, "failed to reach GitHub")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, errors.Wrap(err, errors.CodeNetwork, "failed to read response body")
	}

	return resp.StatusCode, resp.Header, body, nil
}

// encodePath URL-encodes each path segment independently, so literal slashes
// remain path separators while special characters inside a segment are
// escaped.
func encodePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
