// Package cli provides a ContentProvider implementation using the gh CLI.
//
// The provider shells out to gh and inherits its authentication, which makes
// it a good fit for scripts and environments where gh is already configured.
// Command execution goes through an injectable Executor so tests can run
// without the binary installed.
package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/notifykit/templatecache"
	"github.com/notifykit/templatecache/errors"
)

const apiVersion = "2022-11-28"

// Executor runs the gh binary with the given arguments.
// It exists so tests can substitute a fake without gh installed.
type Executor interface {
	Run(ctx context.Context, args ...string) (stdout string, stderr string, err error)
}

// ghExecutor runs the real gh binary.
type ghExecutor struct{}

func (ghExecutor) Run(ctx context.Context, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "gh", args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Provider implements templatecache.ContentProvider using the gh CLI.
type Provider struct {
	executor Executor
}

// Option configures the CLI provider.
type Option func(*Provider) error

// WithExecutor replaces the command executor. Intended for tests.
func WithExecutor(executor Executor) Option {
	return func(p *Provider) error {
		if executor == nil {
			err := errors.New(errors.CodeInvalidInput, "executor cannot be nil")
			return errors.WithContext(err, "field", "executor")
		}
		p.executor = executor
		return nil
	}
}

// New creates a provider using the gh CLI.
// Inherits authentication from gh CLI configuration; construction verifies
// that gh is installed and authenticated.
func New(opts ...Option) (*Provider, error) {
	provider := &Provider{executor: ghExecutor{}}

	for _, opt := range opts {
		if err := opt(provider); err != nil {
			return nil, err
		}
	}

	if _, stderr, err := provider.executor.Run(context.Background(), "auth", "status"); err != nil {
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = "gh CLI is not installed or not authenticated"
		}
		return nil, errors.Wrap(err, errors.CodeUnauthorized, msg)
	}

	return provider, nil
}

// FileContent retrieves the decoded text content of path at ref.
func (p *Provider) FileContent(ctx context.Context, owner, name, path, ref string) (string, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/contents/%s?ref=%s",
		owner, name, encodePath(path), url.QueryEscape(ref))

	stdout, stderr, err := p.executor.Run(ctx, "api", endpoint,
		"--header", "X-GitHub-Api-Version: "+apiVersion)
	if err != nil {
		return "", p.classify(stdout, stderr, err, false)
	}

	var payload struct {
		Content  *string `json:"content"`
		Encoding *string `json:"encoding"`
	}
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil || payload.Content == nil || payload.Encoding == nil {
		return "", errors.New(errors.CodeInvalidResponse, "GitHub returned an unexpected content payload.")
	}
	if *payload.Encoding != "base64" {
		return "", errors.Newf(errors.CodeInvalidResponse,
			"GitHub returned content in unsupported encoding %q.", *payload.Encoding)
	}

	raw := strings.NewReplacer("\n", "", "\r", "").Replace(*payload.Content)
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInvalidResponse, "GitHub returned content that could not be decoded.")
	}

	return string(decoded), nil
}

// LatestCommit resolves the current tip commit SHA of branch.
func (p *Provider) LatestCommit(ctx context.Context, owner, name, branch string) (string, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/commits/%s", owner, name, url.PathEscape(branch))

	stdout, stderr, err := p.executor.Run(ctx, "api", endpoint,
		"--header", "X-GitHub-Api-Version: "+apiVersion)
	if err != nil {
		return "", p.classify(stdout, stderr, err, true)
	}

	var payload struct {
		SHA *string `json:"sha"`
	}
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil || payload.SHA == nil {
		return "", errors.New(errors.CodeInvalidResponse, "GitHub returned an unexpected commit payload.")
	}

	return *payload.SHA, nil
}

// httpStatusPattern matches the status gh appends to API failures,
// e.g. "gh: Not Found (HTTP 404)".
var httpStatusPattern = regexp.MustCompile(`\(HTTP (\d{3})\)`)

// classify maps a failed gh invocation onto the shared status classifier.
// gh prints the response body to stdout and a status summary to stderr.
func (p *Provider) classify(stdout, stderr string, err error, lookup bool) error {
	// gh reports rate limiting in the summary text; the classifier would
	// otherwise see a bare 403 without the rate-limit header.
	if strings.Contains(strings.ToLower(stderr), "rate limit") {
		return errors.New(errors.CodeRateLimit, "GitHub API rate limit exceeded. Try again later.")
	}

	if match := httpStatusPattern.FindStringSubmatch(stderr); match != nil {
		statusCode, _ := strconv.Atoi(match[1])
		if lookup {
			return templatecache.ClassifyCommitLookupError(statusCode, nil, []byte(stdout))
		}
		return templatecache.ClassifyContentError(statusCode, nil, []byte(stdout))
	}

	msg := strings.TrimSpace(stderr)
	if msg == "" {
		msg = "gh CLI command failed"
	}
	return errors.Wrap(err, errors.CodeExecutionFailed, msg)
}

// encodePath URL-encodes each path segment independently so literal slashes
// remain path separators.
func encodePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
