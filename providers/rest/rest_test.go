package rest_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifykit/templatecache/errors"
	"github.com/notifykit/templatecache/providers/rest"
)

// newServer starts an httptest server and a provider pointed at it.
func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *rest.Provider) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := rest.New(
		rest.WithToken("ghp_test"),
		rest.WithBaseURL(server.URL),
	)
	require.NoError(t, err)

	return server, provider
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid options", func(t *testing.T) {
		t.Parallel()

		provider, err := rest.New(rest.WithToken("ghp_test"))

		require.NoError(t, err)
		assert.NotNil(t, provider)
	})

	tests := []struct {
		name string
		opts []rest.Option
	}{
		{
			name: "missing token",
			opts: nil,
		},
		{
			name: "empty token",
			opts: []rest.Option{rest.WithToken("")},
		},
		{
			name: "nil http client",
			opts: []rest.Option{rest.WithToken("ghp_test"), rest.WithHTTPClient(nil)},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := rest.New(tt.opts...)

			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		})
	}
}

func TestProvider_FileContent(t *testing.T) {
	t.Parallel()

	t.Run("decodes wrapped base64 content", func(t *testing.T) {
		t.Parallel()

		_, provider := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/acme/widgets/contents/src/templates/welcome.pug", r.URL.Path)
			assert.Equal(t, "abc123", r.URL.Query().Get("ref"))
			assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
			assert.Equal(t, "Bearer ghp_test", r.Header.Get("Authorization"))
			assert.Equal(t, "2022-11-28", r.Header.Get("X-GitHub-Api-Version"))
			assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))

			// GitHub wraps base64 payloads with embedded newlines.
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"content":"aGVsbG8g\nd29ybGQ=\n","encoding":"base64"}`))
		})

		content, err := provider.FileContent(context.Background(), "acme", "widgets", "src/templates/welcome.pug", "abc123")

		require.NoError(t, err)
		assert.Equal(t, "hello world", content)
	})

	t.Run("escapes special characters per path segment", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		_, provider := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.EscapedPath()
			encoded := base64.StdEncoding.EncodeToString([]byte("ok"))
			_, _ = w.Write([]byte(`{"content":"` + encoded + `","encoding":"base64"}`))
		})

		_, err := provider.FileContent(context.Background(), "acme", "widgets", "emails/50% off.pug", "abc123")

		require.NoError(t, err)
		assert.Equal(t, "/repos/acme/widgets/contents/emails/50%25%20off.pug", gotPath)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		_, provider := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		})

		_, err := provider.FileContent(context.Background(), "acme", "widgets", "missing.pug", "abc123")

		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
		assert.Equal(t, "Template file was not found in GitHub for the requested commit.", errors.GetMessage(err))
	})

	t.Run("rate limited via exhausted quota header", func(t *testing.T) {
		t.Parallel()

		_, provider := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Ratelimit-Remaining", "0")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"API rate limit exceeded"}`))
		})

		_, err := provider.FileContent(context.Background(), "acme", "widgets", "welcome.pug", "abc123")

		require.Error(t, err)
		assert.Equal(t, errors.CodeRateLimit, errors.GetCode(err))
		assert.True(t, errors.IsRetryable(err))
	})

	t.Run("rate limited via status 429", func(t *testing.T) {
		t.Parallel()

		_, provider := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := provider.FileContent(context.Background(), "acme", "widgets", "welcome.pug", "abc123")

		require.Error(t, err)
		assert.Equal(t, errors.CodeRateLimit, errors.GetCode(err))
	})

	t.Run("forbidden with remaining quota", func(t *testing.T) {
		t.Parallel()

		_, provider := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Ratelimit-Remaining", "42")
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := provider.FileContent(context.Background(), "acme", "widgets", "welcome.pug", "abc123")

		require.Error(t, err)
		assert.Equal(t, errors.CodeForbidden, errors.GetCode(err))
	})

	t.Run("unexpected status carries upstream message", func(t *testing.T) {
		t.Parallel()

		_, provider := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"message":"upstream exploded"}`))
		})

		_, err := provider.FileContent(context.Background(), "acme", "widgets", "welcome.pug", "abc123")

		require.Error(t, err)
		assert.Equal(t, errors.CodeExecutionFailed, errors.GetCode(err))
		assert.Contains(t, errors.GetMessage(err), "status 502")
		assert.Contains(t, errors.GetMessage(err), "upstream exploded")
	})

	t.Run("missing content field", func(t *testing.T) {
		t.Parallel()

		_, provider := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"encoding":"base64"}`))
		})

		_, err := provider.FileContent(context.Background(), "acme", "widgets", "welcome.pug", "abc123")

		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidResponse, errors.GetCode(err))
	})

	t.Run("unsupported encoding", func(t *testing.T) {
		t.Parallel()

		_, provider := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"content":"hi","encoding":"utf-8"}`))
		})

		_, err := provider.FileContent(context.Background(), "acme", "widgets", "welcome.pug", "abc123")

		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidResponse, errors.GetCode(err))
	})

	t.Run("invalid base64", func(t *testing.T) {
		t.Parallel()

		_, provider := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"content":"%%%not base64%%%","encoding":"base64"}`))
		})

		_, err := provider.FileContent(context.Background(), "acme", "widgets", "welcome.pug", "abc123")

		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidResponse, errors.GetCode(err))
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()

		server, provider := newServer(t, func(w http.ResponseWriter, r *http.Request) {})
		server.Close()

		_, err := provider.FileContent(context.Background(), "acme", "widgets", "welcome.pug", "abc123")

		require.Error(t, err)
		assert.Equal(t, errors.CodeNetwork, errors.GetCode(err))
		assert.True(t, errors.IsRetryable(err))
	})
}

func TestProvider_LatestCommit(t *testing.T) {
	t.Parallel()

	t.Run("resolves branch tip", func(t *testing.T) {
		t.Parallel()

		_, provider := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/acme/widgets/commits/main", r.URL.Path)
			_, _ = w.Write([]byte(`{"sha":"0123456789abcdef0123456789abcdef01234567"}`))
		})

		sha, err := provider.LatestCommit(context.Background(), "acme", "widgets", "main")

		require.NoError(t, err)
		assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", sha)
	})

	t.Run("unknown branch", func(t *testing.T) {
		t.Parallel()

		_, provider := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := provider.LatestCommit(context.Background(), "acme", "widgets", "main")

		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
		assert.Equal(t, "Unable to resolve latest commit SHA from the main branch.", errors.GetMessage(err))
	})

	t.Run("missing sha field", func(t *testing.T) {
		t.Parallel()

		_, provider := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

		_, err := provider.LatestCommit(context.Background(), "acme", "widgets", "main")

		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidResponse, errors.GetCode(err))
	})
}
