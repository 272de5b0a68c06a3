package sdk_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v67/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifykit/templatecache/errors"
	"github.com/notifykit/templatecache/providers/sdk"
)

// newProvider starts an httptest server and an SDK provider whose go-github
// client is pointed at it.
func newProvider(t *testing.T, handler http.HandlerFunc) *sdk.Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	ghClient := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	ghClient.BaseURL = baseURL

	provider, err := sdk.New(sdk.WithClient(ghClient))
	require.NoError(t, err)

	return provider
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("with token", func(t *testing.T) {
		t.Parallel()

		provider, err := sdk.New(sdk.WithToken("ghp_test"))

		require.NoError(t, err)
		assert.NotNil(t, provider)
	})

	t.Run("with client", func(t *testing.T) {
		t.Parallel()

		provider, err := sdk.New(sdk.WithClient(github.NewClient(nil)))

		require.NoError(t, err)
		assert.NotNil(t, provider)
	})

	tests := []struct {
		name string
		opts []sdk.Option
	}{
		{
			name: "no token or client",
			opts: nil,
		},
		{
			name: "empty token",
			opts: []sdk.Option{sdk.WithToken("")},
		},
		{
			name: "nil client",
			opts: []sdk.Option{sdk.WithClient(nil)},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := sdk.New(tt.opts...)

			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		})
	}
}

func TestProvider_FileContent(t *testing.T) {
	t.Parallel()

	t.Run("decodes file content", func(t *testing.T) {
		t.Parallel()

		provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/acme/widgets/contents/src/templates/welcome.pug", r.URL.Path)
			assert.Equal(t, "abc123", r.URL.Query().Get("ref"))
			_, _ = w.Write([]byte(`{"type":"file","encoding":"base64","content":"aGVsbG8gd29ybGQ=","name":"welcome.pug"}`))
		})

		content, err := provider.FileContent(context.Background(), "acme", "widgets", "src/templates/welcome.pug", "abc123")

		require.NoError(t, err)
		assert.Equal(t, "hello world", content)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		})

		_, err := provider.FileContent(context.Background(), "acme", "widgets", "missing.pug", "abc123")

		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
		assert.Equal(t, "Template file was not found in GitHub for the requested commit.", errors.GetMessage(err))
	})

	t.Run("rate limited", func(t *testing.T) {
		t.Parallel()

		provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Ratelimit-Remaining", "0")
			w.Header().Set("X-Ratelimit-Limit", "60")
			w.Header().Set("X-Ratelimit-Reset", "1700000000")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"API rate limit exceeded"}`))
		})

		_, err := provider.FileContent(context.Background(), "acme", "widgets", "welcome.pug", "abc123")

		require.Error(t, err)
		assert.Equal(t, errors.CodeRateLimit, errors.GetCode(err))
		assert.True(t, errors.IsRetryable(err))
	})

	t.Run("forbidden", func(t *testing.T) {
		t.Parallel()

		provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Ratelimit-Remaining", "42")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"Resource not accessible by integration"}`))
		})

		_, err := provider.FileContent(context.Background(), "acme", "widgets", "welcome.pug", "abc123")

		require.Error(t, err)
		assert.Equal(t, errors.CodeForbidden, errors.GetCode(err))
	})

	t.Run("directory path", func(t *testing.T) {
		t.Parallel()

		provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			// A directory listing comes back as a JSON array.
			_, _ = w.Write([]byte(`[{"type":"file","name":"welcome.pug"}]`))
		})

		_, err := provider.FileContent(context.Background(), "acme", "widgets", "src/templates", "abc123")

		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidResponse, errors.GetCode(err))
	})
}

func TestProvider_LatestCommit(t *testing.T) {
	t.Parallel()

	t.Run("resolves branch tip", func(t *testing.T) {
		t.Parallel()

		provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/acme/widgets/commits/main", r.URL.Path)
			w.Header().Set("Content-Type", "application/vnd.github.sha")
			_, _ = w.Write([]byte("0123456789abcdef0123456789abcdef01234567"))
		})

		sha, err := provider.LatestCommit(context.Background(), "acme", "widgets", "main")

		require.NoError(t, err)
		assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", sha)
	})

	t.Run("unknown branch", func(t *testing.T) {
		t.Parallel()

		provider := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		})

		_, err := provider.LatestCommit(context.Background(), "acme", "widgets", "gone")

		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
		assert.Equal(t, "Unable to resolve latest commit SHA from the main branch.", errors.GetMessage(err))
	})
}
