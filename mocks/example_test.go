package mocks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifykit/templatecache"
	"github.com/notifykit/templatecache/mocks"
)

// Example test showing how to use the ContentProviderMock
func TestExampleUsingMock(t *testing.T) {
	ctx := context.Background()

	// Create and configure mock provider
	mock := &mocks.ContentProviderMock{
		FileContentFunc: func(ctx context.Context, owner string, name string, path string, ref string) (string, error) {
			return "<html>preview</html>", nil
		},
	}

	// Use the mock
	client, err := templatecache.NewClient(mock, templatecache.Config{
		Repository: "acme/widgets",
		Token:      "test-token",
	})
	require.NoError(t, err)

	content, err := client.TemplateContentByCommit(ctx, "emails/welcome.pug", "abc123")

	// Assert behavior
	require.NoError(t, err)
	assert.Equal(t, "<html>preview</html>", content)
	require.Len(t, mock.FileContentCalls(), 1)
	assert.Equal(t, "acme", mock.FileContentCalls()[0].Owner)
	assert.Equal(t, "widgets", mock.FileContentCalls()[0].Name)
	assert.Equal(t, "emails/welcome.pug", mock.FileContentCalls()[0].Path)
}
