package templatecache

import "context"

//go:generate go run github.com/matryer/moq@latest -out mocks/provider.go -pkg mocks . ContentProvider

// ContentProvider defines the transport used to retrieve repository content
// from the hosting API. Implementations include the REST provider (direct
// HTTP), the SDK provider (go-github), and the CLI provider (gh CLI).
//
// The provider abstraction keeps the Client's caching and path resolution
// independent of how bytes move over the wire, and enables testing through
// mock implementations.
//
// All methods accept a context.Context for cancellation and timeout control
// and must propagate it into the underlying request. Failures are returned
// as classified errors carrying user-safe messages (see ClassifyContentError
// and ClassifyCommitLookupError).
type ContentProvider interface {
	// FileContent retrieves the decoded text content of path in owner/name
	// as it existed at ref (a commit SHA, branch, or tag).
	// Returns a not-found error if the file does not exist at that ref.
	FileContent(ctx context.Context, owner, name, path, ref string) (string, error)

	// LatestCommit resolves the current tip commit SHA of branch in
	// owner/name. Results are never cached: "latest" must not be stale.
	LatestCommit(ctx context.Context, owner, name, branch string) (string, error)
}
