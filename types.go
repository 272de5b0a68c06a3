package templatecache

// ContentRequest describes a single template preview request.
// It is constructed per call and never persisted.
type ContentRequest struct {
	// TemplatePath is the template file path relative to the configured base path.
	TemplatePath string

	// CommitSHA pins the lookup to a specific commit. When empty, the
	// client's fallback policy decides whether the latest default-branch
	// commit may be substituted.
	CommitSHA string

	// PendingSend reports whether the notification that references this
	// template has not been sent yet. Pending notifications are the usual
	// candidates for a live (latest-commit) preview.
	PendingSend bool
}

// FallbackPolicy controls what happens when a ContentRequest carries no
// commit. The status gating is a product policy choice, so it is
// configurable rather than fixed.
type FallbackPolicy int

const (
	// FallbackPendingOnly substitutes the latest default-branch commit only
	// for requests marked PendingSend. This is the default.
	FallbackPendingOnly FallbackPolicy = iota

	// FallbackAlways substitutes the latest default-branch commit for any
	// request without a commit.
	FallbackAlways

	// FallbackNever refuses every request without a commit.
	FallbackNever
)

// allows reports whether the policy permits a live preview for a request
// without a commit.
func (p FallbackPolicy) allows(pendingSend bool) bool {
	switch p {
	case FallbackAlways:
		return true
	case FallbackNever:
		return false
	default:
		return pendingSend
	}
}

// CacheStats reports cache effectiveness counters for a Client.
type CacheStats struct {
	// Hits counts fetches served from the cache without a network call.
	Hits int64

	// Misses counts fetches that required a network call.
	Misses int64
}
