package templatecache

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/notifykit/templatecache/errors"
)

// User-safe message text for classified hosting-API failures. Callers are
// expected to present errors.GetMessage(err) directly to end users, so these
// never include upstream bodies or internals.
const (
	contentNotFoundMessage = "Template file was not found in GitHub for the requested commit."
	lookupNotFoundMessage  = "Unable to resolve latest commit SHA from the main branch."
	rateLimitMessage       = "GitHub API rate limit exceeded. Try again later."
	forbiddenMessage       = "Access to the repository was forbidden. Check repository access and token permissions."
)

// ClassifyContentError maps a failed contents request to a user-safe error.
//
// Mapping:
//   - 404 → not found
//   - 403 with x-ratelimit-remaining: 0, or 429 → rate limited
//   - any other 403 → forbidden
//   - anything else → generic failure including the numeric status and, when
//     the body parses as JSON with a "message" field, the upstream message
//
// Classification never panics; body parsing is best effort and parse
// failures are silently omitted from the message.
func ClassifyContentError(statusCode int, header http.Header, body []byte) error {
	return classifyStatus(statusCode, header, body, contentNotFoundMessage)
}

// ClassifyCommitLookupError maps a failed latest-commit lookup to a
// user-safe error. Same status mapping as ClassifyContentError with
// lookup-specific wording for the not-found case.
func ClassifyCommitLookupError(statusCode int, header http.Header, body []byte) error {
	return classifyStatus(statusCode, header, body, lookupNotFoundMessage)
}

func classifyStatus(statusCode int, header http.Header, body []byte, notFoundMessage string) error {
	switch {
	case statusCode == http.StatusNotFound:
		return errors.New(errors.CodeNotFound, notFoundMessage)

	case statusCode == http.StatusForbidden && rateLimitExhausted(header):
		return errors.New(errors.CodeRateLimit, rateLimitMessage)

	case statusCode == http.StatusTooManyRequests:
		return errors.New(errors.CodeRateLimit, rateLimitMessage)

	case statusCode == http.StatusForbidden:
		return errors.New(errors.CodeForbidden, forbiddenMessage)

	default:
		message := fmt.Sprintf("GitHub API request failed with status %d", statusCode)
		if upstream := upstreamMessage(body); upstream != "" {
			message += ": " + upstream
		}
		return errors.New(errors.CodeExecutionFailed, message)
	}
}

// rateLimitExhausted reports whether the response headers indicate the
// primary rate limit has been fully consumed.
func rateLimitExhausted(header http.Header) bool {
	return header.Get("x-ratelimit-remaining") == "0"
}

// upstreamMessage extracts the "message" field from a JSON error body.
// Returns an empty string on any parse failure; the parse error itself is
// never propagated.
func upstreamMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
