// Package errors provides structured error handling.
//
// This package extends Go's standard error handling with error codes, classification
// (retryable vs permanent), context metadata, and JSON serialization. It maintains
// full compatibility with the standard library errors package (errors.Is, errors.As,
// errors.Unwrap).
//
// # Features
//
//   - Structured error codes for consistent categorization
//   - Error classification for intelligent retry logic (retryable vs permanent)
//   - Context metadata attachment for debugging
//   - Error wrapping that preserves the error chain
//   - JSON serialization for API responses
//
// # Quick Start
//
// Creating errors:
//
//	// Simple error
//	err := errors.New(errors.CodeNotFound, "template not found")
//
//	// Formatted error
//	err := errors.Newf(errors.CodeExecutionFailed, "request failed with status %d", status)
//
// Wrapping errors:
//
//	body, err := io.ReadAll(resp.Body)
//	if err != nil {
//	    return errors.Wrap(err, errors.CodeNetwork, "failed to read response body")
//	}
//
// Attaching context:
//
//	err = errors.WithContext(err, "repository", repo.FullName())
//	err = errors.WithContext(err, "commit", sha)
//
// Checking errors:
//
//	if errors.GetCode(err) == errors.CodeRateLimit {
//	    // Back off before the next fetch
//	}
//
// # User-Facing Messages
//
// Message() (and GetMessage) carries text that is safe to present directly to
// end users: it never includes the wrapped cause chain, upstream response
// bodies, or stack traces. Error() includes the code and cause chain and is
// intended for logs.
//
// # Serialization
//
// ToJSON converts any error into a flat ErrorResponse for API responses. The
// wrapped cause chain is intentionally excluded to prevent information leakage.
package errors
