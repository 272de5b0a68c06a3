package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard library errors.As.
//
// Example:
//
//	var platformErr errors.PlatformError
//	if errors.As(err, &platformErr) {
//	    code := platformErr.Code()
//	}
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the ErrorCode from an error.
// Returns CodeUnknown if the error is nil or not a PlatformError.
//
// This function handles the error chain and will extract the code from
// the outermost PlatformError in the chain.
//
// Example:
//
//	if errors.GetCode(err) == errors.CodeNotFound {
//	    // Handle not found
//	}
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Code()
	}

	return CodeUnknown
}

// GetMessage extracts the user-safe message from an error.
// For a PlatformError this is Message(); for any other error it falls back
// to Error(). Returns an empty string if err is nil.
//
// Callers presenting failures to end users should use this rather than
// Error(), which includes the error code and wrapped cause chain.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Message()
	}

	return err.Error()
}

// GetClassification extracts the ErrorClassification from an error.
// Returns ClassificationPermanent if the error is nil or not a PlatformError.
// This is a safe default that prevents inappropriate retry attempts.
func GetClassification(err error) ErrorClassification {
	if err == nil {
		return ClassificationPermanent
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Classification()
	}

	return ClassificationPermanent
}

// IsRetryable returns true if the error is classified as retryable.
// Returns false if the error is nil or not a PlatformError (safe default).
//
// Example:
//
//	if errors.IsRetryable(err) {
//	    // Schedule the fetch again after backoff
//	}
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
