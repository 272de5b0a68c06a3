package errors

// ErrorClassification indicates whether an error should trigger a retry.
// The client performs no retries itself; the classification exists so that
// callers can decide whether an operation is worth attempting again.
type ErrorClassification string

const (
	// ClassificationRetryable indicates temporary failures that may succeed on retry.
	// Examples: network timeouts, rate limits.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed on retry.
	// Examples: validation errors, permission denials, resource not found.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// defaultClassifications maps error codes to their default classification.
// This determines the default retry behavior for each error type.
var defaultClassifications = map[ErrorCode]ErrorClassification{
	// Retryable errors (temporary failures)
	CodeTimeout:   ClassificationRetryable,
	CodeNetwork:   ClassificationRetryable,
	CodeRateLimit: ClassificationRetryable,

	// Permanent errors (will not succeed on retry)
	CodeNotFound:        ClassificationPermanent,
	CodeUnauthorized:    ClassificationPermanent,
	CodeForbidden:       ClassificationPermanent,
	CodeInvalidInput:    ClassificationPermanent,
	CodeInvalidConfig:   ClassificationPermanent,
	CodeInvalidResponse: ClassificationPermanent,
	CodeExecutionFailed: ClassificationPermanent,

	// System errors (often permanent, but may be transient)
	CodeInternal: ClassificationPermanent,
	CodeUnknown:  ClassificationPermanent,
}

// getDefaultClassification returns the default classification for an error code.
// Returns ClassificationPermanent if the code is not in the map (safe default).
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent // Safe default
}
