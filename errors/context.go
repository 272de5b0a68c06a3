package errors

import "errors"

// WithContext adds a single context field to an error.
// Returns a new PlatformError with the context field added.
// Existing context fields are preserved.
//
// If err is not a PlatformError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err := errors.New(errors.CodeNotFound, "template not found")
//	err = errors.WithContext(err, "repository", "acme/widgets")
//	err = errors.WithContext(err, "commit", sha)
func WithContext(err error, key string, value interface{}) PlatformError {
	if err == nil {
		return nil
	}

	// Convert to PlatformError if needed
	var platformErr PlatformError
	if !errors.As(err, &platformErr) {
		platformErr = &platformError{
			code:           CodeUnknown,
			classification: ClassificationPermanent,
			message:        err.Error(),
			context:        nil,
			cause:          err,
		}
	}

	// Create new context with existing fields plus new field
	newContext := make(map[string]interface{})
	if existingCtx := platformErr.Context(); existingCtx != nil {
		for k, v := range existingCtx {
			newContext[k] = v
		}
	}
	newContext[key] = value

	return &platformError{
		code:           platformErr.Code(),
		classification: platformErr.Classification(),
		message:        platformErr.Message(),
		context:        newContext,
		cause:          platformErr.Unwrap(),
	}
}

// WithContextMap adds multiple context fields to an error.
// Returns a new PlatformError with the context fields merged.
// Existing context fields are preserved; new fields override existing ones with the same key.
//
// If err is not a PlatformError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContextMap(err, map[string]interface{}{
//	    "repository": repo.FullName(),
//	    "path":       resolvedPath,
//	})
func WithContextMap(err error, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	// Convert to PlatformError if needed
	var platformErr PlatformError
	if !errors.As(err, &platformErr) {
		platformErr = &platformError{
			code:           CodeUnknown,
			classification: ClassificationPermanent,
			message:        err.Error(),
			context:        nil,
			cause:          err,
		}
	}

	// Merge existing context with new context
	newContext := make(map[string]interface{})
	if existingCtx := platformErr.Context(); existingCtx != nil {
		for k, v := range existingCtx {
			newContext[k] = v
		}
	}
	// New fields override existing
	for k, v := range ctx {
		newContext[k] = v
	}

	return &platformError{
		code:           platformErr.Code(),
		classification: platformErr.Classification(),
		message:        platformErr.Message(),
		context:        newContext,
		cause:          platformErr.Unwrap(),
	}
}
