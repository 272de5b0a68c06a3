package errors

import (
	"encoding/json"
)

// ErrorResponse represents the JSON structure for error responses.
// It provides a flat, serializable representation of errors without exposing
// internal error chains or sensitive information.
//
// The wrapped error chain is intentionally excluded to prevent information
// leakage while still providing useful context through the Code, Message,
// and Context fields.
type ErrorResponse struct {
	// Code is the error code identifying the type of error.
	Code string `json:"code"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Classification indicates whether the error is retryable or permanent.
	Classification string `json:"classification"`

	// Context contains optional metadata about the error.
	// Omitted from JSON if empty.
	Context map[string]interface{} `json:"context,omitempty"`
}

// ToJSON converts any error to an ErrorResponse suitable for JSON serialization.
// Returns nil if err is nil.
//
// For PlatformError instances, extracts code, message, classification, and context.
// For standard errors, uses CodeUnknown, ClassificationPermanent, and the error message.
//
// The wrapped error chain is intentionally excluded: chains may contain
// upstream response bodies, file paths, or other details that must not reach
// end users.
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	code := GetCode(err)
	classification := GetClassification(err)

	// Get message and context if PlatformError
	message := err.Error()
	var context map[string]interface{}

	var platformErr PlatformError
	if As(err, &platformErr) {
		message = platformErr.Message()
		context = platformErr.Context()
	}

	return &ErrorResponse{
		Code:           string(code),
		Message:        message,
		Classification: string(classification),
		Context:        context,
	}
}

// MarshalJSON implements json.Marshaler for platformError.
// This allows PlatformError instances to be marshaled directly using
// json.Marshal without needing to call ToJSON explicitly.
func (e *platformError) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToJSON(e))
}
