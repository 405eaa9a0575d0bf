package errors

import "fmt"

// ErrorCode represents a fitform error code.
type ErrorCode string

const (
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"    // 400 (e.g. non-image upload)
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"  // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"        // 404
	ErrBusy           ErrorCode = "BUSY"             // 409 (synthesis already in flight)
	ErrPolicyRefused  ErrorCode = "POLICY_REFUSED"   // 422 (content-policy rejection)
	ErrPrecondition   ErrorCode = "PRECONDITION"     // 500 (internal invariant breach)
	ErrSynthesis      ErrorCode = "SYNTHESIS_FAILED" // 502 (service/network failure)
	ErrInternal       ErrorCode = "INTERNAL"         // 500
)

// StudioError represents a structured error with code, status, and details.
type StudioError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *StudioError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidInput creates a 400 error for an input the synthesis service
// cannot work with, such as a file that is not an image.
func NewInvalidInput(msg string) *StudioError {
	return &StudioError{
		Code:    ErrInvalidInput,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *StudioError {
	return &StudioError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing session or wardrobe item.
func NewNotFound(kind, identifier string) *StudioError {
	return &StudioError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewBusy creates a 409 error returned while a synthesis call is in flight.
// No two synthesis calls may run concurrently for one session.
func NewBusy() *StudioError {
	return &StudioError{
		Code:    ErrBusy,
		Status:  409,
		Message: "a synthesis call is already in progress; wait for it to finish",
	}
}

// NewPolicyRefused creates a 422 error for a content-policy rejection from
// the image service.
func NewPolicyRefused(msg string) *StudioError {
	return &StudioError{
		Code:    ErrPolicyRefused,
		Status:  422,
		Message: msg,
	}
}

// NewPrecondition creates a 500 error for an internal invariant breach,
// e.g. no base image found where one is required. These should not occur
// under correct state transitions but must fail loudly rather than silently
// producing a broken snapshot.
func NewPrecondition(msg string) *StudioError {
	return &StudioError{
		Code:    ErrPrecondition,
		Status:  500,
		Message: msg,
	}
}

// NewSynthesis creates a 502 error for a service or network failure during
// model creation, garment application, or pose change.
func NewSynthesis(msg string) *StudioError {
	return &StudioError{
		Code:    ErrSynthesis,
		Status:  502,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *StudioError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &StudioError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a StudioError with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*StudioError); ok {
		return sErr.Code == code
	}
	return false
}
