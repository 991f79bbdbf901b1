package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionInvalid     = errors.New("invalid session")
	ErrSessionExpired     = errors.New("session expired")
	ErrUnauthenticated    = errors.New("authentication required")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Referential integrity errors (FK violations on delete/update)
	ErrReferentialIntegrity = errors.New("operation violates referential integrity")

	// Storage errors (backing store failure, never leaked in detail)
	ErrStorage = errors.New("storage failure")
)

// College errors
var (
	ErrCollegeNotFound      = errors.New("college not found")
	ErrCollegeAlreadyExists = errors.New("college code already exists")
)

// Program errors
var (
	ErrProgramNotFound      = errors.New("program not found")
	ErrProgramAlreadyExists = errors.New("program code already exists")
	ErrCascadeFailed        = errors.New("failed to update all student references, transaction rolled back")
)

// Student errors
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrStudentAlreadyExists = errors.New("student ID already exists")
	ErrInvalidStudentID     = errors.New("invalid student ID format")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Upload errors
var (
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrInvalidFileType = errors.New("file type is not allowed")
)

// ValidationError carries the list of human-readable messages produced by
// an entity validator. It maps to a 400 response with an errors array.
type ValidationError struct {
	Messages []string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return ErrValidationFailed.Error()
	}
	return e.Messages[0]
}

// Unwrap makes errors.Is(err, ErrValidationFailed) hold for every ValidationError
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a ValidationError from a list of messages
func NewValidationError(messages []string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewNotFoundError creates a custom error for resource not found with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewReferentialIntegrityError creates a custom error for FK violations with a message
func NewReferentialIntegrityError(message string) error {
	return &CustomError{
		Err:     ErrReferentialIntegrity,
		Message: message,
	}
}

// NewStorageError wraps a backing-store failure; the original error is kept
// for logging, the message shown to clients stays generic.
func NewStorageError(err error) error {
	return &CustomError{
		Err:     ErrStorage,
		Message: "storage failure: " + err.Error(),
	}
}
