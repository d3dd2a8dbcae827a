package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique field already taken.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrValidation indicates malformed client input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized indicates a request without a usable identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// KindError carries a client-facing message while matching one of the
// sentinels above through errors.Is.
type KindError struct {
	Kind    error
	Message string
}

// NewError returns a KindError of the given kind.
func NewError(kind error, message string) *KindError {
	return &KindError{Kind: kind, Message: message}
}

func (e *KindError) Error() string { return e.Message }

func (e *KindError) Unwrap() error { return e.Kind }
