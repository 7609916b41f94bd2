package domain

import "errors" // Sentinel errors

// Error kinds. Every *Error unwraps to exactly one of these.
var (
	ErrValidation           = errors.New("validation error")
	ErrNotFound             = errors.New("not found")
	ErrDuplicate            = errors.New("duplicate")
	ErrAuth                 = errors.New("unauthorized")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrPersistence          = errors.New("persistence error")
)

// Error is a classified failure carrying the message shown to the user
type Error struct {
	Kind    error  // One of the kind sentinels above
	Message string // Human readable message
}

// Error returns the user facing message
func (e *Error) Error() string { return e.Message }

// Unwrap exposes the kind for errors.Is
func (e *Error) Unwrap() error { return e.Kind }

var (
	// account errors
	ErrDuplicateEmail   = &Error{Kind: ErrDuplicate, Message: "Email address is already registered"}
	ErrUnknownEmail     = &Error{Kind: ErrNotFound, Message: "Email address is not registered"}
	ErrPasswordMismatch = &Error{Kind: ErrAuth, Message: "Password mismatch"}
	ErrUserNotFound     = &Error{Kind: ErrNotFound, Message: "User details not available"}
	ErrConfirmAccount   = &Error{Kind: ErrConfirmationRequired, Message: "You need to confirm to delete your account"}

	// island errors
	ErrIslandNotFound = &Error{Kind: ErrNotFound, Message: "Island not found"}
	ErrRegionNotFound = &Error{Kind: ErrNotFound, Message: "Region not found"}
	ErrConfirmIsland  = &Error{Kind: ErrConfirmationRequired, Message: "You need to confirm to delete this island"}

	// shared
	ErrDeleteFailed = &Error{Kind: ErrPersistence, Message: "There was an error during delete operation, please try again later"}
)

// Message returns the user facing message for err. Unclassified errors get a generic text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong, please try again later"
}
