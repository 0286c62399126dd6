// Package apperr classifies diary failures so the presentation layer can decide
// between a blocking alert (validation) and a transient toast (everything else).
package apperr

import (
	"errors"
	"fmt"
)

// Kind represents a category of failure.
type Kind string

const (
	// KindValidation is bad user input; the caller must correct it.
	KindValidation Kind = "validation"
	// KindStorage is a failed read or write of persisted state.
	KindStorage Kind = "storage"
	// KindNotFound is a lookup of an id that does not exist.
	KindNotFound Kind = "not_found"
	// KindConfig is an unreadable or invalid configuration.
	KindConfig Kind = "config"
	// KindCrypto is an encryption or decryption failure.
	KindCrypto Kind = "crypto"
)

// Error is a structured application error.
type Error struct {
	Kind        Kind
	Code        string
	Message     string
	UserMessage string
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error with the same kind and code, so predefined
// sentinels work with errors.Is even after being wrapped or copied.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// User returns the message meant for the person at the keyboard.
func (e *Error) User() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	return e.Message
}

// WithUser returns a copy carrying a user-facing message.
func (e *Error) WithUser(msg string) *Error {
	c := *e
	c.UserMessage = msg
	return &c
}

// New creates an Error without a cause.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap attaches kind and code to an underlying error.
func Wrap(err error, kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Validation is shorthand for a validation error whose user message equals message.
func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, UserMessage: message}
}

// KindOf reports the kind of the first *Error in err's chain.
// Errors that are not classified count as storage failures.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStorage
}

// IsValidation reports whether err should block the user with an alert.
func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}

// UserMessage extracts the user-facing text of err.
func UserMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.User()
	}
	return err.Error()
}

// Predefined errors for common scenarios
var (
	ErrNotFound = New(KindNotFound, "ENTRY_NOT_FOUND", "entry not found").
			WithUser("The requested diary entry could not be found")

	ErrConsentRequired = Validation("CONSENT_REQUIRED", "please agree to all required items")

	ErrNicknameRequired = Validation("NICKNAME_REQUIRED", "please enter a nickname")

	ErrGenderRequired = Validation("GENDER_REQUIRED", "please select a gender")

	ErrSaveFailed = New(KindStorage, "SAVE_FAILED", "failed to save entry").
			WithUser("An error occurred while saving the entry. Please try again")

	ErrDeleteFailed = New(KindStorage, "DELETE_FAILED", "failed to delete entry").
			WithUser("An error occurred while deleting the entry. Please try again")
)
