package logic

import (
	"errors"
	"fmt"
)

// Kind categorizes domain errors so the transport layer can map them to
// distinct client-facing statuses without parsing messages.
type Kind string

const (
	// KindValidation marks malformed or missing input.
	KindValidation Kind = "validation"

	// KindUniqueConstraint marks a username or email collision on write.
	KindUniqueConstraint Kind = "unique_constraint"

	// KindNotFound marks a referenced user or post that does not exist.
	KindNotFound Kind = "not_found"

	// KindAccessDenied marks a visibility-policy denial or bad credentials.
	KindAccessDenied Kind = "access_denied"
)

// Error is a domain error with a machine-checkable kind and a message that is
// part of the observable contract: callers pattern-match on the literal text.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

var (
	errInvalidUsername       = &Error{Kind: KindValidation, Message: "invalid username"}
	errInvalidEmail          = &Error{Kind: KindValidation, Message: "invalid email"}
	errInvalidPassword       = &Error{Kind: KindValidation, Message: "invalid password"}
	errInvalidTargetUsername = &Error{Kind: KindValidation, Message: "invalid target username"}
	errSelfFollow            = &Error{Kind: KindValidation, Message: "can not follow yourself"}
	errUserNotFound          = &Error{Kind: KindNotFound, Message: "user does not exist"}
	errPostNotFound          = &Error{Kind: KindNotFound, Message: "post does not exist"}
	errBadCredentials        = &Error{Kind: KindAccessDenied, Message: "wrong credentials"}
)

// IsValidation reports whether err is a validation error. Handles wrapping
// via errors.As.
func IsValidation(err error) bool {
	return hasKind(err, KindValidation)
}

// IsUniqueConstraint reports whether err is a uniqueness violation.
func IsUniqueConstraint(err error) bool {
	return hasKind(err, KindUniqueConstraint)
}

// IsNotFound reports whether err refers to an absent user or post.
func IsNotFound(err error) bool {
	return hasKind(err, KindNotFound)
}

// IsAccessDenied reports whether err is a policy denial or credential failure.
func IsAccessDenied(err error) bool {
	return hasKind(err, KindAccessDenied)
}

func hasKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
