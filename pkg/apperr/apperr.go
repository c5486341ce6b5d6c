// Package apperr defines the error kinds services return to controllers.
//
// A service either succeeds with (T, nil) or fails with (zero, *Error). The
// Kind decides how the HTTP layer answers; Op and Err are for the log.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind uint8

const (
	// Store is any database or storage failure, including constraint
	// violations such as a duplicate email.
	Store Kind = iota + 1
	// NotFound means the requested row does not exist.
	NotFound
	// Invalid means client input could not be interpreted.
	Invalid
	// Unauthenticated means credentials did not match a user.
	Unauthenticated
)

func (k Kind) String() string {
	switch k {
	case Store:
		return "store"
	case NotFound:
		return "not_found"
	case Invalid:
		return "invalid"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Error is a classified failure.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an *Error.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain. Unclassified
// non-nil errors count as Store.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Store
}

// Is reports whether err carries kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
