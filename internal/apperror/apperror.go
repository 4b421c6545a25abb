// Package apperror defines the error taxonomy every operation boundary
// reports: a kind plus a message safe to show to callers. Unexpected
// storage failures are wrapped, never exposed.
package apperror

import (
	"errors"
	"fmt"
)

// Kind discriminates failures for callers.
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindConflict          Kind = "conflict"
	KindStorage           Kind = "storage"
)

// Error carries a kind and a display-safe message. The wrapped cause (if
// any) is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidInput reports malformed, missing or out-of-range caller data.
func InvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// NotFound reports a missing product or movement.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// InsufficientStock reports an operation that would overdraw a product.
// The message always carries the exact maximum legal quantity so the
// caller can retry without re-querying.
func InsufficientStock(maxAvailable int) *Error {
	return &Error{
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("Not enough stock available. Maximum available: %d", maxAvailable),
	}
}

// WouldGoNegative reports a strict-mode rejection of a ledger edit that
// would drive the cached quantity below zero.
func WouldGoNegative(maxRemovable int) *Error {
	return &Error{
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("Operation would drive stock negative. Maximum removable: %d", maxRemovable),
	}
}

// Conflict reports a uniqueness violation surfaced by the store.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Storage wraps an unexpected failure from the durable store.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "Unexpected storage error", Err: err}
}

// KindOf extracts the kind of err, defaulting to KindStorage for
// anything untyped that escapes an operation boundary.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
