// Package errors provides error handling for topomap.
//
// It re-exports github.com/cockroachdb/errors so every package wraps, inspects
// and annotates errors the same way, and defines the sentinels the engine and
// the HTTP layer agree on.
//
//	if err := model.Load(topo); err != nil {
//	    return errors.Wrap(err, "load topology")
//	}
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // lookup miss
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing hints and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors. Wrap them to add context; check them with Is.
var (
	// ErrNotFound indicates a node, link or node pair lookup miss
	ErrNotFound = New("not found")

	// ErrValidation indicates a malformed topology (duplicate id, dangling link)
	ErrValidation = New("validation failed")

	// ErrInvalidRequest indicates a malformed API request
	ErrInvalidRequest = New("invalid request")

	// ErrEngineBusy indicates the engine event queue is full
	ErrEngineBusy = New("engine busy")

	// ErrEngineStopped indicates the engine loop is not running
	ErrEngineStopped = New("engine stopped")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsValidationError checks if an error is or wraps ErrValidation
func IsValidationError(err error) bool {
	return err != nil && Is(err, ErrValidation)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrapf(ErrNotFound, format, args...)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidRequest, format, args...)
}
