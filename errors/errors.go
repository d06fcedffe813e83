// Package errors provides error handling for auragraph.
//
// This package re-exports github.com/cockroachdb/errors so every package
// gets stack traces, wrapping and user hints from a single import:
//
//	if err := gen.Generate(count, percent, attrs); err != nil {
//	    return errors.Wrap(err, "failed to generate population")
//	}
//
//	return errors.WithHint(err, "population.count must be at least 2")
//
// Sentinels below are matched with errors.Is.
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

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	FlattenHints  = crdb.FlattenHints
	GetAllDetails = crdb.GetAllDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Generic sentinels.
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the request was malformed or invalid
	ErrInvalidRequest = New("invalid request")
)

// Population sentinels.
var (
	// ErrPopulationTooSmall is returned when fewer than two persons are requested.
	// The generator keeps its previous state.
	ErrPopulationTooSmall = New("population must contain at least 2 persons")

	// ErrNoAttributes is returned when an empty attribute list is supplied
	ErrNoAttributes = New("attribute list is empty")

	// ErrPersonNotFound indicates a person id outside the created population
	ErrPersonNotFound = Wrap(ErrNotFound, "person")

	// ErrUnknownAttribute indicates an attribute outside the selected attribute set
	ErrUnknownAttribute = Wrap(ErrInvalidRequest, "unknown attribute")
)

// Graph and layout sentinels.
var (
	// ErrFocalNotFound indicates the focal id does not resolve in the shown population
	ErrFocalNotFound = Wrap(ErrNotFound, "focal person")

	// ErrUnknownNode indicates a node id that is not part of the simulation
	ErrUnknownNode = Wrap(ErrNotFound, "node")

	// ErrSimulationStopped is returned by every mutating call on a stopped simulation
	ErrSimulationStopped = New("simulation stopped")

	// ErrNotDragging is returned when a drag move or end targets a node that is not being dragged
	ErrNotDragging = New("node is not being dragged")
)

// Configuration sentinels.
var (
	// ErrInvalidConfig wraps every configuration validation failure
	ErrInvalidConfig = New("invalid configuration")

	// ErrIncompatibleSchema indicates a config file written for another schema version
	ErrIncompatibleSchema = Wrap(ErrInvalidConfig, "incompatible schema")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewInvalidConfigError creates an invalid-config error with a formatted message
func NewInvalidConfigError(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidConfig, format, args...)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrapf(ErrNotFound, format, args...)
}
