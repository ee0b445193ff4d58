package core

import "errors"

// Domain errors. Every failure mode of the engine is fatal: the
// simulation is deterministic, so retrying cannot help.
var (
	// ErrInvalidState indicates overlapping or out-of-bounds particles
	// in the initial state, or a malformed container polygon.
	ErrInvalidState = errors.New("core: invalid initial state")

	// ErrHeapExhausted indicates the event queue emptied with steps
	// remaining. A closed container with moving disks always has a next
	// event, so this means a particle escaped the geometry.
	ErrHeapExhausted = errors.New("core: event queue exhausted (particle escaped geometry)")

	// ErrNumericalStall indicates too many consecutive events at the
	// same simulated time, a symptom of accumulated floating-point
	// drift pinning a particle against an obstacle.
	ErrNumericalStall = errors.New("core: numerical stall (repeated zero-length time steps)")

	// ErrSinkFailure indicates a snapshot consumer failed; the
	// iteration unwinds without emitting further steps.
	ErrSinkFailure = errors.New("core: snapshot sink failure")
)
