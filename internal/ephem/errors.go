package ephem

import "errors"

var (
	// ErrUnknownBody is returned when a body name does not resolve.
	ErrUnknownBody = errors.New("unknown body")

	// ErrUndefinedField is returned when a field is not defined for
	// the queried body (e.g. the heliocentric position of the Sun).
	ErrUndefinedField = errors.New("field not defined for body")

	// ErrNoObserver is returned for observer-relative fields when the
	// observation has no observer position set.
	ErrNoObserver = errors.New("no observer position set")

	// ErrNoEvent is returned from field queries for a rise or set that
	// does not occur on the observation's day (circumpolar or
	// never-rising body). RiseTransitSet reports the same condition as
	// a structured state rather than an error.
	ErrNoEvent = errors.New("no event on this day")
)
