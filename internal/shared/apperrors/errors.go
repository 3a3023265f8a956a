// Package apperrors defines the sentinel errors shared across the
// reservation, payment and catalog layers. Services return (or wrap)
// these values so controllers can translate failures into HTTP status
// codes with errors.Is instead of matching error strings.
package apperrors

import "errors"

var (
	// ErrInvalidInput marks client errors detected before any store
	// access (malformed ids, negative seat counts, unknown outcome).
	ErrInvalidInput = errors.New("invalid input")

	// ErrEventNotFound is returned when an event id does not resolve.
	ErrEventNotFound = errors.New("event not found")

	// ErrVenueNotFound is returned when a venue id does not resolve.
	ErrVenueNotFound = errors.New("venue not found")

	// ErrReservationNotFound is returned when no reservation (and hence
	// no settlement) exists for the given id.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrCapacityExceeded is returned when a reservation attempt could
	// not be admitted because at least one tier would oversell.
	ErrCapacityExceeded = errors.New("not enough seats available for the requested tiers")

	// ErrAlreadySettled is returned when a settlement exists but is no
	// longer pending; terminal settlements are immutable.
	ErrAlreadySettled = errors.New("settlement is no longer pending")

	// ErrRequesterResolution marks the internal fault where the
	// requester upsert unexpectedly yields no row.
	ErrRequesterResolution = errors.New("unable to resolve requester")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrVenueNotFound) ||
		errors.Is(err, ErrReservationNotFound)
}

// IsConflict reports whether err represents a state conflict that the
// client may resolve by re-reading current state.
func IsConflict(err error) bool {
	return errors.Is(err, ErrCapacityExceeded) || errors.Is(err, ErrAlreadySettled)
}
