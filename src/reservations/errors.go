package reservations

import "errors"

var (
	ErrInvalidRange      = errors.New("check-out date must be after check-in date")
	ErrRoomUnavailable   = errors.New("room is not available for the requested dates")
	ErrCapacityExceeded  = errors.New("guests count exceeds room max occupancy")
	ErrInvalidTransition = errors.New("status change not permitted from current state")
	ErrPrecondition      = errors.New("transition precondition not met")
	ErrNotFound          = errors.New("record not found")
)
