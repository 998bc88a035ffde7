package reservations

import (
	"fmt"
	"hbms/src/types"
)

type Event string

const (
	EventConfirm  Event = "confirm"
	EventCancel   Event = "cancel"
	EventCheckIn  Event = "check_in"
	EventCheckOut Event = "check_out"
)

// transitions is the full lifecycle table. checked_out and cancelled are
// terminal; any (state, event) pair missing here is rejected.
var transitions = map[types.ReservationStatus]map[Event]types.ReservationStatus{
	types.RESERVATION_PENDING: {
		EventConfirm: types.RESERVATION_CONFIRMED,
		EventCancel:  types.RESERVATION_CANCELLED,
	},
	types.RESERVATION_CONFIRMED: {
		EventCheckIn: types.RESERVATION_CHECKED_IN,
		EventCancel:  types.RESERVATION_CANCELLED,
	},
	types.RESERVATION_CHECKED_IN: {
		EventCheckOut: types.RESERVATION_CHECKED_OUT,
	},
}

// NextStatus resolves the target state for an event, or ErrInvalidTransition
// when the lifecycle table has no entry for the pair.
func NextStatus(from types.ReservationStatus, event Event) (types.ReservationStatus, error) {
	if to, ok := transitions[from][event]; ok {
		return to, nil
	}
	return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, event)
}
