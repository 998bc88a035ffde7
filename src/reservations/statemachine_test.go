package reservations

import (
	"hbms/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatusTable(t *testing.T) {
	next, err := NextStatus(types.RESERVATION_PENDING, EventConfirm)
	assert.Nil(t, err)
	assert.Equal(t, types.RESERVATION_CONFIRMED, next)

	next, err = NextStatus(types.RESERVATION_CONFIRMED, EventCheckIn)
	assert.Nil(t, err)
	assert.Equal(t, types.RESERVATION_CHECKED_IN, next)

	next, err = NextStatus(types.RESERVATION_CHECKED_IN, EventCheckOut)
	assert.Nil(t, err)
	assert.Equal(t, types.RESERVATION_CHECKED_OUT, next)

	next, err = NextStatus(types.RESERVATION_PENDING, EventCancel)
	assert.Nil(t, err)
	assert.Equal(t, types.RESERVATION_CANCELLED, next)

	next, err = NextStatus(types.RESERVATION_CONFIRMED, EventCancel)
	assert.Nil(t, err)
	assert.Equal(t, types.RESERVATION_CANCELLED, next)
}

func TestNextStatusRejectsUndeclaredPairs(t *testing.T) {
	cases := []struct {
		from  types.ReservationStatus
		event Event
	}{
		{types.RESERVATION_CONFIRMED, EventConfirm},
		{types.RESERVATION_CHECKED_IN, EventCancel},
		{types.RESERVATION_CHECKED_IN, EventCheckIn},
		{types.RESERVATION_CHECKED_OUT, EventCancel},
		{types.RESERVATION_CHECKED_OUT, EventCheckOut},
		{types.RESERVATION_CANCELLED, EventConfirm},
		{types.RESERVATION_PENDING, EventCheckIn},
		{types.RESERVATION_PENDING, EventCheckOut},
	}
	for _, c := range cases {
		_, err := NextStatus(c.from, c.event)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", c.from, c.event)
	}
}
