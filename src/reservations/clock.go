package reservations

import "time"

// Clock supplies "today" for check-in date comparisons. Injected so the
// lifecycle tests can pin the calendar.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Today() time.Time {
	return DateOnly(time.Now().UTC())
}

// DateOnly strips the time component; reservation dates are calendar dates.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type fixedClock struct {
	today time.Time
}

func (c fixedClock) Today() time.Time {
	return c.today
}

// NewFixedClock returns a Clock frozen on the given day.
func NewFixedClock(today time.Time) Clock {
	return fixedClock{today: DateOnly(today)}
}
