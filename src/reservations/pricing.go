package reservations

import (
	"math"
	"time"
)

// NightsBetween counts whole nights in the half-open range [checkIn, checkOut).
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(DateOnly(checkOut).Sub(DateOnly(checkIn)).Hours() / 24)
}

// CalculateTotal computes nightlyRate x nights, rounded half-up to two
// decimals to match currency display. Returns ErrInvalidRange for stays of
// zero or negative length.
func CalculateTotal(nightlyRate float64, checkIn, checkOut time.Time) (float64, error) {
	nights := NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return 0, ErrInvalidRange
	}
	total := nightlyRate * float64(nights)
	return math.Round(total*100) / 100, nil
}
