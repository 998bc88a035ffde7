package reservations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateTotal(t *testing.T) {
	total, err := CalculateTotal(100.00, date(2024, 1, 10), date(2024, 1, 13))
	assert.Nil(t, err)
	assert.Equal(t, 300.00, total)

	total, err = CalculateTotal(150.50, date(2024, 3, 1), date(2024, 3, 3))
	assert.Nil(t, err)
	assert.Equal(t, 301.00, total)

	total, err = CalculateTotal(99.99, date(2024, 1, 1), date(2024, 1, 4))
	assert.Nil(t, err)
	assert.Equal(t, 299.97, total)
}

func TestCalculateTotalZeroNights(t *testing.T) {
	_, err := CalculateTotal(100.00, date(2024, 1, 10), date(2024, 1, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = CalculateTotal(100.00, date(2024, 1, 10), date(2024, 1, 5))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNightsBetweenIgnoresTimeComponent(t *testing.T) {
	in := time.Date(2024, 1, 10, 23, 30, 0, 0, time.UTC)
	out := time.Date(2024, 1, 12, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, NightsBetween(in, out))
}
