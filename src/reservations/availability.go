package reservations

import (
	"hbms/src/models"
	"hbms/src/types"
	"time"

	"gorm.io/gorm"
)

// ActiveStatuses are the reservation states that hold a claim on a room's
// dates. Cancelled and checked-out reservations never block availability.
var ActiveStatuses = []types.ReservationStatus{
	types.RESERVATION_PENDING,
	types.RESERVATION_CONFIRMED,
	types.RESERVATION_CHECKED_IN,
}

// IsAvailable reports whether the room has no active reservation overlapping
// [checkIn, checkOut). Overlap uses half-open interval semantics: [a,b) and
// [c,d) overlap iff a < d and c < b, so back-to-back stays do not conflict.
// excludeReservationID ignores the reservation being edited; pass 0 to
// consider every reservation. Callers reject zero-night ranges beforehand.
func IsAvailable(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeReservationID uint) (bool, error) {
	q := tx.
		Model(&models.Reservation{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", ActiveStatuses).
		Where("check_in_date < ? AND check_out_date > ?", DateOnly(checkOut), DateOnly(checkIn))
	if excludeReservationID != 0 {
		q = q.Where("id <> ?", excludeReservationID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}
