package reservations

import (
	"errors"
	"fmt"
	"hbms/src/models"
	"hbms/src/types"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service owns the reservation lifecycle. Every room status write caused by
// a reservation goes through here; route handlers never mutate room state
// directly. The db handle and clock are injected, no package globals.
type Service struct {
	db    *gorm.DB
	clock Clock
}

func New(db *gorm.DB, clock Clock) *Service {
	if clock == nil {
		clock = systemClock{}
	}
	return &Service{db: db, clock: clock}
}

type CreateInput struct {
	GuestID         uint
	RoomID          uint
	CheckIn         time.Time
	CheckOut        time.Time
	GuestsCount     uint
	SpecialRequests string
}

// lockForUpdate takes a row lock so two concurrent booking attempts for the
// same room serialize on it. sqlite (used by the test suites) has no
// SELECT ... FOR UPDATE; its single-writer model covers the tests.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() != "postgres" {
		return tx
	}
	return tx.Clauses(clause.Locking{
		Strength: "UPDATE",
		Table:    clause.Table{Name: clause.CurrentTable},
	})
}

// CheckAvailability answers whether the room can be booked for the range.
// Read-only, no locks.
func (s *Service) CheckAvailability(roomID uint, checkIn, checkOut time.Time) (bool, error) {
	if NightsBetween(checkIn, checkOut) <= 0 {
		return false, ErrInvalidRange
	}
	var room models.Room
	if err := s.db.Where(&models.Room{ID: roomID}).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: room %d", ErrNotFound, roomID)
		}
		return false, err
	}
	return IsAvailable(s.db, roomID, checkIn, checkOut, 0)
}

// SearchRooms lists rooms bookable for the range: capacity and type filters
// applied, rooms under maintenance excluded, and no overlapping active
// reservation. Read-only, no locks.
func (s *Service) SearchRooms(checkIn, checkOut time.Time, guests uint, roomType types.RoomType) ([]models.Room, error) {
	if NightsBetween(checkIn, checkOut) <= 0 {
		return nil, ErrInvalidRange
	}
	tx := s.db.
		Model(&models.Room{}).
		Where("status <> ?", types.ROOM_MAINTENANCE).
		Order("number asc")
	if guests > 0 {
		tx = tx.Where("max_occupancy >= ?", guests)
	}
	if roomType != "" {
		tx = tx.Where("type = ?", roomType)
	}
	var candidates []models.Room
	if err := tx.Find(&candidates).Error; err != nil {
		return nil, err
	}
	rooms := make([]models.Room, 0, len(candidates))
	for _, room := range candidates {
		free, err := IsAvailable(s.db, room.ID, checkIn, checkOut, 0)
		if err != nil {
			return nil, err
		}
		if free {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}

// CreateReservation books a room for a guest. The availability check and the
// insert run in one transaction holding the room row lock, so overlapping
// concurrent attempts cannot both succeed.
func (s *Service) CreateReservation(input *CreateInput) (*models.Reservation, error) {
	if NightsBetween(input.CheckIn, input.CheckOut) <= 0 {
		return nil, ErrInvalidRange
	}
	var reservation models.Reservation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := lockForUpdate(tx).
			Where(&models.Room{ID: input.RoomID}).
			First(&room).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %d", ErrNotFound, input.RoomID)
			}
			return err
		}
		if input.GuestsCount < 1 || input.GuestsCount > room.MaxOccupancy {
			return fmt.Errorf("%w: %d guests, room %s holds %d", ErrCapacityExceeded, input.GuestsCount, room.Number, room.MaxOccupancy)
		}
		free, err := IsAvailable(tx, room.ID, input.CheckIn, input.CheckOut, 0)
		if err != nil {
			return err
		}
		if !free {
			return fmt.Errorf("%w: room %s, %s to %s", ErrRoomUnavailable, room.Number,
				DateOnly(input.CheckIn).Format(types.DATE_PARSE_FORMAT),
				DateOnly(input.CheckOut).Format(types.DATE_PARSE_FORMAT))
		}
		total, err := CalculateTotal(room.Price, input.CheckIn, input.CheckOut)
		if err != nil {
			return err
		}
		reservation = models.Reservation{
			Reference:       uuid.NewString(),
			GuestID:         input.GuestID,
			RoomID:          room.ID,
			CheckInDate:     DateOnly(input.CheckIn),
			CheckOutDate:    DateOnly(input.CheckOut),
			GuestsCount:     input.GuestsCount,
			TotalPrice:      total,
			Status:          types.RESERVATION_PENDING,
			SpecialRequests: input.SpecialRequests,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ConfirmReservation moves pending -> confirmed and records who confirmed.
func (s *Service) ConfirmReservation(reservationID, staffID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.loadReservation(tx, reservationID, &reservation); err != nil {
			return err
		}
		next, err := NextStatus(reservation.Status, EventConfirm)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		reservation.Status = next
		reservation.ConfirmedAt = &now
		reservation.ConfirmedByID = &staffID
		return tx.Save(&reservation).Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CheckIn moves confirmed -> checked_in and marks the room occupied. Fails
// with ErrPrecondition before the check-in date, or when the room is already
// held by another overlapping checked-in reservation (stale double booking
// that slipped past availability).
func (s *Service) CheckIn(reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.loadReservation(tx, reservationID, &reservation); err != nil {
			return err
		}
		next, err := NextStatus(reservation.Status, EventCheckIn)
		if err != nil {
			return err
		}
		today := s.clock.Today()
		if today.Before(DateOnly(reservation.CheckInDate)) {
			return fmt.Errorf("%w: check-in date is %s", ErrPrecondition,
				reservation.CheckInDate.Format(types.DATE_PARSE_FORMAT))
		}
		var room models.Room
		if err := lockForUpdate(tx).
			Where(&models.Room{ID: reservation.RoomID}).
			First(&room).
			Error; err != nil {
			return err
		}
		held, err := s.heldByAnother(tx, &reservation)
		if err != nil {
			return err
		}
		if held {
			return fmt.Errorf("%w: room %s is occupied by another reservation", ErrPrecondition, room.Number)
		}
		now := time.Now().UTC()
		reservation.Status = next
		reservation.CheckedInAt = &now
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}
		return tx.
			Model(&models.Room{}).
			Where(&models.Room{ID: room.ID}).
			Update("status", types.ROOM_OCCUPIED).
			Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CheckOut moves checked_in -> checked_out and sends the room to cleaning.
func (s *Service) CheckOut(reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.loadReservation(tx, reservationID, &reservation); err != nil {
			return err
		}
		next, err := NextStatus(reservation.Status, EventCheckOut)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		reservation.Status = next
		reservation.CheckedOutAt = &now
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}
		return tx.
			Model(&models.Room{}).
			Where(&models.Room{ID: reservation.RoomID}).
			Update("status", types.ROOM_CLEANING).
			Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CancelReservation cancels a pending or confirmed reservation. A
// checked-in stay cannot be cancelled, only checked out. If the room shows
// occupied with no other reservation holding it, it is released to cleaning.
func (s *Service) CancelReservation(reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.loadReservation(tx, reservationID, &reservation); err != nil {
			return err
		}
		next, err := NextStatus(reservation.Status, EventCancel)
		if err != nil {
			return err
		}
		reservation.Status = next
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}
		var room models.Room
		if err := lockForUpdate(tx).
			Where(&models.Room{ID: reservation.RoomID}).
			First(&room).
			Error; err != nil {
			return err
		}
		if room.Status != types.ROOM_OCCUPIED {
			return nil
		}
		occupied, err := s.occupiedByAnother(tx, room.ID, reservation.ID)
		if err != nil {
			return err
		}
		if occupied {
			return nil
		}
		return tx.
			Model(&models.Room{}).
			Where(&models.Room{ID: room.ID}).
			Update("status", types.ROOM_CLEANING).
			Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// UpdateReservationDates moves a pending reservation to a new date range,
// re-checking availability with the reservation excluded from its own
// overlap and recomputing the total from the room's current nightly rate.
func (s *Service) UpdateReservationDates(reservationID uint, checkIn, checkOut time.Time) (*models.Reservation, error) {
	if NightsBetween(checkIn, checkOut) <= 0 {
		return nil, ErrInvalidRange
	}
	var reservation models.Reservation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.loadReservation(tx, reservationID, &reservation); err != nil {
			return err
		}
		if reservation.Status != types.RESERVATION_PENDING {
			return fmt.Errorf("%w: %s -> edit dates", ErrInvalidTransition, reservation.Status)
		}
		var room models.Room
		if err := lockForUpdate(tx).
			Where(&models.Room{ID: reservation.RoomID}).
			First(&room).
			Error; err != nil {
			return err
		}
		free, err := IsAvailable(tx, room.ID, checkIn, checkOut, reservation.ID)
		if err != nil {
			return err
		}
		if !free {
			return fmt.Errorf("%w: room %s, %s to %s", ErrRoomUnavailable, room.Number,
				DateOnly(checkIn).Format(types.DATE_PARSE_FORMAT),
				DateOnly(checkOut).Format(types.DATE_PARSE_FORMAT))
		}
		total, err := CalculateTotal(room.Price, checkIn, checkOut)
		if err != nil {
			return err
		}
		reservation.CheckInDate = DateOnly(checkIn)
		reservation.CheckOutDate = DateOnly(checkOut)
		reservation.TotalPrice = total
		return tx.Save(&reservation).Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (s *Service) loadReservation(tx *gorm.DB, id uint, out *models.Reservation) error {
	if err := lockForUpdate(tx).
		Where(&models.Reservation{ID: id}).
		First(out).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: reservation %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

// heldByAnother reports whether a different checked-in reservation with
// overlapping dates currently holds this reservation's room.
func (s *Service) heldByAnother(tx *gorm.DB, reservation *models.Reservation) (bool, error) {
	var count int64
	err := tx.
		Model(&models.Reservation{}).
		Where("room_id = ?", reservation.RoomID).
		Where("status = ?", types.RESERVATION_CHECKED_IN).
		Where("id <> ?", reservation.ID).
		Where("check_in_date < ? AND check_out_date > ?", reservation.CheckOutDate, reservation.CheckInDate).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// occupiedByAnother reports whether any other reservation is checked in to
// the room right now, date range aside. Used on cancel: the occupant keeps
// the room regardless of how the cancelled range relates to their stay.
func (s *Service) occupiedByAnother(tx *gorm.DB, roomID, excludeReservationID uint) (bool, error) {
	var count int64
	err := tx.
		Model(&models.Reservation{}).
		Where("room_id = ?", roomID).
		Where("status = ?", types.RESERVATION_CHECKED_IN).
		Where("id <> ?", excludeReservationID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
