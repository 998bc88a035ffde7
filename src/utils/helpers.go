package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hbms/src/config"
	"hbms/src/lib"
	"hbms/src/models"
	"hbms/src/reservations"
	"hbms/src/types"
	"log"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func GenerateJWT(username string, id uint, role types.UserRole) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &types.Claims{
		Username: username,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", id),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// HTTPStatusForError maps domain errors to response codes.
func HTTPStatusForError(err error) int {
	switch {
	case errors.Is(err, reservations.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, reservations.ErrInvalidRange), errors.Is(err, reservations.ErrCapacityExceeded):
		return http.StatusBadRequest
	case errors.Is(err, reservations.ErrRoomUnavailable),
		errors.Is(err, reservations.ErrInvalidTransition),
		errors.Is(err, reservations.ErrPrecondition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// SendReservationConfirmation emails the guest a summary of the confirmed
// stay with a QR code of the reservation reference attached.
func SendReservationConfirmation(reservation *models.Reservation) error {
	if reservation.Guest == nil || reservation.Room == nil {
		return errors.New("reservation is missing guest or room association")
	}
	if reservation.Guest.Email == "" {
		return errors.New("guest has no email address")
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	tempdir := os.Getenv("TEMP_DIR")
	if tempdir == "" {
		tempdir = os.TempDir()
	}
	qrc, err := qrcode.New(reservation.Reference)
	if err != nil {
		return err
	}
	filepath := path.Join(wd, tempdir, fmt.Sprintf("%s.jpeg", reservation.Reference))
	if err = qrc.Save(filepath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
		return err
	}
	defer os.Remove(filepath)

	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation %s is confirmed.\n\nRoom: %s (%s)\nCheck-in: %s\nCheck-out: %s\nGuests: %d\nTotal: %.2f\n\nPlease present the attached code at the front desk.\n",
		reservation.Guest.FullName(),
		reservation.Reference,
		reservation.Room.Number,
		reservation.Room.Type.Display(),
		reservation.CheckInDate.Format(types.DATE_PARSE_FORMAT),
		reservation.CheckOutDate.Format(types.DATE_PARSE_FORMAT),
		reservation.GuestsCount,
		reservation.TotalPrice,
	)
	return lib.SendMail(&lib.SendMailInput{
		From:        config.SMTP_FROM,
		FromName:    "Reservations",
		To:          []string{reservation.Guest.Email},
		Subject:     fmt.Sprintf("Reservation confirmed: %s", reservation.Reference),
		Body:        body,
		Attachments: []string{filepath},
	})
}

type DashboardSnapshot struct {
	Date              string  `json:"date"`
	ArrivalsToday     int64   `json:"arrivals_today"`
	DeparturesToday   int64   `json:"departures_today"`
	PendingCount      int64   `json:"pending_count"`
	OccupiedRooms     int64   `json:"occupied_rooms"`
	AvailableRooms    int64   `json:"available_rooms"`
	CleaningRooms     int64   `json:"cleaning_rooms"`
	MaintenanceRooms  int64   `json:"maintenance_rooms"`
	TotalRooms        int64   `json:"total_rooms"`
	OccupancyRate     float64 `json:"occupancy_rate"`
	RevenueThisMonth  float64 `json:"revenue_this_month"`
	ActiveGuestsCount int64   `json:"active_guests_count"`
}

// BuildDashboardSnapshot aggregates today's front desk numbers. Results are
// cached in redis under the given key for a minute; callers invalidate on
// state changes via lib.InvalidateDashboards.
func BuildDashboardSnapshot(ctx context.Context, db *gorm.DB, cacheKey string) (*DashboardSnapshot, error) {
	rd := lib.GetRedisClient()
	if rd != nil {
		if cached := rd.JSONGet(ctx, cacheKey, "$").Val(); cached != "" {
			var snaps []DashboardSnapshot
			if err := json.Unmarshal([]byte(cached), &snaps); err == nil && len(snaps) > 0 {
				return &snaps[0], nil
			}
		}
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	snap := DashboardSnapshot{Date: today.Format(types.DATE_PARSE_FORMAT)}

	if err := db.Model(&models.Reservation{}).
		Where("status = ? AND check_in_date = ?", types.RESERVATION_CONFIRMED, today).
		Count(&snap.ArrivalsToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Reservation{}).
		Where("status = ? AND check_out_date = ?", types.RESERVATION_CHECKED_IN, today).
		Count(&snap.DeparturesToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Reservation{}).
		Where("status = ?", types.RESERVATION_PENDING).
		Count(&snap.PendingCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Reservation{}).
		Where("status = ?", types.RESERVATION_CHECKED_IN).
		Count(&snap.ActiveGuestsCount).Error; err != nil {
		return nil, err
	}

	type statusCount struct {
		Status types.RoomStatus
		Count  int64
	}
	var counts []statusCount
	if err := db.Model(&models.Room{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		snap.TotalRooms += c.Count
		switch c.Status {
		case types.ROOM_OCCUPIED:
			snap.OccupiedRooms = c.Count
		case types.ROOM_AVAILABLE:
			snap.AvailableRooms = c.Count
		case types.ROOM_CLEANING:
			snap.CleaningRooms = c.Count
		case types.ROOM_MAINTENANCE:
			snap.MaintenanceRooms = c.Count
		}
	}
	if snap.TotalRooms > 0 {
		snap.OccupancyRate = float64(snap.OccupiedRooms) / float64(snap.TotalRooms) * 100
	}

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	var revenue *float64
	if err := db.Model(&models.Payment{}).
		Select("sum(amount)").
		Where("status = ? AND created_at >= ?", types.PAYMENT_COMPLETED, monthStart).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	if revenue != nil {
		snap.RevenueThisMonth = *revenue
	}

	if rd != nil {
		if _, err := rd.JSONSet(ctx, cacheKey, "$", &snap).Result(); err != nil {
			log.Printf("[redis] Error updating dashboard cache: %s\n", err.Error())
		} else {
			rd.Expire(ctx, cacheKey, time.Minute)
		}
	}
	return &snap, nil
}
