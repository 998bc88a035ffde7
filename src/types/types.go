package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Metadata map[string]any

const DATE_PARSE_FORMAT = "2006-01-02"

type UserRole string

const (
	ROLE_GUEST        UserRole = "guest"
	ROLE_RECEPTIONIST UserRole = "receptionist"
	ROLE_ADMIN        UserRole = "admin"
)

type RoomType string

const (
	ROOM_INDIVIDUAL RoomType = "individual"
	ROOM_DOUBLE     RoomType = "double"
	ROOM_SUITE      RoomType = "suite"
	ROOM_FAMILY     RoomType = "family"
)

type RoomStatus string

const (
	ROOM_AVAILABLE   RoomStatus = "available"
	ROOM_OCCUPIED    RoomStatus = "occupied"
	ROOM_MAINTENANCE RoomStatus = "maintenance"
	ROOM_CLEANING    RoomStatus = "cleaning"
)

type ReservationStatus string

const (
	RESERVATION_PENDING     ReservationStatus = "pending"
	RESERVATION_CONFIRMED   ReservationStatus = "confirmed"
	RESERVATION_CHECKED_IN  ReservationStatus = "checked_in"
	RESERVATION_CHECKED_OUT ReservationStatus = "checked_out"
	RESERVATION_CANCELLED   ReservationStatus = "cancelled"
)

type PaymentMethod string

const (
	PAYMENT_CASH PaymentMethod = "cash"
	PAYMENT_CARD PaymentMethod = "card"
)

type PaymentStatus string

const (
	PAYMENT_PENDING   PaymentStatus = "pending"
	PAYMENT_COMPLETED PaymentStatus = "completed"
	PAYMENT_FAILED    PaymentStatus = "failed"
)

// The front desk UI displays statuses in Spanish. This is the single
// presentation-side mapping; storage always uses the English enums.
var reservationStatusDisplay = map[ReservationStatus]string{
	RESERVATION_PENDING:     "Pendiente",
	RESERVATION_CONFIRMED:   "Confirmada",
	RESERVATION_CHECKED_IN:  "Registrada",
	RESERVATION_CHECKED_OUT: "Completada",
	RESERVATION_CANCELLED:   "Cancelada",
}

var roomStatusDisplay = map[RoomStatus]string{
	ROOM_AVAILABLE:   "Disponible",
	ROOM_OCCUPIED:    "Ocupada",
	ROOM_MAINTENANCE: "En Mantenimiento",
	ROOM_CLEANING:    "En Limpieza",
}

var roomTypeDisplay = map[RoomType]string{
	ROOM_INDIVIDUAL: "Individual",
	ROOM_DOUBLE:     "Doble",
	ROOM_SUITE:      "Suite",
	ROOM_FAMILY:     "Familiar",
}

func (s ReservationStatus) Display() string {
	if d, ok := reservationStatusDisplay[s]; ok {
		return d
	}
	return string(s)
}

func (s RoomStatus) Display() string {
	if d, ok := roomStatusDisplay[s]; ok {
		return d
	}
	return string(s)
}

func (t RoomType) Display() string {
	if d, ok := roomTypeDisplay[t]; ok {
		return d
	}
	return string(t)
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type RegisterRequestBody struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type LoginRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateStaffRequestBody struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role" binding:"required,oneof=receptionist admin"`
}

type CreateRoomRequestBody struct {
	Number       string  `json:"number" binding:"required"`
	Type         string  `json:"type" binding:"required,oneof=individual double suite family"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	MaxOccupancy uint    `json:"max_occupancy" binding:"required,gt=0"`
	Description  string  `json:"description,omitempty"`
	Amenities    string  `json:"amenities,omitempty"`
	Status       string  `json:"status,omitempty" binding:"omitempty,oneof=available maintenance cleaning"`
}

type UpdateRoomRequestBody struct {
	Number       *string  `json:"number,omitempty"`
	Type         *string  `json:"type,omitempty" binding:"omitempty,oneof=individual double suite family"`
	Price        *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	MaxOccupancy *uint    `json:"max_occupancy,omitempty" binding:"omitempty,gt=0"`
	Description  *string  `json:"description,omitempty"`
	Amenities    *string  `json:"amenities,omitempty"`
}

type UpdateRoomStatusRequestBody struct {
	Status string `json:"status" binding:"required,oneof=available maintenance cleaning"`
}

type CreateReservationRequestBody struct {
	RoomID          uint   `json:"room_id" binding:"required"`
	CheckInDate     string `json:"check_in_date" binding:"required,bookabledate"`
	CheckOutDate    string `json:"check_out_date" binding:"required,afterfield=CheckInDate"`
	GuestsCount     uint   `json:"guests_count" binding:"required,min=1"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

type UpdateReservationDatesRequestBody struct {
	CheckInDate  string `json:"check_in_date" binding:"required,bookabledate"`
	CheckOutDate string `json:"check_out_date" binding:"required,afterfield=CheckInDate"`
}

type AvailabilityQuery struct {
	CheckInDate  string `form:"check_in" binding:"required"`
	CheckOutDate string `form:"check_out" binding:"required"`
}

type RecordPaymentRequestBody struct {
	Method string `json:"method" binding:"required,oneof=cash card"`
	Detail string `json:"detail,omitempty"`
}

type UpdateProfileRequestBody struct {
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

type ChangePasswordRequestBody struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}
