package models

import (
	"hbms/src/types"
	"time"
)

type Reservation struct {
	ID              uint                    `gorm:"primarykey" json:"id"`
	Reference       string                  `gorm:"uniqueIndex" json:"reference,omitempty"`
	GuestID         uint                    `json:"guest_id,omitempty"`
	RoomID          uint                    `json:"room_id,omitempty"`
	CheckInDate     time.Time               `gorm:"type:date" json:"check_in_date,omitempty"`
	CheckOutDate    time.Time               `gorm:"type:date" json:"check_out_date,omitempty"`
	GuestsCount     uint                    `gorm:"default:1" json:"guests_count,omitempty"`
	TotalPrice      float64                 `json:"total_price,omitempty"`
	Status          types.ReservationStatus `gorm:"default:'pending'" json:"status,omitempty"`
	SpecialRequests string                  `json:"special_requests,omitempty"`
	ConfirmedAt     *time.Time              `json:"confirmed_at,omitempty"`
	CheckedInAt     *time.Time              `json:"checked_in_at,omitempty"`
	CheckedOutAt    *time.Time              `json:"checked_out_at,omitempty"`
	ConfirmedByID   *uint                   `json:"confirmed_by,omitempty"`
	PaymentMethod   *types.PaymentMethod    `json:"payment_method,omitempty"`
	PaymentDetail   string                  `json:"payment_detail,omitempty"`

	Guest       *User     `gorm:"foreignKey:guest_id" json:"guest,omitempty"`
	Room        *Room     `gorm:"foreignKey:room_id" json:"room,omitempty"`
	ConfirmedBy *User     `gorm:"foreignKey:confirmed_by_id" json:"-"`
	Payments    []Payment `gorm:"foreignKey:reservation_id" json:"payments,omitempty"`

	types.Timestamps
}

func (r *Reservation) Nights() int {
	return int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24)
}
