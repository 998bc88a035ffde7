package models

import (
	"hbms/src/types"
)

type Payment struct {
	ID              uint                `gorm:"primarykey" json:"id"`
	ReservationID   uint                `json:"reservation_id,omitempty"`
	Amount          float64             `json:"amount,omitempty"`
	Currency        string              `gorm:"default:'usd'" json:"currency,omitempty"`
	Method          types.PaymentMethod `json:"method,omitempty"`
	Detail          string              `json:"detail,omitempty"`
	Status          types.PaymentStatus `gorm:"default:'pending'" json:"status,omitempty"`
	ReferenceID     string              `json:"reference_id,omitempty"`
	PaymentIntentID *string             `json:"-"`
	RecordedByID    uint                `json:"recorded_by,omitempty"`
	Metadata        *types.Metadata     `gorm:"type:jsonb" json:"metadata,omitempty"`

	Reservation *Reservation `gorm:"foreignKey:reservation_id" json:"reservation,omitempty"`
	RecordedBy  *User        `gorm:"foreignKey:recorded_by_id" json:"-"`

	types.Timestamps
}
