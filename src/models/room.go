package models

import (
	"hbms/src/types"
)

type Room struct {
	ID           uint             `gorm:"primarykey" json:"id"`
	Number       string           `gorm:"uniqueIndex" json:"number,omitempty"`
	Type         types.RoomType   `json:"type,omitempty"`
	Price        float64          `json:"price,omitempty"`
	Status       types.RoomStatus `gorm:"default:'available'" json:"status,omitempty"`
	Description  string           `json:"description,omitempty"`
	Amenities    string           `json:"amenities,omitempty"`
	MaxOccupancy uint             `gorm:"default:2" json:"max_occupancy,omitempty"`

	Reservations []Reservation `gorm:"foreignKey:room_id" json:"reservations,omitempty"`

	types.Timestamps
}
