package models

import (
	"fmt"
	"hbms/src/types"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"uniqueIndex" json:"username,omitempty"`
	Email        string         `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string         `json:"-"`
	Role         types.UserRole `gorm:"default:'guest'" json:"role,omitempty"`
	FirstName    string         `json:"first_name,omitempty"`
	LastName     string         `json:"last_name,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	Active       bool           `gorm:"default:true" json:"active,omitempty"`

	Reservations []Reservation `gorm:"foreignKey:guest_id" json:"reservations,omitempty"`

	types.Timestamps
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) IsAdmin() bool {
	return u.Role == types.ROLE_ADMIN
}

func (u *User) IsReceptionist() bool {
	return u.Role == types.ROLE_RECEPTIONIST
}

func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
	}
	return u.Username
}
