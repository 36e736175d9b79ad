package model

import (
	"strings"
	"time"

	"cmsapi/internal/rbac"
)

// User represents an admin-panel account.
type User struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	FirstName string     `json:"firstName" gorm:"size:255;not null"`
	LastName  string     `json:"lastName" gorm:"size:255;not null"`
	Email     string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password  string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role      rbac.Role  `json:"role" gorm:"size:32;not null;index"`
	Status    bool       `json:"status" gorm:"not null;index"`
	Location  string     `json:"location" gorm:"size:255"`
	Avatar    string     `json:"avatar" gorm:"size:512"`
	BirthAt   *time.Time `json:"birthAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// PublicProfile is the subset of a user that may be returned to clients.
type PublicProfile struct {
	ID     uint      `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Email  string    `json:"email"`
	Role   rbac.Role `json:"role"`
}

// Profile returns the public view of u.
func (u *User) Profile() PublicProfile {
	return PublicProfile{
		ID:     u.ID,
		Name:   strings.TrimSpace(u.FirstName + " " + u.LastName),
		Avatar: u.Avatar,
		Email:  u.Email,
		Role:   u.Role,
	}
}

// NormalizeEmail lower-cases and trims an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
