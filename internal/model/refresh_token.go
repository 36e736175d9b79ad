package model

import "time"

// RefreshToken is a whitelist entry for one issued refresh token. The ID is
// the token's jti; only a SHA-512 digest of the token itself is stored.
type RefreshToken struct {
	ID          string    `gorm:"type:varchar(36);primaryKey"`
	HashedToken string    `gorm:"size:128;not null"`
	UserID      uint      `gorm:"not null;index"`
	Revoked     bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Active reports whether the entry may still be exchanged.
func (t *RefreshToken) Active() bool {
	return !t.Revoked
}
