package model

import "time"

// PasswordResetToken is a single-use, time-limited password recovery grant.
type PasswordResetToken struct {
	ID         uint      `gorm:"primaryKey"`
	ResetToken string    `gorm:"size:64;not null"`
	UserID     uint      `gorm:"not null;index"`
	ExpireTime time.Time `gorm:"not null"`
	CreatedAt  time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// ExpiredAt reports whether the token is no longer usable at now.
func (t *PasswordResetToken) ExpiredAt(now time.Time) bool {
	return !t.ExpireTime.After(now)
}
