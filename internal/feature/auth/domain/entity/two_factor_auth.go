package entity

import "time"

// TwoFactorAuth holds the TOTP secret for a user, one row per user at most.
// The row is created on first 2FA setup, before verification; the user's
// TwoFactorEnabled flag is only flipped once a code has been verified.
type TwoFactorAuth struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex:idx_two_factor_auth_user_id;not null"`
	SecretKey string `gorm:"size:64;not null"`
	CreatedAt time.Time
}

// TableName overrides the default gorm table name.
func (TwoFactorAuth) TableName() string {
	return "two_factor_auth"
}
