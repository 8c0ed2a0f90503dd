package entity

import "time"

// PasswordReset is a single-use, time-limited token permitting one password
// change without knowing the old password. Rows are consumed (deleted) on
// successful verification; expired rows are deleted lazily when checked.
type PasswordReset struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Token     string `gorm:"uniqueIndex:idx_password_resets_token;size:64;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TableName overrides the default gorm table name.
func (PasswordReset) TableName() string {
	return "password_resets"
}

// Expired reports whether the token's expiry has passed at the given time.
func (p *PasswordReset) Expired(now time.Time) bool {
	return p.ExpiresAt.Before(now)
}
