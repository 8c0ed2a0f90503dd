// Package entity defines the domain entities for the auth feature.
package entity

import (
	"strings"
	"time"
)

// Departments is the fixed list of departments a user can belong to.
var Departments = []string{
	"Engineering",
	"Finance",
	"Quality Assurance",
	"Warehouse",
	"Sales",
	"Human Resources",
}

// ValidDepartment reports whether dept is one of the fixed departments.
func ValidDepartment(dept string) bool {
	for _, d := range Departments {
		if d == dept {
			return true
		}
	}
	return false
}

// adminTitles are the job titles that grant access to the admin surface.
var adminTitles = []string{"admin", "administrator", "manager"}

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the login name. It must be unique across all users.
	Username string `gorm:"uniqueIndex:idx_users_username;size:80;not null"`

	// Email is the user's email address.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex:idx_users_email;size:120;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	Password string `gorm:"size:200;not null"`

	// FirstName, Surname and IDNumber are optional HR details.
	FirstName *string `gorm:"size:100"`
	Surname   *string `gorm:"size:100"`
	IDNumber  *string `gorm:"size:50"`

	// Department is one of the fixed Departments values.
	Department string `gorm:"size:100;not null"`

	// JobTitle is free text, deduplicated into the job_titles table.
	JobTitle string `gorm:"size:100;not null"`

	// TwoFactorEnabled reports whether TOTP verification is required at login.
	// Only a verified 2FA setup ever sets it to true.
	TwoFactorEnabled bool `gorm:"default:false"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time
}

// TableName overrides the default gorm table name.
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user's job title grants access to the
// administrative surface.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	for _, title := range adminTitles {
		if strings.EqualFold(u.JobTitle, title) {
			return true
		}
	}
	return false
}
