// Package entity defines the domain models for the waste feature.
package entity

import "time"

// WasteTypes is the fixed list of tracked waste categories.
var WasteTypes = []string{"Paper", "Plastic", "PET", "Toxic"}

// ValidWasteType reports whether t is one of the tracked categories.
func ValidWasteType(t string) bool {
	for _, wt := range WasteTypes {
		if wt == t {
			return true
		}
	}
	return false
}

// WasteEntry represents a single recorded waste measurement in kilograms,
// attributed to the user and department that logged it.
type WasteEntry struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"index"`
	Department string    `gorm:"size:100;not null"`
	WasteType  string    `gorm:"size:50;not null"`
	Amount     float64   `gorm:"not null"`
	Timestamp  time.Time `gorm:"index"`
}

// TableName overrides the default gorm table name.
func (WasteEntry) TableName() string {
	return "waste_entries"
}

// DailyTotal is one day's aggregated amount for a single waste type.
type DailyTotal struct {
	Date      time.Time
	WasteType string
	Total     float64
}
