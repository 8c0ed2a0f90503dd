// Package entity defines the domain models for the forecast feature.
package entity

import "time"

// Prediction is a forecast amount for one waste type on one future day.
type Prediction struct {
	Date      time.Time
	WasteType string
	Amount    float64
}
