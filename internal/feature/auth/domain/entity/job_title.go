package entity

import "time"

// JobTitle is a deduplicated dictionary entry for free-text job titles.
// Rows are appended lazily whenever a user is created or updated with a
// previously unseen title; they are never deleted in normal operation.
type JobTitle struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"uniqueIndex:idx_job_titles_title;size:100;not null"`
	CreatedAt time.Time
}

// TableName overrides the default gorm table name.
func (JobTitle) TableName() string {
	return "job_titles"
}
