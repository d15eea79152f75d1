package models

import "time"

// SelfStudyConfig is a per-branch blanket self-study definition: every
// student of the grade gets a self-study layer for the weekday and period
// while the branch is active.
type SelfStudyConfig struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	BranchID  uint         `gorm:"index;not null" json:"branch_id"`
	Grade     int          `gorm:"not null" json:"grade"`
	Weekday   time.Weekday `gorm:"not null" json:"weekday"`
	Period    Period       `gorm:"size:32;not null" json:"period"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// AdditionalSelfStudyConfig is an ad-hoc self-study assignment for one
// absolute date, grade and period. Unlike SelfStudyConfig it is dated, so
// edits may take effect immediately when the date is inside the open week.
type AdditionalSelfStudyConfig struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Day       time.Time `gorm:"index;not null" json:"day"`
	Grade     int       `gorm:"not null" json:"grade"`
	Period    Period    `gorm:"size:32;not null" json:"period"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
