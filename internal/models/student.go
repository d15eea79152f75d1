package models

import "time"

// Student represents a learner enrolled for an academic year.
type Student struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Year        int       `gorm:"index;not null" json:"year"`
	Grade       int       `gorm:"not null" json:"grade"`
	ClassNumber int       `gorm:"not null" json:"class_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
