package models

import "time"

// Room is a physical classroom. Each (grade, class number) pair has one
// home room; the place allocator falls back to sibling class rooms of the
// same grade when the home room is taken.
type Room struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Grade       int       `gorm:"uniqueIndex:idx_home_room,priority:1;not null" json:"grade"`
	ClassNumber int       `gorm:"uniqueIndex:idx_home_room,priority:2;not null" json:"class_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
