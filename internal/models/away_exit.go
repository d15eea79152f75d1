package models

import "time"

// AwayRequest records that a student steps out of their seat for one day
// and period but remains on the premises.
type AwayRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"index;not null" json:"student_id"`
	Day       time.Time `gorm:"index;not null" json:"day"`
	Period    Period    `gorm:"size:32;not null" json:"period"`
	Reason    string    `gorm:"size:255" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExitRequest records that a student leaves the building for one day and
// period.
type ExitRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"index;not null" json:"student_id"`
	Day       time.Time `gorm:"index;not null" json:"day"`
	Period    Period    `gorm:"size:32;not null" json:"period"`
	Reason    string    `gorm:"size:255" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
