package models

import "time"

// StudentSchedule is the slot a student occupies for one day and period.
// Rows are created in bulk by the weekly generator and never mutated
// afterwards except for LayerSeq, the stack counter incremented atomically
// on every layer append. State changes are expressed by appending layers,
// never by editing the row.
type StudentSchedule struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"uniqueIndex:idx_slot,priority:1;not null" json:"student_id"`
	Day       time.Time `gorm:"uniqueIndex:idx_slot,priority:2;not null" json:"day"`
	Period    Period    `gorm:"uniqueIndex:idx_slot,priority:3;size:32;not null" json:"period"`
	LayerSeq  int       `gorm:"not null;default:0" json:"layer_seq"`
	CreatedAt time.Time `json:"created_at"`

	Student *Student        `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Layers  []ScheduleLayer `gorm:"foreignKey:StudentScheduleID;constraint:OnDelete:CASCADE" json:"layers,omitempty"`
}
