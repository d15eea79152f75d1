package models

import "time"

// LeaveSeat sends a roster of students to a specific room for one day and
// period (counselling, club duty, make-up work and similar causes). Rows
// are created ad hoc or materialized from a FixedLeaveSeat template, at
// most one per (room, day, period).
type LeaveSeat struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	RoomID           uint      `gorm:"uniqueIndex:idx_seat,priority:1;not null" json:"room_id"`
	Day              time.Time `gorm:"uniqueIndex:idx_seat,priority:2;not null" json:"day"`
	Period           Period    `gorm:"uniqueIndex:idx_seat,priority:3;size:32;not null" json:"period"`
	Cause            string    `gorm:"size:255" json:"cause"`
	FixedLeaveSeatID *uint     `gorm:"index" json:"fixed_leave_seat_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`

	Members []LeaveSeatMember `gorm:"foreignKey:LeaveSeatID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// LeaveSeatMember puts one student on a leave seat. Many students share
// one LeaveSeat; each gets their own schedule layer pointing at it.
type LeaveSeatMember struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LeaveSeatID uint      `gorm:"uniqueIndex:idx_seat_member,priority:1;not null" json:"leave_seat_id"`
	StudentID   uint      `gorm:"uniqueIndex:idx_seat_member,priority:2;not null" json:"student_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// FixedLeaveSeat is a weekly template that the rollover materializes into
// dated LeaveSeat rows, one per occurrence, idempotently.
type FixedLeaveSeat struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	RoomID    uint         `gorm:"not null" json:"room_id"`
	Weekday   time.Weekday `gorm:"not null" json:"weekday"`
	Period    Period       `gorm:"size:32;not null" json:"period"`
	Cause     string       `gorm:"size:255" json:"cause"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	Members []FixedLeaveSeatMember `gorm:"foreignKey:FixedLeaveSeatID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// FixedLeaveSeatMember is one student on a fixed leave seat template.
type FixedLeaveSeatMember struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	FixedLeaveSeatID uint      `gorm:"uniqueIndex:idx_fixed_member,priority:1;not null" json:"fixed_leave_seat_id"`
	StudentID        uint      `gorm:"uniqueIndex:idx_fixed_member,priority:2;not null" json:"student_id"`
	CreatedAt        time.Time `json:"created_at"`
}
