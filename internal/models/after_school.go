package models

import "time"

// AfterSchoolOffering is a recurring after-school class with a fixed
// weekday and period, active while its branch is active.
type AfterSchoolOffering struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	BranchID  uint         `gorm:"index;not null" json:"branch_id"`
	Name      string       `gorm:"size:255;not null" json:"name"`
	Weekday   time.Weekday `gorm:"not null" json:"weekday"`
	Period    Period       `gorm:"size:32;not null" json:"period"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	Enrollments []AfterSchoolEnrollment `gorm:"foreignKey:OfferingID;constraint:OnDelete:CASCADE" json:"enrollments,omitempty"`
}

// AfterSchoolEnrollment puts one student on an offering's roster.
type AfterSchoolEnrollment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OfferingID uint      `gorm:"uniqueIndex:idx_as_roster,priority:1;not null" json:"offering_id"`
	StudentID  uint      `gorm:"uniqueIndex:idx_as_roster,priority:2;not null" json:"student_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// AfterSchoolReinforcement moves one occurrence of an offering to a
// different day and period, keeping the original roster.
type AfterSchoolReinforcement struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OfferingID   uint      `gorm:"index;not null" json:"offering_id"`
	ChangeDay    time.Time `gorm:"index;not null" json:"change_day"`
	ChangePeriod Period    `gorm:"size:32;not null" json:"change_period"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BusinessTrip cancels one occurrence of an offering when the teacher is
// away on an approved trip for that date.
type BusinessTrip struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OfferingID uint      `gorm:"index;not null" json:"offering_id"`
	Day        time.Time `gorm:"index;not null" json:"day"`
	Approved   bool      `gorm:"not null;default:false" json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
