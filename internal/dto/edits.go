package dto

// AdditionalSelfStudyRequest creates an ad-hoc self-study assignment for
// one date, grade and period.
type AdditionalSelfStudyRequest struct {
	Day    string `json:"day" validate:"required,datetime=2006-01-02"`
	Grade  int    `json:"grade" validate:"required,min=1"`
	Period string `json:"period" validate:"required,oneof=SEVENTH EIGHTH_NINTH TENTH_ELEVENTH"`
}

// ReinforcementRequest moves one occurrence of an after-school offering to
// a different day and period.
type ReinforcementRequest struct {
	OfferingID   uint   `json:"offering_id" validate:"required"`
	ChangeDay    string `json:"change_day" validate:"required,datetime=2006-01-02"`
	ChangePeriod string `json:"change_period" validate:"required,oneof=SEVENTH EIGHTH_NINTH TENTH_ELEVENTH"`
}

// BusinessTripRequest cancels an offering occurrence for a teacher trip.
type BusinessTripRequest struct {
	OfferingID uint   `json:"offering_id" validate:"required"`
	Day        string `json:"day" validate:"required,datetime=2006-01-02"`
	Approved   bool   `json:"approved"`
}

// LeaveSeatRequest sends a roster of students to a room for one day and
// period.
type LeaveSeatRequest struct {
	RoomID     uint   `json:"room_id" validate:"required"`
	Day        string `json:"day" validate:"required,datetime=2006-01-02"`
	Period     string `json:"period" validate:"required,oneof=SEVENTH EIGHTH_NINTH TENTH_ELEVENTH"`
	Cause      string `json:"cause" validate:"max=255"`
	StudentIDs []uint `json:"student_ids" validate:"required,min=1,dive,required"`
}

// FixedLeaveSeatRequest creates a weekly leave seat template.
type FixedLeaveSeatRequest struct {
	RoomID     uint   `json:"room_id" validate:"required"`
	Weekday    int    `json:"weekday" validate:"min=0,max=6"`
	Period     string `json:"period" validate:"required,oneof=SEVENTH EIGHTH_NINTH TENTH_ELEVENTH"`
	Cause      string `json:"cause" validate:"max=255"`
	StudentIDs []uint `json:"student_ids" validate:"required,min=1,dive,required"`
}
