package models

import "time"

// LayerType discriminates the activity a schedule layer represents.
type LayerType string

// The closed set of layer types. AFTER_SCHOOL_REINFORCEMENT only
// discriminates the strategy that handles rescheduled occurrences; the
// layers it writes carry the ordinary AFTER_SCHOOL type.
const (
	LayerSelfStudy                LayerType = "SELF_STUDY"
	LayerAdditionalSelfStudy      LayerType = "ADDITIONAL_SELF_STUDY"
	LayerAfterSchool              LayerType = "AFTER_SCHOOL"
	LayerAfterSchoolReinforcement LayerType = "AFTER_SCHOOL_REINFORCEMENT"
	LayerLeaveSeat                LayerType = "LEAVE_SEAT"
	LayerFixedLeaveSeat           LayerType = "FIXED_LEAVE_SEAT"
	LayerAway                     LayerType = "AWAY"
	LayerExit                     LayerType = "EXIT"
)

// Physical reports whether a layer of this type keeps the student in a room.
// AWAY and EXIT record that the student left; they do not erase where the
// student was assigned, so occupancy reads skip them.
func (t LayerType) Physical() bool {
	return t != LayerAway && t != LayerExit
}

// ScheduleLayer is one append-only stack entry on a StudentSchedule.
// StackOrder is strictly increasing within one owner; the entry with the
// largest StackOrder is the student's current state. Exactly one of the
// detail references is set, matching Type.
type ScheduleLayer struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	StudentScheduleID uint      `gorm:"uniqueIndex:idx_stack,priority:1;not null" json:"student_schedule_id"`
	StackOrder        int       `gorm:"uniqueIndex:idx_stack,priority:2;not null" json:"stack_order"`
	Type              LayerType `gorm:"size:32;index;not null" json:"type"`
	RoomID            *uint     `gorm:"index" json:"room_id,omitempty"`
	AfterSchoolID     *uint     `json:"after_school_id,omitempty"`
	LeaveSeatID       *uint     `json:"leave_seat_id,omitempty"`
	AwayRequestID     *uint     `json:"away_request_id,omitempty"`
	ExitRequestID     *uint     `json:"exit_request_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
