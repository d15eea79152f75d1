package dto

import (
	"time"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// LayerResponse is the read view of one stack entry.
type LayerResponse struct {
	ID            uint             `json:"id"`
	StackOrder    int              `json:"stack_order"`
	Type          models.LayerType `json:"type"`
	RoomID        *uint            `json:"room_id,omitempty"`
	AfterSchoolID *uint            `json:"after_school_id,omitempty"`
	LeaveSeatID   *uint            `json:"leave_seat_id,omitempty"`
	AwayRequestID *uint            `json:"away_request_id,omitempty"`
	ExitRequestID *uint            `json:"exit_request_id,omitempty"`
}

// NewLayerResponse maps a schedule layer to its read view.
func NewLayerResponse(layer models.ScheduleLayer) LayerResponse {
	return LayerResponse{
		ID:            layer.ID,
		StackOrder:    layer.StackOrder,
		Type:          layer.Type,
		RoomID:        layer.RoomID,
		AfterSchoolID: layer.AfterSchoolID,
		LeaveSeatID:   layer.LeaveSeatID,
		AwayRequestID: layer.AwayRequestID,
		ExitRequestID: layer.ExitRequestID,
	}
}

// SlotResponse is one student slot with its resolved current layer.
type SlotResponse struct {
	StudentScheduleID uint           `json:"student_schedule_id"`
	StudentID         uint           `json:"student_id"`
	StudentName       string         `json:"student_name,omitempty"`
	Day               time.Time      `json:"day"`
	Period            models.Period  `json:"period"`
	Current           *LayerResponse `json:"current,omitempty"`
}

// RoomGroup is a board column: slots whose current layer resolves to one
// room. RoomID is nil for slots without a room-bound current layer.
type RoomGroup struct {
	RoomID *uint          `json:"room_id,omitempty"`
	Slots  []SlotResponse `json:"slots"`
}

// StudentScheduleGroup groups a student's slots for one day.
type StudentScheduleGroup struct {
	StudentID   uint           `json:"student_id"`
	StudentName string         `json:"student_name"`
	Slots       []SlotResponse `json:"slots"`
}

// RoomOccupancyResponse is the head-count view for one room, day and
// period. It resolves physical location, so students who stepped out
// (AWAY/EXIT on top of the stack) are still counted in their room.
type RoomOccupancyResponse struct {
	RoomID   uint           `json:"room_id"`
	Day      time.Time      `json:"day"`
	Period   models.Period  `json:"period"`
	Count    int            `json:"count"`
	Students []SlotResponse `json:"students"`
}
