package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
	"github.com/noah-isme/sma-schedule-engine/internal/repository"
)

// LeaveSeatStrategy layers leave seats onto their rosters. Many students
// share one seat; each gets their own layer pointing at it. ApplySeat is
// reachable directly for the immediate-apply edit path.
type LeaveSeatStrategy struct {
	seats     repository.LeaveSeatRepository
	slots     repository.StudentScheduleRepository
	schedules ScheduleService
	logger    zerolog.Logger
}

// NewLeaveSeatStrategy constructs the leave seat strategy.
func NewLeaveSeatStrategy(seats repository.LeaveSeatRepository, slots repository.StudentScheduleRepository, schedules ScheduleService, logger zerolog.Logger) *LeaveSeatStrategy {
	return &LeaveSeatStrategy{
		seats:     seats,
		slots:     slots,
		schedules: schedules,
		logger:    logger.With().Str("component", "leave_seat_strategy").Logger(),
	}
}

// Type implements SchedulingStrategy.
func (s *LeaveSeatStrategy) Type() models.LayerType {
	return models.LayerLeaveSeat
}

// Apply implements SchedulingStrategy.
func (s *LeaveSeatStrategy) Apply(ctx context.Context, baseDate time.Time) error {
	base := DateOnly(baseDate)

	seats, err := s.seats.FindBetween(ctx, base, WeekSunday(base))
	if err != nil {
		return err
	}

	for _, seat := range seats {
		if err := s.ApplySeat(ctx, seat); err != nil {
			return err
		}
	}

	return nil
}

// ApplySeat layers one seat onto each member's slot for the seat's day and
// period. Members without a slot are skipped.
func (s *LeaveSeatStrategy) ApplySeat(ctx context.Context, seat models.LeaveSeat) error {
	for _, member := range seat.Members {
		slot, err := s.slots.FindBySlot(ctx, member.StudentID, DateOnly(seat.Day), seat.Period)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}

			return err
		}

		seatID := seat.ID
		roomID := seat.RoomID
		if _, err := s.schedules.AppendLayer(ctx, slot.ID, models.LayerLeaveSeat, LayerDetail{LeaveSeatID: &seatID, RoomID: &roomID}); err != nil {
			return err
		}
	}

	return nil
}
