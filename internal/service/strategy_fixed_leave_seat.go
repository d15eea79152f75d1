package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
	"github.com/noah-isme/sma-schedule-engine/internal/repository"
)

// FixedLeaveSeatStrategy materializes weekly templates into dated leave
// seat rows, at most one per (room, date, period). It writes no student
// layers itself; the LeaveSeatStrategy picks the rows up afterwards.
type FixedLeaveSeatStrategy struct {
	templates repository.FixedLeaveSeatRepository
	seats     repository.LeaveSeatRepository
	logger    zerolog.Logger
}

// NewFixedLeaveSeatStrategy constructs the fixed leave seat strategy.
func NewFixedLeaveSeatStrategy(templates repository.FixedLeaveSeatRepository, seats repository.LeaveSeatRepository, logger zerolog.Logger) *FixedLeaveSeatStrategy {
	return &FixedLeaveSeatStrategy{
		templates: templates,
		seats:     seats,
		logger:    logger.With().Str("component", "fixed_leave_seat_strategy").Logger(),
	}
}

// Type implements SchedulingStrategy.
func (s *FixedLeaveSeatStrategy) Type() models.LayerType {
	return models.LayerFixedLeaveSeat
}

// Apply implements SchedulingStrategy.
func (s *FixedLeaveSeatStrategy) Apply(ctx context.Context, baseDate time.Time) error {
	base := DateOnly(baseDate)

	templates, err := s.templates.List(ctx)
	if err != nil {
		return err
	}

	for _, template := range templates {
		day := OccurrenceInWeek(base, template.Weekday)
		if day.Before(base) {
			continue
		}

		exists, err := s.seats.ExistsAt(ctx, template.RoomID, day, template.Period)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		templateID := template.ID
		seat := models.LeaveSeat{
			RoomID:           template.RoomID,
			Day:              day,
			Period:           template.Period,
			Cause:            template.Cause,
			FixedLeaveSeatID: &templateID,
		}
		for _, member := range template.Members {
			seat.Members = append(seat.Members, models.LeaveSeatMember{StudentID: member.StudentID})
		}

		if err := s.seats.Create(ctx, &seat); err != nil {
			return err
		}

		s.logger.Info().
			Uint("template_id", template.ID).
			Time("day", day).
			Msg("leave seat materialized from template")
	}

	return nil
}
