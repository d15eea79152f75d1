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

// AwayStrategy layers away requests onto their exact (student, day,
// period) slots. A request whose slot does not exist is skipped silently;
// absence of a slot is not an error.
type AwayStrategy struct {
	requests  repository.AwayRequestRepository
	slots     repository.StudentScheduleRepository
	schedules ScheduleService
	logger    zerolog.Logger
}

// NewAwayStrategy constructs the away strategy.
func NewAwayStrategy(requests repository.AwayRequestRepository, slots repository.StudentScheduleRepository, schedules ScheduleService, logger zerolog.Logger) *AwayStrategy {
	return &AwayStrategy{
		requests:  requests,
		slots:     slots,
		schedules: schedules,
		logger:    logger.With().Str("component", "away_strategy").Logger(),
	}
}

// Type implements SchedulingStrategy.
func (s *AwayStrategy) Type() models.LayerType {
	return models.LayerAway
}

// Apply implements SchedulingStrategy.
func (s *AwayStrategy) Apply(ctx context.Context, baseDate time.Time) error {
	base := DateOnly(baseDate)

	requests, err := s.requests.FindBetween(ctx, base, WeekSunday(base))
	if err != nil {
		return err
	}

	for _, request := range requests {
		slot, err := s.slots.FindBySlot(ctx, request.StudentID, DateOnly(request.Day), request.Period)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}

			return err
		}

		requestID := request.ID
		if _, err := s.schedules.AppendLayer(ctx, slot.ID, models.LayerAway, LayerDetail{AwayRequestID: &requestID}); err != nil {
			return err
		}
	}

	return nil
}

// ExitStrategy layers exit requests onto their exact (student, day,
// period) slots, with the same silent skip rule as AwayStrategy.
type ExitStrategy struct {
	requests  repository.ExitRequestRepository
	slots     repository.StudentScheduleRepository
	schedules ScheduleService
	logger    zerolog.Logger
}

// NewExitStrategy constructs the exit strategy.
func NewExitStrategy(requests repository.ExitRequestRepository, slots repository.StudentScheduleRepository, schedules ScheduleService, logger zerolog.Logger) *ExitStrategy {
	return &ExitStrategy{
		requests:  requests,
		slots:     slots,
		schedules: schedules,
		logger:    logger.With().Str("component", "exit_strategy").Logger(),
	}
}

// Type implements SchedulingStrategy.
func (s *ExitStrategy) Type() models.LayerType {
	return models.LayerExit
}

// Apply implements SchedulingStrategy.
func (s *ExitStrategy) Apply(ctx context.Context, baseDate time.Time) error {
	base := DateOnly(baseDate)

	requests, err := s.requests.FindBetween(ctx, base, WeekSunday(base))
	if err != nil {
		return err
	}

	for _, request := range requests {
		slot, err := s.slots.FindBySlot(ctx, request.StudentID, DateOnly(request.Day), request.Period)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}

			return err
		}

		requestID := request.ID
		if _, err := s.schedules.AppendLayer(ctx, slot.ID, models.LayerExit, LayerDetail{ExitRequestID: &requestID}); err != nil {
			return err
		}
	}

	return nil
}
