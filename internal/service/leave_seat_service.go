package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	"github.com/noah-isme/sma-schedule-engine/internal/models"
	"github.com/noah-isme/sma-schedule-engine/internal/repository"
)

// LeaveSeatService creates ad-hoc leave seats and the weekly templates the
// rollover materializes. An ad-hoc seat for a date inside the open window
// is layered onto its roster synchronously.
type LeaveSeatService interface {
	CreateLeaveSeat(ctx context.Context, payload dto.LeaveSeatRequest) (models.LeaveSeat, error)
	CreateFixedLeaveSeat(ctx context.Context, payload dto.FixedLeaveSeatRequest) (models.FixedLeaveSeat, error)
}

type leaveSeatService struct {
	seats     repository.LeaveSeatRepository
	templates repository.FixedLeaveSeatRepository
	strategy  *LeaveSeatStrategy
	gate      *ApplyGate
	lock      WeekLocker
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewLeaveSeatService constructs a leave seat service.
func NewLeaveSeatService(seats repository.LeaveSeatRepository, templates repository.FixedLeaveSeatRepository, strategy *LeaveSeatStrategy, gate *ApplyGate, lock WeekLocker, validate *validator.Validate, logger zerolog.Logger) LeaveSeatService {
	return &leaveSeatService{
		seats:     seats,
		templates: templates,
		strategy:  strategy,
		gate:      gate,
		lock:      lock,
		validator: validate,
		logger:    logger.With().Str("component", "leave_seat_service").Logger(),
	}
}

func (s *leaveSeatService) CreateLeaveSeat(ctx context.Context, payload dto.LeaveSeatRequest) (models.LeaveSeat, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.LeaveSeat{}, err
	}

	day, err := time.ParseInLocation("2006-01-02", payload.Day, time.UTC)
	if err != nil {
		return models.LeaveSeat{}, fmt.Errorf("invalid day: %w", err)
	}
	day = DateOnly(day)
	period := models.Period(payload.Period)

	exists, err := s.seats.ExistsAt(ctx, payload.RoomID, day, period)
	if err != nil {
		return models.LeaveSeat{}, err
	}
	if exists {
		return models.LeaveSeat{}, ErrLeaveSeatExists
	}

	seat := models.LeaveSeat{
		RoomID: payload.RoomID,
		Day:    day,
		Period: period,
		Cause:  payload.Cause,
	}
	for _, studentID := range payload.StudentIDs {
		seat.Members = append(seat.Members, models.LeaveSeatMember{StudentID: studentID})
	}

	if err := s.seats.Create(ctx, &seat); err != nil {
		return models.LeaveSeat{}, err
	}

	if !s.gate.WithinCurrentWindow(day) {
		s.logger.Info().Uint("leave_seat_id", seat.ID).Time("day", day).Msg("leave seat deferred to rollover")
		return seat, nil
	}

	release, err := s.lock.Acquire(ctx, WeekMonday(day))
	if err != nil {
		return models.LeaveSeat{}, err
	}
	defer release()

	if err := s.strategy.ApplySeat(ctx, seat); err != nil {
		return models.LeaveSeat{}, err
	}

	s.logger.Info().Uint("leave_seat_id", seat.ID).Time("day", day).Msg("leave seat applied immediately")

	return seat, nil
}

func (s *leaveSeatService) CreateFixedLeaveSeat(ctx context.Context, payload dto.FixedLeaveSeatRequest) (models.FixedLeaveSeat, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.FixedLeaveSeat{}, err
	}

	template := models.FixedLeaveSeat{
		RoomID:  payload.RoomID,
		Weekday: time.Weekday(payload.Weekday),
		Period:  models.Period(payload.Period),
		Cause:   payload.Cause,
	}
	for _, studentID := range payload.StudentIDs {
		template.Members = append(template.Members, models.FixedLeaveSeatMember{StudentID: studentID})
	}

	if err := s.templates.Create(ctx, &template); err != nil {
		return models.FixedLeaveSeat{}, err
	}

	s.logger.Info().Uint("template_id", template.ID).Msg("fixed leave seat template created")

	return template, nil
}
