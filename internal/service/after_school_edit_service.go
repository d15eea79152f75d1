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

// AfterSchoolEditService records after-school roster changes. A
// reinforcement whose override date falls in the open week is layered
// synchronously; otherwise the record waits for the rollover. Business
// trips only persist the record: the occurrence skip happens when the
// after-school strategy next runs.
type AfterSchoolEditService interface {
	CreateReinforcement(ctx context.Context, payload dto.ReinforcementRequest) (models.AfterSchoolReinforcement, error)
	RecordBusinessTrip(ctx context.Context, payload dto.BusinessTripRequest) (models.BusinessTrip, error)
}

type afterSchoolEditService struct {
	afterSchool repository.AfterSchoolRepository
	strategy    *AfterSchoolReinforcementStrategy
	gate        *ApplyGate
	lock        WeekLocker
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAfterSchoolEditService constructs an after-school edit service.
func NewAfterSchoolEditService(afterSchool repository.AfterSchoolRepository, strategy *AfterSchoolReinforcementStrategy, gate *ApplyGate, lock WeekLocker, validate *validator.Validate, logger zerolog.Logger) AfterSchoolEditService {
	return &afterSchoolEditService{
		afterSchool: afterSchool,
		strategy:    strategy,
		gate:        gate,
		lock:        lock,
		validator:   validate,
		logger:      logger.With().Str("component", "after_school_edit_service").Logger(),
	}
}

func (s *afterSchoolEditService) CreateReinforcement(ctx context.Context, payload dto.ReinforcementRequest) (models.AfterSchoolReinforcement, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.AfterSchoolReinforcement{}, err
	}

	changeDay, err := time.ParseInLocation("2006-01-02", payload.ChangeDay, time.UTC)
	if err != nil {
		return models.AfterSchoolReinforcement{}, fmt.Errorf("invalid change day: %w", err)
	}

	reinforcement := models.AfterSchoolReinforcement{
		OfferingID:   payload.OfferingID,
		ChangeDay:    DateOnly(changeDay),
		ChangePeriod: models.Period(payload.ChangePeriod),
	}
	if err := s.afterSchool.CreateReinforcement(ctx, &reinforcement); err != nil {
		return models.AfterSchoolReinforcement{}, err
	}

	if !s.gate.WithinCurrentWindow(reinforcement.ChangeDay) {
		s.logger.Info().Uint("reinforcement_id", reinforcement.ID).Msg("reinforcement deferred to rollover")
		return reinforcement, nil
	}

	release, err := s.lock.Acquire(ctx, WeekMonday(reinforcement.ChangeDay))
	if err != nil {
		return models.AfterSchoolReinforcement{}, err
	}
	defer release()

	if err := s.strategy.ApplyRecord(ctx, reinforcement); err != nil {
		return models.AfterSchoolReinforcement{}, err
	}

	s.logger.Info().Uint("reinforcement_id", reinforcement.ID).Msg("reinforcement applied immediately")

	return reinforcement, nil
}

func (s *afterSchoolEditService) RecordBusinessTrip(ctx context.Context, payload dto.BusinessTripRequest) (models.BusinessTrip, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.BusinessTrip{}, err
	}

	day, err := time.ParseInLocation("2006-01-02", payload.Day, time.UTC)
	if err != nil {
		return models.BusinessTrip{}, fmt.Errorf("invalid day: %w", err)
	}

	trip := models.BusinessTrip{
		OfferingID: payload.OfferingID,
		Day:        DateOnly(day),
		Approved:   payload.Approved,
	}
	if err := s.afterSchool.CreateBusinessTrip(ctx, &trip); err != nil {
		return models.BusinessTrip{}, err
	}

	s.logger.Info().Uint("trip_id", trip.ID).Bool("approved", trip.Approved).Msg("business trip recorded")

	return trip, nil
}
