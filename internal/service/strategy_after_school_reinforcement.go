package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
	"github.com/noah-isme/sma-schedule-engine/internal/repository"
)

// AfterSchoolReinforcementStrategy applies reschedule overrides: the
// original offering's roster is layered at the override's day and period
// instead of the offering's normal slot. The layers it writes carry the
// ordinary AFTER_SCHOOL type, not a distinct one.
type AfterSchoolReinforcementStrategy struct {
	afterSchool repository.AfterSchoolRepository
	slots       repository.StudentScheduleRepository
	schedules   ScheduleService
	logger      zerolog.Logger
}

// NewAfterSchoolReinforcementStrategy constructs the reinforcement strategy.
func NewAfterSchoolReinforcementStrategy(afterSchool repository.AfterSchoolRepository, slots repository.StudentScheduleRepository, schedules ScheduleService, logger zerolog.Logger) *AfterSchoolReinforcementStrategy {
	return &AfterSchoolReinforcementStrategy{
		afterSchool: afterSchool,
		slots:       slots,
		schedules:   schedules,
		logger:      logger.With().Str("component", "after_school_reinforcement_strategy").Logger(),
	}
}

// Type implements SchedulingStrategy.
func (s *AfterSchoolReinforcementStrategy) Type() models.LayerType {
	return models.LayerAfterSchoolReinforcement
}

// Apply implements SchedulingStrategy.
func (s *AfterSchoolReinforcementStrategy) Apply(ctx context.Context, baseDate time.Time) error {
	base := DateOnly(baseDate)

	reinforcements, err := s.afterSchool.FindReinforcementsBetween(ctx, base, WeekSunday(base))
	if err != nil {
		return err
	}

	for _, reinforcement := range reinforcements {
		if err := s.ApplyRecord(ctx, reinforcement); err != nil {
			return err
		}
	}

	return nil
}

// ApplyRecord layers one reinforcement onto the original offering's roster
// at the override day and period.
func (s *AfterSchoolReinforcementStrategy) ApplyRecord(ctx context.Context, reinforcement models.AfterSchoolReinforcement) error {
	offering, err := s.afterSchool.GetOffering(ctx, reinforcement.OfferingID)
	if err != nil {
		return err
	}

	return layerOfferingOccurrence(ctx, s.slots, s.schedules, offering, DateOnly(reinforcement.ChangeDay), reinforcement.ChangePeriod)
}
