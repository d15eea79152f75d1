package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
	"github.com/noah-isme/sma-schedule-engine/internal/repository"
)

// AdditionalSelfStudyStrategy applies ad-hoc dated self-study configs.
// The same per-config layering is reachable directly (ApplyConfig) for the
// immediate-apply path when an edit targets the open week.
type AdditionalSelfStudyStrategy struct {
	configs   repository.AdditionalSelfStudyRepository
	slots     repository.StudentScheduleRepository
	schedules ScheduleService
	allocator PlaceAllocator
	logger    zerolog.Logger
}

// NewAdditionalSelfStudyStrategy constructs the additional self-study strategy.
func NewAdditionalSelfStudyStrategy(configs repository.AdditionalSelfStudyRepository, slots repository.StudentScheduleRepository, schedules ScheduleService, allocator PlaceAllocator, logger zerolog.Logger) *AdditionalSelfStudyStrategy {
	return &AdditionalSelfStudyStrategy{
		configs:   configs,
		slots:     slots,
		schedules: schedules,
		allocator: allocator,
		logger:    logger.With().Str("component", "additional_self_study_strategy").Logger(),
	}
}

// Type implements SchedulingStrategy.
func (s *AdditionalSelfStudyStrategy) Type() models.LayerType {
	return models.LayerAdditionalSelfStudy
}

// Apply implements SchedulingStrategy.
func (s *AdditionalSelfStudyStrategy) Apply(ctx context.Context, baseDate time.Time) error {
	base := DateOnly(baseDate)

	configs, err := s.configs.FindBetween(ctx, base, WeekSunday(base))
	if err != nil {
		return err
	}

	for _, config := range configs {
		if err := s.ApplyConfig(ctx, config); err != nil {
			return err
		}
	}

	return nil
}

// ApplyConfig layers one config onto the grade's slots for its date.
func (s *AdditionalSelfStudyStrategy) ApplyConfig(ctx context.Context, config models.AdditionalSelfStudyConfig) error {
	schedules, err := s.slots.FindByGradeDayPeriod(ctx, config.Grade, DateOnly(config.Day), config.Period)
	if err != nil {
		return err
	}

	for _, slot := range schedules {
		classNumber := 0
		if slot.Student != nil {
			classNumber = slot.Student.ClassNumber
		}

		roomID, err := s.allocator.Allocate(ctx, DateOnly(config.Day), config.Period, config.Grade, classNumber)
		if err != nil {
			return err
		}

		if _, err := s.schedules.AppendLayer(ctx, slot.ID, models.LayerAdditionalSelfStudy, LayerDetail{RoomID: &roomID}); err != nil {
			return err
		}
	}

	return nil
}
