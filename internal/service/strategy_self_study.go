package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
	"github.com/noah-isme/sma-schedule-engine/internal/repository"
)

// SelfStudyStrategy applies the per-branch blanket self-study definitions:
// every student of the configured grade gets a self-study layer in an
// allocated room for the configured weekday and period.
type SelfStudyStrategy struct {
	branches  repository.BranchRepository
	configs   repository.SelfStudyConfigRepository
	slots     repository.StudentScheduleRepository
	schedules ScheduleService
	allocator PlaceAllocator
	logger    zerolog.Logger
}

// NewSelfStudyStrategy constructs the self-study strategy.
func NewSelfStudyStrategy(branches repository.BranchRepository, configs repository.SelfStudyConfigRepository, slots repository.StudentScheduleRepository, schedules ScheduleService, allocator PlaceAllocator, logger zerolog.Logger) *SelfStudyStrategy {
	return &SelfStudyStrategy{
		branches:  branches,
		configs:   configs,
		slots:     slots,
		schedules: schedules,
		allocator: allocator,
		logger:    logger.With().Str("component", "self_study_strategy").Logger(),
	}
}

// Type implements SchedulingStrategy.
func (s *SelfStudyStrategy) Type() models.LayerType {
	return models.LayerSelfStudy
}

// Apply implements SchedulingStrategy.
func (s *SelfStudyStrategy) Apply(ctx context.Context, baseDate time.Time) error {
	base := DateOnly(baseDate)

	branch, err := s.branches.FindActiveBranch(ctx, base)
	if err != nil {
		return err
	}

	configs, err := s.configs.FindByBranch(ctx, branch.ID)
	if err != nil {
		return err
	}

	for _, config := range configs {
		day := OccurrenceInWeek(base, config.Weekday)

		schedules, err := s.slots.FindByGradeDayPeriod(ctx, config.Grade, day, config.Period)
		if err != nil {
			return err
		}

		for _, slot := range schedules {
			classNumber := 0
			if slot.Student != nil {
				classNumber = slot.Student.ClassNumber
			}

			roomID, err := s.allocator.Allocate(ctx, day, config.Period, config.Grade, classNumber)
			if err != nil {
				// Fail fast: exhausted allocation aborts the rest of this
				// strategy's run; earlier layers are not rolled back.
				return err
			}

			if _, err := s.schedules.AppendLayer(ctx, slot.ID, models.LayerSelfStudy, LayerDetail{RoomID: &roomID}); err != nil {
				return err
			}
		}
	}

	return nil
}
