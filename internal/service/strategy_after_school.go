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

// AfterSchoolStrategy layers the active branch's after-school offerings
// onto their rosters at each offering's fixed weekday and period. An
// occurrence with an approved teacher business trip is skipped whole.
type AfterSchoolStrategy struct {
	branches    repository.BranchRepository
	afterSchool repository.AfterSchoolRepository
	slots       repository.StudentScheduleRepository
	schedules   ScheduleService
	logger      zerolog.Logger
}

// NewAfterSchoolStrategy constructs the after-school strategy.
func NewAfterSchoolStrategy(branches repository.BranchRepository, afterSchool repository.AfterSchoolRepository, slots repository.StudentScheduleRepository, schedules ScheduleService, logger zerolog.Logger) *AfterSchoolStrategy {
	return &AfterSchoolStrategy{
		branches:    branches,
		afterSchool: afterSchool,
		slots:       slots,
		schedules:   schedules,
		logger:      logger.With().Str("component", "after_school_strategy").Logger(),
	}
}

// Type implements SchedulingStrategy.
func (s *AfterSchoolStrategy) Type() models.LayerType {
	return models.LayerAfterSchool
}

// Apply implements SchedulingStrategy.
func (s *AfterSchoolStrategy) Apply(ctx context.Context, baseDate time.Time) error {
	base := DateOnly(baseDate)

	branch, err := s.branches.FindActiveBranch(ctx, base)
	if err != nil {
		return err
	}

	offerings, err := s.afterSchool.FindOfferingsByBranch(ctx, branch.ID)
	if err != nil {
		return err
	}

	for _, offering := range offerings {
		day := OccurrenceInWeek(base, offering.Weekday)

		onTrip, err := s.afterSchool.HasApprovedTrip(ctx, offering.ID, day)
		if err != nil {
			return err
		}
		if onTrip {
			s.logger.Info().
				Uint("offering_id", offering.ID).
				Time("day", day).
				Msg("offering skipped for approved business trip")
			continue
		}

		if err := layerOfferingOccurrence(ctx, s.slots, s.schedules, offering, day, offering.Period); err != nil {
			return err
		}
	}

	return nil
}

// layerOfferingOccurrence appends an AFTER_SCHOOL layer for every enrolled
// student whose slot exists for the occurrence. Missing slots (a week not
// yet generated, or a day already past the base date) are skipped.
func layerOfferingOccurrence(ctx context.Context, slots repository.StudentScheduleRepository, schedules ScheduleService, offering models.AfterSchoolOffering, day time.Time, period models.Period) error {
	for _, enrollment := range offering.Enrollments {
		slot, err := slots.FindBySlot(ctx, enrollment.StudentID, day, period)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}

			return err
		}

		offeringID := offering.ID
		if _, err := schedules.AppendLayer(ctx, slot.ID, models.LayerAfterSchool, LayerDetail{AfterSchoolID: &offeringID}); err != nil {
			return err
		}
	}

	return nil
}
