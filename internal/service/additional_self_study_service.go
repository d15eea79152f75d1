package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	"github.com/noah-isme/sma-schedule-engine/internal/models"
	"github.com/noah-isme/sma-schedule-engine/internal/repository"
)

// AdditionalSelfStudyService manages ad-hoc self-study configs. Creates
// targeting the open week are layered synchronously; future weeks wait for
// the rollover. Deletes remove exactly the layers the config created,
// matched by owning slot and type, leaving sibling layer orders untouched.
type AdditionalSelfStudyService interface {
	Create(ctx context.Context, payload dto.AdditionalSelfStudyRequest) (models.AdditionalSelfStudyConfig, error)
	Delete(ctx context.Context, id uint) error
}

type additionalSelfStudyService struct {
	configs   repository.AdditionalSelfStudyRepository
	slots     repository.StudentScheduleRepository
	schedules ScheduleService
	strategy  *AdditionalSelfStudyStrategy
	gate      *ApplyGate
	lock      WeekLocker
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAdditionalSelfStudyService constructs an additional self-study service.
func NewAdditionalSelfStudyService(configs repository.AdditionalSelfStudyRepository, slots repository.StudentScheduleRepository, schedules ScheduleService, strategy *AdditionalSelfStudyStrategy, gate *ApplyGate, lock WeekLocker, validate *validator.Validate, logger zerolog.Logger) AdditionalSelfStudyService {
	return &additionalSelfStudyService{
		configs:   configs,
		slots:     slots,
		schedules: schedules,
		strategy:  strategy,
		gate:      gate,
		lock:      lock,
		validator: validate,
		logger:    logger.With().Str("component", "additional_self_study_service").Logger(),
	}
}

func (s *additionalSelfStudyService) Create(ctx context.Context, payload dto.AdditionalSelfStudyRequest) (models.AdditionalSelfStudyConfig, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.AdditionalSelfStudyConfig{}, err
	}

	day, err := time.ParseInLocation("2006-01-02", payload.Day, time.UTC)
	if err != nil {
		return models.AdditionalSelfStudyConfig{}, fmt.Errorf("invalid day: %w", err)
	}

	config := models.AdditionalSelfStudyConfig{
		Day:    DateOnly(day),
		Grade:  payload.Grade,
		Period: models.Period(payload.Period),
	}
	if err := s.configs.Create(ctx, &config); err != nil {
		return models.AdditionalSelfStudyConfig{}, err
	}

	if !s.gate.WithinCurrentWindow(config.Day) {
		s.logger.Info().Uint("config_id", config.ID).Time("day", config.Day).Msg("additional self-study deferred to rollover")
		return config, nil
	}

	release, err := s.lock.Acquire(ctx, WeekMonday(config.Day))
	if err != nil {
		return models.AdditionalSelfStudyConfig{}, err
	}
	defer release()

	if err := s.strategy.ApplyConfig(ctx, config); err != nil {
		return models.AdditionalSelfStudyConfig{}, err
	}

	s.logger.Info().Uint("config_id", config.ID).Time("day", config.Day).Msg("additional self-study applied immediately")

	return config, nil
}

func (s *additionalSelfStudyService) Delete(ctx context.Context, id uint) error {
	config, err := s.configs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConfigNotFound
		}

		return err
	}

	schedules, err := s.slots.FindByGradeDayPeriod(ctx, config.Grade, DateOnly(config.Day), config.Period)
	if err != nil {
		return err
	}

	for _, slot := range schedules {
		if err := s.schedules.RemoveLayersByOwnerAndType(ctx, slot.ID, models.LayerAdditionalSelfStudy); err != nil {
			return err
		}
	}

	if err := s.configs.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Uint("config_id", id).Int("slots", len(schedules)).Msg("additional self-study deleted")

	return nil
}
