package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
	"github.com/noah-isme/sma-schedule-engine/internal/repository"
)

// GeneratorService seeds the bare student schedule skeleton for a week.
// The engine schedules Monday through Thursday only; each scheduled day
// gets one slot per after-school-eligible period.
type GeneratorService interface {
	// DeleteFutureStudentSchedules removes all slots (and, through them,
	// their layers) with day in [baseDate, Sunday of that week].
	DeleteFutureStudentSchedules(ctx context.Context, baseDate time.Time) error
	// CreateStudentScheduleByStudents creates empty slots for every student
	// for each day from baseDate through that week's Thursday, never
	// retroactively. Returns the number of slots created.
	CreateStudentScheduleByStudents(ctx context.Context, students []models.Student, baseDate time.Time) (int, error)
}

type generatorService struct {
	slots  repository.StudentScheduleRepository
	logger zerolog.Logger
}

// NewGeneratorService constructs a generator service.
func NewGeneratorService(slots repository.StudentScheduleRepository, logger zerolog.Logger) GeneratorService {
	return &generatorService{
		slots:  slots,
		logger: logger.With().Str("component", "generator_service").Logger(),
	}
}

func (g *generatorService) DeleteFutureStudentSchedules(ctx context.Context, baseDate time.Time) error {
	base := DateOnly(baseDate)
	if err := g.slots.DeleteBetween(ctx, base, WeekSunday(base)); err != nil {
		return err
	}

	g.logger.Info().Time("base_date", base).Msg("future student schedules deleted")

	return nil
}

func (g *generatorService) CreateStudentScheduleByStudents(ctx context.Context, students []models.Student, baseDate time.Time) (int, error) {
	base := DateOnly(baseDate)
	thursday := WeekThursday(base)

	schedules := make([]models.StudentSchedule, 0, len(students)*4*3)
	for day := base; !day.After(thursday); day = day.AddDate(0, 0, 1) {
		for _, student := range students {
			for _, period := range models.AfterSchoolPeriods() {
				schedules = append(schedules, models.StudentSchedule{
					StudentID: student.ID,
					Day:       day,
					Period:    period,
				})
			}
		}
	}

	if err := g.slots.CreateBatch(ctx, schedules); err != nil {
		return 0, err
	}

	g.logger.Info().
		Time("base_date", base).
		Int("students", len(students)).
		Int("slots", len(schedules)).
		Msg("student schedules created")

	return len(schedules), nil
}
