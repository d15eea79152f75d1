package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
	"github.com/noah-isme/sma-schedule-engine/internal/observability"
	"github.com/noah-isme/sma-schedule-engine/internal/repository"
)

// WeekLocker serializes schedule writes for one week, identified by its
// Monday. Both the rollover batch and immediate-apply edits take it.
type WeekLocker interface {
	Acquire(ctx context.Context, weekStart time.Time) (func(), error)
}

// RolloverService orchestrates the weekly batch: wipe the target week's
// slots, regenerate the skeleton for every student of the year, then run
// every registered strategy. A failed strategy aborts only its own run;
// the remaining strategies still execute.
type RolloverService interface {
	Run(ctx context.Context, baseDate time.Time) error
}

type rolloverService struct {
	generator  GeneratorService
	students   repository.StudentRepository
	strategies []SchedulingStrategy
	runs       repository.RolloverRunRepository
	lock       WeekLocker
	nats       *nats.Conn
	subject    string
	logger     zerolog.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// NewRolloverService constructs the rollover pipeline. The NATS connection
// is optional; when nil no completion event is published.
func NewRolloverService(generator GeneratorService, students repository.StudentRepository, strategies []SchedulingStrategy, runs repository.RolloverRunRepository, lock WeekLocker, natsConn *nats.Conn, logger zerolog.Logger) RolloverService {
	return &rolloverService{
		generator:  generator,
		students:   students,
		strategies: strategies,
		runs:       runs,
		lock:       lock,
		nats:       natsConn,
		subject:    "sma.schedule.rollover.completed",
		logger:     logger.With().Str("component", "rollover_service").Logger(),
		tracer:     otel.Tracer("github.com/noah-isme/sma-schedule-engine/internal/service/rollover"),
		now:        time.Now,
	}
}

type rolloverEvent struct {
	RunID    string    `json:"run_id"`
	BaseDate time.Time `json:"base_date"`
	Status   string    `json:"status"`
	Slots    int       `json:"slots"`
	Failed   []string  `json:"failed,omitempty"`
}

func (s *rolloverService) Run(ctx context.Context, baseDate time.Time) error {
	base := DateOnly(baseDate)

	release, err := s.lock.Acquire(ctx, WeekMonday(base))
	if err != nil {
		return err
	}
	defer release()

	ctx, span := s.tracer.Start(ctx, "rollover.run",
		trace.WithAttributes(attribute.String("base_date", base.Format("2006-01-02"))))
	defer span.End()

	runID := uuid.NewString()
	logger := s.logger.With().Str("run_id", runID).Logger()

	run := models.RolloverRun{
		RunID:     runID,
		BaseDate:  base,
		Status:    models.RolloverStatusRunning,
		StartedAt: s.now(),
	}
	if err := s.runs.Create(ctx, &run); err != nil {
		return err
	}

	if err := s.generator.DeleteFutureStudentSchedules(ctx, base); err != nil {
		return s.finish(ctx, run.ID, models.RolloverStatusFailed, datatypes.JSONMap{"error": err.Error()}, err)
	}

	students, err := s.students.FindByYear(ctx, base.Year())
	if err != nil {
		return s.finish(ctx, run.ID, models.RolloverStatusFailed, datatypes.JSONMap{"error": err.Error()}, err)
	}

	created, err := s.generator.CreateStudentScheduleByStudents(ctx, students, base)
	if err != nil {
		return s.finish(ctx, run.ID, models.RolloverStatusFailed, datatypes.JSONMap{"error": err.Error()}, err)
	}

	var failed []string
	for _, strategy := range s.strategies {
		started := s.now()
		_, strategySpan := s.tracer.Start(ctx, "rollover.strategy",
			trace.WithAttributes(attribute.String("type", string(strategy.Type()))))
		err := strategy.Apply(ctx, base)
		strategySpan.End()
		observability.StrategyDuration().
			WithLabelValues(string(strategy.Type())).
			Observe(s.now().Sub(started).Seconds())

		if err != nil {
			// The failed strategy's remaining records are abandoned for this
			// run; its earlier layers stay. Other strategies still run.
			logger.Error().Err(err).Str("strategy", string(strategy.Type())).Msg("strategy failed")
			failed = append(failed, string(strategy.Type()))
		}
	}

	status := models.RolloverStatusCompleted
	if len(failed) > 0 {
		status = models.RolloverStatusFailed
	}

	counts := datatypes.JSONMap{
		"students":      len(students),
		"slots_created": created,
	}
	if len(failed) > 0 {
		counts["strategies_failed"] = failed
	}

	if err := s.runs.Finish(ctx, run.ID, status, counts, s.now()); err != nil {
		return err
	}

	observability.RolloverRuns().WithLabelValues(status).Inc()
	s.publish(rolloverEvent{RunID: runID, BaseDate: base, Status: status, Slots: created, Failed: failed})

	logger.Info().
		Str("status", status).
		Int("slots_created", created).
		Strs("strategies_failed", failed).
		Msg("rollover run finished")

	return nil
}

func (s *rolloverService) finish(ctx context.Context, id uint, status string, counts datatypes.JSONMap, cause error) error {
	if err := s.runs.Finish(ctx, id, status, counts, s.now()); err != nil {
		s.logger.Error().Err(err).Msg("failed to finalize rollover run")
	}
	observability.RolloverRuns().WithLabelValues(status).Inc()

	return cause
}

func (s *rolloverService) publish(event rolloverEvent) {
	if s.nats == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode rollover event")
		return
	}

	if err := s.nats.Publish(s.subject, payload); err != nil {
		s.logger.Error().Err(err).Msg("failed to publish rollover event")
	}
}
