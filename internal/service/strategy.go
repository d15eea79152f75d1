package service

import (
	"context"
	"time"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// SchedulingStrategy populates the layer stack for one activity kind.
// Apply reads the strategy's own source records effective for the week
// containing baseDate and appends layers onto existing slots. Strategies
// never assume pre-existing layers and never touch another strategy's
// records, so the composite can run them back to back over a freshly
// generated skeleton.
type SchedulingStrategy interface {
	Type() models.LayerType
	Apply(ctx context.Context, baseDate time.Time) error
}

// NewStrategyComposite returns the fixed strategy registration order used
// by the rollover pipeline. FixedLeaveSeat runs before LeaveSeat so that
// seats it materializes get their student layers in the same run.
func NewStrategyComposite(
	selfStudy *SelfStudyStrategy,
	additionalSelfStudy *AdditionalSelfStudyStrategy,
	afterSchool *AfterSchoolStrategy,
	reinforcement *AfterSchoolReinforcementStrategy,
	fixedLeaveSeat *FixedLeaveSeatStrategy,
	leaveSeat *LeaveSeatStrategy,
	away *AwayStrategy,
	exit *ExitStrategy,
) []SchedulingStrategy {
	return []SchedulingStrategy{
		selfStudy,
		additionalSelfStudy,
		afterSchool,
		reinforcement,
		fixedLeaveSeat,
		leaveSeat,
		away,
		exit,
	}
}
