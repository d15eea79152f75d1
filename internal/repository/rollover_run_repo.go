package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// RolloverRunRepository persists the audit trail of pipeline runs.
type RolloverRunRepository interface {
	Create(ctx context.Context, run *models.RolloverRun) error
	Finish(ctx context.Context, id uint, status string, counts datatypes.JSONMap, finishedAt time.Time) error
}

type rolloverRunRepository struct {
	db *gorm.DB
}

// NewRolloverRunRepository constructs a rollover run repository.
func NewRolloverRunRepository(db *gorm.DB) RolloverRunRepository {
	return &rolloverRunRepository{db: db}
}

func (r *rolloverRunRepository) Create(ctx context.Context, run *models.RolloverRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *rolloverRunRepository) Finish(ctx context.Context, id uint, status string, counts datatypes.JSONMap, finishedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.RolloverRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"counts":      counts,
			"finished_at": finishedAt,
		}).Error
}
