package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// BranchRepository resolves the academic term active on a date.
type BranchRepository interface {
	FindActiveBranch(ctx context.Context, date time.Time) (models.Branch, error)
}

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository constructs a branch repository.
func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) FindActiveBranch(ctx context.Context, date time.Time) (models.Branch, error) {
	var branch models.Branch
	if err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", date, date).
		Order("start_date DESC").
		First(&branch).Error; err != nil {
		return models.Branch{}, err
	}

	return branch, nil
}
