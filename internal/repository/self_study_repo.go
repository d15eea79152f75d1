package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// SelfStudyConfigRepository reads per-branch self-study definitions.
type SelfStudyConfigRepository interface {
	FindByBranch(ctx context.Context, branchID uint) ([]models.SelfStudyConfig, error)
	Create(ctx context.Context, config *models.SelfStudyConfig) error
}

type selfStudyConfigRepository struct {
	db *gorm.DB
}

// NewSelfStudyConfigRepository constructs a self-study config repository.
func NewSelfStudyConfigRepository(db *gorm.DB) SelfStudyConfigRepository {
	return &selfStudyConfigRepository{db: db}
}

func (r *selfStudyConfigRepository) FindByBranch(ctx context.Context, branchID uint) ([]models.SelfStudyConfig, error) {
	var configs []models.SelfStudyConfig
	if err := r.db.WithContext(ctx).Where("branch_id = ?", branchID).Find(&configs).Error; err != nil {
		return nil, err
	}

	return configs, nil
}

func (r *selfStudyConfigRepository) Create(ctx context.Context, config *models.SelfStudyConfig) error {
	return r.db.WithContext(ctx).Create(config).Error
}

// AdditionalSelfStudyRepository manages ad-hoc dated self-study configs.
type AdditionalSelfStudyRepository interface {
	Create(ctx context.Context, config *models.AdditionalSelfStudyConfig) error
	GetByID(ctx context.Context, id uint) (models.AdditionalSelfStudyConfig, error)
	Delete(ctx context.Context, id uint) error
	FindBetween(ctx context.Context, from, to time.Time) ([]models.AdditionalSelfStudyConfig, error)
}

type additionalSelfStudyRepository struct {
	db *gorm.DB
}

// NewAdditionalSelfStudyRepository constructs an additional self-study repository.
func NewAdditionalSelfStudyRepository(db *gorm.DB) AdditionalSelfStudyRepository {
	return &additionalSelfStudyRepository{db: db}
}

func (r *additionalSelfStudyRepository) Create(ctx context.Context, config *models.AdditionalSelfStudyConfig) error {
	return r.db.WithContext(ctx).Create(config).Error
}

func (r *additionalSelfStudyRepository) GetByID(ctx context.Context, id uint) (models.AdditionalSelfStudyConfig, error) {
	var config models.AdditionalSelfStudyConfig
	if err := r.db.WithContext(ctx).First(&config, id).Error; err != nil {
		return models.AdditionalSelfStudyConfig{}, err
	}

	return config, nil
}

func (r *additionalSelfStudyRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.AdditionalSelfStudyConfig{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *additionalSelfStudyRepository) FindBetween(ctx context.Context, from, to time.Time) ([]models.AdditionalSelfStudyConfig, error) {
	var configs []models.AdditionalSelfStudyConfig
	if err := r.db.WithContext(ctx).Where("day BETWEEN ? AND ?", from, to).Find(&configs).Error; err != nil {
		return nil, err
	}

	return configs, nil
}
