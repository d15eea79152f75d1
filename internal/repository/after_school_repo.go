package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// AfterSchoolRepository reads after-school offerings, their reinforcement
// overrides and teacher business trips.
type AfterSchoolRepository interface {
	FindOfferingsByBranch(ctx context.Context, branchID uint) ([]models.AfterSchoolOffering, error)
	GetOffering(ctx context.Context, id uint) (models.AfterSchoolOffering, error)
	FindReinforcementsBetween(ctx context.Context, from, to time.Time) ([]models.AfterSchoolReinforcement, error)
	CreateReinforcement(ctx context.Context, reinforcement *models.AfterSchoolReinforcement) error
	HasApprovedTrip(ctx context.Context, offeringID uint, day time.Time) (bool, error)
	CreateBusinessTrip(ctx context.Context, trip *models.BusinessTrip) error
}

type afterSchoolRepository struct {
	db *gorm.DB
}

// NewAfterSchoolRepository constructs an after-school repository.
func NewAfterSchoolRepository(db *gorm.DB) AfterSchoolRepository {
	return &afterSchoolRepository{db: db}
}

func (r *afterSchoolRepository) FindOfferingsByBranch(ctx context.Context, branchID uint) ([]models.AfterSchoolOffering, error) {
	var offerings []models.AfterSchoolOffering
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Preload("Enrollments").
		Find(&offerings).Error; err != nil {
		return nil, err
	}

	return offerings, nil
}

func (r *afterSchoolRepository) GetOffering(ctx context.Context, id uint) (models.AfterSchoolOffering, error) {
	var offering models.AfterSchoolOffering
	if err := r.db.WithContext(ctx).Preload("Enrollments").First(&offering, id).Error; err != nil {
		return models.AfterSchoolOffering{}, err
	}

	return offering, nil
}

func (r *afterSchoolRepository) FindReinforcementsBetween(ctx context.Context, from, to time.Time) ([]models.AfterSchoolReinforcement, error) {
	var reinforcements []models.AfterSchoolReinforcement
	if err := r.db.WithContext(ctx).
		Where("change_day BETWEEN ? AND ?", from, to).
		Find(&reinforcements).Error; err != nil {
		return nil, err
	}

	return reinforcements, nil
}

func (r *afterSchoolRepository) CreateReinforcement(ctx context.Context, reinforcement *models.AfterSchoolReinforcement) error {
	return r.db.WithContext(ctx).Create(reinforcement).Error
}

func (r *afterSchoolRepository) HasApprovedTrip(ctx context.Context, offeringID uint, day time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BusinessTrip{}).
		Where("offering_id = ? AND day = ? AND approved = ?", offeringID, day, true).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *afterSchoolRepository) CreateBusinessTrip(ctx context.Context, trip *models.BusinessTrip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}
