package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// LeaveSeatRepository manages dated leave seats and their rosters.
type LeaveSeatRepository interface {
	Create(ctx context.Context, seat *models.LeaveSeat) error
	GetByID(ctx context.Context, id uint) (models.LeaveSeat, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]models.LeaveSeat, error)
	ExistsAt(ctx context.Context, roomID uint, day time.Time, period models.Period) (bool, error)
}

type leaveSeatRepository struct {
	db *gorm.DB
}

// NewLeaveSeatRepository constructs a leave seat repository.
func NewLeaveSeatRepository(db *gorm.DB) LeaveSeatRepository {
	return &leaveSeatRepository{db: db}
}

func (r *leaveSeatRepository) Create(ctx context.Context, seat *models.LeaveSeat) error {
	return r.db.WithContext(ctx).Create(seat).Error
}

func (r *leaveSeatRepository) GetByID(ctx context.Context, id uint) (models.LeaveSeat, error) {
	var seat models.LeaveSeat
	if err := r.db.WithContext(ctx).Preload("Members").First(&seat, id).Error; err != nil {
		return models.LeaveSeat{}, err
	}

	return seat, nil
}

func (r *leaveSeatRepository) FindBetween(ctx context.Context, from, to time.Time) ([]models.LeaveSeat, error) {
	var seats []models.LeaveSeat
	if err := r.db.WithContext(ctx).
		Where("day BETWEEN ? AND ?", from, to).
		Preload("Members").
		Find(&seats).Error; err != nil {
		return nil, err
	}

	return seats, nil
}

func (r *leaveSeatRepository) ExistsAt(ctx context.Context, roomID uint, day time.Time, period models.Period) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LeaveSeat{}).
		Where("room_id = ? AND day = ? AND period = ?", roomID, day, period).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// FixedLeaveSeatRepository manages the weekly leave seat templates.
type FixedLeaveSeatRepository interface {
	Create(ctx context.Context, template *models.FixedLeaveSeat) error
	List(ctx context.Context) ([]models.FixedLeaveSeat, error)
}

type fixedLeaveSeatRepository struct {
	db *gorm.DB
}

// NewFixedLeaveSeatRepository constructs a fixed leave seat repository.
func NewFixedLeaveSeatRepository(db *gorm.DB) FixedLeaveSeatRepository {
	return &fixedLeaveSeatRepository{db: db}
}

func (r *fixedLeaveSeatRepository) Create(ctx context.Context, template *models.FixedLeaveSeat) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *fixedLeaveSeatRepository) List(ctx context.Context) ([]models.FixedLeaveSeat, error) {
	var templates []models.FixedLeaveSeat
	if err := r.db.WithContext(ctx).Preload("Members").Find(&templates).Error; err != nil {
		return nil, err
	}

	return templates, nil
}
