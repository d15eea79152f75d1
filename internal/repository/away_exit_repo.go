package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// AwayRequestRepository reads away (leave-seat-but-on-premises) requests.
type AwayRequestRepository interface {
	FindBetween(ctx context.Context, from, to time.Time) ([]models.AwayRequest, error)
	Create(ctx context.Context, request *models.AwayRequest) error
}

type awayRequestRepository struct {
	db *gorm.DB
}

// NewAwayRequestRepository constructs an away request repository.
func NewAwayRequestRepository(db *gorm.DB) AwayRequestRepository {
	return &awayRequestRepository{db: db}
}

func (r *awayRequestRepository) FindBetween(ctx context.Context, from, to time.Time) ([]models.AwayRequest, error) {
	var requests []models.AwayRequest
	if err := r.db.WithContext(ctx).Where("day BETWEEN ? AND ?", from, to).Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *awayRequestRepository) Create(ctx context.Context, request *models.AwayRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// ExitRequestRepository reads exit (left the building) requests.
type ExitRequestRepository interface {
	FindBetween(ctx context.Context, from, to time.Time) ([]models.ExitRequest, error)
	Create(ctx context.Context, request *models.ExitRequest) error
}

type exitRequestRepository struct {
	db *gorm.DB
}

// NewExitRequestRepository constructs an exit request repository.
func NewExitRequestRepository(db *gorm.DB) ExitRequestRepository {
	return &exitRequestRepository{db: db}
}

func (r *exitRequestRepository) FindBetween(ctx context.Context, from, to time.Time) ([]models.ExitRequest, error) {
	var requests []models.ExitRequest
	if err := r.db.WithContext(ctx).Where("day BETWEEN ? AND ?", from, to).Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *exitRequestRepository) Create(ctx context.Context, request *models.ExitRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}
