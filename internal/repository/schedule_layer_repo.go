package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// ScheduleLayerRepository manages the append-only layer stack. Appends are
// serialized per StudentSchedule by an atomic single-statement increment of
// the owner's layer_seq counter, so concurrent writers can never produce
// duplicate stack orders.
type ScheduleLayerRepository interface {
	// Append writes layer at the owner's next stack order. Returns
	// gorm.ErrRecordNotFound when the owner does not exist.
	Append(ctx context.Context, ownerID uint, layer *models.ScheduleLayer) error
	ListByOwner(ctx context.Context, ownerID uint) ([]models.ScheduleLayer, error)
	ListByOwners(ctx context.Context, ownerIDs []uint) (map[uint][]models.ScheduleLayer, error)
	// RemoveByOwnerAndType deletes matching layers without renumbering the
	// survivors.
	RemoveByOwnerAndType(ctx context.Context, ownerID uint, layerType models.LayerType) error
	// IsRoomOccupied reports whether the room already holds a self-study or
	// additional-self-study layer for the day and period.
	IsRoomOccupied(ctx context.Context, day time.Time, period models.Period, roomID uint) (bool, error)
}

type scheduleLayerRepository struct {
	db *gorm.DB
}

// NewScheduleLayerRepository constructs a schedule layer repository.
func NewScheduleLayerRepository(db *gorm.DB) ScheduleLayerRepository {
	return &scheduleLayerRepository{db: db}
}

func (r *scheduleLayerRepository) Append(ctx context.Context, ownerID uint, layer *models.ScheduleLayer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.StudentSchedule{}).
			Where("id = ?", ownerID).
			UpdateColumn("layer_seq", gorm.Expr("layer_seq + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var owner models.StudentSchedule
		if err := tx.First(&owner, ownerID).Error; err != nil {
			return err
		}

		layer.StudentScheduleID = ownerID
		layer.StackOrder = owner.LayerSeq

		return tx.Create(layer).Error
	})
}

func (r *scheduleLayerRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.ScheduleLayer, error) {
	var layers []models.ScheduleLayer
	if err := r.db.WithContext(ctx).
		Where("student_schedule_id = ?", ownerID).
		Order("stack_order").
		Find(&layers).Error; err != nil {
		return nil, err
	}

	return layers, nil
}

func (r *scheduleLayerRepository) ListByOwners(ctx context.Context, ownerIDs []uint) (map[uint][]models.ScheduleLayer, error) {
	grouped := make(map[uint][]models.ScheduleLayer, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return grouped, nil
	}

	var layers []models.ScheduleLayer
	if err := r.db.WithContext(ctx).
		Where("student_schedule_id IN ?", ownerIDs).
		Order("student_schedule_id, stack_order").
		Find(&layers).Error; err != nil {
		return nil, err
	}

	for _, layer := range layers {
		grouped[layer.StudentScheduleID] = append(grouped[layer.StudentScheduleID], layer)
	}

	return grouped, nil
}

func (r *scheduleLayerRepository) RemoveByOwnerAndType(ctx context.Context, ownerID uint, layerType models.LayerType) error {
	return r.db.WithContext(ctx).
		Where("student_schedule_id = ? AND type = ?", ownerID, layerType).
		Delete(&models.ScheduleLayer{}).Error
}

func (r *scheduleLayerRepository) IsRoomOccupied(ctx context.Context, day time.Time, period models.Period, roomID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ScheduleLayer{}).
		Joins("JOIN student_schedules ON student_schedules.id = schedule_layers.student_schedule_id").
		Where("student_schedules.day = ? AND student_schedules.period = ?", day, period).
		Where("schedule_layers.room_id = ?", roomID).
		Where("schedule_layers.type IN ?", []models.LayerType{models.LayerSelfStudy, models.LayerAdditionalSelfStudy}).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
