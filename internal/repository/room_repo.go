package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// RoomRepository provides access to the room directory.
type RoomRepository interface {
	// RoomsByGrade maps class numbers to room ids for one grade.
	RoomsByGrade(ctx context.Context, grade int) (map[int]uint, error)
	GetByID(ctx context.Context, id uint) (models.Room, error)
}

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository constructs a room repository.
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) RoomsByGrade(ctx context.Context, grade int) (map[int]uint, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).Where("grade = ?", grade).Find(&rooms).Error; err != nil {
		return nil, err
	}

	byClass := make(map[int]uint, len(rooms))
	for _, room := range rooms {
		byClass[room.ClassNumber] = room.ID
	}

	return byClass, nil
}

func (r *roomRepository) GetByID(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return models.Room{}, err
	}

	return room, nil
}
