package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// StudentRepository provides access to the student directory.
type StudentRepository interface {
	FindByYear(ctx context.Context, year int) ([]models.Student, error)
	GetByID(ctx context.Context, id uint) (models.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) FindByYear(ctx context.Context, year int) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).
		Where("year = ?", year).
		Order("grade, class_number, id").
		Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}
