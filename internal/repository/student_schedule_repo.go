package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// StudentScheduleRepository manages the per-(student, day, period) slot rows
// that schedule layers stack onto.
type StudentScheduleRepository interface {
	CreateBatch(ctx context.Context, schedules []models.StudentSchedule) error
	// DeleteBetween removes all slots with day in [from, to] inclusive,
	// cascading to their layers.
	DeleteBetween(ctx context.Context, from, to time.Time) error
	GetByID(ctx context.Context, id uint) (models.StudentSchedule, error)
	FindBySlot(ctx context.Context, studentID uint, day time.Time, period models.Period) (models.StudentSchedule, error)
	FindByGradeDayPeriod(ctx context.Context, grade int, day time.Time, period models.Period) ([]models.StudentSchedule, error)
	FindByDayPeriod(ctx context.Context, day time.Time, period models.Period) ([]models.StudentSchedule, error)
	SearchByStudentName(ctx context.Context, query string, day time.Time) ([]models.StudentSchedule, error)
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type studentScheduleRepository struct {
	db *gorm.DB
}

// NewStudentScheduleRepository constructs a student schedule repository.
func NewStudentScheduleRepository(db *gorm.DB) StudentScheduleRepository {
	return &studentScheduleRepository{db: db}
}

func (r *studentScheduleRepository) CreateBatch(ctx context.Context, schedules []models.StudentSchedule) error {
	if len(schedules) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).CreateInBatches(schedules, 500).Error
}

func (r *studentScheduleRepository) DeleteBetween(ctx context.Context, from, to time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("student_schedule_id IN (?)",
				tx.Model(&models.StudentSchedule{}).Select("id").Where("day BETWEEN ? AND ?", from, to),
			).
			Delete(&models.ScheduleLayer{}).Error; err != nil {
			return err
		}

		return tx.Where("day BETWEEN ? AND ?", from, to).Delete(&models.StudentSchedule{}).Error
	})
}

func (r *studentScheduleRepository) GetByID(ctx context.Context, id uint) (models.StudentSchedule, error) {
	var schedule models.StudentSchedule
	if err := r.db.WithContext(ctx).Preload("Student").First(&schedule, id).Error; err != nil {
		return models.StudentSchedule{}, err
	}

	return schedule, nil
}

func (r *studentScheduleRepository) FindBySlot(ctx context.Context, studentID uint, day time.Time, period models.Period) (models.StudentSchedule, error) {
	var schedule models.StudentSchedule
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND day = ? AND period = ?", studentID, day, period).
		First(&schedule).Error; err != nil {
		return models.StudentSchedule{}, err
	}

	return schedule, nil
}

func (r *studentScheduleRepository) FindByGradeDayPeriod(ctx context.Context, grade int, day time.Time, period models.Period) ([]models.StudentSchedule, error) {
	var schedules []models.StudentSchedule
	if err := r.db.WithContext(ctx).
		Joins("JOIN students ON students.id = student_schedules.student_id").
		Where("students.grade = ? AND student_schedules.day = ? AND student_schedules.period = ?", grade, day, period).
		Preload("Student").
		Order("students.class_number, students.id").
		Find(&schedules).Error; err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *studentScheduleRepository) FindByDayPeriod(ctx context.Context, day time.Time, period models.Period) ([]models.StudentSchedule, error) {
	var schedules []models.StudentSchedule
	if err := r.db.WithContext(ctx).
		Where("day = ? AND period = ?", day, period).
		Preload("Student").
		Find(&schedules).Error; err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *studentScheduleRepository) SearchByStudentName(ctx context.Context, query string, day time.Time) ([]models.StudentSchedule, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	var schedules []models.StudentSchedule
	if err := r.db.WithContext(ctx).
		Joins("JOIN students ON students.id = student_schedules.student_id").
		Where("LOWER(students.name) LIKE ? AND student_schedules.day = ?", like, day).
		Preload("Student").
		Order("students.id, student_schedules.period").
		Find(&schedules).Error; err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *studentScheduleRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.StudentSchedule{}).
		Where("day BETWEEN ? AND ?", from, to).
		Count(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}
