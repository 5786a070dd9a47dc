package repository

import (
	"context"
	"errors"

	"coursehub/internal/models"

	"gorm.io/gorm"
)

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
	CountDiscussion(ctx context.Context, id uint) (comments, feedbacks int64, err error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Course", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &course, nil
}

func (r *courseRepository) List(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return courses, nil
}

func (r *courseRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error) {
	var courses []*models.Course
	if err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return courses, nil
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the course and everything attached to it in one transaction.
func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{&models.Like{}, &models.Rating{}, &models.Comment{}, &models.Feedback{}} {
			if err := tx.Where("course_id = ?", id).Delete(dependent).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Course{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *courseRepository) CountDiscussion(ctx context.Context, id uint) (int64, int64, error) {
	var comments, feedbacks int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Comment{}).Where("course_id = ?", id).Count(&comments).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	if err := db.Model(&models.Feedback{}).Where("course_id = ?", id).Count(&feedbacks).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	return comments, feedbacks, nil
}
