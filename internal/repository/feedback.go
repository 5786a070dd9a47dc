package repository

import (
	"context"
	"errors"

	"coursehub/internal/models"

	"gorm.io/gorm"
)

// FeedbackRepository defines persistence operations for course feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetByID(ctx context.Context, id uint) (*models.Feedback, error)
	List(ctx context.Context) ([]*models.Feedback, error)
	ListByCourse(ctx context.Context, courseID uint) ([]*models.Feedback, error)
	Update(ctx context.Context, feedback *models.Feedback) error
	Delete(ctx context.Context, id uint) error
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	if err := r.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *feedbackRepository) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).Preload("User").First(&feedback, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Feedback", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &feedback, nil
}

func (r *feedbackRepository) List(ctx context.Context) ([]*models.Feedback, error) {
	var feedbacks []*models.Feedback
	if err := r.db.WithContext(ctx).Preload("User").Order("created_at desc").Find(&feedbacks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return feedbacks, nil
}

func (r *feedbackRepository) ListByCourse(ctx context.Context, courseID uint) ([]*models.Feedback, error) {
	var feedbacks []*models.Feedback
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("course_id = ?", courseID).
		Order("created_at asc").
		Find(&feedbacks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return feedbacks, nil
}

func (r *feedbackRepository) Update(ctx context.Context, feedback *models.Feedback) error {
	if err := r.db.WithContext(ctx).Model(feedback).Update("comment", feedback.Comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Feedback{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
