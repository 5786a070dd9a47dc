package service

import (
	"context"

	"coursehub/internal/models"
	"coursehub/internal/repository"
)

// FeedbackService manages private notes students leave for a course's teacher.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	courseRepo   repository.CourseRepository
}

type FeedbackInput struct {
	UserID     uint
	CourseID   uint
	FeedbackID uint
	Comment    string
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository, courseRepo repository.CourseRepository) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		courseRepo:   courseRepo,
	}
}

func (s *FeedbackService) CreateFeedback(ctx context.Context, in FeedbackInput) (*models.Feedback, error) {
	if err := validateMessage(in.Comment, "Feedback"); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetByID(ctx, in.CourseID); err != nil {
		return nil, err
	}

	feedback := &models.Feedback{
		Comment:  in.Comment,
		UserID:   in.UserID,
		CourseID: in.CourseID,
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}
	return s.feedbackRepo.GetByID(ctx, feedback.ID)
}

func (s *FeedbackService) ListAll(ctx context.Context) ([]*models.Feedback, error) {
	return s.feedbackRepo.List(ctx)
}

func (s *FeedbackService) ListFeedbacks(ctx context.Context, courseID uint) ([]*models.Feedback, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.feedbackRepo.ListByCourse(ctx, courseID)
}

func (s *FeedbackService) UpdateFeedback(ctx context.Context, in FeedbackInput) (*models.Feedback, error) {
	feedback, err := s.feedbackRepo.GetByID(ctx, in.FeedbackID)
	if err != nil {
		return nil, err
	}
	if feedback.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own feedback")
	}
	if err := validateMessage(in.Comment, "Feedback"); err != nil {
		return nil, err
	}

	feedback.Comment = in.Comment
	if err := s.feedbackRepo.Update(ctx, feedback); err != nil {
		return nil, err
	}
	return s.feedbackRepo.GetByID(ctx, feedback.ID)
}

func (s *FeedbackService) DeleteFeedback(ctx context.Context, userID, feedbackID uint) (*models.Feedback, error) {
	feedback, err := s.feedbackRepo.GetByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if feedback.UserID != userID {
		return nil, models.NewForbiddenError("You can only delete your own feedback")
	}
	if err := s.feedbackRepo.Delete(ctx, feedbackID); err != nil {
		return nil, err
	}
	return feedback, nil
}
