package service

import (
	"context"

	"coursehub/internal/models"
	"coursehub/internal/repository"
)

const maxCommentLen = 10000

type CommentService struct {
	commentRepo repository.CommentRepository
	courseRepo  repository.CourseRepository
}

type CreateCommentInput struct {
	UserID   uint
	CourseID uint
	Comment  string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Comment   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(commentRepo repository.CommentRepository, courseRepo repository.CourseRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		courseRepo:  courseRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validateMessage(in.Comment, "Comment"); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetByID(ctx, in.CourseID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Comment:  in.Comment,
		UserID:   in.UserID,
		CourseID: in.CourseID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListAll(ctx context.Context) ([]*models.Comment, error) {
	return s.commentRepo.List(ctx)
}

func (s *CommentService) ListComments(ctx context.Context, courseID uint) ([]*models.Comment, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByCourse(ctx, courseID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if err := validateMessage(in.Comment, "Comment"); err != nil {
		return nil, err
	}

	comment.Comment = in.Comment
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, err
	}
	return comment, nil
}

func validateMessage(text, label string) error {
	if text == "" {
		return models.NewValidationError(label + " is required")
	}
	if len(text) > maxCommentLen {
		return models.NewValidationError(label + " too long (max 10000 characters)")
	}
	return nil
}
