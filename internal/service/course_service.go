package service

import (
	"context"

	"coursehub/internal/featureflags"
	"coursehub/internal/models"
	"coursehub/internal/repository"
	"coursehub/internal/validation"
)

type CourseService struct {
	courseRepo  repository.CourseRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
	engagement  *EngagementService
	flags       *featureflags.Set
}

type CreateCourseInput struct {
	TeacherID   uint   `json:"-"`
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required,min=3"`
	Content     string `json:"content" validate:"required,min=3"`
}

type UpdateCourseInput struct {
	UserID      uint   `json:"-"`
	CourseID    uint   `json:"-"`
	Title       string `json:"title" validate:"omitempty,min=3,max=200"`
	Description string `json:"description" validate:"omitempty,min=3"`
	Content     string `json:"content" validate:"omitempty,min=3"`
}

// CourseWithStats is a course plus its engagement aggregate.
type CourseWithStats struct {
	*models.Course
	models.Aggregate
}

// CourseDetail extends CourseWithStats with discussion counts and, when enabled, the comment thread.
type CourseDetail struct {
	CourseWithStats
	TotalComments  int64             `json:"totalComments"`
	TotalFeedbacks int64             `json:"totalFeedbacks"`
	Comments       []*models.Comment `json:"comments,omitempty"`
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	engagement *EngagementService,
	flags *featureflags.Set,
) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		engagement:  engagement,
		flags:       flags,
	}
}

func (s *CourseService) CreateCourse(ctx context.Context, in CreateCourseInput) (*models.Course, error) {
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if s.flags.For(featureflags.TeacherOnlyCourses, in.TeacherID) {
		user, err := s.userRepo.GetByID(ctx, in.TeacherID)
		if err != nil {
			return nil, err
		}
		if user.Role != models.RoleTeacher {
			return nil, models.NewForbiddenError("Only teachers can create courses")
		}
	}

	course := &models.Course{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		TeacherID:   in.TeacherID,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// ListCourses returns every course with its aggregate. viewerID is nil for anonymous readers.
func (s *CourseService) ListCourses(ctx context.Context, viewerID *uint) ([]CourseWithStats, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, courses, viewerID)
}

// ListTeacherCourses returns the courses the user teaches.
func (s *CourseService) ListTeacherCourses(ctx context.Context, teacherID uint) ([]CourseWithStats, error) {
	courses, err := s.courseRepo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, courses, &teacherID)
}

func (s *CourseService) GetCourse(ctx context.Context, id uint, viewerID *uint) (*CourseDetail, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	aggregates, err := s.engagement.Aggregates(ctx, []uint{id}, viewerID)
	if err != nil {
		return nil, err
	}
	comments, feedbacks, err := s.courseRepo.CountDiscussion(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{
		CourseWithStats: CourseWithStats{Course: course, Aggregate: aggregates[id]},
		TotalComments:   comments,
		TotalFeedbacks:  feedbacks,
	}

	var viewer uint
	if viewerID != nil {
		viewer = *viewerID
	}
	if s.flags.For(featureflags.CourseDetailComments, viewer) {
		detail.Comments, err = s.commentRepo.ListByCourse(ctx, id)
		if err != nil {
			return nil, err
		}
	}
	return detail, nil
}

func (s *CourseService) UpdateCourse(ctx context.Context, in UpdateCourseInput) (*models.Course, error) {
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	course, err := s.ownedCourse(ctx, in.CourseID, in.UserID, "update")
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		course.Title = in.Title
	}
	if in.Description != "" {
		course.Description = in.Description
	}
	if in.Content != "" {
		course.Content = in.Content
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(ctx context.Context, userID, courseID uint) (*models.Course, error) {
	course, err := s.ownedCourse(ctx, courseID, userID, "delete")
	if err != nil {
		return nil, err
	}
	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) ownedCourse(ctx context.Context, courseID, userID uint, verb string) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != userID {
		return nil, models.NewForbiddenError("You can only " + verb + " your own courses")
	}
	return course, nil
}

func (s *CourseService) withStats(ctx context.Context, courses []*models.Course, viewerID *uint) ([]CourseWithStats, error) {
	ids := make([]uint, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}

	aggregates, err := s.engagement.Aggregates(ctx, ids, viewerID)
	if err != nil {
		return nil, err
	}

	out := make([]CourseWithStats, 0, len(courses))
	for _, c := range courses {
		out = append(out, CourseWithStats{Course: c, Aggregate: aggregates[c.ID]})
	}
	return out, nil
}
