package server

import (
	"context"

	"coursehub/internal/models"
	"coursehub/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockEngagementRepository is a mock of the EngagementRepository interface.
// WithinTx runs the callback against the mock itself.
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) WithinTx(ctx context.Context, fn func(repository.EngagementRepository) error) error {
	m.Called(ctx)
	return fn(m)
}

func (m *MockEngagementRepository) CourseExists(ctx context.Context, courseID uint) (bool, error) {
	args := m.Called(ctx, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) FindLike(ctx context.Context, userID, courseID uint) (*models.Like, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *MockEngagementRepository) CreateLike(ctx context.Context, like *models.Like) error {
	return m.Called(ctx, like).Error(0)
}

func (m *MockEngagementRepository) MarkLiked(ctx context.Context, likeID uint) error {
	return m.Called(ctx, likeID).Error(0)
}

func (m *MockEngagementRepository) DeleteLike(ctx context.Context, likeID uint) error {
	return m.Called(ctx, likeID).Error(0)
}

func (m *MockEngagementRepository) ListLikes(ctx context.Context) ([]models.LikeView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.LikeView), args.Error(1)
}

func (m *MockEngagementRepository) LikesForCourses(ctx context.Context, courseIDs []uint) ([]models.Like, error) {
	args := m.Called(ctx, courseIDs)
	return args.Get(0).([]models.Like), args.Error(1)
}

func (m *MockEngagementRepository) FindRating(ctx context.Context, userID, courseID uint) (*models.Rating, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockEngagementRepository) GetRatingByID(ctx context.Context, id uint) (*models.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockEngagementRepository) CreateRating(ctx context.Context, rating *models.Rating) error {
	return m.Called(ctx, rating).Error(0)
}

func (m *MockEngagementRepository) UpdateRating(ctx context.Context, ratingID uint, value int) error {
	return m.Called(ctx, ratingID, value).Error(0)
}

func (m *MockEngagementRepository) DeleteRating(ctx context.Context, ratingID uint) error {
	return m.Called(ctx, ratingID).Error(0)
}

func (m *MockEngagementRepository) ListRatings(ctx context.Context, courseID uint) ([]models.RatingView, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]models.RatingView), args.Error(1)
}

func (m *MockEngagementRepository) RatingsForCourses(ctx context.Context, courseIDs []uint) ([]models.Rating, error) {
	args := m.Called(ctx, courseIDs)
	return args.Get(0).([]models.Rating), args.Error(1)
}
