package service

import (
	"context"
	"fmt"
	"testing"

	"coursehub/internal/database"
	"coursehub/internal/models"
	"coursehub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// engagementRepoStub is a stub for repository.EngagementRepository.
// Unset funcs panic so tests notice unexpected store access.
type engagementRepoStub struct {
	txCalls int

	courseExistsFn      func(context.Context, uint) (bool, error)
	findLikeFn          func(context.Context, uint, uint) (*models.Like, error)
	createLikeFn        func(context.Context, *models.Like) error
	markLikedFn         func(context.Context, uint) error
	deleteLikeFn        func(context.Context, uint) error
	findRatingFn        func(context.Context, uint, uint) (*models.Rating, error)
	getRatingByIDFn     func(context.Context, uint) (*models.Rating, error)
	createRatingFn      func(context.Context, *models.Rating) error
	updateRatingFn      func(context.Context, uint, int) error
	deleteRatingFn      func(context.Context, uint) error
	likesForCoursesFn   func(context.Context, []uint) ([]models.Like, error)
	ratingsForCoursesFn func(context.Context, []uint) ([]models.Rating, error)
}

func (s *engagementRepoStub) WithinTx(_ context.Context, fn func(repository.EngagementRepository) error) error {
	s.txCalls++
	return fn(s)
}
func (s *engagementRepoStub) CourseExists(ctx context.Context, id uint) (bool, error) {
	return s.courseExistsFn(ctx, id)
}
func (s *engagementRepoStub) FindLike(ctx context.Context, userID, courseID uint) (*models.Like, error) {
	return s.findLikeFn(ctx, userID, courseID)
}
func (s *engagementRepoStub) CreateLike(ctx context.Context, like *models.Like) error {
	return s.createLikeFn(ctx, like)
}
func (s *engagementRepoStub) MarkLiked(ctx context.Context, id uint) error {
	return s.markLikedFn(ctx, id)
}
func (s *engagementRepoStub) DeleteLike(ctx context.Context, id uint) error {
	return s.deleteLikeFn(ctx, id)
}
func (s *engagementRepoStub) ListLikes(context.Context) ([]models.LikeView, error) {
	return nil, nil
}
func (s *engagementRepoStub) LikesForCourses(ctx context.Context, ids []uint) ([]models.Like, error) {
	return s.likesForCoursesFn(ctx, ids)
}
func (s *engagementRepoStub) FindRating(ctx context.Context, userID, courseID uint) (*models.Rating, error) {
	return s.findRatingFn(ctx, userID, courseID)
}
func (s *engagementRepoStub) GetRatingByID(ctx context.Context, id uint) (*models.Rating, error) {
	return s.getRatingByIDFn(ctx, id)
}
func (s *engagementRepoStub) CreateRating(ctx context.Context, r *models.Rating) error {
	return s.createRatingFn(ctx, r)
}
func (s *engagementRepoStub) UpdateRating(ctx context.Context, id uint, value int) error {
	return s.updateRatingFn(ctx, id, value)
}
func (s *engagementRepoStub) DeleteRating(ctx context.Context, id uint) error {
	return s.deleteRatingFn(ctx, id)
}
func (s *engagementRepoStub) ListRatings(context.Context, uint) ([]models.RatingView, error) {
	return nil, nil
}
func (s *engagementRepoStub) RatingsForCourses(ctx context.Context, ids []uint) ([]models.Rating, error) {
	return s.ratingsForCoursesFn(ctx, ids)
}

func courseExists(context.Context, uint) (bool, error) { return true, nil }

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	users  map[uint]*models.User
	nextID uint
}

func newUserRepoStub(users ...*models.User) *userRepoStub {
	s := &userRepoStub{users: make(map[uint]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
		if u.ID > s.nextID {
			s.nextID = u.ID
		}
	}
	return s
}

func (s *userRepoStub) GetByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, models.NewNotFoundError("User", id)
}
func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (s *userRepoStub) Create(_ context.Context, u *models.User) error {
	s.nextID++
	u.ID = s.nextID
	s.users[u.ID] = u
	return nil
}
func (s *userRepoStub) Update(_ context.Context, u *models.User) error {
	s.users[u.ID] = u
	return nil
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

// setupSQLite returns a migrated in-memory database. One connection means
// transactions run one at a time, as they would under row locks.
func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

type fixture struct {
	db       *gorm.DB
	teacher  *models.User
	students []*models.User
	course   *models.Course
}

func newFixture(t *testing.T, students int) *fixture {
	t.Helper()
	db := setupSQLite(t)

	f := &fixture{db: db}
	f.teacher = &models.User{Email: "teacher@example.com", Password: "x", Role: models.RoleTeacher}
	require.NoError(t, db.Create(f.teacher).Error)
	for i := 0; i < students; i++ {
		u := &models.User{Email: fmt.Sprintf("student%d@example.com", i), Password: "x", Role: models.RoleStudent}
		require.NoError(t, db.Create(u).Error)
		f.students = append(f.students, u)
	}
	f.course = &models.Course{Title: "Go", Description: "Concurrency", Content: "Channels", TeacherID: f.teacher.ID}
	require.NoError(t, db.Create(f.course).Error)
	return f
}
