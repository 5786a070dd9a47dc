package service

import (
	"context"
	"errors"
	"testing"

	"coursehub/internal/models"
	"coursehub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideLike(t *testing.T) {
	liked := &models.Like{ID: 1, Liked: true}
	legacyUnliked := &models.Like{ID: 2, Liked: false}

	tests := []struct {
		name      string
		existing  *models.Like
		requested bool
		action    LikeAction
		code      string
	}{
		{"absent, like", nil, true, LikeActionCreate, ""},
		{"absent, unlike", nil, false, "", models.CodeInvalidTransition},
		{"liked, like", liked, true, "", models.CodeNoOpTransition},
		{"liked, unlike", liked, false, LikeActionRemove, ""},
		{"legacy unliked row, like", legacyUnliked, true, LikeActionMarkLiked, ""},
		{"legacy unliked row, unlike", legacyUnliked, false, "", models.CodeInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := DecideLike(tt.existing, tt.requested)
			if tt.code != "" {
				assertCode(t, err, tt.code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.action, action)
		})
	}
}

func TestEngagementService_ToggleLike_CourseMissing(t *testing.T) {
	repo := &engagementRepoStub{
		courseExistsFn: func(context.Context, uint) (bool, error) { return false, nil },
	}
	_, err := NewEngagementService(repo).ToggleLike(context.Background(), ToggleLikeInput{UserID: 1, CourseID: 9, Liked: true})
	assertCode(t, err, models.CodeNotFound)
}

func TestEngagementService_ToggleLike_RetriesOnceAfterLostRace(t *testing.T) {
	var created bool
	repo := &engagementRepoStub{
		courseExistsFn: courseExists,
		findLikeFn: func(context.Context, uint, uint) (*models.Like, error) {
			if created {
				return &models.Like{ID: 5, UserID: 1, CourseID: 2, Liked: true}, nil
			}
			return nil, nil
		},
		createLikeFn: func(context.Context, *models.Like) error {
			// Another request inserted the row between our read and write.
			created = true
			return repository.ErrConflict
		},
	}

	_, err := NewEngagementService(repo).ToggleLike(context.Background(), ToggleLikeInput{UserID: 1, CourseID: 2, Liked: true})
	assertCode(t, err, models.CodeNoOpTransition)
	assert.Equal(t, 2, repo.txCalls)
}

func TestEngagementService_ToggleLike_ConflictAfterRetry(t *testing.T) {
	repo := &engagementRepoStub{
		courseExistsFn: courseExists,
		findLikeFn:     func(context.Context, uint, uint) (*models.Like, error) { return nil, nil },
		createLikeFn:   func(context.Context, *models.Like) error { return repository.ErrConflict },
	}

	_, err := NewEngagementService(repo).ToggleLike(context.Background(), ToggleLikeInput{UserID: 1, CourseID: 2, Liked: true})
	assertCode(t, err, models.CodeConflict)
	assert.Equal(t, 2, repo.txCalls)
}

func TestEngagementService_ToggleLike_StoreFailure(t *testing.T) {
	repo := &engagementRepoStub{
		courseExistsFn: courseExists,
		findLikeFn: func(context.Context, uint, uint) (*models.Like, error) {
			return nil, models.NewInternalError(errors.New("connection reset"))
		},
	}

	_, err := NewEngagementService(repo).ToggleLike(context.Background(), ToggleLikeInput{UserID: 1, CourseID: 2, Liked: true})
	assertCode(t, err, models.CodeInternal)
	assert.Equal(t, 1, repo.txCalls)
}

func TestEngagementService_RateCourse_RejectsOutOfRange(t *testing.T) {
	repo := &engagementRepoStub{}
	svc := NewEngagementService(repo)

	for _, value := range []int{0, 6, -1} {
		_, err := svc.RateCourse(context.Background(), RateCourseInput{UserID: 1, CourseID: 1, Rating: value})
		assertCode(t, err, models.CodeValidation)
	}
	assert.Zero(t, repo.txCalls, "validation must happen before any store access")
}

func TestEngagementService_RateCourse_UpdatesExisting(t *testing.T) {
	var updatedTo int
	existing := &models.Rating{ID: 3, UserID: 1, CourseID: 2, Value: 2}
	repo := &engagementRepoStub{
		courseExistsFn: courseExists,
		findRatingFn:   func(context.Context, uint, uint) (*models.Rating, error) { return existing, nil },
		updateRatingFn: func(_ context.Context, id uint, value int) error {
			assert.Equal(t, uint(3), id)
			updatedTo = value
			return nil
		},
		getRatingByIDFn: func(context.Context, uint) (*models.Rating, error) {
			return &models.Rating{ID: 3, UserID: 1, CourseID: 2, Value: updatedTo}, nil
		},
	}

	out, err := NewEngagementService(repo).RateCourse(context.Background(), RateCourseInput{UserID: 1, CourseID: 2, Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, ResultUpdated, out.Result)
	assert.Equal(t, 4, out.Rating.Value)
}

func TestEngagementService_DeleteRatingByID_Forbidden(t *testing.T) {
	deleted := false
	repo := &engagementRepoStub{
		getRatingByIDFn: func(context.Context, uint) (*models.Rating, error) {
			return &models.Rating{ID: 8, UserID: 1, CourseID: 2, Value: 5}, nil
		},
		deleteRatingFn: func(context.Context, uint) error {
			deleted = true
			return nil
		},
	}

	_, err := NewEngagementService(repo).DeleteRatingByID(context.Background(), 2, 8)
	assertCode(t, err, models.CodeForbidden)
	assert.False(t, deleted)
}

func TestEngagementService_DeleteRating_Missing(t *testing.T) {
	repo := &engagementRepoStub{
		courseExistsFn: courseExists,
		findRatingFn:   func(context.Context, uint, uint) (*models.Rating, error) { return nil, nil },
	}

	_, err := NewEngagementService(repo).DeleteRating(context.Background(), DeleteRatingInput{UserID: 1, CourseID: 2})
	assertCode(t, err, models.CodeNotFound)
}
