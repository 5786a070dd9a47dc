package service

import (
	"testing"

	"coursehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestProjectAggregate_Empty(t *testing.T) {
	agg := ProjectAggregate(nil, nil, nil)
	assert.Equal(t, models.Aggregate{}, agg)
	assert.Nil(t, agg.LikedByCurrentUser)
}

func TestProjectAggregate_RoundsAverage(t *testing.T) {
	ratings := []models.Rating{{Value: 1}, {Value: 2}, {Value: 2}}
	agg := ProjectAggregate(nil, ratings, nil)

	assert.Equal(t, int64(3), agg.TotalRatings)
	assert.Equal(t, 1.67, agg.AverageRating)
}

func TestProjectAggregate_ViewerFlag(t *testing.T) {
	likes := []models.Like{
		{UserID: 1, Liked: true},
		{UserID: 2, Liked: true},
		{UserID: 3, Liked: false},
	}

	anonymous := ProjectAggregate(likes, nil, nil)
	assert.Equal(t, int64(2), anonymous.TotalLikes)
	assert.Nil(t, anonymous.LikedByCurrentUser)

	liker := ProjectAggregate(likes, nil, uintPtr(2))
	require.NotNil(t, liker.LikedByCurrentUser)
	assert.True(t, *liker.LikedByCurrentUser)

	stale := ProjectAggregate(likes, nil, uintPtr(3))
	require.NotNil(t, stale.LikedByCurrentUser)
	assert.False(t, *stale.LikedByCurrentUser)
}

func TestProjectAggregate_AverageWithinBounds(t *testing.T) {
	for a := 1; a <= 5; a++ {
		for b := 1; b <= 5; b++ {
			agg := ProjectAggregate(nil, []models.Rating{{Value: a}, {Value: b}}, nil)
			assert.GreaterOrEqual(t, agg.AverageRating, 1.0)
			assert.LessOrEqual(t, agg.AverageRating, 5.0)
		}
	}
}
