package service

import (
	"math"

	"coursehub/internal/models"
)

// ProjectAggregate folds a course's like and rating rows into its public
// engagement view. viewerID is nil for anonymous readers, in which case
// LikedByCurrentUser is left unset.
func ProjectAggregate(likes []models.Like, ratings []models.Rating, viewerID *uint) models.Aggregate {
	agg := models.Aggregate{}

	liked := false
	for _, l := range likes {
		if !l.Liked {
			continue
		}
		agg.TotalLikes++
		if viewerID != nil && l.UserID == *viewerID {
			liked = true
		}
	}
	if viewerID != nil {
		agg.LikedByCurrentUser = &liked
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	agg.TotalRatings = int64(len(ratings))
	if len(ratings) > 0 {
		agg.AverageRating = roundTo2(float64(sum) / float64(len(ratings)))
	}

	return agg
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
