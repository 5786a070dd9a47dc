package models

import "time"

// Like records that a user likes a course.
// At most one row exists per (UserID, CourseID); the presence of a row means liked.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_course" json:"userId"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_like_user_course" json:"courseId"`
	Liked     bool      `gorm:"not null;default:true" json:"liked"`
	CreatedAt time.Time `json:"createdAt"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}

// Rating holds a user's 1-5 score for a course.
// The combination of UserID and CourseID must be unique.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_rating_user_course" json:"userId"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_rating_user_course;index" json:"courseId"`
	Value     int       `gorm:"column:rating;not null;check:chk_ratings_range,rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Aggregate is the derived engagement view of a course. It is never stored.
type Aggregate struct {
	TotalLikes         int64   `json:"totalLikes"`
	LikedByCurrentUser *bool   `json:"likedByCurrentUser,omitempty"`
	TotalRatings       int64   `json:"totalRatings"`
	AverageRating      float64 `json:"averageRating"`
}

// LikeView is a like joined with the liker and course for listings.
type LikeView struct {
	Like
	User   UserSummary   `json:"user"`
	Course CourseSummary `json:"course"`
}

// RatingView is a rating joined with the rater and course for listings.
type RatingView struct {
	Rating
	User   UserSummary   `json:"user"`
	Course CourseSummary `json:"course"`
}
