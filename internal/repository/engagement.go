package repository

import (
	"context"
	"errors"
	"time"

	"coursehub/internal/models"

	"gorm.io/gorm"
)

// EngagementRepository persists likes and ratings. Writes that can race report
// ErrConflict instead of silently succeeding or failing.
type EngagementRepository interface {
	// WithinTx runs fn against a repository bound to a single transaction.
	// Returning an error from fn rolls the transaction back.
	WithinTx(ctx context.Context, fn func(EngagementRepository) error) error

	CourseExists(ctx context.Context, courseID uint) (bool, error)

	// FindLike returns nil, nil when the user has no like row for the course.
	FindLike(ctx context.Context, userID, courseID uint) (*models.Like, error)
	CreateLike(ctx context.Context, like *models.Like) error
	MarkLiked(ctx context.Context, likeID uint) error
	DeleteLike(ctx context.Context, likeID uint) error
	ListLikes(ctx context.Context) ([]models.LikeView, error)
	LikesForCourses(ctx context.Context, courseIDs []uint) ([]models.Like, error)

	// FindRating returns nil, nil when the user has not rated the course.
	FindRating(ctx context.Context, userID, courseID uint) (*models.Rating, error)
	GetRatingByID(ctx context.Context, id uint) (*models.Rating, error)
	CreateRating(ctx context.Context, rating *models.Rating) error
	UpdateRating(ctx context.Context, ratingID uint, value int) error
	DeleteRating(ctx context.Context, ratingID uint) error
	// ListRatings returns every rating, or only the course's when courseID is non-zero.
	ListRatings(ctx context.Context, courseID uint) ([]models.RatingView, error)
	RatingsForCourses(ctx context.Context, courseIDs []uint) ([]models.Rating, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository returns a new EngagementRepository implementation.
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) WithinTx(ctx context.Context, fn func(EngagementRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&engagementRepository{db: tx})
	})
}

func (r *engagementRepository) CourseExists(ctx context.Context, courseID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Course{}).Where("id = ?", courseID).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *engagementRepository) FindLike(ctx context.Context, userID, courseID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Take(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &like, nil
}

func (r *engagementRepository) CreateLike(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrConflict
		}
		return models.NewInternalError(err)
	}
	return nil
}

// MarkLiked flips a stored liked=false row. Zero rows affected means another
// writer changed the row first.
func (r *engagementRepository) MarkLiked(ctx context.Context, likeID uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("id = ? AND liked = ?", likeID, false).
		Update("liked", true)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (r *engagementRepository) DeleteLike(ctx context.Context, likeID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND liked = ?", likeID, true).
		Delete(&models.Like{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (r *engagementRepository) ListLikes(ctx context.Context) ([]models.LikeView, error) {
	var likes []models.Like
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Order("created_at desc").
		Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	views := make([]models.LikeView, 0, len(likes))
	for i := range likes {
		views = append(views, models.LikeView{
			Like:   likes[i],
			User:   likes[i].User.Summary(),
			Course: likes[i].Course.Summary(),
		})
	}
	return views, nil
}

func (r *engagementRepository) LikesForCourses(ctx context.Context, courseIDs []uint) ([]models.Like, error) {
	var likes []models.Like
	if len(courseIDs) == 0 {
		return likes, nil
	}
	if err := r.db.WithContext(ctx).Where("course_id IN ?", courseIDs).Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *engagementRepository) FindRating(ctx context.Context, userID, courseID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Take(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

func (r *engagementRepository) GetRatingByID(ctx context.Context, id uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Rating", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

func (r *engagementRepository) CreateRating(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrConflict
		}
		return models.NewInternalError(err)
	}
	return nil
}

// UpdateRating overwrites the score and bumps updated_at even when the score is unchanged.
func (r *engagementRepository) UpdateRating(ctx context.Context, ratingID uint, value int) error {
	res := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("id = ?", ratingID).
		Updates(map[string]interface{}{
			"rating":     value,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (r *engagementRepository) DeleteRating(ctx context.Context, ratingID uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Rating{}, ratingID)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Rating", ratingID)
	}
	return nil
}

func (r *engagementRepository) ListRatings(ctx context.Context, courseID uint) ([]models.RatingView, error) {
	var ratings []models.Rating
	q := r.db.WithContext(ctx).Preload("User").Preload("Course")
	if courseID != 0 {
		q = q.Where("course_id = ?", courseID)
	}
	if err := q.Order("created_at desc").Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	views := make([]models.RatingView, 0, len(ratings))
	for i := range ratings {
		views = append(views, models.RatingView{
			Rating: ratings[i],
			User:   ratings[i].User.Summary(),
			Course: ratings[i].Course.Summary(),
		})
	}
	return views, nil
}

func (r *engagementRepository) RatingsForCourses(ctx context.Context, courseIDs []uint) ([]models.Rating, error) {
	var ratings []models.Rating
	if len(courseIDs) == 0 {
		return ratings, nil
	}
	if err := r.db.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order("created_at asc").
		Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}
