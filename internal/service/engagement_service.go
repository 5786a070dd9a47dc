package service

import (
	"context"
	"errors"
	"log/slog"

	"coursehub/internal/middleware"
	"coursehub/internal/models"
	"coursehub/internal/observability"
	"coursehub/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// LikeAction is the write chosen by DecideLike.
type LikeAction string

const (
	LikeActionCreate    LikeAction = "create"
	LikeActionRemove    LikeAction = "remove"
	LikeActionMarkLiked LikeAction = "mark-liked"
)

// Results reported to clients after an engagement write.
const (
	ResultCreated = "created"
	ResultRemoved = "removed"
	ResultUpdated = "updated"
)

// conflictRetries is how many times a decision is re-run after losing a race.
const conflictRetries = 1

// DecideLike maps the stored like row (nil when absent) and the requested state to a write.
// A stored row with Liked=false predates the presence-equals-liked rule and counts as unliked.
func DecideLike(existing *models.Like, requested bool) (LikeAction, error) {
	currentlyLiked := existing != nil && existing.Liked

	switch {
	case !currentlyLiked && !requested:
		return "", models.NewInvalidTransitionError("You can't unlike a course you haven't liked")
	case currentlyLiked && requested:
		return "", models.NewNoOpTransitionError("You can't like a course twice")
	case currentlyLiked:
		return LikeActionRemove, nil
	case existing != nil:
		return LikeActionMarkLiked, nil
	default:
		return LikeActionCreate, nil
	}
}

// EngagementService runs the like and rating state machines and projects course aggregates.
type EngagementService struct {
	repo repository.EngagementRepository
}

type ToggleLikeInput struct {
	UserID   uint
	CourseID uint
	Liked    bool
}

// LikeOutcome describes the applied like transition.
type LikeOutcome struct {
	Result   string       `json:"result"`
	UserID   uint         `json:"userId"`
	CourseID uint         `json:"courseId"`
	Liked    bool         `json:"liked"`
	Like     *models.Like `json:"like,omitempty"`
}

type RateCourseInput struct {
	UserID   uint
	CourseID uint
	Rating   int
}

// RatingOutcome describes the applied rating upsert.
type RatingOutcome struct {
	Result string         `json:"result"`
	Rating *models.Rating `json:"rating"`
}

type DeleteRatingInput struct {
	UserID   uint
	CourseID uint
}

func NewEngagementService(repo repository.EngagementRepository) *EngagementService {
	return &EngagementService{repo: repo}
}

// ToggleLike applies the requested like state for one user and course.
func (s *EngagementService) ToggleLike(ctx context.Context, in ToggleLikeInput) (out *LikeOutcome, err error) {
	ctx, span := observability.StartSpan(ctx, "engagement.ToggleLike",
		attribute.Int64("course.id", int64(in.CourseID)),
		attribute.Bool("like.requested", in.Liked),
	)
	defer func() { observability.EndSpan(span, err) }()

	err = s.decide(ctx, "like", func(repo repository.EngagementRepository) error {
		if err := requireCourse(ctx, repo, in.CourseID); err != nil {
			return err
		}

		existing, err := repo.FindLike(ctx, in.UserID, in.CourseID)
		if err != nil {
			return err
		}
		action, err := DecideLike(existing, in.Liked)
		if err != nil {
			return err
		}

		switch action {
		case LikeActionCreate:
			like := &models.Like{UserID: in.UserID, CourseID: in.CourseID, Liked: true}
			if err := repo.CreateLike(ctx, like); err != nil {
				return err
			}
			out = &LikeOutcome{Result: ResultCreated, Like: like}
		case LikeActionMarkLiked:
			if err := repo.MarkLiked(ctx, existing.ID); err != nil {
				return err
			}
			existing.Liked = true
			out = &LikeOutcome{Result: ResultUpdated, Like: existing}
		case LikeActionRemove:
			if err := repo.DeleteLike(ctx, existing.ID); err != nil {
				return err
			}
			out = &LikeOutcome{Result: ResultRemoved}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.UserID, out.CourseID, out.Liked = in.UserID, in.CourseID, in.Liked
	observability.EngagementTransitions.WithLabelValues("like", out.Result).Inc()
	middleware.Logger.InfoContext(ctx, "like transition applied",
		slog.Uint64("course_id", uint64(in.CourseID)),
		slog.String("result", out.Result),
	)
	return out, nil
}

// RateCourse creates the user's rating for a course or overwrites the existing one.
// Re-submitting the same score is accepted and refreshes UpdatedAt.
func (s *EngagementService) RateCourse(ctx context.Context, in RateCourseInput) (out *RatingOutcome, err error) {
	if in.Rating < models.MinRating || in.Rating > models.MaxRating {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}

	ctx, span := observability.StartSpan(ctx, "engagement.RateCourse",
		attribute.Int64("course.id", int64(in.CourseID)),
		attribute.Int("rating.value", in.Rating),
	)
	defer func() { observability.EndSpan(span, err) }()

	err = s.decide(ctx, "rating", func(repo repository.EngagementRepository) error {
		if err := requireCourse(ctx, repo, in.CourseID); err != nil {
			return err
		}

		existing, err := repo.FindRating(ctx, in.UserID, in.CourseID)
		if err != nil {
			return err
		}

		if existing == nil {
			rating := &models.Rating{UserID: in.UserID, CourseID: in.CourseID, Value: in.Rating}
			if err := repo.CreateRating(ctx, rating); err != nil {
				return err
			}
			out = &RatingOutcome{Result: ResultCreated, Rating: rating}
			return nil
		}

		if err := repo.UpdateRating(ctx, existing.ID, in.Rating); err != nil {
			return err
		}
		updated, err := repo.GetRatingByID(ctx, existing.ID)
		if err != nil {
			return err
		}
		out = &RatingOutcome{Result: ResultUpdated, Rating: updated}
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.EngagementTransitions.WithLabelValues("rating", out.Result).Inc()
	middleware.Logger.InfoContext(ctx, "rating applied",
		slog.Uint64("course_id", uint64(in.CourseID)),
		slog.String("result", out.Result),
		slog.Int("rating", in.Rating),
	)
	return out, nil
}

// DeleteRating removes the caller's rating on a course.
func (s *EngagementService) DeleteRating(ctx context.Context, in DeleteRatingInput) (*models.Rating, error) {
	var deleted *models.Rating
	err := s.repo.WithinTx(ctx, func(repo repository.EngagementRepository) error {
		if err := requireCourse(ctx, repo, in.CourseID); err != nil {
			return err
		}
		rating, err := repo.FindRating(ctx, in.UserID, in.CourseID)
		if err != nil {
			return err
		}
		if rating == nil {
			return &models.AppError{Code: models.CodeNotFound, Message: "This rating doesn't exist"}
		}
		if err := deleteOwnedRating(ctx, repo, rating, in.UserID); err != nil {
			return err
		}
		deleted = rating
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.EngagementTransitions.WithLabelValues("rating", ResultRemoved).Inc()
	return deleted, nil
}

// DeleteRatingByID removes a rating addressed by its ID. Only its author may do so.
func (s *EngagementService) DeleteRatingByID(ctx context.Context, userID, ratingID uint) (*models.Rating, error) {
	var deleted *models.Rating
	err := s.repo.WithinTx(ctx, func(repo repository.EngagementRepository) error {
		rating, err := repo.GetRatingByID(ctx, ratingID)
		if err != nil {
			return err
		}
		if err := deleteOwnedRating(ctx, repo, rating, userID); err != nil {
			return err
		}
		deleted = rating
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.EngagementTransitions.WithLabelValues("rating", ResultRemoved).Inc()
	return deleted, nil
}

func deleteOwnedRating(ctx context.Context, repo repository.EngagementRepository, rating *models.Rating, userID uint) error {
	if rating.UserID != userID {
		return models.NewForbiddenError("You can't delete other users' ratings")
	}
	return repo.DeleteRating(ctx, rating.ID)
}

// ListLikes returns every like with its user and course.
func (s *EngagementService) ListLikes(ctx context.Context) ([]models.LikeView, error) {
	return s.repo.ListLikes(ctx)
}

// ListRatings returns all ratings, or one course's when courseID is non-zero.
func (s *EngagementService) ListRatings(ctx context.Context, courseID uint) ([]models.RatingView, error) {
	if courseID != 0 {
		if err := requireCourse(ctx, s.repo, courseID); err != nil {
			return nil, err
		}
	}
	return s.repo.ListRatings(ctx, courseID)
}

// Aggregates computes the engagement view of each course from its current rows.
func (s *EngagementService) Aggregates(ctx context.Context, courseIDs []uint, viewerID *uint) (map[uint]models.Aggregate, error) {
	likes, err := s.repo.LikesForCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	ratings, err := s.repo.RatingsForCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	likesByCourse := make(map[uint][]models.Like, len(courseIDs))
	for _, l := range likes {
		likesByCourse[l.CourseID] = append(likesByCourse[l.CourseID], l)
	}
	ratingsByCourse := make(map[uint][]models.Rating, len(courseIDs))
	for _, r := range ratings {
		ratingsByCourse[r.CourseID] = append(ratingsByCourse[r.CourseID], r)
	}

	out := make(map[uint]models.Aggregate, len(courseIDs))
	for _, id := range courseIDs {
		out[id] = ProjectAggregate(likesByCourse[id], ratingsByCourse[id], viewerID)
	}
	return out, nil
}

// decide runs fn in a transaction, re-running it once when a concurrent writer
// wins the race for the same (user, course) row.
func (s *EngagementService) decide(ctx context.Context, kind string, fn func(repository.EngagementRepository) error) error {
	for attempt := 0; ; attempt++ {
		err := s.repo.WithinTx(ctx, fn)
		if !errors.Is(err, repository.ErrConflict) {
			return err
		}

		observability.EngagementConflicts.WithLabelValues(kind).Inc()
		if attempt >= conflictRetries {
			return models.NewConflictError("Concurrent update, please retry", err)
		}
		middleware.Logger.WarnContext(ctx, "engagement write conflict, retrying",
			slog.String("kind", kind),
			slog.Int("attempt", attempt+1),
		)
	}
}

func requireCourse(ctx context.Context, repo repository.EngagementRepository, courseID uint) error {
	exists, err := repo.CourseExists(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Course", courseID)
	}
	return nil
}
