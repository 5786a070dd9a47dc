package server

import (
	"coursehub/internal/models"
	"coursehub/internal/service"
	"coursehub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type likeRequest struct {
	CourseID uint  `json:"courseId" validate:"required"`
	Liked    *bool `json:"liked" validate:"required"`
}

type rateRequest struct {
	CourseID uint `json:"courseId" validate:"required"`
	Rating   int  `json:"rating"`
}

type courseRequest struct {
	CourseID uint `json:"courseId" validate:"required"`
}

// decodeValid parses the body into req and runs its validate tags.
func decodeValid(c *fiber.Ctx, req any) error {
	if err := parseBody(c, req); err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		_ = respond(c, models.NewValidationError(err.Error()))
		return errResponseWritten
	}
	return nil
}

// ToggleLike handles POST /api/v1/like/create
// @Summary Like or unlike a course
// @Description liked=true on a liked course is rejected as a no-op, liked=false without a like as an invalid transition.
// @Tags like
// @Accept json
// @Produce json
// @Param request body likeRequest true "Requested state"
// @Success 200 {object} service.LikeOutcome
// @Success 201 {object} service.LikeOutcome
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /v1/like/create [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	var req likeRequest
	if err := decodeValid(c, &req); err != nil {
		return nil
	}

	out, err := s.engagementService.ToggleLike(c.UserContext(), service.ToggleLikeInput{
		UserID:   currentUserID(c),
		CourseID: req.CourseID,
		Liked:    *req.Liked,
	})
	if err != nil {
		return respond(c, err)
	}

	status := fiber.StatusOK
	if out.Result == service.ResultCreated {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// GetLikes handles GET /api/v1/like/likes
// @Summary List every like
// @Tags like
// @Produce json
// @Success 200 {array} models.LikeView
// @Router /v1/like/likes [get]
func (s *Server) GetLikes(c *fiber.Ctx) error {
	likes, err := s.engagementService.ListLikes(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(likes)
}

// RateCourse handles POST /api/v1/rating/create
// @Summary Rate a course from 1 to 5, replacing any earlier rating
// @Tags rating
// @Accept json
// @Produce json
// @Param request body rateRequest true "Rating"
// @Success 200 {object} service.RatingOutcome
// @Success 201 {object} service.RatingOutcome
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /v1/rating/create [post]
func (s *Server) RateCourse(c *fiber.Ctx) error {
	var req rateRequest
	if err := decodeValid(c, &req); err != nil {
		return nil
	}

	out, err := s.engagementService.RateCourse(c.UserContext(), service.RateCourseInput{
		UserID:   currentUserID(c),
		CourseID: req.CourseID,
		Rating:   req.Rating,
	})
	if err != nil {
		return respond(c, err)
	}

	status := fiber.StatusOK
	if out.Result == service.ResultCreated {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// GetRatings handles GET /api/v1/rating/ratings
// @Summary List every rating
// @Tags rating
// @Produce json
// @Success 200 {array} models.RatingView
// @Router /v1/rating/ratings [get]
func (s *Server) GetRatings(c *fiber.Ctx) error {
	ratings, err := s.engagementService.ListRatings(c.UserContext(), 0)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(ratings)
}

// GetCourseRatings handles GET /api/v1/rating/:id/ratings
// @Summary List a course's ratings
// @Tags rating
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {array} models.RatingView
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/rating/{id}/ratings [get]
func (s *Server) GetCourseRatings(c *fiber.Ctx) error {
	courseID, err := parseID(c, "course")
	if err != nil {
		return nil
	}

	ratings, err := s.engagementService.ListRatings(c.UserContext(), courseID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(ratings)
}

// DeleteRating handles DELETE /api/v1/rating/delete
// @Summary Remove own rating from a course
// @Tags rating
// @Accept json
// @Produce json
// @Param request body courseRequest true "Course"
// @Success 200 {object} object{message=string,rating=models.Rating}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/rating/delete [delete]
func (s *Server) DeleteRating(c *fiber.Ctx) error {
	var req courseRequest
	if err := decodeValid(c, &req); err != nil {
		return nil
	}

	rating, err := s.engagementService.DeleteRating(c.UserContext(), service.DeleteRatingInput{
		UserID:   currentUserID(c),
		CourseID: req.CourseID,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Rating deleted",
		"rating":  rating,
	})
}

// DeleteRatingByID handles DELETE /api/v1/rating/:id/delete
// @Summary Remove a rating by ID (author only)
// @Tags rating
// @Produce json
// @Param id path int true "Rating ID"
// @Success 200 {object} object{message=string,rating=models.Rating}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/rating/{id}/delete [delete]
func (s *Server) DeleteRatingByID(c *fiber.Ctx) error {
	ratingID, err := parseID(c, "rating")
	if err != nil {
		return nil
	}

	rating, err := s.engagementService.DeleteRatingByID(c.UserContext(), currentUserID(c), ratingID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Rating deleted",
		"rating":  rating,
	})
}
