package server

import (
	"coursehub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllFeedbacks handles GET /api/v1/feedback/feedbacks
// @Summary List every feedback note
// @Tags feedback
// @Produce json
// @Success 200 {array} models.Feedback
// @Router /v1/feedback/feedbacks [get]
func (s *Server) GetAllFeedbacks(c *fiber.Ctx) error {
	feedbacks, err := s.feedbackService.ListAll(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(feedbacks)
}

// GetCourseFeedbacks handles GET /api/v1/feedback/:id/feedbacks
// @Summary List feedback left on a course
// @Tags feedback
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {array} models.Feedback
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/feedback/{id}/feedbacks [get]
func (s *Server) GetCourseFeedbacks(c *fiber.Ctx) error {
	courseID, err := parseID(c, "course")
	if err != nil {
		return nil
	}

	feedbacks, err := s.feedbackService.ListFeedbacks(c.UserContext(), courseID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(feedbacks)
}

// CreateFeedback handles POST /api/v1/feedback/create
// @Summary Leave feedback on a course
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body messageRequest true "Feedback"
// @Success 201 {object} models.Feedback
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/feedback/create [post]
func (s *Server) CreateFeedback(c *fiber.Ctx) error {
	var req messageRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	feedback, err := s.feedbackService.CreateFeedback(c.UserContext(), service.FeedbackInput{
		UserID:   currentUserID(c),
		CourseID: req.CourseID,
		Comment:  req.Comment,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// UpdateFeedback handles PUT /api/v1/feedback/:id/update
// @Summary Edit own feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param id path int true "Feedback ID"
// @Param request body messageRequest true "New text"
// @Success 200 {object} models.Feedback
// @Failure 403 {object} models.ErrorResponse
// @Router /v1/feedback/{id}/update [put]
func (s *Server) UpdateFeedback(c *fiber.Ctx) error {
	feedbackID, err := parseID(c, "feedback")
	if err != nil {
		return nil
	}
	var req messageRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	feedback, err := s.feedbackService.UpdateFeedback(c.UserContext(), service.FeedbackInput{
		UserID:     currentUserID(c),
		FeedbackID: feedbackID,
		Comment:    req.Comment,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(feedback)
}

// DeleteFeedback handles DELETE /api/v1/feedback/:id/delete
// @Summary Delete own feedback
// @Tags feedback
// @Produce json
// @Param id path int true "Feedback ID"
// @Success 200 {object} object{message=string,feedback=models.Feedback}
// @Failure 403 {object} models.ErrorResponse
// @Router /v1/feedback/{id}/delete [delete]
func (s *Server) DeleteFeedback(c *fiber.Ctx) error {
	feedbackID, err := parseID(c, "feedback")
	if err != nil {
		return nil
	}

	feedback, err := s.feedbackService.DeleteFeedback(c.UserContext(), currentUserID(c), feedbackID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Feedback deleted",
		"feedback": feedback,
	})
}
