package server

import (
	"coursehub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type messageRequest struct {
	CourseID uint   `json:"courseId"`
	Comment  string `json:"comment"`
}

// GetAllComments handles GET /api/v1/comment/comments
// @Summary List every comment
// @Tags comment
// @Produce json
// @Success 200 {array} models.Comment
// @Router /v1/comment/comments [get]
func (s *Server) GetAllComments(c *fiber.Ctx) error {
	comments, err := s.commentService.ListAll(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(comments)
}

// GetCourseComments handles GET /api/v1/comment/:id/comments
// @Summary List a course's comments, oldest first
// @Tags comment
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {array} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/comment/{id}/comments [get]
func (s *Server) GetCourseComments(c *fiber.Ctx) error {
	courseID, err := parseID(c, "course")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.UserContext(), courseID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/v1/comment/create
// @Summary Comment on a course
// @Tags comment
// @Accept json
// @Produce json
// @Param request body messageRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/comment/create [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req messageRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:   currentUserID(c),
		CourseID: req.CourseID,
		Comment:  req.Comment,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/v1/comment/:id/update
// @Summary Edit own comment
// @Tags comment
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body messageRequest true "New text"
// @Success 200 {object} models.Comment
// @Failure 403 {object} models.ErrorResponse
// @Router /v1/comment/{id}/update [put]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "comment")
	if err != nil {
		return nil
	}
	var req messageRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
		Comment:   req.Comment,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/v1/comment/:id/delete
// @Summary Delete own comment
// @Tags comment
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} object{message=string,comment=models.Comment}
// @Failure 403 {object} models.ErrorResponse
// @Router /v1/comment/{id}/delete [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "comment")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Comment deleted",
		"comment": comment,
	})
}
