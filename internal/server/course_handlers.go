package server

import (
	"coursehub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse handles POST /api/v1/course/create
// @Summary Create a course
// @Tags course
// @Accept json
// @Produce json
// @Param request body service.CreateCourseInput true "Course"
// @Success 201 {object} models.Course
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /v1/course/create [post]
func (s *Server) CreateCourse(c *fiber.Ctx) error {
	var req service.CreateCourseInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	req.TeacherID = currentUserID(c)

	course, err := s.courseService.CreateCourse(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

// GetCourses handles GET /api/v1/course/courses
// @Summary List courses with engagement totals
// @Tags course
// @Produce json
// @Success 200 {array} service.CourseWithStats
// @Router /v1/course/courses [get]
func (s *Server) GetCourses(c *fiber.Ctx) error {
	courses, err := s.courseService.ListCourses(c.UserContext(), viewerID(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(courses)
}

// GetCourse handles GET /api/v1/course/:id
// @Summary Course detail
// @Tags course
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} service.CourseDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/course/{id} [get]
func (s *Server) GetCourse(c *fiber.Ctx) error {
	id, err := parseID(c, "course")
	if err != nil {
		return nil
	}

	detail, err := s.courseService.GetCourse(c.UserContext(), id, viewerID(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(detail)
}

// UpdateCourse handles PUT /api/v1/course/:id/update
// @Summary Update an owned course
// @Tags course
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body service.UpdateCourseInput true "Fields to change"
// @Success 200 {object} models.Course
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/course/{id}/update [put]
func (s *Server) UpdateCourse(c *fiber.Ctx) error {
	id, err := parseID(c, "course")
	if err != nil {
		return nil
	}
	var req service.UpdateCourseInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	req.CourseID = id
	req.UserID = currentUserID(c)

	course, err := s.courseService.UpdateCourse(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(course)
}

// DeleteCourse handles POST /api/v1/course/:id/delete
// @Summary Delete an owned course and its engagement
// @Tags course
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} object{message=string,course=models.Course}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /v1/course/{id}/delete [post]
func (s *Server) DeleteCourse(c *fiber.Ctx) error {
	id, err := parseID(c, "course")
	if err != nil {
		return nil
	}

	course, err := s.courseService.DeleteCourse(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Course deleted",
		"course":  course,
	})
}
