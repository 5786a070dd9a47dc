package server

import (
	"time"

	"coursehub/internal/middleware"
	"coursehub/internal/models"
	"coursehub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// profile is the account view returned to its owner.
type profile struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newProfile(u *models.User) profile {
	return profile{
		ID:        u.ID,
		Name:      u.DisplayName(),
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Signup handles POST /api/v1/user/signup
// @Summary User signup
// @Description Register a new account and start a session
// @Tags user
// @Accept json
// @Produce json
// @Param request body service.SignupInput true "Signup request"
// @Success 201 {object} profile
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /v1/user/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req service.SignupInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.Signup(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	if err := s.startSession(c, user.ID); err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newProfile(user))
}

// Login handles POST /api/v1/user/login
// @Summary User login
// @Description Verify credentials and set the session cookie
// @Tags user
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Login credentials"
// @Success 200 {object} profile
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /v1/user/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.Login(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	if err := s.startSession(c, user.ID); err != nil {
		return respond(c, err)
	}
	return c.JSON(newProfile(user))
}

// Logout handles POST /api/v1/user/logout
// @Summary Logout
// @Tags user
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /v1/user/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(s.sessionCookie("", -1))
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me handles GET /api/v1/user/me. It only trusts the session cookie.
// @Summary Current user
// @Tags user
// @Produce json
// @Success 200 {object} profile
// @Failure 401 {object} models.ErrorResponse
// @Router /v1/user/me [get]
func (s *Server) Me(c *fiber.Ctx) error {
	raw := c.Cookies(middleware.TokenCookie)
	if raw == "" {
		return respond(c, models.NewUnauthenticatedError("Authentication required"))
	}
	identity, err := s.tokens.Verify(raw)
	if err != nil {
		return respond(c, models.NewInvalidTokenError(err))
	}

	ctx := middleware.WithUserID(c.UserContext(), identity.UserID)
	user, err := s.userService.GetUserByID(ctx, identity.UserID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(newProfile(user))
}

// UpdateProfile handles PUT /api/v1/user/update
// @Summary Update own profile
// @Tags user
// @Accept json
// @Produce json
// @Param request body service.UpdateProfileInput true "Fields to change"
// @Success 200 {object} profile
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /v1/user/update [put]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req service.UpdateProfileInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	req.UserID = currentUserID(c)

	user, err := s.userService.UpdateProfile(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(newProfile(user))
}

// GetMyCourses handles GET /api/v1/user/courses
// @Summary Courses taught by the caller
// @Tags user
// @Produce json
// @Success 200 {array} service.CourseWithStats
// @Router /v1/user/courses [get]
func (s *Server) GetMyCourses(c *fiber.Ctx) error {
	courses, err := s.courseService.ListTeacherCourses(c.UserContext(), currentUserID(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(courses)
}

func (s *Server) startSession(c *fiber.Ctx, userID uint) error {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return models.NewInternalError(err)
	}
	c.Cookie(s.sessionCookie(token, int(s.tokens.TTL().Seconds())))
	return nil
}

// sessionCookie builds the token cookie. A negative maxAge clears it.
func (s *Server) sessionCookie(value string, maxAge int) *fiber.Cookie {
	cookie := &fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteNoneMode,
		Secure:   true,
	}
	if s.config.IsDevelopment() {
		cookie.SameSite = fiber.CookieSameSiteLaxMode
		cookie.Secure = false
	}
	if maxAge < 0 {
		cookie.Expires = time.Unix(0, 0)
	}
	return cookie
}
