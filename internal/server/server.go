// Package server contains the HTTP handlers and route table for the course platform API.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "coursehub/docs" // swagger docs
	"coursehub/internal/auth"
	"coursehub/internal/config"
	"coursehub/internal/database"
	"coursehub/internal/featureflags"
	"coursehub/internal/middleware"
	"coursehub/internal/models"
	"coursehub/internal/repository"
	"coursehub/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *auth.TokenService
	gate           *middleware.Authenticator
	featureFlags   *featureflags.Set

	userService       *service.UserService
	courseService     *service.CourseService
	commentService    *service.CommentService
	feedbackService   *service.FeedbackService
	engagementService *service.EngagementService
}

// NewServer connects to the database and wires every dependency.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return NewServerWithDeps(cfg, db)
}

// NewServerWithDeps creates a Server on an already-open database.
// Tests use it with SQLite; it never migrates.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret,
		auth.WithTTL(cfg.TokenTTL()),
		auth.WithIssuer(cfg.JWTIssuer),
	)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)

	flags := featureflags.Parse(cfg.FeatureFlags)
	engagement := service.NewEngagementService(engagementRepo)

	return &Server{
		config:            cfg,
		db:                db,
		promMiddleware:    middleware.InitMetrics("coursehub-api"),
		tokens:            tokens,
		gate:              middleware.NewAuthenticator(tokens),
		featureFlags:      flags,
		userService:       service.NewUserService(userRepo),
		courseService:     service.NewCourseService(courseRepo, userRepo, commentRepo, engagement, flags),
		commentService:    service.NewCommentService(commentRepo, courseRepo),
		feedbackService:   service.NewFeedbackService(feedbackRepo, courseRepo),
		engagementService: engagement,
	}, nil
}

// NewApp returns a Fiber app with the server's error handler, middleware and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "CourseHub API",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler turns anything a handler returns into the standard error body.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := models.CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = models.CodeNotFound
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusMethodNotAllowed:
			code = models.CodeValidation
		}
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message, Code: code})
	}

	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
	return models.RespondWithAppError(c, err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	// Tracing before the context middleware so the trace ID reaches the logger.
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "CourseHub Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	v1 := api.Group("/v1")
	required := s.gate.Required()
	optional := s.gate.Optional()

	users := v1.Group("/user")
	users.Post("/signup", s.Signup)
	users.Post("/login", s.Login)
	users.Post("/logout", required, s.Logout)
	users.Get("/me", s.Me)
	users.Put("/update", required, s.UpdateProfile)
	users.Get("/courses", required, s.GetMyCourses)

	courses := v1.Group("/course")
	courses.Post("/create", required, s.CreateCourse)
	courses.Get("/courses", optional, s.GetCourses)
	courses.Put("/:id/update", required, s.UpdateCourse)
	courses.Post("/:id/delete", required, s.DeleteCourse)
	courses.Get("/:id", optional, s.GetCourse)

	comments := v1.Group("/comment", required)
	comments.Get("/comments", s.GetAllComments)
	comments.Get("/:id/comments", s.GetCourseComments)
	comments.Post("/create", s.CreateComment)
	comments.Put("/:id/update", s.UpdateComment)
	comments.Delete("/:id/delete", s.DeleteComment)

	feedbacks := v1.Group("/feedback", required)
	feedbacks.Get("/feedbacks", s.GetAllFeedbacks)
	feedbacks.Get("/:id/feedbacks", s.GetCourseFeedbacks)
	feedbacks.Post("/create", s.CreateFeedback)
	feedbacks.Put("/:id/update", s.UpdateFeedback)
	feedbacks.Delete("/:id/delete", s.DeleteFeedback)

	likes := v1.Group("/like", required)
	likes.Post("/create", s.ToggleLike)
	likes.Get("/likes", s.GetLikes)

	ratings := v1.Group("/rating", required)
	ratings.Post("/create", s.RateCourse)
	ratings.Get("/ratings", s.GetRatings)
	ratings.Delete("/delete", s.DeleteRating)
	ratings.Get("/:id/ratings", s.GetCourseRatings)
	ratings.Delete("/:id/delete", s.DeleteRatingByID)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports whether the database answers a ping.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	status := fiber.StatusOK
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": dbStatus,
		"checks": fiber.Map{
			"database": dbStatus,
		},
		"flags": s.featureFlags.Names(),
		"time":  time.Now(),
	})
}

// Start builds the app and blocks serving on the configured port.
func (s *Server) Start() error {
	s.app = s.NewApp()
	middleware.Logger.Info("server starting", "port", s.config.Port, "env", s.config.Env)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
