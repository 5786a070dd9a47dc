package server

import (
	"errors"

	"coursehub/internal/middleware"
	"coursehub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID reads the ":id" route parameter as a positive uint. resource
// names the entity in the error message. On failure it writes a 400 JSON
// response and returns errResponseWritten.
func parseID(c *fiber.Ctx, resource string) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+resource+" ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseBody decodes the JSON body into out, writing a 400 on failure.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// currentUserID returns the identity set by the auth gate. Routes behind
// the gate always have one.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := middleware.UserID(c)
	return id
}

// viewerID returns the caller for optionally authenticated routes, nil when anonymous.
func viewerID(c *fiber.Ctx) *uint {
	if id, ok := middleware.UserID(c); ok {
		return &id
	}
	return nil
}

// respond writes err with the status its code maps to, logging internal failures.
func respond(c *fiber.Ctx, err error) error {
	if models.StatusFor(err) == fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			"path", c.Path(), "error", err)
	}
	return models.RespondWithAppError(c, err)
}
