package middleware

import (
	"strings"

	"coursehub/internal/auth"
	"coursehub/internal/models"
	"coursehub/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// TokenCookie is the cookie carrying the session token.
const TokenCookie = "token"

// TokenVerifier resolves a session token to the user it was issued for.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Authenticator gates routes on a valid session token. It only checks the
// token signature and claims and never reads the user store.
type Authenticator struct {
	tokens TokenVerifier
}

func NewAuthenticator(tokens TokenVerifier) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Required rejects requests without a valid token. A missing token is
// UNAUTHENTICATED, a malformed or expired one is INVALID_TOKEN.
func (a *Authenticator) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := TokenFromRequest(c)
		if raw == "" {
			observability.AuthRejections.WithLabelValues("missing").Inc()
			return models.RespondWithAppError(c, models.NewUnauthenticatedError("Authentication required"))
		}

		identity, err := a.tokens.Verify(raw)
		if err != nil {
			observability.AuthRejections.WithLabelValues("invalid").Inc()
			return models.RespondWithAppError(c, models.NewInvalidTokenError(err))
		}

		setIdentity(c, identity)
		return c.Next()
	}
}

// Optional attaches the caller's identity when a valid token is present and
// otherwise lets the request through as anonymous.
func (a *Authenticator) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := TokenFromRequest(c); raw != "" {
			if identity, err := a.tokens.Verify(raw); err == nil {
				setIdentity(c, identity)
			}
		}
		return c.Next()
	}
}

// TokenFromRequest reads the session cookie, falling back to a Bearer header
// for non-browser clients.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(TokenCookie); token != "" {
		return token
	}
	header := c.Get(fiber.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

// UserID returns the authenticated user stored by the gate.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok && id != 0
}

func setIdentity(c *fiber.Ctx, identity auth.Identity) {
	c.Locals("userID", identity.UserID)
	c.SetUserContext(WithUserID(c.UserContext(), identity.UserID))
}
