package middleware

import (
	"context"
	"errors"
	"freeform-backend/internal/auth"
	"freeform-backend/internal/errs"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	// SessionCookie carries the session token for browser clients
	SessionCookie = "session"
	sessionLocal  = "session"
)

type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Session, error)
}

// RequireSession rejects requests without a valid session and stores the
// verified session in the request locals
func RequireSession(verifier SessionVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = c.Cookies(SessionCookie)
		}

		session, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, errs.ErrUnauthorized) || errors.Is(err, errs.ErrInvalidToken) || errors.Is(err, errs.ErrSessionRevoked) {
				return Unauthorized(c)
			}
			log.Println(err, "Error verifying session")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals(sessionLocal, session)
		return c.Next()
	}
}

// CurrentSession returns the session stored by RequireSession
func CurrentSession(c *fiber.Ctx) (*auth.Session, bool) {
	session, ok := c.Locals(sessionLocal).(*auth.Session)
	return session, ok && session != nil
}

func Unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}

func bearerToken(header string) string {
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return strings.TrimSpace(token)
}
