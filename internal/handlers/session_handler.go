package handlers

import (
	"context"
	"freeform-backend/internal/auth"
	"freeform-backend/internal/middleware"
	"log"

	"github.com/gofiber/fiber/v2"
)

type SessionRevoker interface {
	Revoke(ctx context.Context, session *auth.Session) error
}

type SessionHandler struct {
	sessions SessionRevoker
}

func NewSessionHandler(sessions SessionRevoker) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Logout revokes the current session and clears the session cookie
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return middleware.Unauthorized(c)
	}

	if err := h.sessions.Revoke(c.UserContext(), session); err != nil {
		log.Println(err, "Error revoking session")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.ClearCookie(middleware.SessionCookie)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}
