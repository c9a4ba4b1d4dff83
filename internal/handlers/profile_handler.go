package handlers

import (
	"freeform-backend/internal/middleware"
	"freeform-backend/internal/repo"
	"log"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	profiles repo.ProfileRepoInterface
}

func NewProfileHandler(profiles repo.ProfileRepoInterface) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile returns the caller's api token, creating the profile on first use
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return middleware.Unauthorized(c)
	}

	profile, err := h.profiles.GetOrCreateProfile(session.UserID)
	if err != nil {
		log.Println(err, "Error getting profile")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":        profile.ID,
		"api_token": profile.APIToken,
	})
}
