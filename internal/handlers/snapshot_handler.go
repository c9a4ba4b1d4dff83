package handlers

import (
	"errors"
	"freeform-backend/internal/errs"
	"freeform-backend/internal/repo"
	"log"

	"github.com/gofiber/fiber/v2"
)

// SnapshotHandler serves the latest board image to token holders (widgets).
// It never uses the session cookie.
type SnapshotHandler struct {
	profiles repo.ProfileRepoInterface
	boards   repo.BoardRepoInterface
}

func NewSnapshotHandler(profiles repo.ProfileRepoInterface, boards repo.BoardRepoInterface) *SnapshotHandler {
	return &SnapshotHandler{
		profiles: profiles,
		boards:   boards,
	}
}

// GetSnapshot redirects to the image URL of the token owner's latest board
func (h *SnapshotHandler) GetSnapshot(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return invalidToken(c)
	}

	profile, err := h.profiles.GetByAPIToken(token)
	if errors.Is(err, errs.ErrProfileNotFound) {
		return invalidToken(c)
	}
	if err != nil {
		log.Println(err, "Error resolving api token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	board, err := h.boards.GetLatestBoard(profile.ID)
	if err != nil && !errors.Is(err, errs.ErrBoardNotFound) {
		log.Println(err, "Error getting board for snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if board == nil || board.SnapshotURL == nil || *board.SnapshotURL == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No snapshot available",
		})
	}

	return c.Redirect(*board.SnapshotURL, fiber.StatusTemporaryRedirect)
}

// missing and unknown tokens must look the same to the caller
func invalidToken(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Invalid token",
	})
}
