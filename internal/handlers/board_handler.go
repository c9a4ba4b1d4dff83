package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"freeform-backend/internal/errs"
	"freeform-backend/internal/libraries"
	"freeform-backend/internal/middleware"
	"freeform-backend/internal/models"
	"freeform-backend/internal/repo"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// for simple crud operations service layer is not required
type BoardHandler struct {
	repo  repo.BoardRepoInterface
	store libraries.ObjectStore
}

// NewBoardHandler wires the board endpoints. store may be nil, in which case
// image uploads answer 503 and boards are saved without images.
func NewBoardHandler(repo repo.BoardRepoInterface, store libraries.ObjectStore) *BoardHandler {
	return &BoardHandler{
		repo:  repo,
		store: store,
	}
}

type saveBoardRequest struct {
	Snapshot    json.RawMessage       `json:"snapshot"`
	SnapshotURL models.NullableString `json:"snapshot_url"`
}

// GetBoard returns the caller's latest board or {"snapshot": null}
func (h *BoardHandler) GetBoard(c *fiber.Ctx) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return middleware.Unauthorized(c)
	}

	board, err := h.repo.GetLatestBoard(session.UserID)
	if errors.Is(err, errs.ErrBoardNotFound) {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"snapshot": nil,
		})
	}
	if err != nil {
		log.Println(err, "Error getting board")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(board)
}

// SaveBoard upserts the caller's board
func (h *BoardHandler) SaveBoard(c *fiber.Ctx) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return middleware.Unauthorized(c)
	}

	var dto saveBoardRequest
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	// a JSON null would read back as "no board"
	if len(dto.Snapshot) == 0 || bytes.Equal(dto.Snapshot, []byte("null")) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "snapshot is required",
		})
	}

	err := h.repo.UpsertBoard(session.UserID, datatypes.JSON(dto.Snapshot), dto.SnapshotURL)
	if err != nil {
		log.Println(err, "Error saving board")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

// UploadImage stores the rendered board PNG at the caller's stable snapshot path
func (h *BoardHandler) UploadImage(c *fiber.Ctx) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return middleware.Unauthorized(c)
	}

	if h.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": errs.ErrNoObjectStore.Error(),
		})
	}

	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errs.ErrEmptyImage.Error(),
		})
	}

	// fasthttp reuses the request buffer once the handler returns
	data := append([]byte(nil), body...)
	url, err := h.store.Upload(c.UserContext(), libraries.SnapshotPath(session.UserID), data, libraries.SnapshotContentType)
	if err != nil {
		log.Println(err, "Error uploading snapshot image")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url": url,
	})
}
