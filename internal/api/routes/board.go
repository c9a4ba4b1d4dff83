package routes

import (
	"freeform-backend/internal/handlers"
	"freeform-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func registerBoard(r fiber.Router, deps Dependencies, requireSession fiber.Handler) {
	boardRepo := repo.NewBoardRepository(deps.DB)
	boardHandler := handlers.NewBoardHandler(boardRepo, deps.ObjectStore)

	r.Get("/board", requireSession, boardHandler.GetBoard)
	r.Post("/board", requireSession, boardHandler.SaveBoard)
	r.Put("/board/image", requireSession, boardHandler.UploadImage)
}

// token authenticated, no session involved
func registerSnapshot(r fiber.Router, deps Dependencies) {
	snapshotHandler := handlers.NewSnapshotHandler(
		repo.NewProfileRepository(deps.DB),
		repo.NewBoardRepository(deps.DB),
	)

	r.Get("/snapshot", snapshotHandler.GetSnapshot)
}
