package routes

import (
	"freeform-backend/internal/handlers"
	"freeform-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func registerProfile(r fiber.Router, deps Dependencies, requireSession fiber.Handler) {
	profileHandler := handlers.NewProfileHandler(repo.NewProfileRepository(deps.DB))

	r.Get("/profile", requireSession, profileHandler.GetProfile)
}

func registerSession(r fiber.Router, deps Dependencies, requireSession fiber.Handler) {
	sessionHandler := handlers.NewSessionHandler(deps.Sessions)

	r.Post("/session/logout", requireSession, sessionHandler.Logout)
}
