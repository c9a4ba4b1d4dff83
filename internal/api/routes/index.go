package routes

import (
	"freeform-backend/internal/auth"
	"freeform-backend/internal/handlers"
	"freeform-backend/internal/libraries"
	"freeform-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Dependencies struct {
	DB          *gorm.DB
	ObjectStore libraries.ObjectStore
	Sessions    *auth.SessionManager
}

func Register(app *fiber.App, deps Dependencies) {
	app.Get("/health", handlers.Health)

	api := app.Group("/api")
	requireSession := middleware.RequireSession(deps.Sessions)

	registerBoard(api, deps, requireSession)
	registerSnapshot(api, deps)
	registerProfile(api, deps, requireSession)
	registerSession(api, deps, requireSession)
}
