package main

import (
	"context"
	"freeform-backend/internal/api"
	"freeform-backend/internal/api/routes"
	"freeform-backend/internal/auth"
	"freeform-backend/internal/config"
	"freeform-backend/internal/libraries"
	"log"
)

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	// Connect to database
	if err := config.ConnectDB(cfg); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer config.CloseDB()

	// Run migrations
	if err := config.MigrateAllModels(cfg.AutoMigrate); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	clients, err := libraries.NewClients(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to init clients: %v", err)
	}
	defer clients.Close()

	var revocations auth.RevocationStore
	if clients.Redis != nil {
		revocations = libraries.NewRedisRevocationStore(clients.Redis)
	}

	// Create and configure Fiber app
	app := api.NewServer(cfg.CORSOrigins)

	// Register routes
	routes.Register(app, routes.Dependencies{
		DB:          config.DB,
		ObjectStore: clients.ObjectStore,
		Sessions:    auth.NewSessionManager([]byte(cfg.SessionSecret), revocations),
	})

	// Start server
	if err := api.StartServer(app, cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
