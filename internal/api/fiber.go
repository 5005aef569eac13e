// Package api builds the Fiber application serving the REST and GraphQL
// surfaces.
package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"

	gqlschema "github.com/cvehub/cvehub-backend/graphql"
	pipeline "github.com/cvehub/cvehub-backend/internal/ingest"
	"github.com/cvehub/cvehub-backend/internal/store"
	"github.com/cvehub/cvehub-backend/restapi"
)

// NewFiberApp creates and configures a Fiber app with REST and GraphQL routes
func NewFiberApp(st store.Store, svc *pipeline.Service, defaults pipeline.Options) *fiber.App {
	schema, err := gqlschema.CreateSchema(st, svc)
	if err != nil {
		log.Fatalf("Failed to create GraphQL schema: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:     "cvehub-backend API v1.0",
		ReadTimeout: 60 * time.Second,
	})

	// Middleware
	app.Use(fiberrecover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000,http://127.0.0.1:3000",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		AllowMethods:     "GET, POST, HEAD, PUT, DELETE, PATCH, OPTIONS",
	}))

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("graphql_op", "-")
		return c.Next()
	})
	app.Use(logger.New())

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	restapi.SetupRoutes(app, st, svc, defaults, schema)

	return app
}
