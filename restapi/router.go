// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	pipeline "github.com/cvehub/cvehub-backend/internal/ingest"
	"github.com/cvehub/cvehub-backend/internal/store"
	cveapi "github.com/cvehub/cvehub-backend/restapi/modules/cves"
	ingestapi "github.com/cvehub/cvehub-backend/restapi/modules/ingest"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint
func SetupRoutes(app *fiber.App, st store.Store, svc *pipeline.Service, defaults pipeline.Options, schema graphql.Schema) {

	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route - Mounted within the api group to inherit path prefixes
	api.Post("/graphql", GraphQLHandler(schema))

	// Ingestion control surface
	ingestGroup := api.Group("/ingest")
	ingestGroup.Post("/start", ingestapi.PostStart(svc, defaults))
	ingestGroup.Get("/progress", ingestapi.GetProgress(svc))
	ingestGroup.Post("/stop", ingestapi.PostStop(svc))

	// CVE read endpoints
	api.Get("/cves", cveapi.ListCVEs(st))
	api.Get("/cves/:id", cveapi.GetCVE(st))
	api.Get("/cves/:id/exploits", cveapi.GetExploits(st))

	log.Println("API routes initialized successfully")
}
