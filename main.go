// package main wires up the cvehub-backend microservice: the ArangoDB
// persistence layer, the NVD ingestion pipeline, the Kafka event plumbing
// and the Fiber app serving the REST and GraphQL APIs.
package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/cvehub/cvehub-backend/database"
	eventcves "github.com/cvehub/cvehub-backend/events/modules/cves"
	"github.com/cvehub/cvehub-backend/internal/api"
	"github.com/cvehub/cvehub-backend/internal/exploitdb"
	"github.com/cvehub/cvehub-backend/internal/ingest"
	"github.com/cvehub/cvehub-backend/internal/kafka"
	"github.com/cvehub/cvehub-backend/internal/nvd"
	"github.com/cvehub/cvehub-backend/internal/services"
	"github.com/cvehub/cvehub-backend/internal/store"
)

func main() {
	logger := database.InitLogger()

	db := database.InitializeDatabase()
	st := store.NewArangoStore(db)

	feed := nvd.NewClient(
		database.GetEnvDefault("NVD_API_URL", nvd.DefaultBaseURL),
		os.Getenv("NVD_API_KEY"),
	)

	lookup := services.NewHTTPExploitLookup(os.Getenv("EXPLOITDB_API_URL"))
	resolver := exploitdb.NewResolver(lookup, logger)

	// Optional event producer, enabled when brokers are configured
	var publisher ingest.Publisher
	if brokersEnv := os.Getenv("KAFKA_BROKERS"); brokersEnv != "" {
		producer := eventcves.NewIngestProducer(strings.Split(brokersEnv, ","), "ingest-events")
		defer producer.Close()
		publisher = producer

		// KEV matcher runs out of process; consume its match events here
		if err := kafka.RunEventProcessor(context.Background(), st); err != nil {
			logger.Sugar().Warnf("KEV event processor disabled: %v", err)
		}
	}

	svc := ingest.NewService(feed, resolver, st, publisher, logger)

	// Ingestion defaults, optionally overlaid from a YAML config file
	var defaults ingest.Options
	if path := os.Getenv("INGEST_CONFIG_PATH"); path != "" {
		loaded, err := ingest.LoadOptionsFile(path)
		if err != nil {
			logger.Sugar().Warnf("Ignoring ingest config: %v", err)
		} else {
			defaults = loaded
		}
	}

	app := api.NewFiberApp(st, svc, defaults)

	port := database.GetEnvDefault("MS_PORT", "3000")

	log.Printf("Starting server on port %s", port)
	log.Printf("GraphQL endpoint available at /api/v1/graphql")
	log.Printf("Ingestion endpoints available at /api/v1/ingest/*")
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
