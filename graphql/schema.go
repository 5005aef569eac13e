// Package graphql assembles the root GraphQL schema from the module
// query fields.
package graphql

import (
	"github.com/graphql-go/graphql"

	gqlcves "github.com/cvehub/cvehub-backend/graphql/modules/cves"
	pipeline "github.com/cvehub/cvehub-backend/internal/ingest"
	"github.com/cvehub/cvehub-backend/internal/store"
)

// CreateSchema builds the root query schema over the store and the
// ingestion service
func CreateSchema(st store.Store, svc *pipeline.Service) (graphql.Schema, error) {
	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: gqlcves.GetQueryFields(st, svc),
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: rootQuery,
	})
}
