// Package cves defines the GraphQL queries for CVE and exploit data.
package cves

import (
	"context"
	"strings"

	"github.com/graphql-go/graphql"

	pipeline "github.com/cvehub/cvehub-backend/internal/ingest"
	"github.com/cvehub/cvehub-backend/internal/store"
)

// GetQueryFields returns the CVE queries to be mounted in the root schema
func GetQueryFields(st store.Store, svc *pipeline.Service) graphql.Fields {
	return graphql.Fields{
		"cve": &graphql.Field{
			Type: CVEType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id := p.Args["id"].(string)
				cve, err := st.GetCVE(context.Background(), id)
				if err != nil {
					return nil, err
				}
				if cve == nil {
					return nil, nil
				}
				return *cve, nil
			},
		},
		"cves": &graphql.Field{
			Type: graphql.NewList(CVEType),
			Args: graphql.FieldConfigArgument{
				"severity": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"limit":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				severity := strings.ToUpper(p.Args["severity"].(string))
				limit := p.Args["limit"].(int)
				return st.ListCVEs(context.Background(), severity, limit)
			},
		},
		"exploits": &graphql.Field{
			Type: graphql.NewList(ExploitType),
			Args: graphql.FieldConfigArgument{
				"cveId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return st.ListExploitsForCVE(context.Background(), p.Args["cveId"].(string))
			},
		},
		"ingestProgress": &graphql.Field{
			Type: IngestProgressType,
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return svc.Progress(), nil
			},
		},
	}
}
