// Package cves defines the GraphQL types for CVE and exploit data.
package cves

import (
	"github.com/graphql-go/graphql"
)

// CVEType represents one stored CVE record
var CVEType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CVE",
	Fields: graphql.Fields{
		"cve_id":             &graphql.Field{Type: graphql.String},
		"title":              &graphql.Field{Type: graphql.String},
		"description":        &graphql.Field{Type: graphql.String},
		"cvss_score":         &graphql.Field{Type: graphql.String},
		"severity":           &graphql.Field{Type: graphql.String},
		"vendor":             &graphql.Field{Type: graphql.String},
		"published_date":     &graphql.Field{Type: graphql.String},
		"updated_date":       &graphql.Field{Type: graphql.String},
		"tags":               &graphql.Field{Type: graphql.NewList(graphql.String)},
		"actively_exploited": &graphql.Field{Type: graphql.Boolean},
		"exploit_id":         &graphql.Field{Type: graphql.String},
	},
})

// ExploitType represents one stored exploit record
var ExploitType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Exploit",
	Fields: graphql.Fields{
		"exploit_id":     &graphql.Field{Type: graphql.String},
		"cve_id":         &graphql.Field{Type: graphql.String},
		"title":          &graphql.Field{Type: graphql.String},
		"description":    &graphql.Field{Type: graphql.String},
		"type":           &graphql.Field{Type: graphql.String},
		"platform":       &graphql.Field{Type: graphql.String},
		"verified":       &graphql.Field{Type: graphql.Boolean},
		"date_published": &graphql.Field{Type: graphql.String},
		"author":         &graphql.Field{Type: graphql.String},
		"source_url":     &graphql.Field{Type: graphql.String},
		"source":         &graphql.Field{Type: graphql.String},
	},
})

// IngestProgressType represents the live ingestion progress snapshot
var IngestProgressType = graphql.NewObject(graphql.ObjectConfig{
	Name: "IngestProgress",
	Fields: graphql.Fields{
		"total_cves":         &graphql.Field{Type: graphql.Int},
		"processed_cves":     &graphql.Field{Type: graphql.Int},
		"cves_with_exploits": &graphql.Field{Type: graphql.Int},
		"total_exploits":     &graphql.Field{Type: graphql.Int},
		"errors":             &graphql.Field{Type: graphql.NewList(graphql.String)},
		"status":             &graphql.Field{Type: graphql.String},
		"started_at":         &graphql.Field{Type: graphql.DateTime},
		"finished_at":        &graphql.Field{Type: graphql.DateTime},
	},
})
