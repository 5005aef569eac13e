// Package cves handles Kafka event production for CVE ingestion events.
package cves

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/cvehub/cvehub-backend/model"
)

// IngestProducer handles sending ingestion events to Kafka
type IngestProducer struct {
	Writer *kafka.Writer
}

// NewIngestProducer initializes a new Kafka writer for ingestion events
func NewIngestProducer(brokers []string, topic string) *IngestProducer {
	return &IngestProducer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishCVEIngested sends a cve.ingested event to the ingestion topic
func (p *IngestProducer) PublishCVEIngested(ctx context.Context, cve *model.CVE) error {
	event := CVEIngestedEvent{
		EventType:     EventTypeCVEIngested,
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		CVE:           *cve,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(cve.CveID),
		Value: payload,
	})
}

// PublishExploitDiscovered sends an exploit.discovered event to the ingestion topic
func (p *IngestProducer) PublishExploitDiscovered(ctx context.Context, exploit *model.Exploit) error {
	event := ExploitDiscoveredEvent{
		EventType:     EventTypeExploitDiscovered,
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		Exploit:       *exploit,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(exploit.CveID),
		Value: payload,
	})
}

// Close cleans up the Kafka writer
func (p *IngestProducer) Close() error {
	return p.Writer.Close()
}
