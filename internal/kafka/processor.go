// Package kafka runs the KEV event processor. The KEV matcher is a separate
// process that diffs the CISA Known Exploited Vulnerabilities catalog and
// publishes matched CVE ids; this consumer flags those CVEs in the store.
package kafka

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	"github.com/cvehub/cvehub-backend/internal/store"
)

// KEVMatchEvent is the payload published by the KEV matcher
type KEVMatchEvent struct {
	CveID     string `json:"cve_id"`
	CatalogID string `json:"catalog_id"`
}

// RunEventProcessor starts the KEV consumer in the background. Returns an
// error only when the initial broker connection cannot be established.
func RunEventProcessor(ctx context.Context, st store.Store) error {
	brokersEnv := os.Getenv("KAFKA_BROKERS")
	var brokers []string
	if brokersEnv != "" {
		brokers = strings.Split(brokersEnv, ",")
	} else {
		brokers = []string{"localhost:9092"}
	}

	username := os.Getenv("KAFKA_API_KEY")
	password := os.Getenv("KAFKA_API_SECRET")

	var dialer *kafka.Dialer

	// Only configure SASL/TLS if credentials are provided
	if username != "" && password != "" {
		mechanism := plain.Mechanism{
			Username: username,
			Password: password,
		}

		dialer = &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			SASLMechanism: mechanism,
			TLS:           &tls.Config{},
		}
	} else {
		// Default dialer for local development (no SASL/TLS)
		dialer = &kafka.Dialer{
			Timeout:   10 * time.Second,
			DualStack: true,
		}
	}

	topic := "kev-updates"
	var conn *kafka.Conn
	var err error

	// Retry logic: 3 tries
	for i := 1; i <= 3; i++ {
		log.Printf("Kafka connection attempt %d/3...", i)
		conn, err = dialer.DialContext(ctx, "tcp", brokers[0])
		if err == nil {
			conn.Close()
			break
		}
		if i < 3 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		return err
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  "cvehub-kev-worker",
		Topic:    topic,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	go func() {
		defer reader.Close()

		log.Println("KEV Event Processor started. Listening for catalog updates...")

		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := reader.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					continue
				}

				var event KEVMatchEvent
				if err := json.Unmarshal(msg.Value, &event); err != nil || event.CveID == "" {
					continue
				}

				if err := st.MarkActivelyExploited(ctx, event.CveID); err != nil {
					log.Printf("Failed to flag %s as actively exploited: %v", event.CveID, err)
				}
			}
		}
	}()

	return nil
}
