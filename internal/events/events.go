// Package events publishes extraction and search lifecycle events to
// NATS so downstream booking agents can react to them.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectExtractionCompleted = "sky.extraction.completed"
	SubjectSearchCompleted     = "sky.search.completed"
)

// ExtractionCompleted is emitted after every extraction, whether or
// not it yielded enough to search.
type ExtractionCompleted struct {
	Query           string   `json:"query"`
	DepartureCity   string   `json:"source,omitempty"`
	DestinationCity string   `json:"destination,omitempty"`
	FlightType      string   `json:"flight_type"`
	FlightClass     string   `json:"flight_class"`
	MissingFields   []string `json:"missing_fields,omitempty"`
}

// SearchCompleted is emitted after a provider fan-out finishes.
type SearchCompleted struct {
	SearchID           string `json:"search_id"`
	DepartureCity      string `json:"source"`
	DestinationCity    string `json:"destination"`
	ProvidersQueried   int    `json:"providers_queried"`
	ProvidersSucceeded int    `json:"providers_succeeded"`
	TotalOffers        int    `json:"total_offers"`
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// NewPublisher connects to NATS. A nil publisher is safe to use and
// drops everything, so the service runs without a broker.
func NewPublisher(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: nc, logger: logger}, nil
}

func (p *Publisher) Publish(subject string, data any) error {
	if p == nil {
		return nil
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.conn.Close()
}
