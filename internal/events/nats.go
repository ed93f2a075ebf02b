package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

const DefaultSubjectPrefix = "cleanarch.events"

// Envelope is the wire form of a published domain event.
type Envelope struct {
	Name        string    `json:"name"`
	AggregateID string    `json:"aggregateId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Payload     any       `json:"payload"`
}

// publisher is the subset of *nats.Conn used for publishing.
type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher forwards committed events to NATS subjects named
// "<prefix>.<EventName>".
type NATSPublisher struct {
	log    *logger.Logger
	nc     *nats.Conn
	pub    publisher
	prefix string
}

func NewNATSPublisher(log *logger.Logger, url, prefix string) (*NATSPublisher, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("missing NATS_URL")
	}
	nc, err := nats.Connect(url,
		nats.Name("cleanarch-api"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	p := newNATSPublisher(log, nc, prefix)
	p.nc = nc
	return p, nil
}

func newNATSPublisher(log *logger.Logger, pub publisher, prefix string) *NATSPublisher {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSPublisher{
		log:    log.With("component", "NATSPublisher"),
		pub:    pub,
		prefix: prefix,
	}
}

func (p *NATSPublisher) Name() string { return "nats" }

func (p *NATSPublisher) Subject(event domainagg.Event) string {
	return p.prefix + "." + event.EventName()
}

func (p *NATSPublisher) Handle(ctx context.Context, event domainagg.Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}
	data, err := json.Marshal(Envelope{
		Name:        event.EventName(),
		AggregateID: event.AggregateID().String(),
		OccurredAt:  event.OccurredAt(),
		Payload:     event,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.pub.Publish(p.Subject(event), data)
}

// Close drains pending publishes before disconnecting.
func (p *NATSPublisher) Close() error {
	if p == nil || p.nc == nil {
		return nil
	}
	return p.nc.Drain()
}
