// Package events publishes appended compliance events to Kafka for
// downstream consumers such as the monitoring dashboard. Publishing is
// strictly best-effort: a failure is reported to the caller for logging
// but must never fail the ingestion request that produced the event.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// Topic carries every successfully appended event.
const Topic = "safety-events"

// ComplianceEvent is the message body published per appended event.
type ComplianceEvent struct {
	EventID    int64     `json:"event_id"`
	CreatedAt  time.Time `json:"created_at"`
	ImageHash  *string   `json:"image_hash,omitempty"`
	Flagged    bool      `json:"flagged"`
	DeviceName string    `json:"device_name"`
}

// Publisher emits compliance events to Kafka.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a publisher for the given brokers. Returns nil
// when no brokers are configured; a nil *Publisher is safe to use and
// publishes nothing.
func NewPublisher(brokers []string) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        Topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// Publish enqueues one compliance event, keyed by device name so events
// from one device stay ordered within a partition.
func (p *Publisher) Publish(ctx context.Context, event ComplianceEvent) error {
	if p == nil {
		return nil
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal compliance event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.DeviceName),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(strconv.FormatInt(event.EventID, 10))},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish compliance event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
