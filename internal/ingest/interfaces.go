package ingest

import (
	"context"

	"github.com/aloysiusChng/ppe-sentinel/internal/models"
)

// EventStore is the durable append-only record of compliance events.
type EventStore interface {
	// AppendEvent assigns the next id, stamps created_at and persists
	// the event atomically. Safe under concurrent callers.
	AppendEvent(ctx context.Context, imageHash *string, flagged bool, deviceName string) (int64, error)

	// ListEvents returns one page of matching events plus the total
	// match count. Ordering must be stable across identical queries
	// against an unchanged store.
	ListEvents(ctx context.Context, query models.ListEventsQuery) ([]models.Event, int64, error)
}
