package fakes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aloysiusChng/ppe-sentinel/internal/models"
)

// FakeEventStore is an in-memory event store honouring the same
// contract as the MySQL client: contiguous increasing ids, monotonic
// created_at, atomic visibility, stable ordering.
type FakeEventStore struct {
	mu     sync.Mutex
	nextID int64
	lastAt time.Time
	events []models.Event

	AppendErr error
	ListErr   error
}

func NewFakeEventStore() *FakeEventStore {
	return &FakeEventStore{nextID: 1}
}

func (f *FakeEventStore) AppendEvent(_ context.Context, imageHash *string, flagged bool, deviceName string) (int64, error) {
	if f.AppendErr != nil {
		return 0, f.AppendErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now().UTC()
	if !now.After(f.lastAt) {
		now = f.lastAt.Add(time.Nanosecond)
	}
	f.lastAt = now

	event := models.Event{
		ID:         f.nextID,
		CreatedAt:  now,
		ImageHash:  imageHash,
		Flagged:    flagged,
		DeviceName: deviceName,
	}
	f.nextID++
	f.events = append(f.events, event)
	return event.ID, nil
}

func (f *FakeEventStore) ListEvents(_ context.Context, query models.ListEventsQuery) ([]models.Event, int64, error) {
	if f.ListErr != nil {
		return nil, 0, f.ListErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]models.Event, 0, len(f.events))
	for _, event := range f.events {
		if query.OnlyFlagged && !event.Flagged {
			continue
		}
		if query.DeviceName != "" && !strings.EqualFold(query.DeviceName, event.DeviceName) {
			continue
		}
		matched = append(matched, event)
	}

	asc := query.SortOrder == models.SortOrderAsc
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if asc {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if asc {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})

	total := int64(len(matched))
	start := (query.Page - 1) * query.PerPage
	if start >= len(matched) {
		return []models.Event{}, total, nil
	}
	end := start + query.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	page := make([]models.Event, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

// Events returns a snapshot of everything appended so far.
func (f *FakeEventStore) Events() []models.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Event, len(f.events))
	copy(out, f.events)
	return out
}
