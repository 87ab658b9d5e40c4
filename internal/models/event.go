package models

import "time"

// SortOrder controls the created_at ordering of event listings.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// Event is a single compliance record as persisted by the event store.
// Events are immutable once appended.
type Event struct {
	ID         int64     `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	ImageHash  *string   `json:"image_hash,omitempty"` // NULL when no image was captured
	Flagged    bool      `json:"flagged"`
	DeviceName string    `json:"device_name"`
}

// LogEventRequest is the wire payload of POST /api/log_event.
// Image, when present, is base64 of a zstd-compressed PNG byte stream.
type LogEventRequest struct {
	Image      *string `json:"image"`
	DeviceName string  `json:"device_name"`
	Flagged    bool    `json:"flagged"`
} // @name LogEventRequest

// LogEventResponse is returned on a successful log operation.
type LogEventResponse struct {
	Message string `json:"message" example:"Event logged successfully"`
	EventID int64  `json:"event_id" example:"42"`
} // @name LogEventResponse

// ListEventsQuery carries the validated filter/sort/page parameters of
// GET /api/get_events.
type ListEventsQuery struct {
	DeviceName  string    `form:"device_name"`
	OnlyFlagged bool      `form:"only_flagged"`
	PerPage     int       `form:"per_page"`
	SortOrder   SortOrder `form:"sort_order"`
	Page        int       `form:"page"`
} // @name ListEventsQuery

// EventRecord is the wire shape of one event in a listing response.
// CreatedAt is epoch seconds; ImageURL is derived from the hash and the
// static blob location configuration.
type EventRecord struct {
	ID         int64   `json:"id"`
	CreatedAt  float64 `json:"created_at"`
	ImageHash  *string `json:"image_hash"`
	Flagged    bool    `json:"flagged"`
	DeviceName string  `json:"device_name"`
	ImageURL   *string `json:"image_url"`
} // @name EventRecord

// EventListResponse is the wire shape of GET /api/get_events.
type EventListResponse struct {
	Events      []EventRecord `json:"events"`
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
	HasNextPage bool          `json:"has_next_page"`
} // @name EventListResponse

// DeviceActivity reports the most recent event per reporting device.
// Consumed by the inactivity watchdog.
type DeviceActivity struct {
	DeviceName string    `json:"device_name"`
	LastSeen   time.Time `json:"last_seen"`
	EventCount int64     `json:"event_count"`
}
