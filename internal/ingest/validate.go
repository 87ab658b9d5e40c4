package ingest

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/aloysiusChng/ppe-sentinel/internal/models"
)

// ValidationError is malformed or out-of-range request input. It is
// surfaced to the caller as a 400 and never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ValidateLogRequest checks the raw JSON body of a log operation and
// returns the typed request. The payload must carry all three keys;
// image may be null. Error messages are part of the wire contract.
func ValidateLogRequest(body []byte) (models.LogEventRequest, *ValidationError) {
	var req models.LogEventRequest

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return req, invalid("Request body must be JSON")
	}

	image, ok := payload["image"]
	if !ok {
		return req, invalid("Image data is missing")
	}
	deviceName, ok := payload["device_name"]
	if !ok {
		return req, invalid("Device name is missing")
	}
	flagged, ok := payload["flagged"]
	if !ok {
		return req, invalid("Flagged status is missing")
	}

	if err := json.Unmarshal(flagged, &req.Flagged); err != nil {
		return req, invalid("Flagged status must be a boolean")
	}
	if err := json.Unmarshal(image, &req.Image); err != nil {
		return req, invalid("Image data must be a string or null")
	}
	if err := json.Unmarshal(deviceName, &req.DeviceName); err != nil {
		return req, invalid("Device name must be a string")
	}
	if len(req.DeviceName) == 0 {
		return req, invalid("Device name cannot be empty")
	}

	return req, nil
}

// ParseListQuery validates and applies defaults to the query parameters
// of a list operation: device_name (optional), only_flagged (default
// false), per_page (1-100, default 10), sort_order (asc|desc, default
// desc), page (>=1, default 1).
func ParseListQuery(values url.Values) (models.ListEventsQuery, *ValidationError) {
	query := models.ListEventsQuery{
		DeviceName: values.Get("device_name"),
		PerPage:    10,
		SortOrder:  models.SortOrderDesc,
		Page:       1,
	}

	if raw := values.Get("only_flagged"); raw != "" {
		onlyFlagged, err := strconv.ParseBool(raw)
		if err == nil {
			query.OnlyFlagged = onlyFlagged
		}
	}

	if raw := values.Get("sort_order"); raw != "" {
		order := models.SortOrder(raw)
		if order != models.SortOrderAsc && order != models.SortOrderDesc {
			return query, invalid("Invalid sort order")
		}
		query.SortOrder = order
	}

	if raw := values.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil || perPage <= 0 {
			return query, invalid("Invalid per_page value")
		}
		if perPage > 100 {
			return query, invalid("per_page value exceeds limit of 100")
		}
		query.PerPage = perPage
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return query, invalid("Invalid page value")
		}
		// Non-positive pages clamp to the first page rather than
		// being rejected.
		if page < 1 {
			page = 1
		}
		query.Page = page
	}

	return query, nil
}
