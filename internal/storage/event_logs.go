package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aloysiusChng/ppe-sentinel/internal/models"
)

// AppendEvent inserts a new event and returns the store-assigned id.
// The row is written in a single INSERT, so readers never observe a
// partially written event.
func (c *MySQLClient) AppendEvent(ctx context.Context, imageHash *string, flagged bool, deviceName string) (int64, error) {
	query := `
		INSERT INTO event_logs (created_at, image_hash, flagged, device_name)
		VALUES (?, ?, ?, ?)
	`

	result, err := c.db.ExecContext(ctx, query,
		time.Now().UTC(),
		imageHash,
		flagged,
		deviceName,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to append event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read appended event id: %w", err)
	}
	return id, nil
}

// ListEvents retrieves events matching the query, ordered by created_at
// in the requested direction, paginated. It returns the page of events
// and the total match count. Ties on created_at break by id in the same
// direction, so repeated identical queries page stably.
func (c *MySQLClient) ListEvents(ctx context.Context, query models.ListEventsQuery) ([]models.Event, int64, error) {
	whereClauses := []string{}
	args := []interface{}{}

	if query.OnlyFlagged {
		whereClauses = append(whereClauses, "flagged = TRUE")
	}
	if query.DeviceName != "" {
		whereClauses = append(whereClauses, "LOWER(device_name) = LOWER(?)")
		args = append(args, query.DeviceName)
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM event_logs %s", whereClause)
	var totalCount int64
	if err := c.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	direction := "DESC"
	if query.SortOrder == models.SortOrderAsc {
		direction = "ASC"
	}
	offset := (query.Page - 1) * query.PerPage

	listQuery := fmt.Sprintf(`
		SELECT id, created_at, image_hash, flagged, device_name
		FROM event_logs
		%s
		ORDER BY created_at %s, id %s
		LIMIT ? OFFSET ?
	`, whereClause, direction, direction)

	args = append(args, query.PerPage, offset)

	rows, err := c.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		var imageHash sql.NullString

		if err := rows.Scan(
			&event.ID,
			&event.CreatedAt,
			&imageHash,
			&event.Flagged,
			&event.DeviceName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}

		if imageHash.Valid {
			event.ImageHash = &imageHash.String
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating events: %w", err)
	}

	return events, totalCount, nil
}

// DeviceActivity reports the latest event time and total count per
// device, most recently seen first.
func (c *MySQLClient) DeviceActivity(ctx context.Context) ([]models.DeviceActivity, error) {
	query := `
		SELECT device_name, MAX(created_at), COUNT(*)
		FROM event_logs
		GROUP BY device_name
		ORDER BY MAX(created_at) DESC
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query device activity: %w", err)
	}
	defer rows.Close()

	activity := []models.DeviceActivity{}
	for rows.Next() {
		var entry models.DeviceActivity
		if err := rows.Scan(&entry.DeviceName, &entry.LastSeen, &entry.EventCount); err != nil {
			return nil, fmt.Errorf("failed to scan device activity: %w", err)
		}
		activity = append(activity, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating device activity: %w", err)
	}

	return activity, nil
}
