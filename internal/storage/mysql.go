package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// MySQLClient wraps direct SQL access to the event store.
type MySQLClient struct {
	db *sql.DB
}

// NewMySQLClient wires a sql.DB; pass a configured instance from main.
func NewMySQLClient(db *sql.DB) *MySQLClient {
	return &MySQLClient{db: db}
}

// EnsureSchema creates the event_logs table when it does not exist yet.
// The auto-increment primary key is what makes concurrent appends yield
// unique, strictly increasing ids.
func (c *MySQLClient) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS event_logs (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			created_at DATETIME(6) NOT NULL,
			image_hash VARCHAR(512) NULL,
			flagged BOOLEAN NOT NULL DEFAULT FALSE,
			device_name TEXT NOT NULL,
			INDEX idx_event_logs_created_at (created_at),
			INDEX idx_event_logs_flagged (flagged)
		)
	`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure event_logs schema: %w", err)
	}
	return nil
}
