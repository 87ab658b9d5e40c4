// Package upload posts capture events from the edge device to the
// ingestion service. Delivery is best-effort by contract: the caller
// logs failures and moves on, and no retry is attempted.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aloysiusChng/ppe-sentinel/internal/imaging"
	"github.com/aloysiusChng/ppe-sentinel/internal/models"
)

// Client talks to POST /api/log_event with the shared upload key.
type Client struct {
	httpClient *http.Client
	endpoint   string
	accessKey  string
	deviceName string
}

// NewClient builds an upload client for the given service base URL.
func NewClient(baseURL, accessKey, deviceName string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   strings.TrimRight(baseURL, "/") + "/api/log_event",
		accessKey:  accessKey,
		deviceName: deviceName,
	}
}

// Upload serializes imagePNG into the transport encoding (zstd, then
// base64) and posts it with the flagged status. A nil image is sent as
// JSON null. Returns the event id assigned by the service.
func (c *Client) Upload(ctx context.Context, imagePNG []byte, flagged bool) (int64, error) {
	req := models.LogEventRequest{
		DeviceName: c.deviceName,
		Flagged:    flagged,
	}
	if imagePNG != nil {
		encoded := imaging.EncodeTransport(imagePNG)
		req.Image = &encoded
	}

	body, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal log_event payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build log_event request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.accessKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("failed to reach ingestion service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return 0, fmt.Errorf("ingestion service returned %d: %s", resp.StatusCode, errBody.Error)
	}

	var result models.LogEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode log_event response: %w", err)
	}
	return result.EventID, nil
}
