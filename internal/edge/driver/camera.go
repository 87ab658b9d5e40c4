// Package driver adapts HTTP-attached capture hardware (snapshot
// cameras and distance sensors) to the edge workflow ports.
package driver

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	// Registered so image.DecodeConfig can size camera snapshots.
	_ "image/jpeg"
	_ "image/png"

	"github.com/aloysiusChng/ppe-sentinel/internal/edge"
)

// SnapshotCamera grabs frames from an IP camera's snapshot endpoint.
type SnapshotCamera struct {
	httpClient *http.Client
	url        string
}

// NewSnapshotCamera builds a camera for the given snapshot URL.
func NewSnapshotCamera(url string) *SnapshotCamera {
	return &SnapshotCamera{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		url:        url,
	}
}

// Grab fetches one snapshot and returns it with its decoded dimensions.
func (c *SnapshotCamera) Grab(ctx context.Context) (edge.Frame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return edge.Frame{}, fmt.Errorf("failed to build snapshot request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return edge.Frame{}, fmt.Errorf("failed to reach camera: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return edge.Frame{}, fmt.Errorf("camera returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return edge.Frame{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return edge.Frame{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return edge.Frame{Width: cfg.Width, Height: cfg.Height, PNG: data}, nil
}
