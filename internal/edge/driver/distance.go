package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aloysiusChng/ppe-sentinel/pkg/clock"
)

const defaultPollInterval = 200 * time.Millisecond

// DistancePoller watches an HTTP distance sensor and reports when a
// subject stands inside the configured range.
type DistancePoller struct {
	httpClient   *http.Client
	url          string
	minDistanceM float64
	maxDistanceM float64
	pollInterval time.Duration
	sleeper      clock.Sleeper
}

// NewDistancePoller builds a proximity gate around the sensor URL.
// A reading d triggers when minDistanceM <= d <= maxDistanceM.
func NewDistancePoller(url string, minDistanceM, maxDistanceM float64) *DistancePoller {
	return &DistancePoller{
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		url:          url,
		minDistanceM: minDistanceM,
		maxDistanceM: maxDistanceM,
		pollInterval: defaultPollInterval,
		sleeper:      clock.RealSleeper{},
	}
}

// WaitForInRange blocks until a reading falls inside the range or the
// context ends. Transient sensor errors are retried on the next poll.
func (p *DistancePoller) WaitForInRange(ctx context.Context) error {
	for {
		distance, err := p.read(ctx)
		if err == nil && distance >= p.minDistanceM && distance <= p.maxDistanceM {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := p.sleeper.Sleep(ctx, p.pollInterval); err != nil {
			return err
		}
	}
}

func (p *DistancePoller) read(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build sensor request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to reach distance sensor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("distance sensor returned status %d", resp.StatusCode)
	}

	var reading struct {
		Distance float64 `json:"distance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reading); err != nil {
		return 0, fmt.Errorf("failed to decode sensor reading: %w", err)
	}
	return reading.Distance, nil
}
