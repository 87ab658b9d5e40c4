// Package detect calls an external object-detection inference server
// and maps its response onto edge detections.
package detect

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/aloysiusChng/ppe-sentinel/internal/edge"
)

// responseSchema describes the inference server's reply. Responses
// that do not conform are rejected before decoding so a misbehaving
// model server cannot produce phantom detections.
const responseSchema = `{
	"type": "object",
	"required": ["detections"],
	"properties": {
		"detections": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["label", "confidence", "box"],
				"properties": {
					"label": {"type": "string", "minLength": 1},
					"confidence": {"type": "number", "minimum": 0, "maximum": 1},
					"box": {
						"type": "array",
						"items": {"type": "integer"},
						"minItems": 4,
						"maxItems": 4
					}
				}
			}
		}
	}
}`

type detectionPayload struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Box        [4]int  `json:"box"`
}

type responsePayload struct {
	Detections []detectionPayload `json:"detections"`
}

// HTTPClient implements edge.Detector against an HTTP inference server.
type HTTPClient struct {
	httpClient *http.Client
	endpoint   string
	schema     *gojsonschema.Schema
}

// NewHTTPClient builds a detector client for the given inference URL.
func NewHTTPClient(endpoint string) (*HTTPClient, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile detection response schema: %w", err)
	}
	return &HTTPClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   endpoint,
		schema:     schema,
	}, nil
}

// Detect sends the frame and region of interest to the inference
// server and returns detections clipped to the frame.
func (c *HTTPClient) Detect(ctx context.Context, frame edge.Frame, region image.Rectangle) ([]edge.Detection, error) {
	payload, err := json.Marshal(map[string]any{
		"image": base64.StdEncoding.EncodeToString(frame.PNG),
		"region": [4]int{
			region.Min.X, region.Min.Y,
			region.Max.X, region.Max.Y,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal detection request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build detection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach inference server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference server returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read detection response: %w", err)
	}

	result, err := c.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to validate detection response: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("invalid detection response: %s", result.Errors()[0].String())
	}

	var decoded responsePayload
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode detection response: %w", err)
	}

	frameRect := image.Rect(0, 0, frame.Width, frame.Height)
	detections := make([]edge.Detection, 0, len(decoded.Detections))
	for _, d := range decoded.Detections {
		box := image.Rect(d.Box[0], d.Box[1], d.Box[2], d.Box[3]).Intersect(frameRect)
		detections = append(detections, edge.Detection{
			Label:      d.Label,
			Confidence: d.Confidence,
			Box:        box,
		})
	}
	return detections, nil
}
