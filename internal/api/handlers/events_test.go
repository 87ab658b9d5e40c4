package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aloysiusChng/ppe-sentinel/internal/api/middleware"
	"github.com/aloysiusChng/ppe-sentinel/internal/ingest"
	"github.com/aloysiusChng/ppe-sentinel/internal/logging"
	"github.com/aloysiusChng/ppe-sentinel/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventService struct {
	logID   int64
	logErr  error
	logged  []models.LogEventRequest
	listOut models.EventListResponse
	listErr error
}

func (f *fakeEventService) Log(_ context.Context, req models.LogEventRequest) (int64, error) {
	f.logged = append(f.logged, req)
	return f.logID, f.logErr
}

func (f *fakeEventService) List(_ context.Context, _ models.ListEventsQuery) (models.EventListResponse, error) {
	return f.listOut, f.listErr
}

func newEventRouter(svc EventService, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEventHandler(svc, logging.NewNoOpLogger())
	r := gin.New()
	api := r.Group("/api")
	api.POST("/log_event", middleware.SharedSecret(secret), h.LogEvent)
	api.GET("/get_events", h.ListEvents)
	return r
}

func TestLogEvent_WhenValidWithoutImage_ThenReturns200WithEventID(t *testing.T) {
	// Arrange
	svc := &fakeEventService{logID: 7}
	r := newEventRouter(svc, "key")
	body := []byte(`{"image": null, "device_name": "Gate1", "flagged": false}`)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/log_event", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key")
	r.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Event logged successfully", resp["message"])
	assert.Equal(t, float64(7), resp["event_id"])
	require.Len(t, svc.logged, 1)
	assert.Equal(t, "Gate1", svc.logged[0].DeviceName)
}

func TestLogEvent_WhenAuthorizationMissing_ThenReturns401(t *testing.T) {
	// Arrange
	svc := &fakeEventService{}
	r := newEventRouter(svc, "key")

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/log_event", bytes.NewReader([]byte(`{}`)))
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is missing")
	assert.Empty(t, svc.logged)
}

func TestLogEvent_WhenDeviceNameMissing_ThenReturns400WithExactMessage(t *testing.T) {
	// Arrange
	svc := &fakeEventService{}
	r := newEventRouter(svc, "key")
	body := []byte(`{"image": null, "flagged": false}`)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/log_event", bytes.NewReader(body))
	req.Header.Set("Authorization", "key")
	r.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Device name is missing", resp["error"])
	assert.Empty(t, svc.logged)
}

func TestLogEvent_WhenServiceReturnsValidationError_ThenReturns400(t *testing.T) {
	// Arrange
	svc := &fakeEventService{logErr: &ingest.ValidationError{Message: "failed to decode image data: bad base64"}}
	r := newEventRouter(svc, "key")
	body := []byte(`{"image": "zzz", "device_name": "Gate1", "flagged": true}`)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/log_event", bytes.NewReader(body))
	req.Header.Set("Authorization", "key")
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "failed to decode image data")
}

func TestLogEvent_WhenStoreFails_ThenReturns500(t *testing.T) {
	// Arrange
	svc := &fakeEventService{logErr: errors.New("db down")}
	r := newEventRouter(svc, "key")
	body := []byte(`{"image": null, "device_name": "Gate1", "flagged": true}`)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/log_event", bytes.NewReader(body))
	req.Header.Set("Authorization", "key")
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListEvents_WhenDefaults_ThenReturnsServicePayload(t *testing.T) {
	// Arrange
	hash := "abc"
	url := "https://bucket.s3.region.amazonaws.com/abc"
	svc := &fakeEventService{listOut: models.EventListResponse{
		Events: []models.EventRecord{{
			ID: 1, CreatedAt: 1700000000, ImageHash: &hash,
			Flagged: true, DeviceName: "Gate1", ImageURL: &url,
		}},
		TotalPages:  1,
		CurrentPage: 1,
		HasNextPage: false,
	}}
	r := newEventRouter(svc, "key")

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/get_events", nil)
	r.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["total_pages"])
	assert.Equal(t, float64(1), resp["current_page"])
	assert.Equal(t, false, resp["has_next_page"])
	events, ok := resp["events"].([]any)
	require.True(t, ok)
	require.Len(t, events, 1)
}

func TestListEvents_WhenPerPageTooLarge_ThenReturns400(t *testing.T) {
	// Arrange
	svc := &fakeEventService{}
	r := newEventRouter(svc, "key")

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/get_events?per_page=500", nil)
	r.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "per_page value exceeds limit of 100")
}

func TestListEvents_WhenServiceFails_ThenReturns500(t *testing.T) {
	// Arrange
	svc := &fakeEventService{listErr: errors.New("db down")}
	r := newEventRouter(svc, "key")

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/get_events", nil)
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
