package handlers

import (
	"context"
	"errors"
	"io"

	"github.com/aloysiusChng/ppe-sentinel/internal/api/response"
	"github.com/aloysiusChng/ppe-sentinel/internal/ingest"
	"github.com/aloysiusChng/ppe-sentinel/internal/logging"
	"github.com/aloysiusChng/ppe-sentinel/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventService is the ingestion/query surface consumed by the HTTP layer.
type EventService interface {
	Log(ctx context.Context, req models.LogEventRequest) (int64, error)
	List(ctx context.Context, query models.ListEventsQuery) (models.EventListResponse, error)
}

// EventHandler handles compliance event logging and listing.
type EventHandler struct {
	service EventService
	logger  logging.Logger
}

// NewEventHandler creates a new event handler.
func NewEventHandler(service EventService, logger logging.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger.With(zap.String("handler", "event")),
	}
}

// LogEvent godoc
// @Summary Log a compliance event
// @Description Records one compliance event reported by an edge device. The optional image is base64 of a zstd-compressed PNG; it is decoded, hashed and stored before the event is appended.
// @Tags Events
// @Accept json
// @Produce json
// @Param Authorization header string true "Shared upload access key"
// @Param payload body models.LogEventRequest true "Event payload"
// @Success 200 {object} models.LogEventResponse
// @Failure 400 {object} response.ErrorResponse "Validation or decoding failure"
// @Failure 401 {object} response.ErrorResponse "Missing or invalid Authorization key"
// @Router /api/log_event [post]
func (h *EventHandler) LogEvent(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "Request body must be JSON")
		return
	}

	req, verr := ingest.ValidateLogRequest(body)
	if verr != nil {
		h.logger.Warn("invalid log_event payload",
			zap.String("reason", verr.Message),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.BadRequest(c, verr.Message)
		return
	}

	id, err := h.service.Log(c.Request.Context(), req)
	if err != nil {
		var validationErr *ingest.ValidationError
		if errors.As(err, &validationErr) {
			h.logger.Warn("log_event rejected",
				zap.String("device_name", req.DeviceName),
				zap.String("reason", validationErr.Message),
				zap.String("request_id", response.GetRequestID(c)),
			)
			response.BadRequest(c, validationErr.Message)
			return
		}

		h.logger.Error("failed to log event",
			zap.String("device_name", req.DeviceName),
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.InternalServerError(c, "failed to log event")
		return
	}

	response.OK(c, models.LogEventResponse{
		Message: "Event logged successfully",
		EventID: id,
	})
}

// ListEvents godoc
// @Summary List compliance events
// @Description Retrieves events with optional filtering, sorting and pagination.
// @Tags Events
// @Produce json
// @Param device_name query string false "Filter by device name (case-insensitive exact match)"
// @Param only_flagged query bool false "Only include flagged events" default(false)
// @Param per_page query int false "Events per page" default(10) minimum(1) maximum(100)
// @Param sort_order query string false "Sort order by created_at" Enums(asc, desc) default(desc)
// @Param page query int false "Page number" default(1) minimum(1)
// @Success 200 {object} models.EventListResponse
// @Failure 400 {object} response.ErrorResponse "Out-of-range parameter"
// @Router /api/get_events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	query, verr := ingest.ParseListQuery(c.Request.URL.Query())
	if verr != nil {
		h.logger.Warn("invalid get_events query",
			zap.String("reason", verr.Message),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.BadRequest(c, verr.Message)
		return
	}

	result, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed to list events",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.InternalServerError(c, "failed to list events")
		return
	}

	response.OK(c, result)
}
