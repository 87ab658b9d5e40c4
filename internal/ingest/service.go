// Package ingest implements the log and list operations of the
// ingestion/query service on top of the event store and blob store.
package ingest

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aloysiusChng/ppe-sentinel/internal/blob"
	"github.com/aloysiusChng/ppe-sentinel/internal/imaging"
	"github.com/aloysiusChng/ppe-sentinel/internal/logging"
	"github.com/aloysiusChng/ppe-sentinel/internal/models"
	"github.com/aloysiusChng/ppe-sentinel/platform/events"
	"go.uber.org/zap"
)

// Service composes the event store, the blob store and the best-effort
// event stream publisher.
type Service struct {
	store     EventStore
	blobs     blob.Store
	publisher *events.Publisher
	logger    logging.Logger

	imageURLBase string
}

// NewService wires the ingestion dependencies together. bucket and
// region determine the derived image URLs; publisher may be nil.
func NewService(store EventStore, blobs blob.Store, publisher *events.Publisher, logger logging.Logger, bucket, region string) *Service {
	return &Service{
		store:        store,
		blobs:        blobs,
		publisher:    publisher,
		logger:       logger.With(zap.String("service", "ingest")),
		imageURLBase: ImageURLBase(bucket, region),
	}
}

// ImageURLBase derives the public location prefix for stored images
// from the static bucket configuration.
func ImageURLBase(bucket, region string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
}

// ImageURL is a pure function of the content hash and the static
// location configuration. No I/O.
func (s *Service) ImageURL(hash string) string {
	return s.imageURLBase + "/" + hash
}

// Log records one compliance event. When an image is present it is
// decoded, decompressed, hashed and stored BEFORE the event is
// appended, so no event ever references an unstored blob. Any decoding
// or storage failure aborts the whole operation with no partial write.
func (s *Service) Log(ctx context.Context, req models.LogEventRequest) (int64, error) {
	var imageHash *string

	if req.Image != nil && *req.Image != "" {
		data, err := imaging.DecodeTransport(*req.Image)
		if err != nil {
			return 0, invalid(err.Error())
		}

		hash := imaging.HashHex(data)
		if err := s.blobs.Put(ctx, hash, data, "image/png"); err != nil {
			return 0, invalid(err.Error())
		}
		imageHash = &hash
	}

	id, err := s.store.AppendEvent(ctx, imageHash, req.Flagged, req.DeviceName)
	if err != nil {
		return 0, fmt.Errorf("failed to append event: %w", err)
	}

	s.logger.Info("event logged",
		zap.Int64("event_id", id),
		zap.String("device_name", req.DeviceName),
		zap.Bool("flagged", req.Flagged),
		zap.Bool("has_image", imageHash != nil),
	)

	// Best-effort stream publish; failure never fails the request.
	if err := s.publisher.Publish(ctx, events.ComplianceEvent{
		EventID:    id,
		CreatedAt:  time.Now().UTC(),
		ImageHash:  imageHash,
		Flagged:    req.Flagged,
		DeviceName: req.DeviceName,
	}); err != nil {
		s.logger.Warn("failed to publish compliance event",
			zap.Int64("event_id", id),
			zap.Error(err),
		)
	}

	return id, nil
}

// List returns one page of events matching the validated query, with
// derived image URLs.
func (s *Service) List(ctx context.Context, query models.ListEventsQuery) (models.EventListResponse, error) {
	items, totalCount, err := s.store.ListEvents(ctx, query)
	if err != nil {
		return models.EventListResponse{}, fmt.Errorf("failed to list events: %w", err)
	}

	records := make([]models.EventRecord, 0, len(items))
	for _, event := range items {
		record := models.EventRecord{
			ID:         event.ID,
			CreatedAt:  float64(event.CreatedAt.Unix()),
			ImageHash:  event.ImageHash,
			Flagged:    event.Flagged,
			DeviceName: event.DeviceName,
		}
		if event.ImageHash != nil {
			url := s.ImageURL(*event.ImageHash)
			record.ImageURL = &url
		}
		records = append(records, record)
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.PerPage)))

	return models.EventListResponse{
		Events:      records,
		TotalPages:  totalPages,
		CurrentPage: query.Page,
		HasNextPage: query.Page < totalPages,
	}, nil
}
