package edge

import (
	"context"
	"strings"

	"github.com/aloysiusChng/ppe-sentinel/internal/logging"
	"go.uber.org/zap"
)

// Notifier sends a human-readable alert through the notification
// channel.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Uploader posts the capture to the ingestion service and returns the
// assigned event id.
type Uploader interface {
	Upload(ctx context.Context, imagePNG []byte, flagged bool) (int64, error)
}

// Dispatcher performs the two best-effort side effects of a decision:
// an alert naming the missing items (flagged captures only) and an
// upload of the event. The steps run sequentially and are
// failure-isolated: neither failing blocks the other, and neither
// failing aborts the workflow.
type Dispatcher struct {
	notifier Notifier
	uploader Uploader
	logger   logging.Logger
}

// NewDispatcher wires the alert and upload channels.
func NewDispatcher(notifier Notifier, uploader Uploader, logger logging.Logger) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		uploader: uploader,
		logger:   logger.With(zap.String("component", "dispatcher")),
	}
}

// Dispatch sends the alert and upload for a decision. When no subject
// was present it sends nothing at all.
func (d *Dispatcher) Dispatch(ctx context.Context, decision Decision, frame Frame) {
	if !decision.SubjectPresent {
		d.logger.Info("no subject present, skipping alert and upload")
		return
	}

	if decision.Flagged && d.notifier == nil {
		d.logger.Warn("no notifier configured, alert not sent",
			zap.Strings("missing", decision.Missing))
	}
	if decision.Flagged && d.notifier != nil {
		message := "PPE Missing: " + strings.Join(decision.Missing, ", ")
		if err := d.notifier.Send(ctx, message); err != nil {
			d.logger.Warn("failed to send alert", zap.Error(err))
		} else {
			d.logger.Info("alert sent", zap.Strings("missing", decision.Missing))
		}
	}

	eventID, err := d.uploader.Upload(ctx, frame.PNG, decision.Flagged)
	if err != nil {
		d.logger.Warn("failed to upload event", zap.Error(err))
		return
	}
	d.logger.Info("event uploaded",
		zap.Int64("event_id", eventID),
		zap.Bool("flagged", decision.Flagged),
	)
}
