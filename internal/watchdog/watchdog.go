// Package watchdog periodically checks when each edge device last
// reported an event and logs a warning for devices that have gone
// silent. It only observes; it never mutates the store.
package watchdog

import (
	"context"
	"fmt"
	"time"

	"github.com/aloysiusChng/ppe-sentinel/internal/logging"
	"github.com/aloysiusChng/ppe-sentinel/internal/models"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ActivityReader exposes per-device last-seen information.
type ActivityReader interface {
	DeviceActivity(ctx context.Context) ([]models.DeviceActivity, error)
}

// Watchdog runs the inactivity sweep on a cron schedule.
type Watchdog struct {
	store     ActivityReader
	logger    logging.Logger
	cron      *cron.Cron
	threshold time.Duration
	interval  time.Duration
}

// New builds a watchdog sweeping every interval and flagging devices
// silent for longer than threshold.
func New(store ActivityReader, logger logging.Logger, interval, threshold time.Duration) *Watchdog {
	return &Watchdog{
		store:     store,
		logger:    logger.With(zap.String("component", "watchdog")),
		cron:      cron.New(),
		threshold: threshold,
		interval:  interval,
	}
}

// Start schedules the sweep. Safe to call once.
func (w *Watchdog) Start() {
	spec := fmt.Sprintf("@every %s", w.interval)
	if _, err := w.cron.AddFunc(spec, w.sweep); err != nil {
		w.logger.Error("failed to schedule inactivity sweep", zap.Error(err))
		return
	}
	w.cron.Start()
	w.logger.Info("device inactivity watchdog started",
		zap.Duration("interval", w.interval),
		zap.Duration("threshold", w.threshold),
	)
}

// Stop halts the schedule and waits for a running sweep to finish.
func (w *Watchdog) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}

func (w *Watchdog) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	activity, err := w.store.DeviceActivity(ctx)
	if err != nil {
		w.logger.Error("inactivity sweep failed", zap.Error(err))
		return
	}

	w.Report(activity, time.Now().UTC())
}

// Report logs a warning per device whose last event is older than the
// threshold. Split out from the cron callback for testability.
func (w *Watchdog) Report(activity []models.DeviceActivity, now time.Time) []string {
	silent := []string{}
	for _, device := range activity {
		age := now.Sub(device.LastSeen)
		if age > w.threshold {
			silent = append(silent, device.DeviceName)
			w.logger.Warn("device has gone silent",
				zap.String("device_name", device.DeviceName),
				zap.Time("last_seen", device.LastSeen),
				zap.Duration("silent_for", age),
				zap.Int64("event_count", device.EventCount),
			)
		}
	}
	return silent
}
