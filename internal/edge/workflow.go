package edge

import (
	"context"
	"time"

	"github.com/aloysiusChng/ppe-sentinel/internal/checklist"
	"github.com/aloysiusChng/ppe-sentinel/internal/logging"
	"github.com/aloysiusChng/ppe-sentinel/pkg/clock"
	"go.uber.org/zap"
)

// PersonLabel marks the subject itself; when it is missing there is
// nobody to alert about.
const PersonLabel = "person"

// guideSampleInterval paces the cosmetic guide refresh during the
// guiding window.
const guideSampleInterval = 50 * time.Millisecond

// Config wires a Workflow. Gate, Camera, Detector and Dispatcher are
// required; the rest default sensibly.
type Config struct {
	Gate       ProximityGate
	Camera     Camera
	Detector   Detector
	Display    Display
	Dispatcher EventDispatcher

	RequiredItems []string
	Geometry      Geometry

	GuideWindow time.Duration
	Cooldown    time.Duration

	Clock   clock.Clock
	Sleeper clock.Sleeper
	Logger  logging.Logger
}

// Workflow is the per-device capture state machine. Exactly one
// instance runs per device; it exclusively owns its camera and sensor.
type Workflow struct {
	gate       ProximityGate
	camera     Camera
	detector   Detector
	display    Display
	dispatcher EventDispatcher

	required []string
	geometry Geometry

	guideWindow time.Duration
	cooldown    time.Duration

	clock   clock.Clock
	sleeper clock.Sleeper
	logger  logging.Logger
}

// New builds a Workflow from cfg, applying defaults for optional fields.
func New(cfg Config) *Workflow {
	if cfg.Display == nil {
		cfg.Display = NopDisplay{}
	}
	if cfg.Geometry == (Geometry{}) {
		cfg.Geometry = DefaultGeometry
	}
	if cfg.GuideWindow == 0 {
		cfg.GuideWindow = 5 * time.Second
	}
	if cfg.Cooldown == 0 {
		cfg.Cooldown = 5 * time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	if cfg.Sleeper == nil {
		cfg.Sleeper = clock.RealSleeper{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNoOpLogger()
	}

	return &Workflow{
		gate:        cfg.Gate,
		camera:      cfg.Camera,
		detector:    cfg.Detector,
		display:     cfg.Display,
		dispatcher:  cfg.Dispatcher,
		required:    cfg.RequiredItems,
		geometry:    cfg.Geometry,
		guideWindow: cfg.GuideWindow,
		cooldown:    cfg.Cooldown,
		clock:       cfg.Clock,
		sleeper:     cfg.Sleeper,
		logger:      cfg.Logger.With(zap.String("component", "workflow")),
	}
}

// Run drives the state machine until ctx is cancelled (the operator
// stop signal). Nothing inside the loop is fatal: frame-grab,
// detection and dispatch failures all resolve to returning to Idle.
func (w *Workflow) Run(ctx context.Context) error {
	for {
		// Idle: block on the proximity gate.
		if err := w.gate.WaitForInRange(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Warn("proximity gate error", zap.Error(err))
			continue
		}
		w.logger.Info("subject in range, starting guide window")

		// Guiding: cosmetic countdown; cancellable.
		if err := w.guide(ctx); err != nil {
			return err
		}

		// Captured: exactly one final sample.
		frame, err := w.camera.Grab(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Warn("final frame grab failed, discarding attempt", zap.Error(err))
			continue
		}

		// Decided: single detector call, not interruptible.
		decision, err := w.decide(context.WithoutCancel(ctx), frame)
		if err != nil {
			w.logger.Warn("detection failed, discarding attempt", zap.Error(err))
			continue
		}
		w.display.ShowResult(frame, decision.Missing)

		// Dispatched: best-effort side effects; never aborts the loop.
		w.dispatcher.Dispatch(ctx, decision, frame)

		if !decision.SubjectPresent {
			// Nobody in the shot; no cooldown needed.
			continue
		}

		// Cooldown: avoid re-triggering on the same subject.
		if err := w.sleeper.Sleep(ctx, w.cooldown); err != nil {
			return err
		}
	}
}

// guide samples the camera for the fixed guiding window to drive the
// positioning aid. No detector calls happen here.
func (w *Workflow) guide(ctx context.Context) error {
	deadline := w.clock.Now().Add(w.guideWindow)
	for {
		remaining := deadline.Sub(w.clock.Now())
		if remaining <= 0 {
			return nil
		}

		frame, err := w.camera.Grab(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Guide samples are cosmetic; skip the bad one.
		} else {
			guide := w.geometry.GuideBox(frame.Width, frame.Height)
			w.display.ShowGuide(frame, guide, remaining)
		}

		interval := guideSampleInterval
		if remaining < interval {
			interval = remaining
		}
		if err := w.sleeper.Sleep(ctx, interval); err != nil {
			return err
		}
	}
}

// decide runs the detector over the capture region and evaluates the
// checklist.
func (w *Workflow) decide(ctx context.Context, frame Frame) (Decision, error) {
	region := w.geometry.DetectionRegion(frame.Width, frame.Height)
	detections, err := w.detector.Detect(ctx, frame, region)
	if err != nil {
		return Decision{}, err
	}

	detected := make([]string, 0, len(detections))
	for _, d := range detections {
		detected = append(detected, d.Label)
	}

	missing := checklist.Evaluate(w.required, detected)
	subjectPresent := !checklist.Contains(missing, PersonLabel)

	decision := Decision{
		Required:       w.required,
		Detected:       detected,
		Missing:        missing,
		SubjectPresent: subjectPresent,
		Flagged:        subjectPresent && len(missing) > 0,
	}

	w.logger.Info("capture decided",
		zap.Strings("detected", detected),
		zap.Strings("missing", missing),
		zap.Bool("subject_present", subjectPresent),
		zap.Bool("flagged", decision.Flagged),
	)
	return decision, nil
}
