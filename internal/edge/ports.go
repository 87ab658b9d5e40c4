// Package edge implements the on-device capture-and-decide workflow: a
// proximity-triggered state machine that captures an image, asks the
// detector what it sees, evaluates the equipment checklist and hands
// the decision to the dispatcher.
package edge

import (
	"context"
	"image"
	"time"
)

// Frame is one camera sample: encoded image bytes plus pixel dimensions.
type Frame struct {
	Width  int
	Height int
	PNG    []byte
}

// Detection is one labeled box reported by the detector.
type Detection struct {
	Label      string
	Confidence float64
	Box        image.Rectangle
}

// Camera grabs single frames. Owned exclusively by one workflow.
type Camera interface {
	Grab(ctx context.Context) (Frame, error)
}

// ProximityGate blocks until a subject is within the configured
// distance band.
type ProximityGate interface {
	WaitForInRange(ctx context.Context) error
}

// Detector maps an image region to a set of recognized item labels.
type Detector interface {
	Detect(ctx context.Context, frame Frame, region image.Rectangle) ([]Detection, error)
}

// Display drives the on-screen positioning aid. Purely cosmetic.
type Display interface {
	ShowGuide(frame Frame, guide image.Rectangle, remaining time.Duration)
	ShowResult(frame Frame, missing []string)
}

// NopDisplay is used on headless devices.
type NopDisplay struct{}

func (NopDisplay) ShowGuide(Frame, image.Rectangle, time.Duration) {}
func (NopDisplay) ShowResult(Frame, []string)                     {}

// Decision is the per-capture outcome consumed by the dispatcher.
// It is never persisted.
type Decision struct {
	Required []string
	Detected []string
	Missing  []string

	// SubjectPresent is false when "person" itself is missing; the
	// dispatcher sends nothing in that case.
	SubjectPresent bool

	// Flagged is true iff the subject was present with required items
	// missing.
	Flagged bool
}

// EventDispatcher turns a decision into best-effort alert and upload
// side effects.
type EventDispatcher interface {
	Dispatch(ctx context.Context, decision Decision, frame Frame)
}
