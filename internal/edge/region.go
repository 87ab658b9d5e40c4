package edge

import "image"

// Geometry describes the capture rectangle: a centered guide box of
// fixed size, expanded by a padding fraction per side to form the
// detection region.
type Geometry struct {
	BoxWidth  int
	BoxHeight int
	Padding   float64
}

// DefaultGeometry matches the deployed guide overlay.
var DefaultGeometry = Geometry{BoxWidth: 200, BoxHeight: 400, Padding: 0.3}

// GuideBox returns the centered guide rectangle for a frame of the
// given dimensions.
func (g Geometry) GuideBox(width, height int) image.Rectangle {
	x0 := width/2 - g.BoxWidth/2
	y0 := height/2 - g.BoxHeight/2
	return image.Rect(x0, y0, x0+g.BoxWidth, y0+g.BoxHeight)
}

// DetectionRegion expands the guide box by Padding of its width/height
// on each side, clamped to the frame bounds.
func (g Geometry) DetectionRegion(width, height int) image.Rectangle {
	guide := g.GuideBox(width, height)
	padX := int(float64(g.BoxWidth) * g.Padding)
	padY := int(float64(g.BoxHeight) * g.Padding)

	region := image.Rect(
		guide.Min.X-padX,
		guide.Min.Y-padY,
		guide.Max.X+padX,
		guide.Max.Y+padY,
	)
	return region.Intersect(image.Rect(0, 0, width, height))
}
