// Package viewport implements the camera, grid, and geometry projection
// behind the plot. All coordinates are in problem (model) space; the
// rendering surface maps the camera window onto pixels.
package viewport

// ZoomFactor is the per-notch zoom multiplier.
const ZoomFactor = 1.1

// panDivisor converts screen-pixel drag deltas into model units. Scaling by
// the current width keeps drags feeling equally fast at any zoom level.
const panDivisor = 800.0

// Default window shown before any solution exists.
const (
	defaultOriginX = -1.0
	defaultOriginY = -1.0
	defaultSpan    = 12.0
)

// Span limits for zooming. Projection clips geometry to +-1000, so a
// 4000-unit window already covers everything drawable; past that the grid
// would just accumulate ticks.
const (
	minSpan = 1e-3
	maxSpan = 4000.0
)

// Camera is a rectangular view window over the plane. Width and Height
// stay strictly positive under any sequence of operations.
type Camera struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	dragging bool
	anchorX  float64
	anchorY  float64
}

// NewCamera returns a camera showing the default window.
func NewCamera() *Camera {
	c := &Camera{}
	c.SetDefault()
	return c
}

// SetDefault restores the default window around the first quadrant.
func (c *Camera) SetDefault() {
	c.X = defaultOriginX
	c.Y = defaultOriginY
	c.Width = defaultSpan
	c.Height = defaultSpan
}

// Zoom grows or shrinks the window depending on the sign of delta:
// positive (scroll away) zooms out, negative zooms in. The window is
// anchored at its origin; combine with a pan to zoom around another point.
// Notches that would push either span outside [minSpan, maxSpan] are
// ignored, so the aspect ratio is preserved at the limits.
func (c *Camera) Zoom(delta float64) {
	var factor float64
	switch {
	case delta > 0:
		factor = ZoomFactor
	case delta < 0:
		factor = 1 / ZoomFactor
	default:
		return
	}
	w := c.Width * factor
	h := c.Height * factor
	if w < minSpan || h < minSpan || w > maxSpan || h > maxSpan {
		return
	}
	c.Width = w
	c.Height = h
}

// PanBy moves the window by a screen-space delta. Screen y grows downward
// while model y grows upward, so the y delta is applied with the opposite
// sign of x.
func (c *Camera) PanBy(dx, dy float64) {
	sensitivity := c.Width / panDivisor
	c.X -= dx * sensitivity
	c.Y += dy * sensitivity
}

// BeginDrag starts a drag gesture at the given screen position.
func (c *Camera) BeginDrag(screenX, screenY float64) {
	c.dragging = true
	c.anchorX = screenX
	c.anchorY = screenY
}

// DragTo pans by the delta from the last anchor. No-op unless a drag is
// in progress.
func (c *Camera) DragTo(screenX, screenY float64) {
	if !c.dragging {
		return
	}
	c.PanBy(screenX-c.anchorX, screenY-c.anchorY)
	c.anchorX = screenX
	c.anchorY = screenY
}

// EndDrag finishes the drag gesture.
func (c *Camera) EndDrag() {
	c.dragging = false
}

// Dragging reports whether a drag gesture is in progress.
func (c *Camera) Dragging() bool {
	return c.dragging
}
