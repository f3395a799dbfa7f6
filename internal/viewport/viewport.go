package viewport

import (
	"lp-grapher/internal/lp"
	"lp-grapher/pkg/geometry"
)

// Auto-fit padding: fraction of each axis span, with a fixed fallback when
// the span collapses to a single point.
const (
	padFraction = 0.2
	pointPad    = 5.0
)

// Viewport owns the camera, the derived grid, and the projected segments.
// Camera and Grid are mutated only through Viewport operations, always
// together, so observers never see a half-updated view.
type Viewport struct {
	Camera *Camera
	Grid   Grid

	// Segments holds one clipped segment per constraint, in constraint
	// order. Objective is the iso-line through the optimal vertex, nil
	// while no optimum exists.
	Segments  []geometry.Segment
	Objective *geometry.Segment
}

// New returns a viewport showing the default window with a planned grid.
func New() *Viewport {
	v := &Viewport{Camera: NewCamera()}
	v.Grid = PlanGrid(v.Camera)
	return v
}

// Zoom applies a wheel delta to the camera and replans the grid.
func (v *Viewport) Zoom(delta float64) {
	v.Camera.Zoom(delta)
	v.Grid = PlanGrid(v.Camera)
}

// BeginDrag starts a pan gesture.
func (v *Viewport) BeginDrag(screenX, screenY float64) {
	v.Camera.BeginDrag(screenX, screenY)
}

// DragTo continues a pan gesture and replans the grid.
func (v *Viewport) DragTo(screenX, screenY float64) {
	if !v.Camera.Dragging() {
		return
	}
	v.Camera.DragTo(screenX, screenY)
	v.Grid = PlanGrid(v.Camera)
}

// EndDrag finishes a pan gesture.
func (v *Viewport) EndDrag() {
	v.Camera.EndDrag()
}

// Reset restores the default window when no solution exists, otherwise
// refits the camera to the solution.
func (v *Viewport) Reset(sol *lp.Solution, obj lp.Objective) {
	if sol != nil && v.Fit(sol, obj) {
		return
	}
	v.Camera.SetDefault()
	v.Grid = PlanGrid(v.Camera)
	v.Segments = nil
	v.Objective = nil
}

// Project recomputes the clipped segments from the given constraints and,
// when an optimal point is present, the objective iso-line. Camera motion
// never requires reprojection.
func (v *Viewport) Project(constraints []lp.Constraint, obj lp.Objective, optimal *geometry.Point2D) {
	v.Segments = make([]geometry.Segment, len(constraints))
	for i, c := range constraints {
		v.Segments[i] = ClipLine(c)
	}
	if optimal != nil {
		seg := ClipObjectiveLine(obj, *optimal)
		v.Objective = &seg
	} else {
		v.Objective = nil
	}
}

// Fit frames the solution's feasible region with margin and recomputes the
// grid and segments. It reports false, leaving all state unchanged, when
// the region is empty or contains non-finite coordinates (infeasible or
// unbounded programs). Fitting the same solution twice yields an identical
// camera.
func (v *Viewport) Fit(sol *lp.Solution, obj lp.Objective) bool {
	if sol == nil || len(sol.FeasibleRegion) == 0 {
		return false
	}
	for _, p := range sol.FeasibleRegion {
		if !p.IsFinite() {
			return false
		}
	}

	// Bounding box of the region, forced to include the origin so the
	// axes stay on screen.
	box := geometry.BoundingBox(sol.FeasibleRegion)
	minX := min(box.X, 0)
	maxX := max(box.X+box.Width, 0)
	minY := min(box.Y, 0)
	maxY := max(box.Y+box.Height, 0)

	padX := padFraction * (maxX - minX)
	if padX == 0 {
		padX = pointPad
	}
	padY := padFraction * (maxY - minY)
	if padY == 0 {
		padY = pointPad
	}

	v.Camera.X = minX - padX
	v.Camera.Y = minY - padY
	v.Camera.Width = maxX + padX - v.Camera.X
	v.Camera.Height = maxY + padY - v.Camera.Y

	v.Grid = PlanGrid(v.Camera)
	v.Project(sol.ConstraintLines, obj, sol.OptimalPoint())
	return true
}
