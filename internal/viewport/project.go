package viewport

import (
	"math"

	"lp-grapher/internal/lp"
	"lp-grapher/pkg/geometry"
)

// Clip bounds for projecting unbounded lines into finite segments. The
// bound is deliberately camera-independent: segments stay valid across any
// pan or zoom and only need recomputing when the line itself changes.
const (
	ClipMin = -1000.0
	ClipMax = 1000.0
)

// coeffTol is the magnitude below which a coefficient is treated as zero.
const coeffTol = 1e-5

// ClipLine converts a constraint's boundary line into a finite segment
// spanning the clip bounds.
//
// A constraint with both coefficients zero produces a vertical line at
// x = RHS (the divisor falls back to 1). That line is a drawing convention
// for degenerate input, not a meaningful boundary.
func ClipLine(c lp.Constraint) geometry.Segment {
	switch {
	case math.Abs(c.Y) < coeffTol:
		// Near-vertical: x is fixed.
		div := c.X
		if div == 0 {
			div = 1
		}
		x := c.RHS / div
		return geometry.Segment{X1: x, Y1: ClipMin, X2: x, Y2: ClipMax}
	case math.Abs(c.X) < coeffTol:
		// Near-horizontal: y is fixed.
		y := c.RHS / c.Y
		return geometry.Segment{X1: ClipMin, Y1: y, X2: ClipMax, Y2: y}
	default:
		y1 := (c.RHS - c.X*ClipMin) / c.Y
		y2 := (c.RHS - c.X*ClipMax) / c.Y
		return geometry.Segment{X1: ClipMin, Y1: y1, X2: ClipMax, Y2: y2}
	}
}

// ClipObjectiveLine converts the objective iso-line through the given
// point (normally the optimal vertex) into a finite segment.
func ClipObjectiveLine(o lp.Objective, p geometry.Point2D) geometry.Segment {
	switch {
	case math.Abs(o.Y) < coeffTol:
		return geometry.Segment{X1: p.X, Y1: ClipMin, X2: p.X, Y2: ClipMax}
	case math.Abs(o.X) < coeffTol:
		return geometry.Segment{X1: ClipMin, Y1: p.Y, X2: ClipMax, Y2: p.Y}
	default:
		m := -o.X / o.Y
		y1 := p.Y + m*(ClipMin-p.X)
		y2 := p.Y + m*(ClipMax-p.X)
		return geometry.Segment{X1: ClipMin, Y1: y1, X2: ClipMax, Y2: y2}
	}
}
