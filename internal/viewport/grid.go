package viewport

import (
	"math"
)

// Grid holds the tick positions for the current camera window. It is
// derived state: recompute it with PlanGrid whenever the camera changes.
type Grid struct {
	Spacing float64
	XTicks  []float64
	YTicks  []float64
}

// PlanGrid selects a tick spacing for the camera's extent and enumerates
// the grid lines inside the window.
func PlanGrid(c *Camera) Grid {
	spacing := tickSpacing(math.Max(c.Width, c.Height))
	return Grid{
		Spacing: spacing,
		XTicks:  ticks(c.X, c.Width, spacing),
		YTicks:  ticks(c.Y, c.Height, spacing),
	}
}

// tickSpacing is a step function of the window extent, chosen so the grid
// stays readable while zooming.
func tickSpacing(extent float64) float64 {
	switch {
	case extent <= 5:
		return 0.5
	case extent <= 10:
		return 1
	case extent <= 25:
		return 2
	case extent <= 50:
		return 5
	default:
		return 10
	}
}

// ticks walks multiples of spacing from just below the window origin up to
// its far edge (inclusive). The first tick is always <= origin.
func ticks(origin, extent, spacing float64) []float64 {
	start := math.Floor(origin/spacing) * spacing
	var out []float64
	for i := 0; ; i++ {
		t := start + float64(i)*spacing
		if t > origin+extent {
			break
		}
		out = append(out, t)
	}
	return out
}
