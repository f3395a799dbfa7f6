package geometry

import (
	"math"
	"sort"
)

// SortCCW orders polygon vertices counter-clockwise by angle around their
// centroid. The input slice is not modified. Vertex sets produced by
// intersecting half-planes are convex, so the angular order yields a simple
// polygon suitable for filling.
func SortCCW(points []Point2D) []Point2D {
	if len(points) < 3 {
		return points
	}

	center := Centroid(points)
	sorted := make([]Point2D, len(points))
	copy(sorted, points)

	sort.Slice(sorted, func(i, j int) bool {
		ai := math.Atan2(sorted[i].Y-center.Y, sorted[i].X-center.X)
		aj := math.Atan2(sorted[j].Y-center.Y, sorted[j].X-center.X)
		return ai < aj
	})

	return sorted
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}
