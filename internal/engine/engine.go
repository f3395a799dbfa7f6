// Package engine solves two-variable linear programs by enumerating the
// vertices of the feasible region. Decision variables are non-negative
// (the standard graphical-method convention), so the axes x=0 and y=0 are
// always part of the boundary set.
package engine

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"lp-grapher/internal/lp"
	"lp-grapher/pkg/geometry"
)

// tol absorbs floating-point error in feasibility and duplicate checks.
const tol = 1e-5

// rayLength is how far along a candidate direction the unboundedness
// probe travels.
const rayLength = 1e6

// boundary is a line a·x + b·y = rhs, the equality form of a constraint.
type boundary struct {
	a, b, rhs float64
}

// Solve computes the feasible region and the optimal vertex of the
// program. Duplicate, redundant, and contradictory constraints are valid
// input; they narrow or empty the region but never fail.
func Solve(prob *lp.Problem) *lp.Solution {
	lines := make([]boundary, 0, len(prob.Constraints)+2)
	// Non-negativity borders first, so axis vertices are found too.
	lines = append(lines, boundary{1, 0, 0}, boundary{0, 1, 0})
	for _, c := range prob.Constraints {
		lines = append(lines, boundary{c.X, c.Y, c.RHS})
	}

	var vertices []geometry.Point2D
	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			pt, ok := intersect(lines[i], lines[j])
			if !ok || !feasible(pt, prob.Constraints) {
				continue
			}
			if !hasVertex(vertices, pt) {
				vertices = append(vertices, pt)
			}
		}
	}
	if len(vertices) > 2 {
		vertices = geometry.SortCCW(vertices)
	}

	sol := &lp.Solution{
		FeasibleRegion:  vertices,
		ConstraintLines: append([]lp.Constraint(nil), prob.Constraints...),
	}

	// A non-empty feasible set inside the first quadrant contains no line,
	// so it has at least one vertex. No vertex means no feasible point.
	if len(vertices) == 0 {
		sol.Status = lp.StatusInfeasible
		return sol
	}

	best, bestZ := bestVertex(vertices, prob.Objective, prob.Maximize)
	if unbounded(best, prob) {
		sol.Status = lp.StatusUnbounded
		return sol
	}

	sol.Status = lp.StatusOptimal
	sol.Optimal = &lp.Optimal{Point: best, Z: bestZ}
	return sol
}

// intersect solves the 2x2 system of two boundary lines. ok is false for
// parallel or degenerate pairs.
func intersect(l1, l2 boundary) (geometry.Point2D, bool) {
	a := mat.NewDense(2, 2, []float64{l1.a, l1.b, l2.a, l2.b})
	b := mat.NewVecDense(2, []float64{l1.rhs, l2.rhs})

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return geometry.Point2D{}, false
	}
	pt := geometry.Point2D{X: x.AtVec(0), Y: x.AtVec(1)}
	return pt, pt.IsFinite()
}

// feasible reports whether the point satisfies non-negativity and every
// constraint within tol.
func feasible(pt geometry.Point2D, constraints []lp.Constraint) bool {
	if pt.X < -tol || pt.Y < -tol {
		return false
	}
	for _, c := range constraints {
		if !c.Satisfies(pt.X, pt.Y, tol) {
			return false
		}
	}
	return true
}

// hasVertex reports whether an equal vertex (within tol) is already
// recorded.
func hasVertex(vertices []geometry.Point2D, pt geometry.Point2D) bool {
	for _, v := range vertices {
		if v.Distance(pt) < tol {
			return true
		}
	}
	return false
}

// bestVertex returns the vertex extremizing the objective.
func bestVertex(vertices []geometry.Point2D, obj lp.Objective, maximize bool) (geometry.Point2D, float64) {
	best := vertices[0]
	bestZ := obj.X*best.X + obj.Y*best.Y
	for _, v := range vertices[1:] {
		z := obj.X*v.X + obj.Y*v.Y
		if (maximize && z > bestZ) || (!maximize && z < bestZ) {
			best = v
			bestZ = z
		}
	}
	return best, bestZ
}

// unbounded probes whether the objective can improve without limit. In two
// dimensions an unbounded improving ray, if one exists, runs along an axis,
// along a constraint boundary, or along the objective gradient itself, so
// those are the candidate directions tested from the best vertex.
func unbounded(from geometry.Point2D, prob *lp.Problem) bool {
	sign := 1.0
	if !prob.Maximize {
		sign = -1
	}

	var dirs []geometry.Point2D
	if sign*prob.Objective.X > tol {
		dirs = append(dirs, geometry.Point2D{X: 1, Y: 0})
	}
	if sign*prob.Objective.Y > tol {
		dirs = append(dirs, geometry.Point2D{X: 0, Y: 1})
	}
	for _, c := range prob.Constraints {
		dirs = append(dirs,
			geometry.Point2D{X: -c.Y, Y: c.X},
			geometry.Point2D{X: c.Y, Y: -c.X})
	}

	for _, d := range dirs {
		norm := math.Hypot(d.X, d.Y)
		if norm == 0 {
			continue
		}
		d.X /= norm
		d.Y /= norm
		// The ray must stay in the first quadrant and improve z.
		if d.X < -tol || d.Y < -tol {
			continue
		}
		if sign*(prob.Objective.X*d.X+prob.Objective.Y*d.Y) <= tol {
			continue
		}
		far := geometry.Point2D{X: from.X + d.X*rayLength, Y: from.Y + d.Y*rayLength}
		if feasible(far, prob.Constraints) {
			return true
		}
	}
	return false
}
