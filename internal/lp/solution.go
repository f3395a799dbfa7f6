package lp

import (
	"lp-grapher/pkg/geometry"
)

// Status reports the outcome of a solve. The strings match the wire format.
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusInfeasible Status = "Infeasible"
	StatusUnbounded  Status = "Unbounded"
)

// Optimal is the optimal vertex and its objective value.
type Optimal struct {
	Point geometry.Point2D `json:"point"`
	Z     float64          `json:"z_value"`
}

// Solution is the result of one accepted solve. A Solution is always
// replaced wholesale, never mutated in place, so observers see a fully
// consistent snapshot.
type Solution struct {
	Status         Status             `json:"status"`
	Optimal        *Optimal           `json:"optimal_solution,omitempty"`
	FeasibleRegion []geometry.Point2D `json:"feasible_region"`
	// ConstraintLines echoes the solved constraints in order, for drawing
	// the boundary lines.
	ConstraintLines []Constraint `json:"constraints_lines"`
}

// OptimalPoint returns the optimal vertex, or nil when the solve was not
// optimal.
func (s *Solution) OptimalPoint() *geometry.Point2D {
	if s == nil || s.Optimal == nil {
		return nil
	}
	p := s.Optimal.Point
	return &p
}
