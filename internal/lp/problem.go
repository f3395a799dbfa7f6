// Package lp defines the two-variable linear program model shared by the
// grapher and the solver service.
package lp

import (
	"fmt"
)

// Operator is a constraint relation. The values match the wire format used
// by the solver service.
type Operator string

const (
	OpLE Operator = "<="
	OpGE Operator = ">="
	OpEQ Operator = "="
)

// Objective holds the coefficients of the linear objective z = X·x + Y·y.
type Objective struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Constraint is a half-plane (or line, for "=") X·x + Y·y op RHS.
type Constraint struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Operator Operator `json:"operator"`
	RHS      float64  `json:"rhs"`
}

// String renders the constraint as an inequality, e.g. "3x + 2y <= 18".
func (c Constraint) String() string {
	return fmt.Sprintf("%gx + %gy %s %g", c.X, c.Y, c.Operator, c.RHS)
}

// Satisfies reports whether the point (x, y) satisfies the constraint
// within the given tolerance.
func (c Constraint) Satisfies(x, y, tol float64) bool {
	val := c.X*x + c.Y*y
	switch c.Operator {
	case OpLE:
		return val <= c.RHS+tol
	case OpGE:
		return val >= c.RHS-tol
	case OpEQ:
		return val >= c.RHS-tol && val <= c.RHS+tol
	}
	return false
}

// Context attaches business-language names to the decision variables and
// the objective, used to phrase the final explanation step.
type Context struct {
	XName string `json:"x_name"`
	YName string `json:"y_name"`
	ZName string `json:"z_name"`
}

// Problem is a complete two-variable linear program. Constraint order is
// significant: it determines display order and step order.
type Problem struct {
	Objective   Objective    `json:"objective"`
	Constraints []Constraint `json:"constraints"`
	Maximize    bool         `json:"maximize"`
	Context     *Context     `json:"context,omitempty"`
}

// Clone returns a deep copy of the problem.
func (p *Problem) Clone() Problem {
	out := *p
	out.Constraints = make([]Constraint, len(p.Constraints))
	copy(out.Constraints, p.Constraints)
	if p.Context != nil {
		ctx := *p.Context
		out.Context = &ctx
	}
	return out
}
