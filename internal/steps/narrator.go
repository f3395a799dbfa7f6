// Package steps implements the step-through explanation of a solved
// program: a small state machine that reveals constraints, the feasible
// region, the objective line, and the optimum in teaching order.
package steps

import (
	"lp-grapher/internal/lp"
)

// Kind identifies what a step reveals.
type Kind int

const (
	KindConstraint Kind = iota
	KindRegion
	KindObjective
	KindOptimum
)

// Step is the structured description of the current step. Prose is
// produced separately by Describe.
type Step struct {
	Kind Kind
	// Constraint is the zero-based constraint index, valid for
	// KindConstraint.
	Constraint int
}

// Narrator sequences the reveal. State 0 is inactive; states 1..N reveal
// constraint 1..N; N+1 the region, N+2 the objective line, N+3 the
// optimum. Advancing past the terminal state returns to inactive.
type Narrator struct {
	active       bool
	current      int
	total        int
	nConstraints int
}

// NewNarrator returns an inactive narrator.
func NewNarrator() *Narrator {
	return &Narrator{}
}

// Start enters step mode at the first step. It requires a solution and
// reports whether step mode was entered.
func (n *Narrator) Start(sol *lp.Solution, nConstraints int) bool {
	if sol == nil {
		return false
	}
	n.nConstraints = nConstraints
	n.total = nConstraints + 3
	n.active = true
	n.current = 1
	return true
}

// Next advances one step. At the terminal state it exits step mode
// instead of erroring.
func (n *Narrator) Next() {
	if !n.active {
		return
	}
	if n.current < n.total {
		n.current++
		return
	}
	n.Exit()
}

// Prev retreats one step. No-op at the first step.
func (n *Narrator) Prev() {
	if n.active && n.current > 1 {
		n.current--
	}
}

// Exit leaves step mode. Call this too when the constraint set changes,
// since the step count is no longer valid.
func (n *Narrator) Exit() {
	n.active = false
	n.current = 0
	n.total = 0
	n.nConstraints = 0
}

// Active reports whether step mode is on.
func (n *Narrator) Active() bool { return n.active }

// Current returns the current step, 0 when inactive.
func (n *Narrator) Current() int { return n.current }

// Total returns the step count (constraints + 3), 0 when inactive.
func (n *Narrator) Total() int { return n.total }

// Step returns the structured current step. ok is false when inactive.
func (n *Narrator) Step() (step Step, ok bool) {
	if !n.active {
		return Step{}, false
	}
	switch {
	case n.current <= n.nConstraints:
		return Step{Kind: KindConstraint, Constraint: n.current - 1}, true
	case n.current == n.nConstraints+1:
		return Step{Kind: KindRegion}, true
	case n.current == n.nConstraints+2:
		return Step{Kind: KindObjective}, true
	default:
		return Step{Kind: KindOptimum}, true
	}
}

// ConstraintVisible reports whether constraint i (zero-based) should be
// drawn. When inactive everything is visible.
func (n *Narrator) ConstraintVisible(i int) bool {
	return !n.active || i+1 <= n.current
}

// RegionVisible reports whether the feasible region should be drawn.
func (n *Narrator) RegionVisible() bool {
	return !n.active || n.current > n.nConstraints
}

// ObjectiveVisible reports whether the objective line should be drawn.
func (n *Narrator) ObjectiveVisible() bool {
	return !n.active || n.current > n.nConstraints+1
}

// OptimumVisible reports whether the optimal vertex should be drawn.
func (n *Narrator) OptimumVisible() bool {
	return !n.active || n.current > n.nConstraints+2
}
