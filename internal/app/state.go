// Package app provides application state, events, and solve coordination.
package app

import (
	"sync"

	"lp-grapher/internal/lp"
	"lp-grapher/internal/steps"
	"lp-grapher/internal/viewport"
)

// EventType identifies different application events.
type EventType int

const (
	EventProblemChanged EventType = iota
	EventProblemLoaded
	EventSolutionUpdated
	EventSolveFailed
	EventViewChanged
	EventStepChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state: the problem being edited, the latest
// accepted solution, the viewport, and the step narrator. The solution is
// replaced wholesale, never mutated, so observers always read a complete
// snapshot.
type State struct {
	mu sync.RWMutex

	problem  lp.Problem
	solution *lp.Solution

	View  *viewport.Viewport
	Steps *steps.Narrator

	listeners map[EventType][]EventListener
}

// NewState creates application state with the default sample problem: the
// classic furniture program, a good first view for teaching.
func NewState() *State {
	return &State{
		problem: lp.Problem{
			Objective: lp.Objective{X: 3, Y: 5},
			Constraints: []lp.Constraint{
				{X: 1, Y: 0, Operator: lp.OpLE, RHS: 4},
				{X: 0, Y: 2, Operator: lp.OpLE, RHS: 12},
				{X: 3, Y: 2, Operator: lp.OpLE, RHS: 18},
			},
			Maximize: true,
			Context:  &lp.Context{XName: "tables", YName: "chairs", ZName: "profit"},
		},
		View:      viewport.New(),
		Steps:     steps.NewNarrator(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Problem returns a copy of the current problem.
func (s *State) Problem() lp.Problem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.problem.Clone()
}

// Solution returns the latest accepted solution, nil when none exists.
func (s *State) Solution() *lp.Solution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.solution
}

// SetSolution replaces the solution and refits the viewport. Passing nil
// clears the solution and restores the default view.
func (s *State) SetSolution(sol *lp.Solution) {
	s.mu.Lock()
	s.solution = sol
	if sol == nil {
		s.View.Reset(nil, s.problem.Objective)
	} else if !s.View.Fit(sol, s.problem.Objective) {
		// Infeasible or unbounded: still show the constraint lines in
		// the current window.
		s.View.Project(sol.ConstraintLines, s.problem.Objective, sol.OptimalPoint())
	}
	s.mu.Unlock()

	s.Emit(EventSolutionUpdated, sol)
}

// SetObjective updates the objective coefficients.
func (s *State) SetObjective(obj lp.Objective) {
	s.mu.Lock()
	s.problem.Objective = obj
	s.mu.Unlock()
	s.Emit(EventProblemChanged, nil)
}

// SetMaximize switches between maximizing and minimizing.
func (s *State) SetMaximize(maximize bool) {
	s.mu.Lock()
	s.problem.Maximize = maximize
	s.mu.Unlock()
	s.Emit(EventProblemChanged, nil)
}

// AddConstraint appends a constraint. Step mode resets because the step
// count changed.
func (s *State) AddConstraint(c lp.Constraint) {
	s.mu.Lock()
	s.problem.Constraints = append(s.problem.Constraints, c)
	s.Steps.Exit()
	s.mu.Unlock()
	s.Emit(EventProblemChanged, nil)
}

// SetConstraint replaces constraint i.
func (s *State) SetConstraint(i int, c lp.Constraint) {
	s.mu.Lock()
	if i < 0 || i >= len(s.problem.Constraints) {
		s.mu.Unlock()
		return
	}
	s.problem.Constraints[i] = c
	s.mu.Unlock()
	s.Emit(EventProblemChanged, nil)
}

// RemoveConstraint deletes constraint i. Step mode resets because the
// step count changed.
func (s *State) RemoveConstraint(i int) {
	s.mu.Lock()
	if i < 0 || i >= len(s.problem.Constraints) {
		s.mu.Unlock()
		return
	}
	s.problem.Constraints = append(s.problem.Constraints[:i], s.problem.Constraints[i+1:]...)
	s.Steps.Exit()
	s.mu.Unlock()
	s.Emit(EventProblemChanged, nil)
}

// StartSteps enters step mode. Requires a solution.
func (s *State) StartSteps() bool {
	s.mu.Lock()
	ok := s.Steps.Start(s.solution, len(s.problem.Constraints))
	s.mu.Unlock()
	if ok {
		s.Emit(EventStepChanged, nil)
	}
	return ok
}

// NextStep advances step mode.
func (s *State) NextStep() {
	s.mu.Lock()
	s.Steps.Next()
	s.mu.Unlock()
	s.Emit(EventStepChanged, nil)
}

// PrevStep retreats step mode.
func (s *State) PrevStep() {
	s.mu.Lock()
	s.Steps.Prev()
	s.mu.Unlock()
	s.Emit(EventStepChanged, nil)
}

// ExitSteps leaves step mode.
func (s *State) ExitSteps() {
	s.mu.Lock()
	s.Steps.Exit()
	s.mu.Unlock()
	s.Emit(EventStepChanged, nil)
}

// Narrative returns the explanation text for the current step, or "" when
// step mode is off.
func (s *State) Narrative() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	step, ok := s.Steps.Step()
	if !ok {
		return ""
	}
	return steps.Describe(step, &s.problem, s.solution)
}

// LoadProblem reads a problem file and makes it current. The previous
// solution is cleared; the caller should request a fresh solve.
func (s *State) LoadProblem(path string) error {
	prob, err := lp.LoadFile(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.problem = *prob
	s.solution = nil
	s.Steps.Exit()
	s.View.Reset(nil, prob.Objective)
	s.mu.Unlock()

	s.Emit(EventProblemLoaded, path)
	return nil
}

// SaveProblem writes the current problem to a file.
func (s *State) SaveProblem(path string) error {
	prob := s.Problem()
	return prob.SaveFile(path)
}
