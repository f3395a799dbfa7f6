package app

import (
	"path/filepath"
	"testing"

	"lp-grapher/internal/lp"
	"lp-grapher/pkg/geometry"
)

func sampleSolution() *lp.Solution {
	return &lp.Solution{
		Status: lp.StatusOptimal,
		Optimal: &lp.Optimal{
			Point: geometry.NewPoint2D(2, 6),
			Z:     36,
		},
		FeasibleRegion: []geometry.Point2D{
			{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 2, Y: 6}, {X: 0, Y: 6},
		},
		ConstraintLines: []lp.Constraint{
			{X: 1, Y: 0, Operator: lp.OpLE, RHS: 4},
			{X: 0, Y: 2, Operator: lp.OpLE, RHS: 12},
			{X: 3, Y: 2, Operator: lp.OpLE, RHS: 18},
		},
	}
}

func TestNewStateSeedsSampleProblem(t *testing.T) {
	s := NewState()
	prob := s.Problem()

	if len(prob.Constraints) != 3 {
		t.Fatalf("seed problem has %d constraints, want 3", len(prob.Constraints))
	}
	if !prob.Maximize {
		t.Error("seed problem is not a maximization")
	}
	if prob.Context == nil || prob.Context.XName != "tables" {
		t.Error("seed problem missing business context")
	}
	if s.Solution() != nil {
		t.Error("fresh state already has a solution")
	}
}

func TestProblemReturnsCopy(t *testing.T) {
	s := NewState()
	prob := s.Problem()
	prob.Constraints[0].RHS = 999
	prob.Context.XName = "mutated"

	again := s.Problem()
	if again.Constraints[0].RHS == 999 {
		t.Error("mutating the returned problem changed state constraints")
	}
	if again.Context.XName == "mutated" {
		t.Error("mutating the returned problem changed state context")
	}
}

func TestEventsFireOnMutation(t *testing.T) {
	s := NewState()
	changed := 0
	s.On(EventProblemChanged, func(interface{}) { changed++ })

	s.SetObjective(lp.Objective{X: 1, Y: 2})
	s.SetMaximize(false)
	s.AddConstraint(lp.Constraint{X: 1, Y: 1, Operator: lp.OpLE, RHS: 5})
	s.SetConstraint(0, lp.Constraint{X: 2, Y: 0, Operator: lp.OpLE, RHS: 6})
	s.RemoveConstraint(0)

	if changed != 5 {
		t.Errorf("EventProblemChanged fired %d times, want 5", changed)
	}
}

func TestOutOfRangeConstraintEditsIgnored(t *testing.T) {
	s := NewState()
	changed := 0
	s.On(EventProblemChanged, func(interface{}) { changed++ })

	s.SetConstraint(99, lp.Constraint{})
	s.RemoveConstraint(-1)
	s.RemoveConstraint(99)

	if changed != 0 {
		t.Errorf("out-of-range edits emitted %d events, want 0", changed)
	}
	if got := len(s.Problem().Constraints); got != 3 {
		t.Errorf("constraint count = %d, want 3", got)
	}
}

func TestSetSolutionFitsViewport(t *testing.T) {
	s := NewState()
	updated := false
	s.On(EventSolutionUpdated, func(interface{}) { updated = true })

	s.SetSolution(sampleSolution())
	if !updated {
		t.Error("SetSolution did not emit EventSolutionUpdated")
	}
	if s.View.Camera.X >= 0 {
		t.Errorf("viewport not fitted: camera X = %g", s.View.Camera.X)
	}
	if len(s.View.Segments) != 3 {
		t.Errorf("viewport has %d segments, want 3", len(s.View.Segments))
	}

	s.SetSolution(nil)
	if s.View.Camera.Width != 12 {
		t.Errorf("clearing solution did not reset view: width = %g", s.View.Camera.Width)
	}
}

func TestSetSolutionInfeasibleStillProjects(t *testing.T) {
	s := NewState()
	sol := &lp.Solution{
		Status: lp.StatusInfeasible,
		ConstraintLines: []lp.Constraint{
			{X: 1, Y: 1, Operator: lp.OpLE, RHS: 2},
			{X: 1, Y: 1, Operator: lp.OpGE, RHS: 5},
		},
	}
	s.SetSolution(sol)
	if len(s.View.Segments) != 2 {
		t.Errorf("infeasible solution projected %d segments, want 2", len(s.View.Segments))
	}
}

func TestStepLifecycle(t *testing.T) {
	s := NewState()

	if s.StartSteps() {
		t.Error("StartSteps succeeded without a solution")
	}

	s.SetSolution(sampleSolution())
	if !s.StartSteps() {
		t.Fatal("StartSteps failed with a solution present")
	}
	if got, want := s.Steps.Total(), 6; got != want {
		t.Errorf("Total = %d, want %d", got, want)
	}
	if s.Narrative() == "" {
		t.Error("no narrative at step 1")
	}

	s.NextStep()
	if s.Steps.Current() != 2 {
		t.Errorf("current = %d, want 2", s.Steps.Current())
	}
	s.PrevStep()
	if s.Steps.Current() != 1 {
		t.Errorf("current = %d, want 1", s.Steps.Current())
	}

	// Editing the constraint set invalidates the walkthrough.
	s.AddConstraint(lp.Constraint{X: 1, Y: 1, Operator: lp.OpLE, RHS: 9})
	if s.Steps.Active() {
		t.Error("step mode survived a constraint edit")
	}
}

func TestSaveAndLoadProblem(t *testing.T) {
	s := NewState()
	path := filepath.Join(t.TempDir(), "problem.json")

	if err := s.SaveProblem(path); err != nil {
		t.Fatalf("SaveProblem: %v", err)
	}

	s2 := NewState()
	s2.SetObjective(lp.Objective{X: 9, Y: 9})
	s2.SetSolution(sampleSolution())

	loaded := false
	s2.On(EventProblemLoaded, func(interface{}) { loaded = true })
	if err := s2.LoadProblem(path); err != nil {
		t.Fatalf("LoadProblem: %v", err)
	}
	if !loaded {
		t.Error("LoadProblem did not emit EventProblemLoaded")
	}
	if s2.Solution() != nil {
		t.Error("LoadProblem kept the old solution")
	}
	if got := s2.Problem().Objective; got.X != 3 || got.Y != 5 {
		t.Errorf("loaded objective = %+v, want {3 5}", got)
	}
}
