package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lp-grapher/internal/lp"
	"lp-grapher/pkg/geometry"
)

// fakeSolver counts calls and serves canned responses. Responses can be
// held back with the release channel to simulate slow requests.
type fakeSolver struct {
	mu      sync.Mutex
	calls   int
	sol     *lp.Solution
	err     error
	release chan struct{}
}

func newFakeSolver() *fakeSolver {
	return &fakeSolver{
		sol: &lp.Solution{
			Status: lp.StatusOptimal,
			Optimal: &lp.Optimal{
				Point: geometry.NewPoint2D(2, 6),
				Z:     36,
			},
			FeasibleRegion: []geometry.Point2D{
				{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 2, Y: 6}, {X: 0, Y: 6},
			},
		},
	}
}

func (f *fakeSolver) Solve(ctx context.Context, prob *lp.Problem) (*lp.Solution, error) {
	f.mu.Lock()
	f.calls++
	sol, err, release := f.sol, f.err, f.release
	f.mu.Unlock()
	if release != nil {
		<-release
	}
	return sol, err
}

func (f *fakeSolver) HealthCheck(ctx context.Context) error { return nil }

func (f *fakeSolver) ExportReport(ctx context.Context, prob *lp.Problem) ([]byte, string, error) {
	return nil, "", errors.New("not implemented")
}

func (f *fakeSolver) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitForSolution(t *testing.T, state *State) *lp.Solution {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if sol := state.Solution(); sol != nil {
			return sol
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no solution arrived")
	return nil
}

const testDelay = 20 * time.Millisecond

func TestCoordinatorSolvesAfterQuietWindow(t *testing.T) {
	state := NewState()
	svc := newFakeSolver()
	sc := NewSolveCoordinator(state, svc, testDelay)

	sc.RequestSolve()
	sol := waitForSolution(t, state)
	if sol.Status != lp.StatusOptimal {
		t.Errorf("status = %s, want Optimal", sol.Status)
	}
	if svc.callCount() != 1 {
		t.Errorf("solver called %d times, want 1", svc.callCount())
	}
}

func TestCoordinatorDebouncesBursts(t *testing.T) {
	state := NewState()
	svc := newFakeSolver()
	sc := NewSolveCoordinator(state, svc, testDelay)

	for i := 0; i < 5; i++ {
		sc.RequestSolve()
		time.Sleep(2 * time.Millisecond)
	}
	waitForSolution(t, state)
	// Settle time for any stray timer.
	time.Sleep(3 * testDelay)

	if svc.callCount() != 1 {
		t.Errorf("burst of 5 triggers caused %d solver calls, want 1", svc.callCount())
	}
}

func TestCoordinatorEmptyConstraintsSkipsSolver(t *testing.T) {
	state := NewState()
	svc := newFakeSolver()
	sc := NewSolveCoordinator(state, svc, testDelay)

	// Seed a solution so clearing is observable.
	state.SetSolution(svc.sol)

	for i := len(state.Problem().Constraints) - 1; i >= 0; i-- {
		state.RemoveConstraint(i)
	}
	sc.RequestSolve()
	time.Sleep(3 * testDelay)

	if svc.callCount() != 0 {
		t.Errorf("solver called %d times for an empty program, want 0", svc.callCount())
	}
	if state.Solution() != nil {
		t.Error("empty program left a stale solution in place")
	}
}

func TestCoordinatorDropsStaleResponse(t *testing.T) {
	state := NewState()
	svc := newFakeSolver()
	sc := NewSolveCoordinator(state, svc, testDelay)

	// Hold the first response in flight.
	release := make(chan struct{})
	svc.mu.Lock()
	svc.release = release
	svc.mu.Unlock()

	sc.RequestSolve()
	time.Sleep(2 * testDelay) // first request fires and blocks

	// Second request supersedes the first; let it answer immediately with
	// a distinguishable solution.
	second := &lp.Solution{
		Status:         lp.StatusOptimal,
		Optimal:        &lp.Optimal{Point: geometry.NewPoint2D(1, 1), Z: 8},
		FeasibleRegion: []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
	}
	svc.mu.Lock()
	svc.sol = second
	svc.release = nil
	svc.mu.Unlock()

	sc.RequestSolve()
	sol := waitForSolution(t, state)
	if sol != second {
		t.Fatal("second response was not applied")
	}

	// Now the first, stale response arrives. It must be dropped.
	close(release)
	time.Sleep(3 * testDelay)
	if got := state.Solution(); got != second {
		t.Error("stale response overwrote a newer solution")
	}
}

func TestCoordinatorSerializesResponseDelivery(t *testing.T) {
	state := NewState()
	svc := newFakeSolver()
	sc := NewSolveCoordinator(state, svc, testDelay)

	// Hold the first response in flight.
	release := make(chan struct{})
	svc.mu.Lock()
	svc.release = release
	svc.mu.Unlock()

	sc.RequestSolve()
	time.Sleep(2 * testDelay) // first request fires and blocks

	// Park delivery, then let the first response return. It queues up
	// before it can recheck its token.
	sc.applyMu.Lock()
	close(release)

	second := &lp.Solution{
		Status:         lp.StatusOptimal,
		Optimal:        &lp.Optimal{Point: geometry.NewPoint2D(1, 1), Z: 8},
		FeasibleRegion: []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
	}
	svc.mu.Lock()
	svc.sol = second
	svc.release = nil
	svc.mu.Unlock()

	// The second request supersedes the first while its delivery is
	// still parked; both responses queue behind the lock.
	sc.RequestSolve()
	time.Sleep(2 * testDelay)
	sc.applyMu.Unlock()

	waitForSolution(t, state)
	time.Sleep(3 * testDelay)
	if got := state.Solution(); got != second {
		t.Error("earlier response landed after a newer one")
	}
}

func TestCoordinatorFailureRetainsSolution(t *testing.T) {
	state := NewState()
	svc := newFakeSolver()
	sc := NewSolveCoordinator(state, svc, testDelay)

	sc.RequestSolve()
	good := waitForSolution(t, state)

	failed := make(chan error, 1)
	sc.OnError(func(err error) { failed <- err })

	svc.mu.Lock()
	svc.err = errors.New("backend exploded")
	svc.mu.Unlock()

	sc.RequestSolve()
	select {
	case err := <-failed:
		if err == nil {
			t.Fatal("error sink received nil")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("error sink never fired")
	}

	if state.Solution() != good {
		t.Error("failed solve replaced the previously accepted solution")
	}
}

func TestCoordinatorEventOnFailure(t *testing.T) {
	state := NewState()
	svc := newFakeSolver()
	svc.err = errors.New("offline")
	sc := NewSolveCoordinator(state, svc, testDelay)
	sc.OnError(func(error) {})

	got := make(chan interface{}, 1)
	state.On(EventSolveFailed, func(data interface{}) { got <- data })

	sc.RequestSolve()
	select {
	case data := <-got:
		if _, ok := data.(error); !ok {
			t.Errorf("EventSolveFailed payload = %T, want error", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("EventSolveFailed never emitted")
	}
}
