package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"lp-grapher/internal/solver"
)

// DebounceDelay is the quiet window that coalesces a burst of edits into
// one solve request.
const DebounceDelay = 300 * time.Millisecond

// SolveCoordinator turns edit triggers into solver calls: it debounces
// bursts, keeps at most one request's result live, and drops stale
// responses. Each fired request mints a token; a response is applied only
// if its token is still the latest, so an earlier request can never
// overwrite a later one regardless of arrival order.
type SolveCoordinator struct {
	state *State
	svc   solver.Service
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	token uuid.UUID

	// applyMu serializes response delivery so the token check and the
	// state write cannot interleave across two in-flight responses.
	applyMu sync.Mutex

	onError func(error)
}

// NewSolveCoordinator creates a coordinator with the given debounce delay.
// Use DebounceDelay outside of tests.
func NewSolveCoordinator(state *State, svc solver.Service, delay time.Duration) *SolveCoordinator {
	return &SolveCoordinator{
		state: state,
		svc:   svc,
		delay: delay,
		onError: func(err error) {
			log.Printf("solve failed: %v", err)
		},
	}
}

// OnError sets the sink for solve failures. A failure never clears the
// previously accepted solution; the sink is the only observable effect.
func (sc *SolveCoordinator) OnError(fn func(error)) {
	sc.mu.Lock()
	sc.onError = fn
	sc.mu.Unlock()
}

// RequestSolve schedules a solve after the quiet window. Triggers inside
// the window restart it, so a burst fires once.
func (sc *SolveCoordinator) RequestSolve() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.timer != nil {
		sc.timer.Stop()
	}
	sc.timer = time.AfterFunc(sc.delay, sc.fire)
}

// fire issues the solve. An empty constraint set resolves to "no solution"
// locally without touching the service.
func (sc *SolveCoordinator) fire() {
	prob := sc.state.Problem()

	sc.mu.Lock()
	token := uuid.New()
	sc.token = token
	fail := sc.onError
	sc.mu.Unlock()

	if len(prob.Constraints) == 0 {
		// Minting the token above already invalidated any in-flight call.
		sc.applyMu.Lock()
		sc.state.SetSolution(nil)
		sc.applyMu.Unlock()
		return
	}

	go func() {
		sol, err := sc.svc.Solve(context.Background(), &prob)

		sc.applyMu.Lock()
		defer sc.applyMu.Unlock()

		sc.mu.Lock()
		stale := sc.token != token
		sc.mu.Unlock()
		if stale {
			return
		}

		if err != nil {
			fail(err)
			sc.state.Emit(EventSolveFailed, err)
			return
		}
		sc.state.SetSolution(sol)
	}()
}
