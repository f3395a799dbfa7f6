// Package solver defines the boundary to the external solving service and
// provides its HTTP client. The viewport core depends only on the Service
// interface; failures surface as errors, never as malformed solutions.
package solver

import (
	"context"
	"errors"

	"lp-grapher/internal/lp"
)

// ErrOffline indicates the service could not be reached or reported an
// unhealthy status.
var ErrOffline = errors.New("solver service offline")

// Service is the request/response boundary to the solver.
type Service interface {
	// Solve submits the program and returns its solution. The returned
	// solution is complete and self-consistent; errors are transport or
	// backend failures.
	Solve(ctx context.Context, prob *lp.Problem) (*lp.Solution, error)

	// HealthCheck reports whether the service is reachable.
	HealthCheck(ctx context.Context) error

	// ExportReport returns a report document for the program and its
	// suggested file name.
	ExportReport(ctx context.Context, prob *lp.Problem) (data []byte, filename string, err error)
}
