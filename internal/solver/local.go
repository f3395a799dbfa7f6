package solver

import (
	"context"
	"time"

	"lp-grapher/internal/engine"
	"lp-grapher/internal/lp"
)

// Local solves in process with the bundled engine. It is the fallback when
// no service URL is configured.
type Local struct{}

// NewLocal creates an in-process solver.
func NewLocal() *Local {
	return &Local{}
}

// Solve implements Service.
func (l *Local) Solve(ctx context.Context, prob *lp.Problem) (*lp.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return engine.Solve(prob), nil
}

// HealthCheck implements Service. The local engine is always available.
func (l *Local) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

// ExportReport implements Service.
func (l *Local) ExportReport(ctx context.Context, prob *lp.Problem) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	sol := engine.Solve(prob)
	data, err := engine.Report(prob, sol)
	if err != nil {
		return nil, "", err
	}
	return data, engine.ReportFilename(time.Now()), nil
}
