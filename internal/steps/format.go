package steps

import (
	"fmt"

	"lp-grapher/internal/lp"
)

// Describe renders a narrative sentence for a step. The narrator keeps
// only structured state; this is the language layer on top of it.
func Describe(step Step, prob *lp.Problem, sol *lp.Solution) string {
	switch step.Kind {
	case KindConstraint:
		if step.Constraint < 0 || step.Constraint >= len(prob.Constraints) {
			return ""
		}
		c := prob.Constraints[step.Constraint]
		side := "above/right"
		if c.Operator == lp.OpLE {
			side = "below/left"
		}
		return fmt.Sprintf("Constraint %d: %s. Points satisfying it lie %s of the line.",
			step.Constraint+1, c, side)

	case KindRegion:
		return "The feasible region is where all constraint half-planes overlap. Every point inside satisfies every constraint at once."

	case KindObjective:
		goal := "minimize"
		if prob.Maximize {
			goal = "maximize"
		}
		return fmt.Sprintf("The objective line z = %gx + %gy sweeps the plane; we %s z while staying inside the region.",
			prob.Objective.X, prob.Objective.Y, goal)

	case KindOptimum:
		if sol == nil || sol.Optimal == nil {
			return "No optimal vertex exists for this program."
		}
		opt := sol.Optimal
		base := fmt.Sprintf("The optimum is at (%g, %g) with z = %g, a vertex of the feasible region.",
			opt.Point.X, opt.Point.Y, opt.Z)
		if ctx := prob.Context; ctx != nil {
			base += fmt.Sprintf(" In other words: choose %g %s and %g %s for a %s of %g.",
				opt.Point.X, ctx.XName, opt.Point.Y, ctx.YName, ctx.ZName, opt.Z)
		}
		return base
	}
	return ""
}
