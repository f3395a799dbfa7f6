// Package panels provides the side panel sections of the grapher window.
package panels

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"lp-grapher/internal/app"
	"lp-grapher/internal/lp"
)

var operatorOptions = []string{string(lp.OpLE), string(lp.OpGE), string(lp.OpEQ)}

// ProblemPanel edits the linear program: objective coefficients, the
// optimization sense, and the constraint list. Every edit goes through the
// state mutators, which emit EventProblemChanged for the solve coordinator.
type ProblemPanel struct {
	state     *app.State
	container fyne.CanvasObject

	objXEntry   *widget.Entry
	objYEntry   *widget.Entry
	senseSelect *widget.RadioGroup
	rows        *fyne.Container
	statusLabel *widget.Label

	// rebuilding suppresses entry callbacks while the form is being
	// populated from state.
	rebuilding bool
}

// NewProblemPanel creates the problem editor panel.
func NewProblemPanel(state *app.State) *ProblemPanel {
	pp := &ProblemPanel{state: state}

	pp.statusLabel = widget.NewLabel("")
	pp.statusLabel.Wrapping = fyne.TextWrapWord

	pp.objXEntry = widget.NewEntry()
	pp.objYEntry = widget.NewEntry()
	pp.objXEntry.OnChanged = func(string) { pp.applyObjective() }
	pp.objYEntry.OnChanged = func(string) { pp.applyObjective() }

	pp.senseSelect = widget.NewRadioGroup([]string{"Maximize", "Minimize"}, func(selected string) {
		if pp.rebuilding {
			return
		}
		state.SetMaximize(selected == "Maximize")
	})
	pp.senseSelect.Horizontal = true

	pp.rows = container.NewVBox()

	addButton := widget.NewButtonWithIcon("Add Constraint", theme.ContentAddIcon(), func() {
		state.AddConstraint(lp.Constraint{X: 1, Y: 1, Operator: lp.OpLE, RHS: 10})
		pp.rebuildRows()
	})

	pp.container = container.NewVBox(
		widget.NewCard("Objective", "z = c1·x + c2·y", container.NewVBox(
			container.NewGridWithColumns(2, pp.objXEntry, pp.objYEntry),
			pp.senseSelect,
		)),
		widget.NewCard("Constraints", "a·x + b·y op rhs", container.NewVBox(
			pp.rows,
			addButton,
		)),
		pp.statusLabel,
	)

	state.On(app.EventProblemLoaded, func(data interface{}) {
		pp.Rebuild()
	})
	state.On(app.EventSolutionUpdated, func(data interface{}) {
		pp.updateStatus()
	})
	state.On(app.EventSolveFailed, func(data interface{}) {
		if err, ok := data.(error); ok {
			pp.statusLabel.SetText("Solve failed: " + err.Error())
		}
	})

	pp.Rebuild()
	return pp
}

// Container returns the panel container.
func (pp *ProblemPanel) Container() fyne.CanvasObject {
	return pp.container
}

// Rebuild repopulates the whole form from the current problem.
func (pp *ProblemPanel) Rebuild() {
	pp.rebuilding = true
	prob := pp.state.Problem()
	pp.objXEntry.SetText(formatCoeff(prob.Objective.X))
	pp.objYEntry.SetText(formatCoeff(prob.Objective.Y))
	if prob.Maximize {
		pp.senseSelect.SetSelected("Maximize")
	} else {
		pp.senseSelect.SetSelected("Minimize")
	}
	pp.rebuilding = false
	pp.rebuildRows()
	pp.updateStatus()
}

func (pp *ProblemPanel) applyObjective() {
	if pp.rebuilding {
		return
	}
	x, okX := parseCoeff(pp.objXEntry.Text)
	y, okY := parseCoeff(pp.objYEntry.Text)
	if !okX || !okY {
		return
	}
	pp.state.SetObjective(lp.Objective{X: x, Y: y})
}

// rebuildRows recreates one editor row per constraint.
func (pp *ProblemPanel) rebuildRows() {
	pp.rebuilding = true
	defer func() { pp.rebuilding = false }()

	pp.rows.Objects = nil
	prob := pp.state.Problem()
	for i, c := range prob.Constraints {
		pp.rows.Add(pp.newRow(i, c))
	}
	pp.rows.Refresh()
}

func (pp *ProblemPanel) newRow(index int, c lp.Constraint) fyne.CanvasObject {
	aEntry := widget.NewEntry()
	aEntry.SetText(formatCoeff(c.X))
	bEntry := widget.NewEntry()
	bEntry.SetText(formatCoeff(c.Y))
	rhsEntry := widget.NewEntry()
	rhsEntry.SetText(formatCoeff(c.RHS))

	opSelect := widget.NewSelect(operatorOptions, nil)
	opSelect.SetSelected(string(c.Operator))

	apply := func() {
		if pp.rebuilding {
			return
		}
		a, okA := parseCoeff(aEntry.Text)
		b, okB := parseCoeff(bEntry.Text)
		rhs, okR := parseCoeff(rhsEntry.Text)
		if !okA || !okB || !okR || opSelect.Selected == "" {
			return
		}
		pp.state.SetConstraint(index, lp.Constraint{
			X:        a,
			Y:        b,
			Operator: lp.Operator(opSelect.Selected),
			RHS:      rhs,
		})
	}
	aEntry.OnChanged = func(string) { apply() }
	bEntry.OnChanged = func(string) { apply() }
	rhsEntry.OnChanged = func(string) { apply() }
	opSelect.OnChanged = func(string) { apply() }

	removeButton := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		pp.state.RemoveConstraint(index)
		pp.rebuildRows()
	})

	return container.NewGridWithColumns(5, aEntry, bEntry, opSelect, rhsEntry, removeButton)
}

func (pp *ProblemPanel) updateStatus() {
	sol := pp.state.Solution()
	if sol == nil {
		pp.statusLabel.SetText("No solution yet")
		return
	}
	switch sol.Status {
	case lp.StatusOptimal:
		opt := sol.Optimal
		pp.statusLabel.SetText(fmt.Sprintf("Optimal: x=%g, y=%g, z=%g",
			opt.Point.X, opt.Point.Y, opt.Z))
	case lp.StatusInfeasible:
		pp.statusLabel.SetText("Infeasible: the constraints admit no solution")
	case lp.StatusUnbounded:
		pp.statusLabel.SetText("Unbounded: the objective can grow without limit")
	default:
		pp.statusLabel.SetText(string(sol.Status))
	}
}

func formatCoeff(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseCoeff(text string) (float64, bool) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
