package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"lp-grapher/internal/app"
)

// StepPanel drives the step-by-step walkthrough of the graphical method.
type StepPanel struct {
	state     *app.State
	container fyne.CanvasObject

	progressLabel  *widget.Label
	narrativeLabel *widget.Label
	startButton    *widget.Button
	prevButton     *widget.Button
	nextButton     *widget.Button
	exitButton     *widget.Button
}

// NewStepPanel creates the walkthrough panel.
func NewStepPanel(state *app.State) *StepPanel {
	sp := &StepPanel{state: state}

	sp.progressLabel = widget.NewLabel("")
	sp.narrativeLabel = widget.NewLabel("Solve a problem, then start the walkthrough.")
	sp.narrativeLabel.Wrapping = fyne.TextWrapWord

	sp.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		state.StartSteps()
	})
	sp.prevButton = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		state.PrevStep()
	})
	sp.nextButton = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		state.NextStep()
	})
	sp.exitButton = widget.NewButtonWithIcon("Exit", theme.CancelIcon(), func() {
		state.ExitSteps()
	})

	sp.container = container.NewVBox(
		widget.NewCard("Walkthrough", "", container.NewVBox(
			container.NewHBox(sp.startButton, sp.prevButton, sp.nextButton, sp.exitButton),
			sp.progressLabel,
			sp.narrativeLabel,
		)),
	)

	state.On(app.EventStepChanged, func(data interface{}) {
		sp.sync()
	})
	state.On(app.EventSolutionUpdated, func(data interface{}) {
		sp.sync()
	})

	sp.sync()
	return sp
}

// Container returns the panel container.
func (sp *StepPanel) Container() fyne.CanvasObject {
	return sp.container
}

// sync updates the buttons and narrative for the current narrator state.
func (sp *StepPanel) sync() {
	narrator := sp.state.Steps

	if !narrator.Active() {
		sp.progressLabel.SetText("")
		if sp.state.Solution() == nil {
			sp.narrativeLabel.SetText("Solve a problem, then start the walkthrough.")
			sp.startButton.Disable()
		} else {
			sp.narrativeLabel.SetText("Press Start to walk through the graphical method.")
			sp.startButton.Enable()
		}
		sp.prevButton.Disable()
		sp.nextButton.Disable()
		sp.exitButton.Disable()
		return
	}

	sp.startButton.Disable()
	sp.exitButton.Enable()
	sp.nextButton.Enable()
	if narrator.Current() > 1 {
		sp.prevButton.Enable()
	} else {
		sp.prevButton.Disable()
	}

	sp.progressLabel.SetText(fmt.Sprintf("Step %d of %d", narrator.Current(), narrator.Total()))
	sp.narrativeLabel.SetText(sp.state.Narrative())
}
