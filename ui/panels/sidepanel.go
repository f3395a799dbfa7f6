package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"lp-grapher/internal/app"
)

// SidePanel groups the editor and walkthrough tabs.
type SidePanel struct {
	state     *app.State
	container *container.AppTabs

	problemPanel *ProblemPanel
	stepPanel    *StepPanel
}

// NewSidePanel creates the side panel.
func NewSidePanel(state *app.State) *SidePanel {
	sp := &SidePanel{state: state}

	sp.problemPanel = NewProblemPanel(state)
	sp.stepPanel = NewStepPanel(state)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Problem", sp.problemPanel.Container()),
		container.NewTabItem("Steps", sp.stepPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}
