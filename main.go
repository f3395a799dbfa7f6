// Package main provides the entry point for the LP Grapher application.
package main

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"lp-grapher/internal/app"
	"lp-grapher/internal/solver"
	"lp-grapher/ui/mainwindow"
	"lp-grapher/ui/prefs"
)

const (
	appID    = "io.lpgrapher.app"
	appTitle = "LP Grapher"

	prefKeySolverURL   = "solverURL"
	prefKeyLastProblem = "lastProblem"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s", appTitle)

	fyneApp := fyneapp.NewWithID(appID)
	appState := app.NewState()
	appPrefs := prefs.Load()

	svc := newService(appPrefs)
	coordinator := app.NewSolveCoordinator(appState, svc, app.DebounceDelay)

	win := mainwindow.New(fyneApp, appState, coordinator, svc, appPrefs)
	win.SetTitle(appTitle)

	// A file argument wins; otherwise reopen the last session's problem.
	path := appPrefs.String(prefKeyLastProblem)
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path != "" {
		if err := appState.LoadProblem(path); err != nil {
			log.Printf("Failed to load problem %s: %v", path, err)
		}
	}

	// Solve the initial problem so the window opens with a plot.
	coordinator.RequestSolve()

	win.ShowAndRun()
}

// newService picks the solver backend: the HTTP service when a URL is
// configured (preferences or SOLVER_URL), the in-process engine otherwise.
func newService(p *prefs.Prefs) solver.Service {
	url := os.Getenv("SOLVER_URL")
	if url == "" {
		url = p.String(prefKeySolverURL)
	}
	if url == "" {
		log.Println("Using in-process solver")
		return solver.NewLocal()
	}
	log.Printf("Using solver service at %s", url)
	return solver.NewClient(url)
}
