// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"lp-grapher/internal/app"
	"lp-grapher/internal/solver"
	"lp-grapher/internal/version"
	"lp-grapher/internal/viewport"
	"lp-grapher/ui/canvas"
	"lp-grapher/ui/panels"
	"lp-grapher/ui/prefs"
)

const (
	prefKeyLastDir = "lastDirectory"

	prefKeyLastProblem = "lastProblem"

	prefKeyCameraX      = "cameraX"
	prefKeyCameraY      = "cameraY"
	prefKeyCameraWidth  = "cameraWidth"
	prefKeyCameraHeight = "cameraHeight"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app         fyne.App
	state       *app.State
	coordinator *app.SolveCoordinator
	svc         solver.Service
	prefs       *prefs.Prefs
	canvas      *canvas.PlotCanvas
	sidePanel   *panels.SidePanel
	statusBar   *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, coordinator *app.SolveCoordinator, svc solver.Service, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("LP Grapher")

	mw := &MainWindow{
		Window:      win,
		app:         fyneApp,
		state:       state,
		coordinator: coordinator,
		svc:         svc,
		prefs:       p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreView()
	mw.checkSolverHealth()

	mw.SetCloseIntercept(func() {
		mw.saveView()
		mw.Close()
	})

	return mw
}

// restoreView reapplies the camera window from the last session.
func (mw *MainWindow) restoreView() {
	cam := mw.state.View.Camera
	cam.X = mw.prefs.FloatWithFallback(prefKeyCameraX, cam.X)
	cam.Y = mw.prefs.FloatWithFallback(prefKeyCameraY, cam.Y)
	cam.Width = mw.prefs.FloatWithFallback(prefKeyCameraWidth, cam.Width)
	cam.Height = mw.prefs.FloatWithFallback(prefKeyCameraHeight, cam.Height)
	if cam.Width <= 0 || cam.Height <= 0 {
		cam.SetDefault()
	}
	mw.state.View.Grid = viewport.PlanGrid(cam)
	mw.canvas.Refresh()
}

// saveView persists the camera window for the next session.
func (mw *MainWindow) saveView() {
	cam := mw.state.View.Camera
	mw.prefs.SetFloat(prefKeyCameraX, cam.X)
	mw.prefs.SetFloat(prefKeyCameraY, cam.Y)
	mw.prefs.SetFloat(prefKeyCameraWidth, cam.Width)
	mw.prefs.SetFloat(prefKeyCameraHeight, cam.Height)
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewPlotCanvas(mw.state)
	mw.canvas.OnViewChange(func() {
		mw.state.Emit(app.EventViewChanged, nil)
	})
	mw.canvas.OnLocate(func(x, y float64, inside bool) {
		where := "outside the feasible region"
		if inside {
			where = "inside the feasible region"
		}
		mw.updateStatus(fmt.Sprintf("(%.2f, %.2f) is %s", x, y, where))
	})

	mw.sidePanel = panels.NewSidePanel(mw.state)
	mw.statusBar = widget.NewLabel("Ready")

	canvasArea := container.NewBorder(
		mw.createToolbar(),
		nil, nil, nil,
		mw.canvas,
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.3)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		split,
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1100, 700))
}

// createToolbar creates the toolbar with view controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.onZoomOut)
	zoomInBtn := widget.NewButton("+", mw.onZoomIn)
	fitBtn := widget.NewButton("Fit", mw.onFitView)
	resetBtn := widget.NewButton("Reset", mw.onResetView)

	return container.NewHBox(
		widget.NewLabel("View:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		resetBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Problem...", mw.onOpenProblem),
		fyne.NewMenuItem("Save Problem As...", mw.onSaveProblem),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Report...", mw.onExportReport),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		fyne.NewMenuItem("Fit to Solution", mw.onFitView),
		fyne.NewMenuItem("Reset View", mw.onResetView),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventProblemChanged, func(data interface{}) {
		mw.coordinator.RequestSolve()
		mw.updateStatus("Solving...")
	})

	mw.state.On(app.EventProblemLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("LP Grapher - " + filepath.Base(path))
			mw.updateStatus("Problem loaded: " + path)
			mw.prefs.SetString(prefKeyLastProblem, path)
			if err := mw.prefs.Save(); err != nil {
				log.Printf("Failed to save preferences: %v", err)
			}
		}
		mw.coordinator.RequestSolve()
		mw.canvas.Refresh()
	})

	mw.state.On(app.EventSolutionUpdated, func(data interface{}) {
		mw.canvas.Refresh()
		sol := mw.state.Solution()
		if sol == nil {
			mw.updateStatus("No constraints to solve")
			return
		}
		mw.updateStatus("Solved: " + string(sol.Status))
	})

	mw.state.On(app.EventSolveFailed, func(data interface{}) {
		if err, ok := data.(error); ok {
			mw.updateStatus("Solve failed: " + err.Error())
		}
	})

	mw.state.On(app.EventStepChanged, func(data interface{}) {
		mw.canvas.Refresh()
	})
}

// checkSolverHealth pings the solver service in the background.
func (mw *MainWindow) checkSolverHealth() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mw.svc.HealthCheck(ctx); err != nil {
			mw.updateStatus("Solver offline: " + err.Error())
		}
	}()
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

func (mw *MainWindow) saveLastDir(filePath string) {
	mw.app.Preferences().SetString(prefKeyLastDir, filepath.Dir(filePath))
}

// Menu action handlers

func (mw *MainWindow) onOpenProblem() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadProblem(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveProblem() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".json" {
			path += ".json"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveProblem(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("problem.json")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportReport() {
	prob := mw.state.Problem()
	if len(prob.Constraints) == 0 {
		mw.updateStatus("Nothing to report: no constraints")
		return
	}

	mw.updateStatus("Requesting report...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		data, filename, err := mw.svc.ExportReport(ctx, &prob)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			mw.updateStatus("Report failed")
			return
		}
		mw.saveReport(data, filename)
	}()
}

// saveReport prompts for a destination and writes the report bytes.
func (mw *MainWindow) saveReport(data []byte, filename string) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		mw.saveLastDir(path)
		if err := os.WriteFile(path, data, 0644); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Report saved: " + path)
	}, mw.Window)
	fd.SetFileName(filename)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onZoomIn() {
	mw.state.View.Zoom(-1)
	mw.canvas.Refresh()
}

func (mw *MainWindow) onZoomOut() {
	mw.state.View.Zoom(1)
	mw.canvas.Refresh()
}

func (mw *MainWindow) onFitView() {
	prob := mw.state.Problem()
	if mw.state.View.Fit(mw.state.Solution(), prob.Objective) {
		mw.canvas.Refresh()
		mw.updateStatus("View fitted to solution")
	} else {
		mw.updateStatus("Nothing to fit")
	}
}

func (mw *MainWindow) onResetView() {
	prob := mw.state.Problem()
	mw.state.View.Reset(mw.state.Solution(), prob.Objective)
	mw.canvas.Refresh()
	mw.updateStatus("View reset")
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About LP Grapher",
		fmt.Sprintf("LP Grapher v%s\n\n"+
			"An interactive grapher for two-variable linear programs\n"+
			"using the graphical method.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
