package canvas

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/colornames"

	"lp-grapher/internal/app"
	"lp-grapher/pkg/geometry"
)

// Colors for the plot. Constraint lines cycle through the palette in
// constraint order so the editor rows can match them.
var (
	backgroundColor = color.RGBA{255, 255, 255, 255}
	gridColor       = color.RGBA{225, 225, 225, 255}
	axisColor       = color.RGBA{120, 120, 120, 255}
	labelColor      = color.RGBA{90, 90, 90, 255}
	regionColor     = color.RGBA{207, 226, 243, 255}

	palette = []color.RGBA{
		colornames.Steelblue,
		colornames.Darkorange,
		colornames.Forestgreen,
		colornames.Mediumvioletred,
		colornames.Darkcyan,
		colornames.Chocolate,
	}
	objectiveColor = colornames.Crimson
	optimumColor   = colornames.Darkred
)

// ConstraintColor returns the palette color for constraint i.
func ConstraintColor(i int) color.RGBA {
	return palette[i%len(palette)]
}

// PlotCanvas renders the viewport: grid, axes, constraint lines, feasible
// region, objective line, and the optimal vertex. Wheel zooms, dragging
// pans. What is drawn follows the step narrator's visibility predicates.
type PlotCanvas struct {
	widget.BaseWidget

	state  *app.State
	raster *fynecanvas.Raster

	// onViewChange fires after a user camera gesture.
	onViewChange func()
	// onLocate fires on tap with the model coordinates and whether the
	// point lies inside the feasible region.
	onLocate func(x, y float64, inside bool)
}

// NewPlotCanvas creates the plot widget.
func NewPlotCanvas(state *app.State) *PlotCanvas {
	pc := &PlotCanvas{state: state}
	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.ScaleMode = fynecanvas.ImageScalePixels
	pc.ExtendBaseWidget(pc)
	return pc
}

// OnViewChange sets a callback for camera gestures.
func (pc *PlotCanvas) OnViewChange(callback func()) {
	pc.onViewChange = callback
}

// OnLocate sets a callback for taps, reporting model coordinates.
func (pc *PlotCanvas) OnLocate(callback func(x, y float64, inside bool)) {
	pc.onLocate = callback
}

// CreateRenderer implements fyne.Widget.
func (pc *PlotCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pc.raster)
}

// Refresh redraws the plot.
func (pc *PlotCanvas) Refresh() {
	pc.raster.Refresh()
	pc.BaseWidget.Refresh()
}

// Scrolled zooms the camera. Scrolling up (toward the content) zooms in.
func (pc *PlotCanvas) Scrolled(ev *fyne.ScrollEvent) {
	switch {
	case ev.Scrolled.DY > 0:
		pc.state.View.Zoom(-1)
	case ev.Scrolled.DY < 0:
		pc.state.View.Zoom(1)
	default:
		return
	}
	pc.Refresh()
	if pc.onViewChange != nil {
		pc.onViewChange()
	}
}

// Dragged pans the camera.
func (pc *PlotCanvas) Dragged(ev *fyne.DragEvent) {
	v := pc.state.View
	if !v.Camera.Dragging() {
		v.BeginDrag(float64(ev.Position.X-ev.Dragged.DX), float64(ev.Position.Y-ev.Dragged.DY))
	}
	v.DragTo(float64(ev.Position.X), float64(ev.Position.Y))
	pc.Refresh()
	if pc.onViewChange != nil {
		pc.onViewChange()
	}
}

// DragEnd finishes a pan gesture.
func (pc *PlotCanvas) DragEnd() {
	pc.state.View.EndDrag()
}

// Tapped reports the tapped model coordinates.
func (pc *PlotCanvas) Tapped(ev *fyne.PointEvent) {
	if pc.onLocate == nil {
		return
	}
	size := pc.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	cam := pc.state.View.Camera
	mx := cam.X + float64(ev.Position.X)/float64(size.Width)*cam.Width
	my := cam.Y + (1-float64(ev.Position.Y)/float64(size.Height))*cam.Height

	inside := false
	if sol := pc.state.Solution(); sol != nil {
		inside = geometry.PointInPolygon(geometry.NewPoint2D(mx, my), sol.FeasibleRegion)
	}
	pc.onLocate(mx, my, inside)
}

// draw is the raster drawing function.
func (pc *PlotCanvas) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = backgroundColor.R
		img.Pix[i+1] = backgroundColor.G
		img.Pix[i+2] = backgroundColor.B
		img.Pix[i+3] = 255
	}
	if w == 0 || h == 0 {
		return img
	}

	view := pc.state.View
	cam := view.Camera
	sol := pc.state.Solution()
	narrator := pc.state.Steps

	sx := float64(w) / cam.Width
	sy := float64(h) / cam.Height
	toPx := func(x float64) float64 { return (x - cam.X) * sx }
	toPy := func(y float64) float64 { return float64(h) - (y-cam.Y)*sy }

	pc.drawGrid(img, w, h, toPx, toPy)

	if sol != nil && narrator.RegionVisible() {
		pc.fillRegion(img, sol.FeasibleRegion, toPx, toPy)
	}

	for i, seg := range view.Segments {
		if narrator.ConstraintVisible(i) {
			drawSegment(img, toPx(seg.X1), toPy(seg.Y1), toPx(seg.X2), toPy(seg.Y2), ConstraintColor(i))
		}
	}

	if view.Objective != nil && narrator.ObjectiveVisible() {
		seg := view.Objective
		drawSegment(img, toPx(seg.X1), toPy(seg.Y1), toPx(seg.X2), toPy(seg.Y2), objectiveColor)
	}

	if opt := sol.OptimalPoint(); opt != nil && narrator.OptimumVisible() {
		window := geometry.Rect{X: cam.X, Y: cam.Y, Width: cam.Width, Height: cam.Height}
		if window.Contains(*opt) {
			px := int(math.Round(toPx(opt.X)))
			py := int(math.Round(toPy(opt.Y)))
			fillCircle(img, px, py, 5, optimumColor)
			label := "(" + formatTick(opt.X) + ", " + formatTick(opt.Y) + ")"
			drawLabel(img, label, px+8, py-10, optimumColor, 2)
		}
	}

	return img
}

// drawGrid draws grid lines at the planned ticks, the axes, and the tick
// labels.
func (pc *PlotCanvas) drawGrid(img *image.RGBA, w, h int, toPx, toPy func(float64) float64) {
	grid := pc.state.View.Grid

	for _, t := range grid.XTicks {
		x := int(math.Round(toPx(t)))
		col := gridColor
		if t == 0 {
			col = axisColor
		}
		drawLine(img, x, 0, x, h-1, col)
	}
	for _, t := range grid.YTicks {
		y := int(math.Round(toPy(t)))
		col := gridColor
		if t == 0 {
			col = axisColor
		}
		drawLine(img, 0, y, w-1, y, col)
	}

	// Labels after lines so they stay readable. x labels sit under the x
	// axis, y labels left of the y axis; both clamp to the window edge
	// when the axis is off screen.
	baseY := clamp(int(math.Round(toPy(0)))+4, 2, h-14)
	for _, t := range grid.XTicks {
		if t == 0 {
			continue
		}
		label := formatTick(t)
		x := clamp(int(math.Round(toPx(t)))-labelWidth(label, 2)/2, 2, w-labelWidth(label, 2)-2)
		drawLabel(img, label, x, baseY, labelColor, 2)
	}
	baseX := clamp(int(math.Round(toPx(0)))-4, 2, w-6)
	for _, t := range grid.YTicks {
		if t == 0 {
			continue
		}
		label := formatTick(t)
		x := clamp(baseX-labelWidth(label, 2), 2, w-labelWidth(label, 2)-2)
		drawLabel(img, label, x, clamp(int(math.Round(toPy(t)))-5, 2, h-12), labelColor, 2)
	}
}

// fillRegion fills the feasible polygon in pixel space.
func (pc *PlotCanvas) fillRegion(img *image.RGBA, region []geometry.Point2D, toPx, toPy func(float64) float64) {
	if len(region) < 3 {
		return
	}
	poly := make([]geometry.Point2D, len(region))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range region {
		poly[i] = geometry.Point2D{X: toPx(p.X), Y: toPy(p.Y)}
		minX = math.Min(minX, poly[i].X)
		maxX = math.Max(maxX, poly[i].X)
		minY = math.Min(minY, poly[i].Y)
		maxY = math.Max(maxY, poly[i].Y)
	}

	b := img.Bounds()
	x0 := clamp(int(minX), b.Min.X, b.Max.X-1)
	x1 := clamp(int(maxX)+1, b.Min.X, b.Max.X-1)
	y0 := clamp(int(minY), b.Min.Y, b.Max.Y-1)
	y1 := clamp(int(maxY)+1, b.Min.Y, b.Max.Y-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if geometry.PointInPolygon(geometry.Point2D{X: float64(x), Y: float64(y)}, poly) {
				img.SetRGBA(x, y, regionColor)
			}
		}
	}
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
