// Package canvas provides the plot widget for the grapher.
package canvas

import (
	"image"
	"image/color"
	"math"
)

// glyphPatterns contains 3x5 pixel patterns for the characters used in
// tick and vertex labels. Each glyph is 5 rows of 3 bits.
var glyphPatterns = map[rune][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	',': {0b000, 0b000, 0b000, 0b010, 0b100},
	'(': {0b001, 0b010, 0b010, 0b010, 0b001},
	')': {0b100, 0b010, 0b010, 0b010, 0b100},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
	'z': {0b000, 0b111, 0b010, 0b100, 0b111},
	'=': {0b000, 0b111, 0b000, 0b111, 0b000},
}

// drawLabel draws text at (x, y) using the 3x5 bitmap font at the given
// pixel scale. (x, y) is the top-left corner of the first glyph.
func drawLabel(img *image.RGBA, text string, x, y int, col color.RGBA, scale int) {
	if scale < 1 {
		scale = 1
	}
	cursor := x
	for _, r := range text {
		pattern, ok := glyphPatterns[r]
		if !ok {
			cursor += 4 * scale
			continue
		}
		for row := 0; row < 5; row++ {
			bits := pattern[row]
			for cx := 0; cx < 3; cx++ {
				if bits&(1<<(2-cx)) == 0 {
					continue
				}
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						setPixel(img, cursor+cx*scale+dx, y+row*scale+dy, col)
					}
				}
			}
		}
		cursor += 4 * scale
	}
}

// labelWidth returns the pixel width of text rendered by drawLabel.
func labelWidth(text string, scale int) int {
	n := 0
	for range text {
		n++
	}
	return n * 4 * scale
}

// drawSegment draws the line from (x1, y1) to (x2, y2), clipping it to the
// image first. Endpoints may lie far outside the image; clipping keeps the
// raster walk bounded.
func drawSegment(img *image.RGBA, x1, y1, x2, y2 float64, col color.RGBA) {
	b := img.Bounds()
	cx1, cy1, cx2, cy2, ok := clipToRect(x1, y1, x2, y2,
		float64(b.Min.X), float64(b.Min.Y), float64(b.Max.X-1), float64(b.Max.Y-1))
	if !ok {
		return
	}
	drawLine(img, int(math.Round(cx1)), int(math.Round(cy1)),
		int(math.Round(cx2)), int(math.Round(cy2)), col)
}

// clipToRect clips a segment to an axis-aligned rectangle (Liang-Barsky).
func clipToRect(x1, y1, x2, y2, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx := x2 - x1
	dy := y2 - y1
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x1 - minX},
		{dx, maxX - x1},
		{-dy, y1 - minY},
		{dy, maxY - y1},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

// drawLine rasterizes a line with Bresenham's algorithm.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy

	for {
		setPixel(img, x1, y1, col)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

// fillCircle fills a disc of the given radius centered at (cx, cy).
func fillCircle(img *image.RGBA, cx, cy, radius int, col color.RGBA) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				setPixel(img, cx+x, cy+y, col)
			}
		}
	}
}

func setPixel(img *image.RGBA, x, y int, col color.RGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	img.SetRGBA(x, y, col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
