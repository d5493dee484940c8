// Package signature captures a freehand signature as strokes on a fixed
// logical surface and rasterizes them to an encoded image.
package signature

import (
	"image"
	"image/color"
	"image/draw"

	"inkform/internal/imaging"
)

// The drawing surface is a fixed 500x250 logical grid regardless of how
// large the on-screen pad is.
const (
	SurfaceWidth  = 500
	SurfaceHeight = 250

	penRadius = 2
)

// Point is a position in surface coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pad accumulates drawn strokes. It is not safe for concurrent use; all
// mutations arrive from the single event loop.
type Pad struct {
	strokes [][]Point
	active  bool
}

func NewPad() *Pad { return &Pad{} }

// Begin starts a new stroke at pt.
func (p *Pad) Begin(pt Point) {
	p.strokes = append(p.strokes, []Point{clamp(pt)})
	p.active = true
}

// Extend continues the current stroke. Without an active stroke it starts
// one, so a missed press event does not lose ink.
func (p *Pad) Extend(pt Point) {
	if !p.active {
		p.Begin(pt)
		return
	}
	n := len(p.strokes) - 1
	p.strokes[n] = append(p.strokes[n], clamp(pt))
}

// End finishes the current stroke.
func (p *Pad) End() { p.active = false }

// Clear resets the surface to empty.
func (p *Pad) Clear() {
	p.strokes = nil
	p.active = false
}

// Empty reports whether nothing has been drawn.
func (p *Pad) Empty() bool { return len(p.strokes) == 0 }

// Strokes returns the recorded strokes.
func (p *Pad) Strokes() [][]Point { return p.strokes }

// Encode rasterizes the strokes in black on a white surface and returns a
// base64 PNG data URI. An empty pad still encodes to a blank canvas image;
// callers that want to refuse blank signatures check Empty first.
func (p *Pad) Encode() (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, SurfaceWidth, SurfaceHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	ink := color.RGBA{A: 0xff}
	for _, st := range p.strokes {
		for i := 0; i < len(st); i++ {
			if i == 0 {
				dot(img, st[i], ink)
				continue
			}
			line(img, st[i-1], st[i], ink)
		}
	}
	return imaging.EncodePNG(img)
}

func clamp(pt Point) Point {
	if pt.X < 0 {
		pt.X = 0
	}
	if pt.X >= SurfaceWidth {
		pt.X = SurfaceWidth - 1
	}
	if pt.Y < 0 {
		pt.Y = 0
	}
	if pt.Y >= SurfaceHeight {
		pt.Y = SurfaceHeight - 1
	}
	return pt
}

// line plots a thick Bresenham line between two surface points.
func line(img *image.RGBA, a, b Point, col color.Color) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		dot(img, Point{X: x, Y: y}, col)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// dot stamps a filled disc so strokes read as pen ink, not single pixels.
func dot(img *image.RGBA, pt Point, col color.Color) {
	for oy := -penRadius; oy <= penRadius; oy++ {
		for ox := -penRadius; ox <= penRadius; ox++ {
			if ox*ox+oy*oy > penRadius*penRadius {
				continue
			}
			img.Set(pt.X+ox, pt.Y+oy, col)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
