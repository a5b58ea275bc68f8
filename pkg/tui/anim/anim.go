// Package anim simulates the drifting particle field drawn behind the
// homepage.
package anim

import (
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/jos/pkg/tui/canvas"
)

const (
	// CellWidth and CellHeight are the world units covered by one
	// terminal cell.
	CellWidth  = 8
	CellHeight = 16

	// LinkDistance is the world distance below which two particles are
	// joined.
	LinkDistance = 120

	// LinkOpacity is the opacity of a link between two particles.
	LinkOpacity = 0.1

	// Visibility scales every opacity when painting. Terminal cells are
	// far coarser than pixels, so faint marks would vanish otherwise.
	Visibility = 2.5
)

// Options sizes the field.
type Options struct {
	Particles int
	Lines     int
}

// DefaultOptions returns 50 particles and 8 lines.
func DefaultOptions() Options {
	return Options{Particles: 50, Lines: 8}
}

// Particle is a drifting dot.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Opacity float64
}

// Update advances the particle one frame, bouncing off the bounds.
func (p *Particle) Update(w, h float64) {
	p.X += p.VX
	p.Y += p.VY
	if p.X < 0 || p.X > w {
		p.VX = -p.VX
		p.X = clamp(p.X, w)
	}
	if p.Y < 0 || p.Y > h {
		p.VY = -p.VY
		p.Y = clamp(p.Y, h)
	}
}

// Line is a static segment whose opacity pulses.
type Line struct {
	X1, Y1, X2, Y2 float64
	Opacity        float64
	Speed          float64
	Angle          float64
}

// Update advances the pulse one frame.
func (l *Line) Update() {
	l.Angle += l.Speed * 0.01
	l.Opacity = math.Sin(l.Angle)*0.05 + 0.05
}

// Link joins two particles closer than LinkDistance.
type Link struct {
	A, B     int
	Distance float64
}

// Palette colours painted marks.
type Palette struct {
	Particle colorful.Color
	Line     colorful.Color
	Link     colorful.Color
}

// Field holds the particles and lines within a W×H world.
type Field struct {
	W, H      float64
	Particles []Particle
	Lines     []Line
}

// New seeds a field of the given world size.
func New(rnd *rand.Rand, w, h float64, opts Options) *Field {
	f := &Field{
		W:         math.Max(0, w),
		H:         math.Max(0, h),
		Particles: make([]Particle, opts.Particles),
		Lines:     make([]Line, opts.Lines),
	}
	for i := range f.Particles {
		f.Particles[i] = Particle{
			X:       rnd.Float64() * f.W,
			Y:       rnd.Float64() * f.H,
			VX:      (rnd.Float64() - 0.5) * 0.5,
			VY:      (rnd.Float64() - 0.5) * 0.5,
			Size:    rnd.Float64()*2 + 1,
			Opacity: rnd.Float64()*0.5 + 0.1,
		}
	}
	for i := range f.Lines {
		f.Lines[i] = Line{
			X1:      rnd.Float64() * f.W,
			Y1:      rnd.Float64() * f.H,
			X2:      rnd.Float64() * f.W,
			Y2:      rnd.Float64() * f.H,
			Opacity: rnd.Float64()*0.1 + 0.02,
			Speed:   rnd.Float64()*0.2 + 0.1,
			Angle:   rnd.Float64() * math.Pi * 2,
		}
	}
	return f
}

// NewForCells seeds a field covering cols×rows terminal cells.
func NewForCells(rnd *rand.Rand, cols, rows int, opts Options) *Field {
	return New(rnd, float64(cols*CellWidth), float64(rows*CellHeight), opts)
}

// Step advances every line and then every particle one frame.
func (f *Field) Step() {
	for i := range f.Lines {
		f.Lines[i].Update()
	}
	for i := range f.Particles {
		f.Particles[i].Update(f.W, f.H)
	}
}

// Resize changes the world bounds, pulling particles that fall outside
// back onto the edge. Lines keep their endpoints.
func (f *Field) Resize(w, h float64) {
	f.W, f.H = math.Max(0, w), math.Max(0, h)
	for i := range f.Particles {
		p := &f.Particles[i]
		p.X = clamp(p.X, f.W)
		p.Y = clamp(p.Y, f.H)
	}
}

// ResizeCells resizes the world to cover cols×rows terminal cells.
func (f *Field) ResizeCells(cols, rows int) {
	f.Resize(float64(cols*CellWidth), float64(rows*CellHeight))
}

// Links returns every particle pair closer than LinkDistance.
func (f *Field) Links() []Link {
	var links []Link
	for i := range f.Particles {
		for j := i + 1; j < len(f.Particles); j++ {
			a, b := f.Particles[i], f.Particles[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d < LinkDistance {
				links = append(links, Link{A: i, B: j, Distance: d})
			}
		}
	}
	return links
}

// Paint draws the field onto c: lines first, then particles, then links.
func (f *Field) Paint(c *canvas.Canvas, pal Palette) {
	c.Clear()
	for _, l := range f.Lines {
		x0, y0 := toCell(c, l.X1, l.Y1)
		x1, y1 := toCell(c, l.X2, l.Y2)
		c.Line(x0, y0, x1, y1, '·', pal.Line, l.Opacity*Visibility)
	}
	for _, p := range f.Particles {
		x, y := toCell(c, p.X, p.Y)
		glyph := '·'
		if p.Size >= 2 {
			glyph = '•'
		}
		c.Set(x, y, glyph, pal.Particle, p.Opacity*Visibility)
	}
	for _, k := range f.Links() {
		a, b := f.Particles[k.A], f.Particles[k.B]
		x0, y0 := toCell(c, a.X, a.Y)
		x1, y1 := toCell(c, b.X, b.Y)
		c.Line(x0, y0, x1, y1, '·', pal.Link, LinkOpacity*Visibility)
	}
}

func toCell(c *canvas.Canvas, x, y float64) (int, int) {
	cols, rows := c.Size()
	cx := int(x / CellWidth)
	cy := int(y / CellHeight)
	if cx >= cols {
		cx = cols - 1
	}
	if cy >= rows {
		cy = rows - 1
	}
	return cx, cy
}

func clamp(v, bound float64) float64 {
	return math.Max(0, math.Min(bound, v))
}
