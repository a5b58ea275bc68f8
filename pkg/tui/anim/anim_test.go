package anim

import (
	"math"
	"math/rand"
	"testing"

	"tableflip.dev/jos/pkg/tui/canvas"
)

func TestNewRanges(t *testing.T) {
	f := New(rand.New(rand.NewSource(1)), 800, 600, DefaultOptions())
	if len(f.Particles) != 50 || len(f.Lines) != 8 {
		t.Fatalf("expected 50 particles and 8 lines, got %d/%d", len(f.Particles), len(f.Lines))
	}
	for i, p := range f.Particles {
		if p.X < 0 || p.X > 800 || p.Y < 0 || p.Y > 600 {
			t.Fatalf("particle %d out of bounds: %+v", i, p)
		}
		if p.VX < -0.25 || p.VX >= 0.25 || p.VY < -0.25 || p.VY >= 0.25 {
			t.Fatalf("particle %d velocity out of range: %+v", i, p)
		}
		if p.Size < 1 || p.Size >= 3 || p.Opacity < 0.1 || p.Opacity >= 0.6 {
			t.Fatalf("particle %d size/opacity out of range: %+v", i, p)
		}
	}
	for i, l := range f.Lines {
		if l.Opacity < 0.02 || l.Opacity >= 0.12 {
			t.Fatalf("line %d opacity out of range: %+v", i, l)
		}
		if l.Speed < 0.1 || l.Speed >= 0.3 || l.Angle < 0 || l.Angle >= 2*math.Pi {
			t.Fatalf("line %d out of range: %+v", i, l)
		}
	}
}

func TestParticlesStayInBounds(t *testing.T) {
	f := New(rand.New(rand.NewSource(7)), 40, 30, Options{Particles: 20})
	for frame := 0; frame < 5000; frame++ {
		f.Step()
		for i, p := range f.Particles {
			if p.X < 0 || p.X > f.W || p.Y < 0 || p.Y > f.H {
				t.Fatalf("frame %d: particle %d escaped: %+v", frame, i, p)
			}
		}
	}
}

func TestBounceFlipsVelocity(t *testing.T) {
	p := Particle{X: 9.9, Y: 5, VX: 0.2, VY: 0}
	p.Update(10, 10)
	if p.VX != -0.2 || p.X != 10 {
		t.Fatalf("expected bounce at right edge, got %+v", p)
	}
	p = Particle{X: 0.1, Y: 0.1, VX: -0.2, VY: -0.2}
	p.Update(10, 10)
	if p.VX != 0.2 || p.VY != 0.2 || p.X != 0 || p.Y != 0 {
		t.Fatalf("expected bounce at top-left corner, got %+v", p)
	}
}

func TestLinePulse(t *testing.T) {
	l := Line{Speed: 0.2, Angle: 1}
	l.Update()
	want := math.Sin(1.002)*0.05 + 0.05
	if math.Abs(l.Opacity-want) > 1e-12 {
		t.Fatalf("expected opacity %v, got %v", want, l.Opacity)
	}
	for i := 0; i < 10000; i++ {
		l.Update()
		if l.Opacity < 0 || l.Opacity > 0.1 {
			t.Fatalf("opacity out of range: %v", l.Opacity)
		}
	}
}

func TestResizeClampsParticles(t *testing.T) {
	f := &Field{W: 100, H: 100, Particles: []Particle{{X: 90, Y: 95}, {X: 10, Y: 10}}}
	f.Resize(50, 40)
	if f.Particles[0].X != 50 || f.Particles[0].Y != 40 {
		t.Fatalf("expected clamp to new bounds, got %+v", f.Particles[0])
	}
	if f.Particles[1].X != 10 || f.Particles[1].Y != 10 {
		t.Fatalf("expected inner particle untouched, got %+v", f.Particles[1])
	}
}

func TestLinks(t *testing.T) {
	f := &Field{W: 1000, H: 1000, Particles: []Particle{
		{X: 0, Y: 0},
		{X: 100, Y: 0},
		{X: 300, Y: 0},
		{X: 0, Y: 120},
	}}
	links := f.Links()
	if len(links) != 1 || links[0].A != 0 || links[0].B != 1 || links[0].Distance != 100 {
		t.Fatalf("unexpected links %+v", links)
	}
}

func TestPaint(t *testing.T) {
	c := canvas.New(10, 5, "#0a0a0a")
	f := &Field{
		W:         80,
		H:         80,
		Particles: []Particle{{X: 80, Y: 80, Size: 2.5, Opacity: 0.3}, {X: 0, Y: 0, Size: 1, Opacity: 0.3}},
	}
	pal := Palette{
		Particle: canvas.ParseColor("#00d4ff"),
		Line:     canvas.ParseColor("#333333"),
		Link:     canvas.ParseColor("#00d4ff"),
	}
	f.Paint(c, pal)
	if got := c.At(9, 4); got.Rune != '•' {
		t.Fatalf("expected large particle clamped to last cell, got %+v", got)
	}
	if got := c.At(0, 0); got.Rune != '·' {
		t.Fatalf("expected small particle at origin, got %+v", got)
	}
}

func TestStepPulsesLines(t *testing.T) {
	f := &Field{
		W:         100,
		H:         100,
		Lines:     []Line{{Speed: 0.2, Angle: 1}},
		Particles: []Particle{{X: 50, Y: 50, VX: 0.1}},
	}
	f.Step()
	want := math.Sin(1.002)*0.05 + 0.05
	if math.Abs(f.Lines[0].Opacity-want) > 1e-12 {
		t.Fatalf("expected opacity %v, got %v", want, f.Lines[0].Opacity)
	}
	if math.Abs(f.Particles[0].X-50.1) > 1e-9 {
		t.Fatalf("expected particle moved, got %+v", f.Particles[0])
	}
}
