// Package canvas is a character-cell raster with per-cell colour and
// opacity, rendered to ANSI text one row span at a time.
package canvas

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// alphaSteps quantizes opacity so neighbouring cells share styles.
const alphaSteps = 32

// Cell is one character position. A zero Alpha cell is blank.
type Cell struct {
	Rune  rune
	Color colorful.Color
	Alpha float64
}

// Canvas is a cols×rows grid of cells.
type Canvas struct {
	cols, rows int
	cells      []Cell
	background colorful.Color
	styles     map[string]lipgloss.Style
}

// New returns a blank canvas. background is the hex colour marks are
// blended against.
func New(cols, rows int, background string) *Canvas {
	c := &Canvas{
		background: ParseColor(background),
		styles:     make(map[string]lipgloss.Style),
	}
	c.Resize(cols, rows)
	return c
}

// ParseColor parses a hex colour, falling back to black.
func ParseColor(hex string) colorful.Color {
	col, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return col
}

// Resize changes the grid size and clears it.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.cols, c.rows = cols, rows
	c.cells = make([]Cell, cols*rows)
}

// Size returns the grid size in cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{}
	}
}

// At returns the cell at x, y. Out of range positions are blank.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return Cell{}
	}
	return c.cells[y*c.cols+x]
}

// Set marks a cell. A cell keeps the most opaque mark drawn on it.
func (c *Canvas) Set(x, y int, r rune, col colorful.Color, alpha float64) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	alpha = math.Max(0, math.Min(1, alpha))
	if alpha == 0 {
		return
	}
	cell := &c.cells[y*c.cols+x]
	if alpha < cell.Alpha {
		return
	}
	*cell = Cell{Rune: r, Color: col, Alpha: alpha}
}

// Line draws a straight segment between two cells.
func (c *Canvas) Line(x0, y0, x1, y1 int, r rune, col colorful.Color, alpha float64) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Set(x0, y0, r, col, alpha)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// RenderRow renders cells [from, to) of row as styled text exactly to-from
// columns wide. Blank cells render as unstyled spaces.
func (c *Canvas) RenderRow(row, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > c.cols {
		to = c.cols
	}
	if row < 0 || row >= c.rows || from >= to {
		return ""
	}

	var b strings.Builder
	var run strings.Builder
	runHex := ""
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runHex == "" {
			b.WriteString(run.String())
		} else {
			b.WriteString(c.style(runHex).Render(run.String()))
		}
		run.Reset()
	}

	for x := from; x < to; x++ {
		cell := c.cells[row*c.cols+x]
		hex := ""
		r := ' '
		if cell.Alpha > 0 && cell.Rune != 0 {
			r = cell.Rune
			hex = c.blend(cell)
		}
		if hex != runHex {
			flush()
			runHex = hex
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}

// String renders the whole canvas.
func (c *Canvas) String() string {
	rows := make([]string, c.rows)
	for y := range rows {
		rows[y] = c.RenderRow(y, 0, c.cols)
	}
	return strings.Join(rows, "\n")
}

func (c *Canvas) blend(cell Cell) string {
	a := math.Round(cell.Alpha*alphaSteps) / alphaSteps
	return c.background.BlendRgb(cell.Color, a).Clamped().Hex()
}

func (c *Canvas) style(hex string) lipgloss.Style {
	if s, ok := c.styles[hex]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	c.styles[hex] = s
	return s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
