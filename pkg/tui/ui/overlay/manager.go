// Package overlay places a panel over a full-screen background.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
)

// Placement controls overlay alignment and sizing.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
	Width      int
	Height     int
}

// Background is a full-screen layer that renders any horizontal span of a
// row on demand, so the overlay never has to cut styled text apart.
type Background interface {
	RenderRow(row, from, to int) string
}

// Text is a Background made of plain, unstyled lines.
type Text []string

// RenderRow returns columns [from, to) of line row.
func (t Text) RenderRow(row, from, to int) string {
	if row < 0 || row >= len(t) {
		return ""
	}
	return sliceWidth(t[row], from, to)
}

// Compose draws the foreground view atop the background, keeping the
// background visible outside the overlay bounds.
func Compose(background Background, width, height int, foreground string, placement Placement) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	span := func(row, from, to int) string {
		if from >= to {
			return ""
		}
		return padToWidth(background.RenderRow(row, from, to), to-from)
	}

	fgLines := strings.Split(foreground, "\n")
	overlayWidth := placement.Width
	if overlayWidth <= 0 {
		for _, line := range fgLines {
			if w := lipgloss.Width(line); w > overlayWidth {
				overlayWidth = w
			}
		}
	}
	if overlayWidth > width {
		overlayWidth = width
	}
	overlayHeight := placement.Height
	if overlayHeight <= 0 {
		overlayHeight = len(fgLines)
	}
	if overlayHeight > height {
		overlayHeight = height
	}
	if foreground == "" {
		overlayWidth, overlayHeight = 0, 0
	}

	offsetX, offsetY := computeOffsets(width, height, overlayWidth, overlayHeight, placement)

	rows := make([]string, height)
	for y := range rows {
		row := y - offsetY
		if overlayWidth == 0 || row < 0 || row >= overlayHeight {
			rows[y] = span(y, 0, width)
			continue
		}
		fgLine := ""
		if row < len(fgLines) {
			fgLine = fgLines[row]
		}
		rows[y] = span(y, 0, offsetX) +
			padToWidth(fgLine, overlayWidth) +
			span(y, offsetX+overlayWidth, width)
	}
	return strings.Join(rows, "\n")
}

func padToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	currWidth := lipgloss.Width(s)
	if currWidth > width {
		s = truncate.String(s, uint(width))
		currWidth = lipgloss.Width(s)
	}
	if currWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-currWidth)
}

func sliceWidth(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	if end > lipgloss.Width(s) {
		end = lipgloss.Width(s)
	}
	if start >= end {
		return ""
	}

	runes := []rune(s)
	result := strings.Builder{}
	widthSeen := 0
	for _, r := range runes {
		rw := lipgloss.Width(string(r))
		next := widthSeen + rw
		if next <= start {
			widthSeen = next
			continue
		}
		if widthSeen >= end {
			break
		}
		if next > end {
			break
		}
		result.WriteRune(r)
		widthSeen = next
	}
	return result.String()
}

func computeOffsets(width, height, overlayWidth, overlayHeight int, placement Placement) (int, int) {
	h := placement.Horizontal
	v := placement.Vertical

	offsetX := placement.MarginX
	switch h {
	case lipgloss.Right:
		offsetX = width - overlayWidth - placement.MarginX
	case lipgloss.Center:
		offsetX = (width - overlayWidth) / 2
	}
	if offsetX < 0 {
		offsetX = 0
	}
	if offsetX > width-overlayWidth {
		offsetX = width - overlayWidth
	}

	offsetY := placement.MarginY
	switch v {
	case lipgloss.Bottom:
		offsetY = height - overlayHeight - placement.MarginY
	case lipgloss.Center:
		offsetY = (height - overlayHeight) / 2
	}
	if offsetY < 0 {
		offsetY = 0
	}
	if offsetY > height-overlayHeight {
		offsetY = height - overlayHeight
	}

	return offsetX, offsetY
}
