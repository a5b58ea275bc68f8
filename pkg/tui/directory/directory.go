// Package directory renders the bookmark directory inside the panel.
package directory

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/jos/pkg/links"
	"tableflip.dev/jos/pkg/tui/theme"
)

const (
	columnWidth = 22
	nameWidth   = 24
)

// Summary lays out every category with its first few entries as a grid of
// columns no wider than width. An empty directory renders nothing.
func Summary(dir *links.Directory, th theme.DirectoryTheme, width int) string {
	cats := dir.Categories()
	if len(cats) == 0 {
		return ""
	}
	perRow := width / columnWidth
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for start := 0; start < len(cats); start += perRow {
		end := start + perRow
		if end > len(cats) {
			end = len(cats)
		}
		cols := make([]string, 0, end-start)
		for _, c := range cats[start:end] {
			cols = append(cols, column(c, th))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func column(c links.Category, th theme.DirectoryTheme) string {
	inner := columnWidth - 5
	lines := []string{th.ColumnTitle.Render(truncate.StringWithTail(c.Name, uint(inner), "…"))}
	for _, it := range c.Summary() {
		lines = append(lines, th.Item.Render(truncate.StringWithTail(it.Name, uint(inner), "…")))
	}
	return th.Column.Width(columnWidth).Render(strings.Join(lines, "\n"))
}

// Expanded lists every entry of one category with its address.
func Expanded(c links.Category, th theme.DirectoryTheme, width int) string {
	lines := []string{th.ColumnTitle.Render(c.Name)}
	urlWidth := width - nameWidth - 2
	for _, it := range c.Items {
		name := truncate.StringWithTail(it.Name, nameWidth-1, "…")
		line := th.Item.Render(name + strings.Repeat(" ", nameWidth-lipgloss.Width(name)))
		if urlWidth > 0 {
			line += "  " + th.URL.Render(truncate.StringWithTail(it.URL, uint(urlWidth), "…"))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// View renders whichever view the browser is showing.
func View(b *links.Browser, th theme.DirectoryTheme, width int) string {
	if c, ok := b.Expanded(); ok {
		return Expanded(c, th, width)
	}
	return Summary(b.Directory(), th, width)
}
