package directory

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/jos/pkg/links"
	"tableflip.dev/jos/pkg/tui/theme"
)

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sample() *links.Directory {
	return links.NewDirectory(
		links.Category{Name: "dev", Items: []links.Item{
			{Name: "GitHub", URL: "https://github.com"},
			{Name: "Go", URL: "https://go.dev"},
			{Name: "pkg.go.dev", URL: "https://pkg.go.dev"},
			{Name: "Hidden", URL: "https://example.com/hidden"},
		}},
		links.Category{Name: "news", Items: []links.Item{
			{Name: "HN", URL: "https://news.ycombinator.com"},
		}},
		links.Category{Name: "utils", Items: []links.Item{
			{Name: "Regex", URL: "https://regex101.com"},
		}},
	)
}

func TestSummaryShowsFirstItems(t *testing.T) {
	view := stripANSI(Summary(sample(), theme.Default().Directory, 80))
	for _, want := range []string{"dev", "news", "utils", "GitHub", "pkg.go.dev", "HN"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in summary; view=%q", want, view)
		}
	}
	if strings.Contains(view, "Hidden") {
		t.Fatalf("summary should stop at %d entries; view=%q", links.SummaryItems, view)
	}
}

func TestSummaryWrapsColumns(t *testing.T) {
	view := Summary(sample(), theme.Default().Directory, 50)
	if w := lipgloss.Width(view); w > 50 {
		t.Fatalf("expected summary within 50 columns, got %d", w)
	}
	if lipgloss.Height(view) <= links.SummaryItems+1 {
		t.Fatalf("expected categories to wrap onto another row")
	}
}

func TestSummaryEmpty(t *testing.T) {
	if got := Summary(nil, theme.Default().Directory, 80); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
}

func TestView(t *testing.T) {
	b := links.NewBrowser(sample())
	th := theme.Default().Directory
	if !b.ShowCategory("dev") {
		t.Fatalf("expected dev category")
	}
	view := stripANSI(View(b, th, 80))
	if !strings.Contains(view, "Hidden") || !strings.Contains(view, "https://example.com/hidden") {
		t.Fatalf("expected every entry in expanded view; view=%q", view)
	}
	if strings.Contains(view, "news") {
		t.Fatalf("expanded view should only show one category; view=%q", view)
	}
	b.ShowMain()
	if view := stripANSI(View(b, th, 80)); !strings.Contains(view, "news") {
		t.Fatalf("expected summary after ShowMain; view=%q", view)
	}
}
