// Package printers renders records for the non-interactive commands.
package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/jos/pkg/links"
	"tableflip.dev/jos/pkg/record"
	"tableflip.dev/jos/pkg/weather"
)

const urlWidth = 60

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Now defaults to time.Now; shorts are aged against it.
	Now func() time.Time
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now != nil {
		return pp.Now()
	}
	return time.Now()
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) more(n int) {
	if n <= 0 {
		return
	}
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), "... and %d more\n", n)
}

// Short confirms a newly created short link.
func (pp *PrettyPrint) Short(s record.ShortURL) {
	y := color.New(color.FgHiYellow)
	_, _ = fmt.Fprintf(pp.out(), "%s → %s\n", y.Sprint(s.Link()), s.URL)
}

// Shorts lists up to limit short links in creation order. limit <= 0
// lists every link.
func (pp *PrettyPrint) Shorts(shorts record.Shorts, limit int) {
	pp.TitleWithCount("Short links", len(shorts))
	if len(shorts) == 0 {
		pp.none()
		return
	}
	show := shorts
	if limit > 0 && len(show) > limit {
		show = show[:limit]
	}

	y := color.New(color.FgHiYellow)
	f := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	now := pp.now()
	for _, s := range show {
		tbl.AddRow(
			y.Sprint(s.Link()),
			truncate.StringWithTail(s.URL, urlWidth+3, "..."),
			f.Sprint(humanize.RelTime(s.Created, now, "ago", "from now")),
			f.Sprintf("%d clicks", s.Clicks),
		)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.more(len(shorts) - len(show))
}

// Note confirms a saved note.
func (pp *PrettyPrint) Note(n record.Note) {
	f := color.New(color.Faint)
	_, _ = fmt.Fprintf(pp.out(), "%q %s\n", n.Text, f.Sprint(n.Created))
}

// Notes lists up to limit notes, newest first.
func (pp *PrettyPrint) Notes(notes record.Notes, limit int) {
	pp.TitleWithCount("Notes", len(notes))
	if len(notes) == 0 {
		pp.none()
		return
	}
	show := notes
	if limit > 0 && len(show) > limit {
		show = show[:limit]
	}

	f := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = " "
	tbl.Wrap = true
	tbl.MaxColWidth = 72
	for i, n := range show {
		tbl.AddRow(fmt.Sprintf("%d.", i+1), n.Text, f.Sprint(n.Created))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.more(len(notes) - len(show))
}

// Weather prints one city's report.
func (pp *PrettyPrint) Weather(r weather.Report) {
	pp.Title("Weather for " + r.City)
	tbl := uitable.New()
	tbl.AddRow("Temperature:", r.Temperature)
	tbl.AddRow("Condition:", r.Condition)
	tbl.AddRow("Humidity:", r.Humidity)
	tbl.AddRow("Wind:", r.Wind)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Category prints every entry of one category.
func (pp *PrettyPrint) Category(c links.Category) {
	pp.TitleWithCount(c.Name, len(c.Items))
	if len(c.Items) == 0 {
		pp.none()
		return
	}
	f := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, it := range c.Items {
		tbl.AddRow(it.Name, f.Sprint(it.URL))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Directory prints the summary of every category.
func (pp *PrettyPrint) Directory(dir *links.Directory) {
	cats := dir.Categories()
	if len(cats) == 0 {
		pp.Title("Links")
		pp.none()
		return
	}
	for _, c := range cats {
		pp.TitleWithCount(c.Name, len(c.Items))
		names := make([]string, 0, links.SummaryItems)
		for _, it := range c.Summary() {
			names = append(names, it.Name)
		}
		_, _ = fmt.Fprintf(pp.out(), "  %s\n", strings.Join(names, ", "))
		if extra := len(c.Items) - len(names); extra > 0 {
			pp.more(extra)
		}
		pp.NewLine()
	}
}
