// Package shell parses and runs the single-line commands typed into the
// homepage prompt.
package shell

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/muesli/reflow/truncate"

	"tableflip.dev/jos/pkg/app"
	"tableflip.dev/jos/pkg/links"
	"tableflip.dev/jos/pkg/tui/theme"
	"tableflip.dev/jos/pkg/weather"
)

const (
	// ListLimit caps how many shorts or notes a listing shows.
	ListLimit = 10
	// WeatherDelay is how long the weather command shows its placeholder.
	WeatherDelay = 500 * time.Millisecond

	shortDateLayout = "2/1/2006"
	urlWidth        = 60
)

// Deferred is output produced after a delay. Once scheduled it always
// fires; a later command does not cancel it.
type Deferred struct {
	Delay time.Duration
	Run   func() string
}

// Result is what one command does to the output pane.
type Result struct {
	// Output replaces the output pane.
	Output string
	// Clear blanks the output pane.
	Clear bool
	// Noop leaves the output pane untouched.
	Noop bool
	// Deferred, when set, replaces the output again after its delay.
	Deferred *Deferred
	// Copy is text the UI can put on the clipboard.
	Copy string
	// Err is a storage fault encountered while running the command.
	Err error
}

// Interpreter dispatches parsed commands to the application state.
type Interpreter struct {
	Service *app.Service
	Browser *links.Browser
	Theme   theme.Theme
	// DefaultCity is used by weather with no argument.
	DefaultCity string
	Logger      *slog.Logger
}

// New returns an interpreter with the default theme.
func New(svc *app.Service, browser *links.Browser) *Interpreter {
	return &Interpreter{
		Service:     svc,
		Browser:     browser,
		Theme:       theme.Default(),
		DefaultCity: weather.DefaultCity,
	}
}

// Parse splits a line into a lower-cased command name and the remaining
// words joined by single spaces.
func Parse(line string) (name, args string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", ""
	}
	return strings.ToLower(fields[0]), strings.Join(fields[1:], " ")
}

// Exec runs one line of input.
func (i *Interpreter) Exec(_ context.Context, line string) Result {
	name, args := Parse(line)
	if name == "" {
		return Result{Noop: true}
	}
	i.logger().Debug("command", slog.String("name", name))

	switch name {
	case "back", "ls":
		i.Browser.ShowMain()
		return Result{Output: i.Theme.Output.Accent.Render("Showing all categories")}
	case "help":
		return Result{Output: i.help()}
	case "clear":
		return Result{Clear: true}
	case "short":
		return i.short(args)
	case "shorts":
		return i.shorts()
	case "note":
		return i.note(args)
	case "notes":
		return i.notes()
	case "weather":
		return i.weather(args)
	}

	if i.Browser.ShowCategory(name) {
		c, _ := i.Browser.Expanded()
		return Result{Output: i.Theme.Output.Accent.Render(
			fmt.Sprintf("Showing %s category (%d items)", c.Name, len(c.Items)))}
	}
	return Result{Output: lines(
		i.Theme.Output.Warn.Render("Command not found: "+name),
		i.Theme.Output.Text.Render("Type 'help' for available commands"),
	)}
}

func (i *Interpreter) help() string {
	o := i.Theme.Output
	categories := "<category>"
	if names := i.Browser.Directory().Names(); len(names) > 0 {
		categories = strings.Join(names, "/")
	}
	return lines(
		o.Warn.Render("Commands:"),
		o.Bold.Render("Navigation:"),
		o.Text.Render("• "+categories+" - Show category bookmarks"),
		o.Text.Render("• back / ls - Return to main view"),
		"",
		o.Bold.Render("Utilities:"),
		o.Text.Render("• short <url> - Create short URL (j.os/abc)"),
		o.Text.Render("• shorts - Show all shortened URLs"),
		o.Text.Render("• note <text> - Save a quick note"),
		o.Text.Render("• notes - Show all your notes"),
		o.Text.Render("• weather [city] - Get weather info"),
		"",
		o.Bold.Render("System:"),
		o.Text.Render("• clear - Clear output"),
		o.Text.Render("• help - Show this help"),
	)
}

func (i *Interpreter) short(args string) Result {
	o := i.Theme.Output
	if args == "" {
		return Result{Output: o.Warn.Render("Usage: short <url>")}
	}
	su, err := i.Service.Shorten(args)
	if err != nil {
		return i.fault("shorten", err)
	}
	return Result{
		Output: lines(
			o.Accent.Render("URL shortened successfully!"),
			o.Text.Render("Original: "+args),
			o.Warn.Render("Short: "+su.Link()),
			o.Muted.Render("Press ctrl+y to copy: ")+o.Accent.Render(su.Link()),
		),
		Copy: su.Link(),
	}
}

func (i *Interpreter) shorts() Result {
	o := i.Theme.Output
	all, err := i.Service.Shorts()
	if err != nil {
		return i.fault("list short links", err)
	}
	if len(all) == 0 {
		return Result{Output: o.Text.Render(`No shortened URLs found. Use "short <url>" to create one.`)}
	}
	out := []string{o.Accent.Render(fmt.Sprintf("Your Shortened URLs (%d):", len(all)))}
	for _, idx := range limit(len(all)) {
		s := all[idx]
		out = append(out,
			o.Warn.Render(s.Link())+" → "+o.Text.Render(truncate.StringWithTail(s.URL, urlWidth+3, "...")),
			o.Muted.Render(fmt.Sprintf("   Created: %s | Clicks: %d", s.Created.Local().Format(shortDateLayout), s.Clicks)),
		)
	}
	if more := len(all) - ListLimit; more > 0 {
		out = append(out, o.Muted.Render(fmt.Sprintf("... and %d more", more)))
	}
	return Result{Output: lines(out...)}
}

func (i *Interpreter) note(args string) Result {
	o := i.Theme.Output
	if args == "" {
		return Result{Output: o.Warn.Render("Usage: note <your note text>")}
	}
	n, err := i.Service.AddNote(args)
	if err != nil {
		return i.fault("save note", err)
	}
	return Result{Output: lines(
		o.Accent.Render("Note saved!"),
		o.Text.Render(`"`+n.Text+`"`),
		o.Muted.Render(n.Created),
	)}
}

func (i *Interpreter) notes() Result {
	o := i.Theme.Output
	all, err := i.Service.Notes()
	if err != nil {
		return i.fault("list notes", err)
	}
	if len(all) == 0 {
		return Result{Output: o.Text.Render(`No notes found. Use "note your text here" to create one.`)}
	}
	out := []string{o.Accent.Render(fmt.Sprintf("Your Notes (%d):", len(all)))}
	for _, idx := range limit(len(all)) {
		n := all[idx]
		out = append(out,
			o.Text.Render(fmt.Sprintf("%d. %s", idx+1, n.Text)),
			o.Muted.Render("   "+n.Created),
		)
	}
	if more := len(all) - ListLimit; more > 0 {
		out = append(out, o.Muted.Render(fmt.Sprintf("... and %d more", more)))
	}
	return Result{Output: lines(out...)}
}

func (i *Interpreter) weather(args string) Result {
	city := args
	if city == "" {
		city = i.DefaultCity
	}
	if city == "" {
		city = weather.DefaultCity
	}
	return Result{
		Output: i.Theme.Output.Text.Render("Loading weather data..."),
		Deferred: &Deferred{
			Delay: WeatherDelay,
			Run: func() string {
				return i.RenderWeather(weather.Lookup(city))
			},
		},
	}
}

// RenderWeather formats a weather report for the output pane.
func (i *Interpreter) RenderWeather(r weather.Report) string {
	o := i.Theme.Output
	return lines(
		o.Accent.Render("Weather for "+r.City+":"),
		o.Text.Render("Temperature: "+r.Temperature),
		o.Text.Render("Condition: "+r.Condition),
		o.Text.Render("Humidity: "+r.Humidity),
		o.Text.Render("Wind: "+r.Wind),
	)
}

func (i *Interpreter) fault(action string, err error) Result {
	i.logger().Error(action, slog.String("error", err.Error()))
	return Result{
		Output: i.Theme.Output.Warn.Render(fmt.Sprintf("Error: could not %s: %v", action, err)),
		Err:    err,
	}
}

func (i *Interpreter) logger() *slog.Logger {
	if i.Logger != nil {
		return i.Logger
	}
	return discard
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// limit returns the indexes of the first ListLimit of n items.
func limit(n int) []int {
	if n > ListLimit {
		n = ListLimit
	}
	idx := make([]int, n)
	for k := range idx {
		idx[k] = k
	}
	return idx
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n")
}
