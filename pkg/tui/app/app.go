// Package teaui hosts the Bubble Tea program for the jos homepage.
package teaui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/jos/pkg/app"
	"tableflip.dev/jos/pkg/links"
	"tableflip.dev/jos/pkg/shell"
	"tableflip.dev/jos/pkg/store"
	"tableflip.dev/jos/pkg/tui/anim"
	"tableflip.dev/jos/pkg/tui/canvas"
	"tableflip.dev/jos/pkg/tui/clock"
	"tableflip.dev/jos/pkg/tui/directory"
	"tableflip.dev/jos/pkg/tui/theme"
	"tableflip.dev/jos/pkg/tui/ui/overlay"
)

const (
	defaultFPS    = 60
	maxPanelWidth = 100
	footerHelp    = "enter run · pgup/pgdn scroll · ctrl+y copy · ctrl+l clear · esc quit"
)

// Options configures the program.
type Options struct {
	Service *app.Service
	// Links is a file path or http(s) URL of the bookmark directory.
	Links  string
	Client *http.Client
	Anim   anim.Options
	FPS    int
	City   string
	Logger *slog.Logger
	// Seed seeds the particle field; zero uses the current time.
	Seed int64
}

type frameMsg time.Time

type directoryLoadedMsg struct {
	dir *links.Directory
	err error
}

type deferredOutputMsg struct {
	text string
}

type copiedMsg struct {
	text string
	err  error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// Model is the homepage: an animated background with the terminal panel
// composed over it.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	svc     *app.Service
	shell   *shell.Interpreter
	browser *links.Browser
	input   textinput.Model
	view    viewport.Model
	theme   theme.Theme
	logger  *slog.Logger

	field   *anim.Field
	canvas  *canvas.Canvas
	palette anim.Palette
	frame   time.Duration

	linksSource string
	client      *http.Client

	now      time.Time
	output   string
	status   string
	lastCopy string
	copy     func(string) error

	termWidth  int
	termHeight int

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New builds the model. A nil Service still renders; commands that touch
// records then report storage errors.
func New(opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type 'help' for commands"
	ti.CharLimit = 512
	ti.Focus()
	ti.Prompt = ""
	ti.VirtualCursor = true
	ti.Styles.Cursor.Color = lipgloss.Color("#00d4ff")
	ti.Styles.Cursor.Shape = tea.CursorBlock
	ti.Styles.Cursor.Blink = true

	vp := viewport.New(viewport.WithWidth(1), viewport.WithHeight(1))
	vp.MouseWheelEnabled = true
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	svc := opts.Service
	if svc == nil {
		svc = &app.Service{Logger: logger}
	}

	th := theme.Default()
	browser := links.NewBrowser(nil)
	interp := shell.New(svc, browser)
	interp.Theme = th
	interp.Logger = logger
	if opts.City != "" {
		interp.DefaultCity = opts.City
	}
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Model{
		ctx:     ctx,
		cancel:  cancel,
		svc:     svc,
		shell:   interp,
		browser: browser,
		input:   ti,
		view:    vp,
		theme:   th,
		logger:  logger,
		field:   anim.New(rand.New(rand.NewSource(seed)), 0, 0, opts.Anim),
		canvas:  canvas.New(0, 0, th.Palette.Background),
		palette: anim.Palette{
			Particle: canvas.ParseColor(th.Palette.Accent),
			Line:     canvas.ParseColor(th.Palette.Line),
			Link:     canvas.ParseColor(th.Palette.Accent),
		},
		frame:       time.Second / time.Duration(fps),
		linksSource: opts.Links,
		client:      client,
		copy:        copyToClipboard,
	}
}

// Init starts the clock, the animation, the directory load and the store
// watch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		clock.Now(),
		m.nextFrame(),
		m.loadDirectory(),
		startWatchCmd(m.ctx, m.svc),
	)
}

func (m *Model) nextFrame() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) loadDirectory() tea.Cmd {
	if m.linksSource == "" {
		return nil
	}
	ctx, source, client := m.ctx, m.linksSource, m.client
	return func() tea.Msg {
		dir, err := links.Load(ctx, source, client)
		return directoryLoadedMsg{dir: dir, err: err}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil || svc.Store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil || ch == nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) handleWatchEvent(ev store.Event) {
	if err := m.svc.Reload(); err != nil {
		m.logger.Error("reload records", slog.String("key", ev.Key), slog.String("error", err.Error()))
		m.setStatus("ERR: reload " + err.Error())
		return
	}
	m.logger.Debug("records reloaded", slog.String("key", ev.Key))
}

// Update handles one message on the event loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case frameMsg:
		m.field.Step()
		m.field.Paint(m.canvas, m.palette)
		cmds = append(cmds, m.nextFrame())
	case clock.TickMsg:
		m.now = time.Time(msg)
		cmds = append(cmds, clock.Tick())
	case directoryLoadedMsg:
		if msg.err != nil {
			m.logger.Error("load link directory",
				slog.String("source", m.linksSource),
				slog.String("error", msg.err.Error()))
			break
		}
		m.browser.SetDirectory(msg.dir)
		m.layoutOutput()
		m.logger.Info("link directory loaded", slog.Int("categories", msg.dir.Len()))
	case deferredOutputMsg:
		m.setOutput(msg.text)
	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("copy to clipboard", slog.String("error", msg.err.Error()))
			m.setStatus("ERR: copy " + msg.err.Error())
			break
		}
		m.setStatus("Copied " + msg.text)
	case watchStartedMsg:
		if msg.err != nil {
			m.logger.Warn("watch store", slog.String("error", msg.err.Error()))
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
	case tea.MouseWheelMsg:
		m.view, _ = m.view.Update(msg)
		return m, nil
	case tea.KeyPressMsg:
		if m.handleKeyPress(msg, &cmds) {
			return m, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleKeyPress reports whether the key was consumed.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.stopWatch()
		m.cancel()
		*cmds = append(*cmds, tea.Quit)
		return true
	case "enter":
		m.submit(cmds)
		return true
	case "ctrl+l":
		m.setOutput("")
		return true
	case "pgup", "pgdown":
		m.view, _ = m.view.Update(msg)
		return true
	case "ctrl+y":
		if m.lastCopy == "" {
			m.setStatus("Nothing to copy")
			return true
		}
		text, copyFn := m.lastCopy, m.copy
		*cmds = append(*cmds, func() tea.Msg {
			return copiedMsg{text: text, err: copyFn(text)}
		})
		return true
	}
	return false
}

func (m *Model) submit(cmds *[]tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	res := m.shell.Exec(m.ctx, line)
	if res.Noop {
		return
	}
	m.status = ""
	if res.Clear {
		m.setOutput("")
	} else {
		m.setOutput(res.Output)
	}
	if res.Copy != "" {
		m.lastCopy = res.Copy
	}
	if d := res.Deferred; d != nil {
		*cmds = append(*cmds, tea.Tick(d.Delay, func(time.Time) tea.Msg {
			return deferredOutputMsg{text: d.Run()}
		}))
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.layoutOutput()
}

// setOutput replaces the output pane and scrolls it back to the top.
func (m *Model) setOutput(s string) {
	m.output = s
	m.view.SetContent(s)
	m.layoutOutput()
	m.view.GotoTop()
}

// applySizes resizes the background and the input to the terminal.
func (m *Model) applySizes() {
	if m.termWidth <= 0 || m.termHeight <= 0 {
		return
	}
	m.canvas.Resize(m.termWidth, m.termHeight)
	m.field.ResizeCells(m.termWidth, m.termHeight)
	m.field.Paint(m.canvas, m.palette)
	m.input.SetWidth(m.innerWidth() - 3)
	m.layoutOutput()
}

// layoutOutput sizes the output viewport to the rows the panel has left
// once the header, directory, prompt and footer are placed.
func (m *Model) layoutOutput() {
	m.view.SetWidth(m.innerWidth())
	total := strings.Count(m.output, "\n") + 1
	if m.termHeight <= 0 {
		m.view.SetHeight(total)
		return
	}
	budget := m.termHeight - lipgloss.Height(m.headerView()) - lipgloss.Height(m.footerView()) - 4
	if total > budget {
		// one row for the scroll position
		budget--
	}
	m.view.SetHeight(max(1, min(total, budget)))
	m.view.SetYOffset(m.view.YOffset)
}

func (m *Model) panelWidth() int {
	w := m.termWidth - 4
	if w > maxPanelWidth {
		w = maxPanelWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// innerWidth is the panel width less border and padding.
func (m *Model) innerWidth() int {
	return m.panelWidth() - 6
}

// View renders the panel over the animated background.
func (m *Model) View() string {
	if m.termWidth <= 0 || m.termHeight <= 0 {
		return m.panelView()
	}
	return overlay.Compose(m.canvas, m.termWidth, m.termHeight, m.panelView(), overlay.Placement{
		Horizontal: lipgloss.Center,
		Vertical:   lipgloss.Center,
	})
}

func (m *Model) panelView() string {
	th := m.theme.Panel
	sections := []string{m.headerView()}
	if out := m.outputView(); out != "" {
		sections = append(sections, out, "")
	}
	sections = append(sections, th.Prompt.Render("$ ")+m.input.View(), m.footerView())
	return th.Frame.Render(strings.Join(sections, "\n"))
}

// headerView is the title row, the clock and the directory.
func (m *Model) headerView() string {
	th := m.theme.Panel
	inner := m.innerWidth()
	rule := th.Rule.Render(strings.Repeat("─", inner))

	title := th.Title.Render("j.os")
	clk := ""
	if !m.now.IsZero() {
		clk = th.Clock.Render(clock.Format(m.now))
	}
	gap := inner - lipgloss.Width(title) - lipgloss.Width(clk)
	if gap < 1 {
		gap = 1
	}
	top := []string{title + strings.Repeat(" ", gap) + clk, rule}
	if dir := directory.View(m.browser, m.theme.Directory, inner); dir != "" {
		top = append(top, dir, rule)
	}
	return strings.Join(top, "\n")
}

func (m *Model) footerView() string {
	footer := m.theme.Footer.Help.Render(footerHelp)
	if m.status != "" {
		footer = lipgloss.JoinVertical(lipgloss.Left, m.theme.Footer.Status.Render(m.status), footer)
	}
	return footer
}

// outputView shows the visible part of the output and, when it overflows,
// where the view sits in it.
func (m *Model) outputView() string {
	if m.output == "" {
		return ""
	}
	body := m.view.View()
	if m.view.TotalLineCount() <= m.view.Height() {
		return body
	}
	pos := m.theme.Output.Muted.Render(fmt.Sprintf("── %d%% · pgup/pgdn ──", int(m.view.ScrollPercent()*100)))
	return body + "\n" + pos
}

func copyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err == nil {
		return nil
	}
	_, err := osc52.New(text).WriteTo(os.Stderr)
	return err
}

// Run launches the interactive TUI program.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
