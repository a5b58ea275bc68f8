package theme

import "github.com/charmbracelet/lipgloss/v2"

// Palette holds the raw colours the background canvas blends with.
type Palette struct {
	Background string
	Accent     string
	Warn       string
	Line       string
}

// Theme centralizes Lip Gloss styles for the homepage.
type Theme struct {
	Palette   Palette
	Output    OutputTheme
	Panel     PanelTheme
	Directory DirectoryTheme
	Footer    FooterTheme
}

// OutputTheme styles command output.
type OutputTheme struct {
	Accent lipgloss.Style
	Warn   lipgloss.Style
	Text   lipgloss.Style
	Muted  lipgloss.Style
	Bold   lipgloss.Style
}

// PanelTheme styles the terminal window drawn over the background.
type PanelTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Clock  lipgloss.Style
	Prompt lipgloss.Style
	Rule   lipgloss.Style
}

// DirectoryTheme styles the bookmark views.
type DirectoryTheme struct {
	Column      lipgloss.Style
	ColumnTitle lipgloss.Style
	Item        lipgloss.Style
	URL         lipgloss.Style
}

// FooterTheme groups styles used by the bottom key hint line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	p := Palette{
		Background: "#0a0a0a",
		Accent:     "#00d4ff",
		Warn:       "#ff8c42",
		Line:       "#333333",
	}
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent))
	text := lipgloss.NewStyle().Foreground(lipgloss.Color("#b0b0b0"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))

	return Theme{
		Palette: p,
		Output: OutputTheme{
			Accent: accent,
			Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warn)),
			Text:   text,
			Muted:  muted,
			Bold:   text.Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#2a2a2a")).
				Padding(0, 2),
			Title:  muted.Bold(true),
			Clock:  accent,
			Prompt: accent.Bold(true),
			Rule:   lipgloss.NewStyle().Foreground(lipgloss.Color("#2a2a2a")),
		},
		Directory: DirectoryTheme{
			Column:      lipgloss.NewStyle().PaddingRight(4),
			ColumnTitle: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warn)).Bold(true),
			Item:        text,
			URL:         muted,
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
	}
}
