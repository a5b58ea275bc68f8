package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

// isTerminal reports whether stdout can host the TUI.
var isTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use: "jos",
		Short: base.Wrap80("A terminal homepage: animated background, clock, " +
			"link directory and a small command line for short links, notes and weather."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return cmd.Help()
			}
			return runUI(cmd)
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addShort(topLevel)
	addShorts(topLevel)
	addNote(topLevel)
	addNotes(topLevel)
	addWeather(topLevel)
	addLinks(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
