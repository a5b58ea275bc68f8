package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/jos/pkg/commands/options"
	"tableflip.dev/jos/pkg/printers"
	"tableflip.dev/jos/pkg/record"
)

func addNote(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var text string

	cmd := &cobra.Command{
		Use:   "note <text>",
		Short: "Save a note",
		Example: `
jos note call the plumber on monday
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a note")
			}
			text = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()

			n, err := e.Service.AddNote(text)
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.PrintJSON(n)
			}
			pp := printers.PrettyPrint{Out: oo.Writer()}
			pp.Note(n)
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addNotes(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	lo := &options.LimitOptions{}

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List notes, newest first",
		Example: `
jos notes
jos notes --limit 3
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()

			notes, err := e.Service.Notes()
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				out := notes[:lo.Apply(len(notes))]
				if out == nil {
					out = record.Notes{}
				}
				return oo.PrintJSON(out)
			}
			pp := printers.PrettyPrint{Out: oo.Writer()}
			pp.Notes(notes, lo.Limit)
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddLimitArg(cmd, lo)
	topLevel.AddCommand(cmd)
}
