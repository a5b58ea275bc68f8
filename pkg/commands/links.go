package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/jos/pkg/commands/options"
	"tableflip.dev/jos/pkg/links"
	"tableflip.dev/jos/pkg/printers"
)

type categoryView struct {
	Name  string       `json:"name"`
	Items []links.Item `json:"items"`
}

func addLinks(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "links [category]",
		Short: "Show the link directory or one category of it",
		Example: `
jos links
jos links dev --json
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return categoryCompletions(cmd.Context()), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()

			dir, err := e.Directory(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{Out: oo.Writer()}

			if len(args) == 0 {
				if oo.JSON {
					views := make([]categoryView, 0, dir.Len())
					for _, c := range dir.Categories() {
						views = append(views, categoryView{Name: c.Name, Items: c.Items})
					}
					return oo.PrintJSON(views)
				}
				pp.Directory(dir)
				return nil
			}

			c, ok := dir.Lookup(args[0])
			if !ok {
				return oo.HandleError(fmt.Errorf("links: no category %q", args[0]))
			}
			if oo.JSON {
				return oo.PrintJSON(categoryView{Name: c.Name, Items: c.Items})
			}
			pp.Category(c)
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func categoryCompletions(ctx context.Context) []string {
	e, err := loadEnv(ctx)
	if err != nil {
		return nil
	}
	defer e.Close()
	dir, err := e.Directory(ctx)
	if err != nil {
		return nil
	}
	names := dir.Names()
	for i := range names {
		names[i] = strconv.Quote(names[i])
	}
	return names
}
