package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/jos/pkg/commands/options"
	"tableflip.dev/jos/pkg/printers"
	"tableflip.dev/jos/pkg/record"
)

type shortView struct {
	ID      string    `json:"id"`
	Link    string    `json:"link"`
	URL     string    `json:"url"`
	Created time.Time `json:"created"`
	Clicks  int       `json:"clicks"`
}

func viewShort(s record.ShortURL) shortView {
	return shortView{ID: s.ID, Link: s.Link(), URL: s.URL, Created: s.Created, Clicks: s.Clicks}
}

func addShort(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "short <url>",
		Short: "Shorten a URL",
		Example: `
jos short example.com/some/long/path
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()

			su, err := e.Service.Shorten(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.PrintJSON(viewShort(su))
			}
			pp := printers.PrettyPrint{Out: oo.Writer()}
			pp.Short(su)
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addShorts(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	lo := &options.LimitOptions{}

	cmd := &cobra.Command{
		Use:   "shorts",
		Short: "List short links in creation order",
		Example: `
jos shorts
jos shorts --limit 0 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()

			shorts, err := e.Service.Shorts()
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				views := make([]shortView, 0, lo.Apply(len(shorts)))
				for _, s := range shorts[:lo.Apply(len(shorts))] {
					views = append(views, viewShort(s))
				}
				return oo.PrintJSON(views)
			}
			pp := printers.PrettyPrint{Out: oo.Writer()}
			pp.Shorts(shorts, lo.Limit)
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddLimitArg(cmd, lo)
	topLevel.AddCommand(cmd)
}
