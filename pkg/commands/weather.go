package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/jos/pkg/commands/options"
	"tableflip.dev/jos/pkg/printers"
	"tableflip.dev/jos/pkg/store"
	"tableflip.dev/jos/pkg/weather"
)

// loadSettings is replaced in tests.
var loadSettings = store.LoadConfig

func addWeather(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:       "weather [city]",
		Short:     "Show the weather for a city",
		ValidArgs: weather.Cities(),
		Example: `
jos weather
jos weather barcelona
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			city := strings.Join(args, " ")
			if city == "" {
				s, err := loadSettings()
				if err != nil {
					return oo.HandleError(err)
				}
				city = s.City
			}
			r := weather.Lookup(city)
			if oo.JSON {
				return oo.PrintJSON(r)
			}
			pp := printers.PrettyPrint{Out: oo.Writer()}
			pp.Weather(r)
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
