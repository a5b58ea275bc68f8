package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/jos/pkg/tui/anim"
	teaui "tableflip.dev/jos/pkg/tui/app"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the terminal homepage",
		Example: `
jos ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd)
		},
	}

	topLevel.AddCommand(cmd)
}

func runUI(cmd *cobra.Command) error {
	e, err := loadEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.Settings
	return teaui.Run(teaui.Options{
		Service: e.Service,
		Links:   s.Links,
		Client:  e.Client,
		Anim:    anim.Options{Particles: s.Particles, Lines: s.Lines},
		FPS:     s.FPS,
		City:    s.City,
		Logger:  e.Logger,
	})
}
