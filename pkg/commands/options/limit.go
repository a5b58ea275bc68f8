package options

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

// DefaultLimit matches the listing size of the interactive prompt.
const DefaultLimit = 10

// LimitOptions caps how many records a listing prints.
type LimitOptions struct {
	Limit int
}

func AddLimitArg(cmd *cobra.Command, o *LimitOptions) {
	cmd.Flags().IntVarP(&o.Limit, "limit", "n", DefaultLimit,
		base.Wrap80("Maximum number of records to list, 0 lists all."))
}

// Apply returns n clamped to the limit.
func (o *LimitOptions) Apply(n int) int {
	if o.Limit <= 0 || n <= o.Limit {
		return n
	}
	return o.Limit
}
