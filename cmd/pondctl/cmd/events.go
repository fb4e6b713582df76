package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	filepond "github.com/atdiar/zui-filepond"
)

func newEventsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "events lists the widget events and the output channel each one feeds.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, ch := range filepond.Channels() {
				evt, _ := filepond.EventFor(ch)
				if _, err := fmt.Fprintf(out, "%-30s %s\n", evt, ch); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
