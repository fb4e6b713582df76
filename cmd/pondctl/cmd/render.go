package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	filepond "github.com/atdiar/zui-filepond"
	"github.com/atdiar/zui-filepond/signal"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		attrs   []string
		options string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render prints the fallback markup a component prepares when the widget is unavailable.",
		Long: `
		Render mounts a component on a headless <file-pond> host in an environment
		without widget support and prints the resulting markup. Host attributes
		are given with --attr, options are read from a YAML file with --options.
		`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, files, err := loadOptions(options)
			if err != nil {
				return err
			}
			host, input, err := hostMarkup(attrs)
			if err != nil {
				return err
			}
			c := filepond.New(host, input, nil, filepond.Unsupported,
				filepond.WithOptions(signal.Const(opts)),
				filepond.WithFiles(signal.Const(files)),
				filepond.WithLogger(a.logger),
			)
			if err := c.Mount(); err != nil {
				return err
			}
			defer c.Unmount()

			if err := host.RenderIndent(cmd.OutOrStdout()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "host attribute as name=value (repeatable)")
	cmd.Flags().StringVar(&options, "options", "", "YAML file holding the component options")
	return cmd
}
