// Package cmd implements the pondctl command line.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	filepond "github.com/atdiar/zui-filepond"
)

type app struct {
	verbose bool
	logger  *zap.Logger
}

// NewRootCmd returns the pondctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "pondctl",
		Short: "pondctl inspects and drives FilePond components without a browser",
		Long: `
		pondctl inspects and drives FilePond components without a browser.
		It can list the widget events a component forwards, render the fallback
		file input a component prepares, and host a FilePond compatible script
		headlessly while printing every event the component emits.
		`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(a.verbose)
			if err != nil {
				return err
			}
			a.logger = l
			filepond.SetLogger(l)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newEventsCmd(a),
		newRenderCmd(a),
		newRunCmd(a),
	)
	return root
}

// newLogger builds a development logger in verbose mode, a production logger
// limited to warnings otherwise. Both write to stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
