package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dop251/goja"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	filepond "github.com/atdiar/zui-filepond"
	"github.com/atdiar/zui-filepond/drivers/headless"
	sig "github.com/atdiar/zui-filepond/signal"
)

type runFlags struct {
	script  string
	options string
	attrs   []string
	files   []string
	watch   bool
	timeout time.Duration
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run hosts a FilePond compatible script headlessly and prints the component events.",
		Long: `
		Run loads a script defining a global FilePond object, mounts a component
		on a headless <file-pond> host and prints one line per output channel
		emission: the channel name followed by the JSON event detail.
		Files given with --file are added once mounted. With --watch, changes to
		the options file are pushed to the widget.
		The component is torn down on SIGINT, SIGTERM or once --for elapses.
		`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.script == "" {
				return errors.New("--script is required")
			}
			if f.watch && f.options == "" {
				return errors.New("--watch needs --options")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if f.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, f.timeout)
				defer cancel()
			}
			return run(ctx, a.logger, cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVar(&f.script, "script", "", "FilePond compatible script to host")
	cmd.Flags().StringVar(&f.options, "options", "", "YAML file holding the component options")
	cmd.Flags().StringArrayVar(&f.attrs, "attr", nil, "host attribute as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.files, "file", nil, "file source to add once mounted (repeatable)")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "reload the options file when it changes")
	cmd.Flags().DurationVar(&f.timeout, "for", 0, "tear down after this duration (0 waits for a signal)")
	return cmd
}

func run(ctx context.Context, logger *zap.Logger, out io.Writer, f runFlags) error {
	src, err := os.ReadFile(f.script)
	if err != nil {
		return err
	}
	opts, files, err := loadOptions(f.options)
	if err != nil {
		return err
	}
	host, input, err := hostMarkup(f.attrs)
	if err != nil {
		return err
	}

	rt, err := headless.New(headless.WithLogger(logger))
	if err != nil {
		return err
	}
	defer rt.Close()
	if err := rt.Load(f.script, string(src)); err != nil {
		return err
	}

	options := sig.New(opts)
	fileSet := sig.New(files)
	printer := &emissionPrinter{w: out, logger: logger}

	var c *filepond.Component
	err = rt.Do(func(*goja.Runtime) error {
		c = filepond.New(host, input, rt, filepond.Detect(rt),
			filepond.WithOptions(options),
			filepond.WithFiles(fileSet),
			filepond.WithScheduler(rt.Scheduler()),
			filepond.WithLogger(logger),
		)
		for _, ch := range filepond.Channels() {
			ch := ch
			if _, err := c.On(ch, func(d filepond.Detail) { printer.print(ch, d) }); err != nil {
				return err
			}
		}
		if err := c.Mount(); err != nil {
			return err
		}
		if !c.Supported() {
			logger.Warn("widget unsupported, running on the fallback input")
			return nil
		}
		pond, _ := c.Methods()
		for _, source := range f.files {
			source := source
			pond.AddFile(source, nil).Then(func(v any) {
				logger.Info("file added", zap.String("source", source), zap.Any("file", v))
			}, func(err error) {
				logger.Warn("file rejected", zap.String("source", source), zap.Error(err))
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	if f.watch {
		w, err := watchFile(f.options, debounceDuration, logger, func() {
			opts, files, err := loadOptions(f.options)
			if err != nil {
				logger.Warn("reloading options", zap.Error(err))
				return
			}
			rt.Post(func() {
				options.Set(opts)
				fileSet.Set(files)
			})
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}

	<-ctx.Done()
	return rt.Do(func(*goja.Runtime) error { return c.Unmount() })
}

// emissionPrinter writes one line per output channel emission.
type emissionPrinter struct {
	w      io.Writer
	logger *zap.Logger
}

func (p *emissionPrinter) print(ch filepond.Channel, d filepond.Detail) {
	b, err := json.Marshal(d)
	if err != nil {
		// details may hold widget functions
		b = []byte(fmt.Sprintf("%q", fmt.Sprint(d)))
	}
	if _, err := fmt.Fprintf(p.w, "%s %s\n", ch, b); err != nil {
		p.logger.Warn("writing emission", zap.Error(err))
	}
}
