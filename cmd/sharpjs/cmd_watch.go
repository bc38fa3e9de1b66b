package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/sharpjs/transpile"
	"github.com/dhamidi/sharpjs/workspace"
)

func newWatchCmd() *cobra.Command {
	var output string
	var interval time.Duration
	var jobs int

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Recompile a directory of C# sources whenever it changes",
		Long: `Poll a directory tree for .cs files and rewrite the output file after
every change. Files are compiled in path order. A failed build is logged
and leaves the previous output in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := commonlog.GetLogger("sharpjs.watch")
			ws := workspace.New(args[0], transpile.WithConcurrency(jobs))

			watcher := workspace.NewFileWatcher(ws, interval)
			watcher.OnChange = func() {
				js, err := ws.Compile()
				if err != nil {
					log.Errorf("build failed: %s", err)
					return
				}
				if err := writeOutput(output, cmd.OutOrStdout(), js); err != nil {
					log.Errorf("%s", err)
					return
				}
				log.Noticef("wrote %s (%d files)", output, len(ws.Paths()))
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			watcher.Start()
			<-ctx.Done()
			watcher.Stop()
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file the JavaScript is written to")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "polling interval")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "number of units translated concurrently")
	cmd.MarkFlagRequired("output")

	return cmd
}
