package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/sharpjs/transpile"
)

func newCompileCmd() *cobra.Command {
	var output string
	var jobs int
	var stripSuffix bool

	cmd := &cobra.Command{
		Use:   "compile [file|dir...]",
		Short: "Compile C# sources to a single JavaScript file",
		Long: `Compile C# sources to JavaScript.

Sources are translated in argument order. A directory argument stands for
the .cs files directly inside it, sorted by name. With no arguments the
source is read from stdin.

Methods marked [EntryPoint] are invoked at the end of the output, in source
order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := readSources(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			opts := []transpile.Option{
				transpile.WithConcurrency(jobs),
				transpile.WithLogger(commonlog.GetLogger("sharpjs.compile")),
			}
			if stripSuffix {
				opts = append(opts, transpile.WithRewriter(transpile.StripAttributeSuffix))
			}
			js, err := transpile.Compile(sources, opts...)
			if err != nil {
				return err
			}
			return writeOutput(output, cmd.OutOrStdout(), js)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JavaScript to this file instead of stdout")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "number of units translated concurrently")
	cmd.Flags().BoolVar(&stripSuffix, "strip-attribute-suffix", false, "treat [ExcludeAttribute] and friends like their short names")

	return cmd
}
