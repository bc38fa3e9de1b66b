package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/sharpjs/transpile"
	"github.com/dhamidi/sharpjs/workspace"
)

func newLSPCmd() *cobra.Command {
	var stripSuffix bool

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Long: `Start a language server that reports translation problems as
diagnostics and offers the sharpjs.compile command.

Logs go to stderr or to --log-file; stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []transpile.Option
			if stripSuffix {
				opts = append(opts, transpile.WithRewriter(transpile.StripAttributeSuffix))
			}
			return workspace.NewLSPServer(version, opts...).RunStdio()
		},
	}
	cmd.Flags().BoolVar(&stripSuffix, "strip-attribute-suffix", false, "treat [ExcludeAttribute] and friends like their short names")
	return cmd
}
