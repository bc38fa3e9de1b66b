package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sharpjs/csharp"
	"github.com/dhamidi/sharpjs/csharp/parser"
	"github.com/dhamidi/sharpjs/format"
)

func newModelCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "model <file>",
		Short: "Dump the declaration model of a .cs file",
		Long: `Dump the declarations the translator sees in a .cs file: namespaces,
classes, interfaces and enums with their members and attributes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read source: %w", err)
			}

			unit, err := csharp.UnitFromSource(data, parser.WithFile(filename))
			if err != nil {
				return fmt.Errorf("parse %s: %w", filename, err)
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(cmd.OutOrStdout())
			case "line":
				encoder = format.NewLineEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(unit); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if outputFormat == "json" {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, line)")

	return cmd
}
