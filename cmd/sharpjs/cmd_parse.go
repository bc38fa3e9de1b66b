package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sharpjs/csharp/parser"
	"github.com/dhamidi/sharpjs/format"
)

func newParseCmd() *cobra.Command {
	var (
		outputFormat string
		comments     bool
		positions    bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Dump the syntax tree of one source file",
		Long:  "Dump the syntax tree of one source file, or of stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat != "tree" && outputFormat != "json" {
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			sources, err := readSources(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if len(sources) != 1 {
				return fmt.Errorf("parse takes one source file, %s holds %d", args[0], len(sources))
			}
			src := sources[0]

			opts := []parser.Option{parser.WithFile(src.Name)}
			if comments {
				opts = append(opts, parser.WithComments())
			}
			if positions {
				opts = append(opts, parser.WithPositions())
			}
			p := parser.ParseCompilationUnit(strings.NewReader(src.Text), opts...)
			root := p.Finish()
			if root == nil {
				return fmt.Errorf("%s: source is empty or ends mid-declaration", src.Name)
			}
			return dumpTree(cmd.OutOrStdout(), outputFormat, p, root)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&outputFormat, "format", "f", "tree", "output format: tree or json")
	flags.BoolVar(&comments, "comments", false, "list comments after the tree")
	flags.BoolVar(&positions, "positions", false, "show the source range of every node")
	return cmd
}

func dumpTree(w io.Writer, outputFormat string, p *parser.Parser, root *parser.Node) error {
	if outputFormat == "json" {
		enc := format.NewASTJSONEncoder(w)
		enc.Positions = p.IncludesPositions()
		if err := enc.Encode(root); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	text := root.String()
	if p.IncludesPositions() {
		text = root.StringWithPositions()
	}
	if _, err := io.WriteString(w, text); err != nil {
		return err
	}
	for _, c := range p.Comments() {
		fmt.Fprintf(w, "comment %s %s\n", c.Span.Start, c.Literal)
	}
	return nil
}
