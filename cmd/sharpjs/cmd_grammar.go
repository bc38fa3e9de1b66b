package main

import (
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sharpjs/csharp/grammar"
)

func newGrammarCmd() *cobra.Command {
	var (
		check      bool
		production string
	)

	cmd := &cobra.Command{
		Use:   "grammar [text...]",
		Short: "Print the EBNF grammar of the accepted declaration syntax",
		Long: `Print the EBNF grammar of the declaration syntax sharpjs accepts.

With --check the grammar is parsed and verified instead: every production
must be defined and reachable from ` + grammar.Start + `.

With --match PRODUCTION each text argument is matched against a lexical
production (identifier, integer_literal, string_literal, ...). One line is
printed per text: "match", "prefix N" for a match of the first N bytes
only, or "none".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case production != "":
				return matchTexts(out, production, args)
			case len(args) > 0:
				return fmt.Errorf("text arguments need --match")
			case check:
				if err := grammar.Verify(); err != nil {
					printErrors(cmd.ErrOrStderr(), err)
					return fmt.Errorf("grammar is invalid")
				}
				fmt.Fprintln(out, "ok")
				return nil
			}
			_, err := out.Write(grammar.Source())
			return err
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&check, "check", false, "verify the grammar instead of printing it")
	flags.StringVar(&production, "match", "", "match the arguments against this lexical production")

	return cmd
}

func matchTexts(w io.Writer, production string, texts []string) error {
	if len(texts) == 0 {
		return fmt.Errorf("--match needs at least one text")
	}
	g, err := grammar.Load()
	if err != nil {
		return err
	}
	m := grammar.NewMatcher(g)
	failed := 0
	for _, text := range texts {
		n, err := m.Match(production, []byte(text))
		if err != nil {
			return err
		}
		switch {
		case n == len(text):
			fmt.Fprintf(w, "match\t%s\n", text)
		case n >= 0:
			fmt.Fprintf(w, "prefix %d\t%s\n", n, text)
			failed++
		default:
			fmt.Fprintf(w, "none\t%s\n", text)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d texts do not match %s", failed, len(texts), production)
	}
	return nil
}

// printErrors writes one line per error of an ebnf error list.
func printErrors(w io.Writer, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
