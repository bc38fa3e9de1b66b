// Package grammar holds the EBNF description of the declaration syntax the
// parser accepts, and matches its lexical productions against text.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"

	"golang.org/x/exp/ebnf"
)

// Start is the production a source file is parsed from.
const Start = "CompilationUnit"

//go:embed csharp.ebnf
var source []byte

// Source returns the grammar text.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses the grammar.
func Load() (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse("csharp.ebnf", bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// Verify parses the grammar and checks that every production is defined,
// reachable from Start and, if lexical, built from lexical productions
// only.
func Verify() error {
	grammar, err := Load()
	if err != nil {
		return err
	}
	return ebnf.Verify(grammar, Start)
}
