package workspace

import (
	"bytes"
	"errors"

	"github.com/dhamidi/sharpjs/csharp/parser"
	"github.com/dhamidi/sharpjs/transpile"
)

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

// Diagnostic is a problem found in one file. Positions are 1-based, as
// produced by the parser.
type Diagnostic struct {
	Severity Severity
	Start    parser.Position
	End      parser.Position
	Message  string
}

// Diagnostics reports the problems of path: recovered syntax errors as
// warnings, since translation skips them, and the reason the file cannot
// be translated as an error.
func (w *Workspace) Diagnostics(path string) []Diagnostic {
	f := w.GetFile(path)
	if f == nil {
		return nil
	}
	return f.Diagnostics()
}

func (f *File) Diagnostics() []Diagnostic {
	var diags []Diagnostic
	if f.AST != nil {
		for _, node := range f.AST.Errors() {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Start:    node.Span.Start,
				End:      node.Span.End,
				Message:  node.Error.Message,
			})
		}
	}
	if f.Err != nil {
		start := parser.Position{Line: 1, Column: 1}
		var cerr *transpile.CompilationError
		if errors.As(f.Err, &cerr) && cerr.Kind == transpile.ErrorKindShape && len(f.Unit.Stray) > 0 {
			start = f.Unit.Stray[0].Position
		} else if errors.Is(f.Err, transpile.ErrSyntax) {
			start = endOf(f.Content)
		}
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Start:    start,
			End:      start,
			Message:  f.Err.Error(),
		})
	}
	return diags
}

// endOf returns the position just past the last byte of content, counted
// the way the lexer counts it.
func endOf(content []byte) parser.Position {
	pos := parser.Position{Offset: len(content), Line: 1, Column: 1}
	for _, b := range bytes.TrimPrefix(content, []byte("\xEF\xBB\xBF")) {
		if b == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}
