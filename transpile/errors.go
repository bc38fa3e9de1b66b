package transpile

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	// ErrorKindSyntax means the parser could not produce a complete tree.
	ErrorKindSyntax ErrorKind = iota
	// ErrorKindShape means a top-level item is neither a namespace nor a
	// type declaration.
	ErrorKindShape
	// ErrorKindMissingDeclaration means a unit declares no type at all.
	ErrorKindMissingDeclaration
)

var (
	ErrSyntax             = errors.New("syntax error")
	ErrShape              = errors.New("unsupported top-level content")
	ErrMissingDeclaration = errors.New("no declaration found")
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindSyntax:
		return "syntax"
	case ErrorKindShape:
		return "shape"
	case ErrorKindMissingDeclaration:
		return "missing declaration"
	}
	return "unknown"
}

// CompilationError reports why a source unit cannot be translated. It
// unwraps to ErrSyntax, ErrShape or ErrMissingDeclaration, and to Err
// when set.
type CompilationError struct {
	Source  string
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *CompilationError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Source, e.Kind, e.Message)
}

func (e *CompilationError) Unwrap() []error {
	var errs []error
	switch e.Kind {
	case ErrorKindSyntax:
		errs = append(errs, ErrSyntax)
	case ErrorKindShape:
		errs = append(errs, ErrShape)
	case ErrorKindMissingDeclaration:
		errs = append(errs, ErrMissingDeclaration)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
