package transpile

import (
	"fmt"
	"strings"

	"github.com/dhamidi/sharpjs/csharp"
	"github.com/dhamidi/sharpjs/csharp/parser"
)

// Source is one input file.
type Source struct {
	Name string
	Text string
}

// Compile parses every source and assembles the translation. It fails on
// the first source, in order, that cannot be translated; no partial
// output is returned.
func Compile(sources []Source, opts ...Option) (string, error) {
	units := make([]csharp.Unit, 0, len(sources))
	for _, src := range sources {
		unit, err := ParseSource(src)
		if err != nil {
			return "", err
		}
		units = append(units, unit)
	}
	return Assemble(units, opts...), nil
}

// ParseSource builds the model of one source and checks its top-level
// shape.
func ParseSource(src Source) (csharp.Unit, error) {
	var root *parser.Node
	if !IsBlank(src.Text) {
		root = parser.ParseCompilationUnit(strings.NewReader(src.Text), parser.WithFile(src.Name)).Finish()
	}
	return UnitFromTree(src, root)
}

// UnitFromTree builds the model of src from its already parsed syntax
// tree. A nil root means the parser could not complete the tree.
func UnitFromTree(src Source, root *parser.Node) (csharp.Unit, error) {
	if IsBlank(src.Text) {
		return csharp.Unit{Source: src.Name}, &CompilationError{
			Source:  src.Name,
			Kind:    ErrorKindMissingDeclaration,
			Message: "source is empty",
		}
	}
	if root == nil {
		return csharp.Unit{Source: src.Name}, &CompilationError{
			Source:  src.Name,
			Kind:    ErrorKindSyntax,
			Message: "source ends inside a declaration",
			Err:     csharp.ErrIncomplete,
		}
	}
	unit := csharp.UnitFromNode(root, src.Name)
	if err := CheckShape(unit); err != nil {
		return unit, err
	}
	return unit, nil
}

// IsBlank reports whether text holds nothing but white space and an
// optional byte order mark.
func IsBlank(text string) bool {
	return strings.TrimSpace(strings.TrimPrefix(text, "\uFEFF")) == ""
}

// CheckShape reports units whose top level holds anything but namespaces
// and type declarations, and units without any type declaration.
func CheckShape(unit csharp.Unit) error {
	if len(unit.Stray) > 0 {
		stray := unit.Stray[0]
		return &CompilationError{
			Source:  unit.Source,
			Kind:    ErrorKindShape,
			Message: fmt.Sprintf("%s %q at %s: only namespaces and type declarations may appear at the top level", stray.Kind, stray.Text, stray.Position),
		}
	}
	if !declaresType(unit.Declarations) {
		return &CompilationError{
			Source:  unit.Source,
			Kind:    ErrorKindMissingDeclaration,
			Message: "no class, interface or enum declaration found",
		}
	}
	return nil
}

func declaresType(decls []csharp.Declaration) bool {
	for _, decl := range decls {
		switch d := decl.(type) {
		case *csharp.Namespace:
			if declaresType(d.Members) {
				return true
			}
		case *csharp.Class, *csharp.Interface, *csharp.Enum:
			return true
		}
	}
	return false
}
