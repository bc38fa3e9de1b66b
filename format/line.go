package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/sharpjs/csharp"
)

// LineEncoder writes one tab-separated line per declaration and member.
// Names are qualified with their enclosing namespaces and types; absent
// values are written as "-".
type LineEncoder struct {
	w    io.Writer
	unit csharp.Unit
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(unit csharp.Unit) error {
	e.unit = unit
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, decl := range e.unit.Declarations {
		writeDeclarationLines(&sb, "", decl)
	}
	for _, s := range e.unit.Stray {
		fmt.Fprintf(&sb, "stray\t%s\t%d\t%s\n", s.Kind, s.Position.Line, oneLine(s.Text))
	}
	return []byte(sb.String()), nil
}

func writeDeclarationLines(sb *strings.Builder, prefix string, decl csharp.Declaration) {
	name := qualify(prefix, decl.DeclarationName())
	switch d := decl.(type) {
	case *csharp.Namespace:
		fmt.Fprintf(sb, "namespace\t%s\n", name)
		for _, member := range d.Members {
			writeDeclarationLines(sb, name, member)
		}
	case *csharp.Class:
		fmt.Fprintf(sb, "class\t%s\t%s\t%s\n", name, listStr(d.BaseTypes), annotationsStr(d.Annotations))
		writeMemberLines(sb, name, d.Members)
	case *csharp.Interface:
		fmt.Fprintf(sb, "interface\t%s\t%s\t%s\n", name, listStr(d.BaseTypes), annotationsStr(d.Annotations))
		writeMemberLines(sb, name, d.Members)
	case *csharp.Enum:
		var members []string
		for _, m := range d.Members {
			if m.Value != "" {
				members = append(members, m.Name+"="+m.Value)
			} else {
				members = append(members, m.Name)
			}
		}
		fmt.Fprintf(sb, "enum\t%s\t%s\t%s\n", name, listStr(members), annotationsStr(d.Annotations))
	}
}

func writeMemberLines(sb *strings.Builder, owner string, members []csharp.Member) {
	for _, member := range members {
		switch m := member.(type) {
		case *csharp.Method:
			fmt.Fprintf(sb, "method\t%s\t%s\t%s\t%s\n",
				qualify(owner, m.Name),
				parametersStr(m.Parameters),
				methodModifiersStr(m.IsStatic, m.HasBody),
				annotationsStr(m.Annotations),
			)
		case *csharp.Constructor:
			fmt.Fprintf(sb, "constructor\t%s\t%s\t%s\t%s\n",
				owner,
				parametersStr(m.Parameters),
				methodModifiersStr(m.IsStatic, m.HasBody),
				annotationsStr(m.Annotations),
			)
		case *csharp.Field:
			fmt.Fprintf(sb, "field\t%s\t%s\t%s\n", owner, listStr(m.Variables), annotationsStr(m.Annotations))
		case *csharp.Property:
			var accessors []string
			if m.HasGetter {
				accessors = append(accessors, "get")
			}
			if m.HasSetter {
				accessors = append(accessors, "set")
			}
			fmt.Fprintf(sb, "property\t%s\t%s\t%s\n", qualify(owner, m.Name), listStr(accessors), annotationsStr(m.Annotations))
		case *csharp.Nested:
			writeDeclarationLines(sb, owner, m.Declaration)
		}
	}
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func methodModifiersStr(isStatic, hasBody bool) string {
	var mods []string
	if isStatic {
		mods = append(mods, "static")
	}
	if !hasBody {
		mods = append(mods, "abstract")
	}
	return listStr(mods)
}

func parametersStr(params []csharp.Parameter) string {
	var parts []string
	for _, p := range params {
		switch {
		case p.IsParams:
			parts = append(parts, "..."+p.Name)
		case p.Default != "":
			parts = append(parts, p.Name+"="+p.Default)
		default:
			parts = append(parts, p.Name)
		}
	}
	return listStr(parts)
}

func annotationsStr(anns []csharp.Annotation) string {
	var names []string
	for _, a := range anns {
		names = append(names, a.Name)
	}
	return listStr(names)
}

func listStr(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return oneLine(strings.Join(items, ","))
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
