package transpile

import (
	"strings"
	"unicode"

	"github.com/dhamidi/sharpjs/csharp"
)

// ClassRewriter transforms a class before it is translated. It must not
// modify its argument and must keep the member order.
type ClassRewriter interface {
	Rewrite(c *csharp.Class) *csharp.Class
}

type RewriterFunc func(c *csharp.Class) *csharp.Class

func (f RewriterFunc) Rewrite(c *csharp.Class) *csharp.Class {
	return f(c)
}

type NopRewriter struct{}

func (NopRewriter) Rewrite(c *csharp.Class) *csharp.Class {
	return c
}

// AnnotationRewriter is implemented by class rewriters that also rename
// attributes. The translator applies it to interfaces, enums and their
// members, which class rewriters never see.
type AnnotationRewriter interface {
	RewriteAnnotations(anns []csharp.Annotation) []csharp.Annotation
}

// StripAttributeSuffix renames attributes written with their full type
// name, such as [ExcludeAttribute], to their short form on every
// declaration and member.
var StripAttributeSuffix ClassRewriter = attributeSuffixStripper{}

type attributeSuffixStripper struct{}

func (attributeSuffixStripper) RewriteAnnotations(anns []csharp.Annotation) []csharp.Annotation {
	return shortAnnotations(anns)
}

func (attributeSuffixStripper) Rewrite(c *csharp.Class) *csharp.Class {
	out := *c
	out.Annotations = shortAnnotations(c.Annotations)
	out.Members = rewriteMemberAnnotations(c.Members, shortAnnotations)
	return &out
}

// rewriteMemberAnnotations copies every method, constructor, field and
// property with its annotations passed through rename.
func rewriteMemberAnnotations(members []csharp.Member, rename func([]csharp.Annotation) []csharp.Annotation) []csharp.Member {
	if members == nil {
		return nil
	}
	out := make([]csharp.Member, len(members))
	for i, member := range members {
		switch m := member.(type) {
		case *csharp.Method:
			cp := *m
			cp.Annotations = rename(m.Annotations)
			out[i] = &cp
		case *csharp.Constructor:
			cp := *m
			cp.Annotations = rename(m.Annotations)
			out[i] = &cp
		case *csharp.Field:
			cp := *m
			cp.Annotations = rename(m.Annotations)
			out[i] = &cp
		case *csharp.Property:
			cp := *m
			cp.Annotations = rename(m.Annotations)
			out[i] = &cp
		default:
			out[i] = member
		}
	}
	return out
}

func shortAnnotations(anns []csharp.Annotation) []csharp.Annotation {
	if anns == nil {
		return nil
	}
	out := make([]csharp.Annotation, len(anns))
	for i, ann := range anns {
		out[i] = ann
		name := strings.TrimSpace(ann.Name)
		if short := strings.TrimSuffix(name, "Attribute"); short != "" {
			out[i].Name = short
		}
	}
	return out
}

func beginMarker(kind, name string) string {
	return "// BEGIN " + kind + ": " + name + "\n"
}

func endMarker(kind, name string) string {
	return "// END " + kind + ": " + name + "\n"
}

// TranslateClass renders a class. Nested types are translated in place
// through Walk.
func (t *Translator) TranslateClass(c *csharp.Class) Result {
	if IsExcluded(c.Annotations) {
		t.log.Debugf("excluded class %s", c.Name)
		return Result{}
	}
	c = t.rewriter.Rewrite(c)
	// the rewrite may have normalized the attribute names
	if IsExcluded(c.Annotations) {
		t.log.Debugf("excluded class %s", c.Name)
		return Result{}
	}

	var b resultBuilder
	b.WriteString(beginMarker("Class", c.Name))
	b.WriteString("class " + c.Name)
	if base := extendsTarget(c.BaseTypes); base != "" {
		b.WriteString(" extends " + base)
	}
	b.WriteString(" {\n")

	for _, member := range c.Members {
		switch m := member.(type) {
		case *csharp.Method:
			b.Add(TranslateMethod(c.Name, m))
		case *csharp.Constructor:
			b.WriteString(TranslateConstructor(m))
		case *csharp.Field:
			b.WriteString(TranslateField(m))
		case *csharp.Property:
			b.WriteString(TranslateProperty(m))
		case *csharp.Nested:
			b.Add(t.Walk(m.Declaration))
		}
	}

	b.WriteString("}\n")
	b.WriteString(endMarker("Class", c.Name))
	return b.Result()
}

// extendsTarget picks the base class from a base type list. Only the
// first entry is considered, and it is dropped when its name follows the
// interface convention (IName).
func extendsTarget(bases []string) string {
	if len(bases) == 0 {
		return ""
	}
	base := strings.TrimSpace(bases[0])
	if looksLikeInterface(base) {
		return ""
	}
	return base
}

func looksLikeInterface(name string) bool {
	if i := strings.LastIndexAny(name, ".:"); i >= 0 {
		name = name[i+1:]
	}
	runes := []rune(name)
	return len(runes) >= 2 && runes[0] == 'I' && unicode.IsUpper(runes[1])
}

// TranslateInterface renders an interface as a class whose methods throw.
// Interfaces contribute no entry points.
func (t *Translator) TranslateInterface(i *csharp.Interface) string {
	if ar, ok := t.rewriter.(AnnotationRewriter); ok {
		cp := *i
		cp.Annotations = ar.RewriteAnnotations(i.Annotations)
		cp.Members = rewriteMemberAnnotations(i.Members, ar.RewriteAnnotations)
		i = &cp
	}
	if IsExcluded(i.Annotations) {
		t.log.Debugf("excluded interface %s", i.Name)
		return ""
	}

	var sb strings.Builder
	sb.WriteString(beginMarker("Interface", i.Name))
	sb.WriteString("class " + i.Name + " {\n")
	for _, member := range i.Members {
		switch m := member.(type) {
		case *csharp.Method:
			sb.WriteString(TranslateInterfaceMethod(m))
		case *csharp.Property:
			sb.WriteString(TranslateProperty(m))
		}
	}
	sb.WriteString("}\n")
	sb.WriteString(endMarker("Interface", i.Name))
	return sb.String()
}

// TranslateEnum renders an enum as a frozen object literal.
func (t *Translator) TranslateEnum(e *csharp.Enum) string {
	if ar, ok := t.rewriter.(AnnotationRewriter); ok {
		cp := *e
		cp.Annotations = ar.RewriteAnnotations(e.Annotations)
		e = &cp
	}
	if IsExcluded(e.Annotations) {
		t.log.Debugf("excluded enum %s", e.Name)
		return ""
	}

	members := make([]string, len(e.Members))
	for i, m := range e.Members {
		members[i] = m.Name
		if m.Value != "" {
			members[i] += " = " + m.Value
		}
	}
	return beginMarker("Enum", e.Name) +
		"const " + e.Name + " = Object.freeze({" + strings.Join(members, ", ") + "});\n" +
		endMarker("Enum", e.Name)
}
