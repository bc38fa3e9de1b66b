package transpile

import (
	"strings"

	"github.com/dhamidi/sharpjs/csharp"
)

// Recognized attribute names.
const (
	MarkerExclude        = "Exclude"
	MarkerInlineOverride = "JSFunction"
	MarkerEntryPoint     = "EntryPoint"
)

// FindAnnotation returns the first annotation whose trimmed name equals
// marker, ignoring case. Later duplicates are ignored.
func FindAnnotation(annotations []csharp.Annotation, marker string) (csharp.Annotation, bool) {
	for _, ann := range annotations {
		if strings.EqualFold(strings.TrimSpace(ann.Name), marker) {
			return ann, true
		}
	}
	return csharp.Annotation{}, false
}

func IsExcluded(annotations []csharp.Annotation) bool {
	_, ok := FindAnnotation(annotations, MarkerExclude)
	return ok
}

func IsEntryPoint(annotations []csharp.Annotation) bool {
	_, ok := FindAnnotation(annotations, MarkerEntryPoint)
	return ok
}

// InlineOverride returns the replacement body carried by a JSFunction
// attribute. The first argument is unwrapped by dropping a verbatim or
// interpolation prefix and then the first and last quote; nothing inside
// is unescaped.
func InlineOverride(annotations []csharp.Annotation) (string, bool) {
	ann, ok := FindAnnotation(annotations, MarkerInlineOverride)
	if !ok {
		return "", false
	}
	if len(ann.Arguments) == 0 {
		return "", true
	}
	return unwrapString(ann.Arguments[0]), true
}

func unwrapString(raw string) string {
	s := strings.TrimLeft(strings.TrimSpace(raw), "@$")
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
