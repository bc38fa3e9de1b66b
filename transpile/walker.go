package transpile

import "github.com/dhamidi/sharpjs/csharp"

// Walk translates a declaration. Namespaces add no syntax of their own;
// their members are translated depth first and concatenated.
func (t *Translator) Walk(decl csharp.Declaration) Result {
	switch d := decl.(type) {
	case *csharp.Namespace:
		var b resultBuilder
		for _, member := range d.Members {
			b.Add(t.Walk(member))
		}
		return b.Result()
	case *csharp.Class:
		return t.TranslateClass(d)
	case *csharp.Interface:
		return Result{Text: t.TranslateInterface(d)}
	case *csharp.Enum:
		return Result{Text: t.TranslateEnum(d)}
	}
	return Result{}
}

// WalkUnit translates every top-level declaration of a unit in order.
func (t *Translator) WalkUnit(unit csharp.Unit) Result {
	var b resultBuilder
	for _, decl := range unit.Declarations {
		b.Add(t.Walk(decl))
	}
	result := b.Result()
	t.log.Debugf("translated %s: %d bytes, %d entry points", unitName(unit), len(result.Text), len(result.EntryPoints))
	return result
}

func unitName(unit csharp.Unit) string {
	if unit.Source == "" {
		return "<unnamed>"
	}
	return unit.Source
}
