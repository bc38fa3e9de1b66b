package transpile

import (
	"strings"

	"github.com/dhamidi/sharpjs/csharp"
)

// TranslateMethod renders a class method. An [EntryPoint] method is
// reported as owner.Name whether or not it is static.
func TranslateMethod(owner string, m *csharp.Method) Result {
	if IsExcluded(m.Annotations) {
		return Result{}
	}

	var sb strings.Builder
	if m.IsStatic {
		sb.WriteString("static ")
	}
	sb.WriteString(m.Name + "(" + Parameters(m.Parameters) + ") {\n")
	sb.WriteString(methodBody(m))
	sb.WriteString("}\n")

	result := Result{Text: sb.String()}
	if IsEntryPoint(m.Annotations) {
		result.EntryPoints = []EntryPoint{{Owner: owner, Method: m.Name}}
	}
	return result
}

func methodBody(m *csharp.Method) string {
	if code, ok := InlineOverride(m.Annotations); ok {
		return code + "\n"
	}
	if !m.HasBody {
		return ""
	}
	if m.ExpressionBody != "" {
		return RewriteEquality("return "+m.ExpressionBody+";") + "\n"
	}
	return statements(m.Body)
}

func statements(body []string) string {
	var sb strings.Builder
	for _, stmt := range body {
		sb.WriteString(RewriteEquality(stmt + "\n"))
	}
	return sb.String()
}

// TranslateConstructor renders an instance constructor, or a static
// initialization block for a static constructor.
func TranslateConstructor(c *csharp.Constructor) string {
	if IsExcluded(c.Annotations) {
		return ""
	}
	var sb strings.Builder
	if c.IsStatic {
		sb.WriteString("static {\n")
	} else {
		sb.WriteString("constructor(" + Parameters(c.Parameters) + ") {\n")
		if c.BaseArguments != nil {
			sb.WriteString(RewriteEquality("super("+*c.BaseArguments+");") + "\n")
		}
	}
	if c.HasBody {
		sb.WriteString(statements(c.Body))
	}
	sb.WriteString("}\n")
	return sb.String()
}

// TranslateField renders the first variable of a field declaration as a
// static class field. Further variables are dropped.
func TranslateField(f *csharp.Field) string {
	if IsExcluded(f.Annotations) || len(f.Variables) == 0 {
		return ""
	}
	return "static " + f.Variables[0] + ";\n"
}

// TranslateProperty renders field-backed accessors. Custom accessor
// bodies in the source are not carried over.
func TranslateProperty(p *csharp.Property) string {
	if IsExcluded(p.Annotations) {
		return ""
	}
	var sb strings.Builder
	if p.HasGetter {
		sb.WriteString("get " + p.Name + "() {\n")
		sb.WriteString("return this." + p.Name + ";\n}\n")
	}
	if p.HasSetter {
		sb.WriteString("set " + p.Name + "(val) {\n")
		sb.WriteString("this." + p.Name + " = val;\n}\n")
	}
	return sb.String()
}

// TranslateInterfaceMethod renders a stub that throws when called.
// Static interface methods are dropped.
func TranslateInterfaceMethod(m *csharp.Method) string {
	if m.IsStatic || IsExcluded(m.Annotations) {
		return ""
	}
	return m.Name + "(" + Parameters(m.Parameters) + ") {\n" +
		"throw new Error(\"" + m.Name + " must be implemented\");\n" +
		"}\n"
}

// Parameters renders a parameter list as "a, b = 1, ...rest".
func Parameters(params []csharp.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		switch {
		case p.IsParams:
			parts[i] = "..." + p.Name
		case p.Default != "":
			parts[i] = p.Name + " = " + p.Default
		default:
			parts[i] = p.Name
		}
	}
	return strings.Join(parts, ", ")
}
