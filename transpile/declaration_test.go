package transpile

import (
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/dhamidi/sharpjs/csharp"
)

func runMethod(annotations ...csharp.Annotation) *csharp.Method {
	return &csharp.Method{Name: "Run", IsStatic: true, HasBody: true, Body: []string{}, Annotations: annotations}
}

func TestTranslateClass(t *testing.T) {
	class := &csharp.Class{
		Name:      "A",
		BaseTypes: []string{" B "},
		Members: []csharp.Member{
			&csharp.Field{Variables: []string{"count = 0"}},
			&csharp.Constructor{HasBody: true, Body: []string{"A.count++;"}},
			&csharp.Property{Name: "Name", HasGetter: true},
			runMethod(csharp.Annotation{Name: "EntryPoint"}),
		},
	}
	got := NewTranslator().TranslateClass(class)
	want := "// BEGIN Class: A\n" +
		"class A extends B {\n" +
		"static count = 0;\n" +
		"constructor() {\nA.count++;\n}\n" +
		"get Name() {\nreturn this.Name;\n}\n" +
		"static Run() {\n}\n" +
		"}\n" +
		"// END Class: A\n"
	if got.Text != want {
		t.Errorf("got:\n%s\nwant:\n%s", got.Text, want)
	}
	if !reflect.DeepEqual(got.EntryPoints, []EntryPoint{{Owner: "A", Method: "Run"}}) {
		t.Errorf("entry points = %v", got.EntryPoints)
	}
}

func TestExtendsTarget(t *testing.T) {
	tests := []struct {
		bases []string
		want  string
	}{
		{nil, ""},
		{[]string{"Base"}, "Base"},
		{[]string{"Base", "IDisposable"}, "Base"},
		{[]string{"IDisposable", "Base"}, ""},
		{[]string{"System.IDisposable"}, ""},
		{[]string{"Ionic"}, "Ionic"},
		{[]string{"I"}, "I"},
		{[]string{"  Entity  "}, "Entity"},
	}
	for _, tt := range tests {
		if got := extendsTarget(tt.bases); got != tt.want {
			t.Errorf("extendsTarget(%q) = %q, want %q", tt.bases, got, tt.want)
		}
	}
}

func TestExclusionIsAbsorbing(t *testing.T) {
	class := &csharp.Class{
		Name:        "Hidden",
		Annotations: []csharp.Annotation{{Name: "Exclude"}},
		Members: []csharp.Member{
			runMethod(csharp.Annotation{Name: "EntryPoint"}),
			&csharp.Nested{Declaration: &csharp.Class{
				Name:    "Inner",
				Members: []csharp.Member{runMethod(csharp.Annotation{Name: "EntryPoint"})},
			}},
		},
	}
	got := NewTranslator().TranslateClass(class)
	if got.Text != "" || len(got.EntryPoints) != 0 {
		t.Errorf("excluded class produced %q and %v", got.Text, got.EntryPoints)
	}

	tr := NewTranslator()
	if text := tr.TranslateInterface(&csharp.Interface{Name: "I", Annotations: []csharp.Annotation{{Name: "EXCLUDE"}}}); text != "" {
		t.Errorf("excluded interface produced %q", text)
	}
	if text := tr.TranslateEnum(&csharp.Enum{Name: "E", Annotations: []csharp.Annotation{{Name: "Exclude"}}}); text != "" {
		t.Errorf("excluded enum produced %q", text)
	}
}

func TestExclusionDoesNotCascadeUpward(t *testing.T) {
	class := &csharp.Class{
		Name: "Outer",
		Members: []csharp.Member{
			&csharp.Nested{Declaration: &csharp.Class{Name: "Skipped", Annotations: []csharp.Annotation{{Name: "Exclude"}}}},
			runMethod(csharp.Annotation{Name: "EntryPoint"}),
		},
	}
	got := NewTranslator().TranslateClass(class)
	want := "// BEGIN Class: Outer\nclass Outer {\nstatic Run() {\n}\n}\n// END Class: Outer\n"
	if got.Text != want {
		t.Errorf("got %q, want %q", got.Text, want)
	}
	if len(got.EntryPoints) != 1 {
		t.Errorf("entry points = %v", got.EntryPoints)
	}
}

func TestNestedDeclarationsInPlace(t *testing.T) {
	class := &csharp.Class{
		Name: "Outer",
		Members: []csharp.Member{
			&csharp.Field{Variables: []string{"a"}},
			&csharp.Nested{Declaration: &csharp.Enum{Name: "Mode", Members: []csharp.EnumMember{{Name: "On"}}}},
			&csharp.Nested{Declaration: &csharp.Class{
				Name:    "Inner",
				Members: []csharp.Member{runMethod(csharp.Annotation{Name: "EntryPoint"})},
			}},
			&csharp.Field{Variables: []string{"b"}},
		},
	}
	got := NewTranslator().TranslateClass(class)
	want := "// BEGIN Class: Outer\nclass Outer {\n" +
		"static a;\n" +
		"// BEGIN Enum: Mode\nconst Mode = Object.freeze({On});\n// END Enum: Mode\n" +
		"// BEGIN Class: Inner\nclass Inner {\nstatic Run() {\n}\n}\n// END Class: Inner\n" +
		"static b;\n" +
		"}\n// END Class: Outer\n"
	if got.Text != want {
		t.Errorf("got:\n%s\nwant:\n%s", got.Text, want)
	}
	if !reflect.DeepEqual(got.EntryPoints, []EntryPoint{{Owner: "Inner", Method: "Run"}}) {
		t.Errorf("entry points = %v", got.EntryPoints)
	}
}

func TestTranslateInterface(t *testing.T) {
	iface := &csharp.Interface{
		Name: "IShape",
		Members: []csharp.Member{
			&csharp.Method{Name: "Area"},
			&csharp.Method{Name: "Create", IsStatic: true, HasBody: true},
			&csharp.Property{Name: "Name", HasGetter: true},
			&csharp.Method{Name: "Main", Annotations: []csharp.Annotation{{Name: "EntryPoint"}}},
		},
	}
	got := NewTranslator().Walk(iface)
	want := "// BEGIN Interface: IShape\nclass IShape {\n" +
		"Area() {\nthrow new Error(\"Area must be implemented\");\n}\n" +
		"get Name() {\nreturn this.Name;\n}\n" +
		"Main() {\nthrow new Error(\"Main must be implemented\");\n}\n" +
		"}\n// END Interface: IShape\n"
	if got.Text != want {
		t.Errorf("got:\n%s\nwant:\n%s", got.Text, want)
	}
	if len(got.EntryPoints) != 0 {
		t.Errorf("interfaces contribute no entry points, got %v", got.EntryPoints)
	}
}

func TestTranslateEnum(t *testing.T) {
	tests := []struct {
		name string
		enum *csharp.Enum
		want string
	}{
		{
			"values",
			&csharp.Enum{Name: "Color", Members: []csharp.EnumMember{{Name: "Red"}, {Name: "Green", Value: "2"}}},
			"// BEGIN Enum: Color\nconst Color = Object.freeze({Red, Green = 2});\n// END Enum: Color\n",
		},
		{
			"empty",
			&csharp.Enum{Name: "None"},
			"// BEGIN Enum: None\nconst None = Object.freeze({});\n// END Enum: None\n",
		},
		{
			"values are verbatim",
			&csharp.Enum{Name: "F", Members: []csharp.EnumMember{{Name: "A", Value: "1 << 2"}, {Name: "B", Value: "A == 4 ? 1 : 0"}}},
			"// BEGIN Enum: F\nconst F = Object.freeze({A = 1 << 2, B = A == 4 ? 1 : 0});\n// END Enum: F\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewTranslator().TranslateEnum(tt.enum); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

var markerPattern = regexp.MustCompile(`(?m)^// BEGIN (Class|Interface|Enum): (\S+)$`)

func TestMarkersRecoverDeclarations(t *testing.T) {
	decls := []csharp.Declaration{
		&csharp.Class{Name: "Player"},
		&csharp.Interface{Name: "IShape"},
		&csharp.Enum{Name: "Color"},
		&csharp.Class{Name: "Base_2"},
	}
	kinds := []string{"Class", "Interface", "Enum", "Class"}
	for i, decl := range decls {
		text := NewTranslator().Walk(decl).Text
		m := markerPattern.FindStringSubmatch(text)
		if m == nil {
			t.Fatalf("no begin marker in %q", text)
		}
		if m[1] != kinds[i] || m[2] != decl.DeclarationName() {
			t.Errorf("marker = %s %s, want %s %s", m[1], m[2], kinds[i], decl.DeclarationName())
		}
		end := "// END " + kinds[i] + ": " + decl.DeclarationName() + "\n"
		if len(text) < len(end) || text[len(text)-len(end):] != end {
			t.Errorf("%q does not end with %q", text, end)
		}
	}
}

func TestClassRewriter(t *testing.T) {
	rename := RewriterFunc(func(c *csharp.Class) *csharp.Class {
		out := *c
		out.Name = "Renamed" + c.Name
		return &out
	})
	class := &csharp.Class{Name: "A"}
	got := NewTranslator(WithRewriter(rename)).TranslateClass(class)
	if want := "// BEGIN Class: RenamedA\nclass RenamedA {\n}\n// END Class: RenamedA\n"; got.Text != want {
		t.Errorf("got %q, want %q", got.Text, want)
	}
	if class.Name != "A" {
		t.Errorf("input class was modified: %q", class.Name)
	}
}

func TestStripAttributeSuffix(t *testing.T) {
	class := &csharp.Class{
		Name: "A",
		Members: []csharp.Member{
			runMethod(csharp.Annotation{Name: "EntryPointAttribute"}),
			&csharp.Field{Variables: []string{"x"}, Annotations: []csharp.Annotation{{Name: "ExcludeAttribute"}}},
		},
	}

	plain := NewTranslator().TranslateClass(class)
	if len(plain.EntryPoints) != 0 {
		t.Errorf("without the rewriter EntryPointAttribute should not match, got %v", plain.EntryPoints)
	}

	got := NewTranslator(WithRewriter(StripAttributeSuffix)).TranslateClass(class)
	want := "// BEGIN Class: A\nclass A {\nstatic Run() {\n}\n}\n// END Class: A\n"
	if got.Text != want {
		t.Errorf("got %q, want %q", got.Text, want)
	}
	if len(got.EntryPoints) != 1 {
		t.Errorf("entry points = %v", got.EntryPoints)
	}
	if name := class.Members[0].(*csharp.Method).Annotations[0].Name; name != "EntryPointAttribute" {
		t.Errorf("input annotations were modified: %q", name)
	}

	excluded := &csharp.Class{Name: "B", Annotations: []csharp.Annotation{{Name: "ExcludeAttribute"}}}
	if got := NewTranslator(WithRewriter(StripAttributeSuffix)).TranslateClass(excluded); got.Text != "" {
		t.Errorf("ExcludeAttribute class produced %q", got.Text)
	}
}

func TestStripAttributeSuffixInterfacesAndEnums(t *testing.T) {
	excluded := []csharp.Annotation{{Name: "ExcludeAttribute"}}
	iface := &csharp.Interface{Name: "IHidden", Annotations: excluded}
	enum := &csharp.Enum{Name: "Hidden", Annotations: excluded, Members: []csharp.EnumMember{{Name: "A"}}}

	plain := NewTranslator()
	if plain.TranslateInterface(iface) == "" || plain.TranslateEnum(enum) == "" {
		t.Fatal("without the rewriter ExcludeAttribute should not match")
	}

	strip := NewTranslator(WithRewriter(StripAttributeSuffix))
	if got := strip.TranslateInterface(iface); got != "" {
		t.Errorf("ExcludeAttribute interface produced %q", got)
	}
	if got := strip.TranslateEnum(enum); got != "" {
		t.Errorf("ExcludeAttribute enum produced %q", got)
	}

	shown := &csharp.Interface{
		Name: "IShown",
		Members: []csharp.Member{
			&csharp.Method{Name: "Keep"},
			&csharp.Method{Name: "Drop", Annotations: excluded},
		},
	}
	got := strip.TranslateInterface(shown)
	if !strings.Contains(got, "Keep()") || strings.Contains(got, "Drop") {
		t.Errorf("got %q, want Keep without Drop", got)
	}
	if shown.Members[1].(*csharp.Method).Annotations[0].Name != "ExcludeAttribute" {
		t.Error("input annotations were modified")
	}
}
