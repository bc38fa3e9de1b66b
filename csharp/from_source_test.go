package csharp

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dhamidi/sharpjs/csharp/parser"
)

func mustUnit(t *testing.T, source string) Unit {
	t.Helper()
	unit, err := UnitFromSource([]byte(source), parser.WithFile("test.cs"))
	if err != nil {
		t.Fatalf("UnitFromSource: %v", err)
	}
	return unit
}

func TestUnitFromSourceNamespace(t *testing.T) {
	unit := mustUnit(t, `
using System;

namespace Game.Core {
    public class Player : Entity, IDisposable {
        [EntryPoint]
        public static void Run() { }
    }

    namespace Inner {
        interface IShape { double Area(); }
    }
}
`)
	if unit.Source != "test.cs" {
		t.Errorf("Source = %q, want %q", unit.Source, "test.cs")
	}
	if len(unit.Declarations) != 1 {
		t.Fatalf("got %d declarations, want 1", len(unit.Declarations))
	}
	ns, ok := unit.Declarations[0].(*Namespace)
	if !ok {
		t.Fatalf("got %T, want *Namespace", unit.Declarations[0])
	}
	if ns.Name != "Game.Core" {
		t.Errorf("namespace = %q, want %q", ns.Name, "Game.Core")
	}
	if len(ns.Members) != 2 {
		t.Fatalf("got %d namespace members, want 2", len(ns.Members))
	}

	cls, ok := ns.Members[0].(*Class)
	if !ok {
		t.Fatalf("got %T, want *Class", ns.Members[0])
	}
	if !reflect.DeepEqual(cls.BaseTypes, []string{"Entity", "IDisposable"}) {
		t.Errorf("BaseTypes = %q", cls.BaseTypes)
	}
	run, ok := cls.Members[0].(*Method)
	if !ok {
		t.Fatalf("got %T, want *Method", cls.Members[0])
	}
	if run.Name != "Run" || !run.IsStatic || !run.HasBody || len(run.Body) != 0 {
		t.Errorf("Run = %+v", run)
	}
	if len(run.Annotations) != 1 || run.Annotations[0].Name != "EntryPoint" {
		t.Errorf("annotations = %+v", run.Annotations)
	}

	inner, ok := ns.Members[1].(*Namespace)
	if !ok || inner.Name != "Inner" {
		t.Fatalf("got %+v, want namespace Inner", ns.Members[1])
	}
	iface, ok := inner.Members[0].(*Interface)
	if !ok || iface.Name != "IShape" {
		t.Fatalf("got %+v, want interface IShape", inner.Members[0])
	}
	area := iface.Members[0].(*Method)
	if area.HasBody {
		t.Error("interface method should have no body")
	}
}

func TestUnitFromSourceFileScopedNamespace(t *testing.T) {
	unit := mustUnit(t, "namespace App;\nclass A {}\nenum B { X }")
	ns := unit.Declarations[0].(*Namespace)
	if len(ns.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(ns.Members))
	}
	if ns.Members[1].DeclarationName() != "B" {
		t.Errorf("second member = %q, want B", ns.Members[1].DeclarationName())
	}
}

func TestUnitFromSourceMembers(t *testing.T) {
	unit := mustUnit(t, `
class Account : Base {
    static int count = 0, limit = 10;
    public string Owner { get; set; }
    public decimal Balance { get; private set; }
    public int Id { get; init; }
    public int Twice => count * 2;

    static Account() { count = 1; }
    public Account(string owner, decimal initial = 0m) : base(owner) {
        Owner = owner;
        if (initial != 0) { Deposit(initial); }
    }

    public void Deposit(decimal amount) {
        Balance += amount;
    }
    public int Sum(params int[] values) => values.Length;
    public abstract void Close();

    [JSFunction("console.log(1);")]
    public void Log() { }

    class Entry { }
    event EventHandler Changed;
}
`)
	cls := unit.Declarations[0].(*Class)
	kinds := make([]string, len(cls.Members))
	for i, m := range cls.Members {
		kinds[i] = reflect.TypeOf(m).Elem().Name()
	}
	want := []string{
		"Field", "Property", "Property", "Property", "Property",
		"Constructor", "Constructor",
		"Method", "Method", "Method", "Method",
		"Nested",
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("member kinds = %v, want %v", kinds, want)
	}

	t.Run("field variables", func(t *testing.T) {
		f := cls.Members[0].(*Field)
		if !reflect.DeepEqual(f.Variables, []string{"count = 0", "limit = 10"}) {
			t.Errorf("Variables = %q", f.Variables)
		}
	})

	t.Run("property accessors", func(t *testing.T) {
		tests := []struct {
			index       int
			name        string
			get, setter bool
		}{
			{1, "Owner", true, true},
			{2, "Balance", true, true},
			{3, "Id", true, false},
			{4, "Twice", false, false},
		}
		for _, tt := range tests {
			p := cls.Members[tt.index].(*Property)
			if p.Name != tt.name || p.HasGetter != tt.get || p.HasSetter != tt.setter {
				t.Errorf("property %d = %+v", tt.index, p)
			}
		}
	})

	t.Run("static constructor", func(t *testing.T) {
		c := cls.Members[5].(*Constructor)
		if !c.IsStatic || !reflect.DeepEqual(c.Body, []string{"count = 1;"}) {
			t.Errorf("constructor = %+v", c)
		}
	})

	t.Run("constructor", func(t *testing.T) {
		c := cls.Members[6].(*Constructor)
		if c.BaseArguments == nil || *c.BaseArguments != "owner" {
			t.Errorf("BaseArguments = %v", c.BaseArguments)
		}
		wantParams := []Parameter{{Name: "owner"}, {Name: "initial", Default: "0m"}}
		if !reflect.DeepEqual(c.Parameters, wantParams) {
			t.Errorf("Parameters = %+v", c.Parameters)
		}
		wantBody := []string{"Owner = owner;", "if (initial != 0) { Deposit(initial); }"}
		if !reflect.DeepEqual(c.Body, wantBody) {
			t.Errorf("Body = %q", c.Body)
		}
	})

	t.Run("methods", func(t *testing.T) {
		sum := cls.Members[8].(*Method)
		if sum.ExpressionBody != "values.Length" || !sum.HasBody {
			t.Errorf("Sum = %+v", sum)
		}
		if len(sum.Parameters) != 1 || !sum.Parameters[0].IsParams {
			t.Errorf("Sum parameters = %+v", sum.Parameters)
		}
		closeMethod := cls.Members[9].(*Method)
		if closeMethod.HasBody {
			t.Error("abstract method should have no body")
		}
		log := cls.Members[10].(*Method)
		if len(log.Annotations) != 1 || !reflect.DeepEqual(log.Annotations[0].Arguments, []string{`"console.log(1);"`}) {
			t.Errorf("Log annotations = %+v", log.Annotations)
		}
	})

	t.Run("nested class", func(t *testing.T) {
		nested := cls.Members[11].(*Nested)
		if nested.Declaration.DeclarationName() != "Entry" {
			t.Errorf("nested = %q", nested.Declaration.DeclarationName())
		}
	})
}

func TestUnitFromSourceEnum(t *testing.T) {
	unit := mustUnit(t, "[Flags] enum Color : byte { Red, Green = 2, Blue = Green << 1 }")
	enum := unit.Declarations[0].(*Enum)
	want := []EnumMember{{"Red", ""}, {"Green", "2"}, {"Blue", "Green << 1"}}
	if !reflect.DeepEqual(enum.Members, want) {
		t.Errorf("Members = %+v, want %+v", enum.Members, want)
	}
	if len(enum.Annotations) != 1 || enum.Annotations[0].Name != "Flags" {
		t.Errorf("Annotations = %+v", enum.Annotations)
	}
}

func TestUnitFromSourceStructsAndRecords(t *testing.T) {
	unit := mustUnit(t, "struct P { public int X; }\nrecord R(int A) : Base(A);")
	if _, ok := unit.Declarations[0].(*Class); !ok {
		t.Errorf("struct: got %T, want *Class", unit.Declarations[0])
	}
	rec, ok := unit.Declarations[1].(*Class)
	if !ok {
		t.Fatalf("record: got %T, want *Class", unit.Declarations[1])
	}
	if !reflect.DeepEqual(rec.BaseTypes, []string{"Base"}) {
		t.Errorf("record BaseTypes = %q", rec.BaseTypes)
	}
}

func TestUnitFromSourceStray(t *testing.T) {
	unit := mustUnit(t, "Console.WriteLine(1);\nclass A {}")
	if len(unit.Stray) != 1 {
		t.Fatalf("got %d stray items, want 1", len(unit.Stray))
	}
	stray := unit.Stray[0]
	if stray.Kind != "statement" || stray.Text != "Console.WriteLine(1);" || stray.Position.Line != 1 {
		t.Errorf("stray = %+v", stray)
	}
	if len(unit.Declarations) != 1 {
		t.Errorf("got %d declarations, want 1", len(unit.Declarations))
	}
}

func TestUnitFromSourceIgnoresDelegatesAndUsings(t *testing.T) {
	unit := mustUnit(t, "using System;\ndelegate void D();\n[assembly: X]\nclass A {}")
	if len(unit.Declarations) != 1 || len(unit.Stray) != 0 {
		t.Errorf("unit = %+v", unit)
	}
}

func TestUnitFromSourceIncomplete(t *testing.T) {
	for _, source := range []string{"", "class A {"} {
		_, err := UnitFromSource([]byte(source))
		if !errors.Is(err, ErrIncomplete) {
			t.Errorf("UnitFromSource(%q) error = %v, want ErrIncomplete", source, err)
		}
	}
}

func TestUnitFromSourceVerbatimIdentifiers(t *testing.T) {
	unit := mustUnit(t, "class @class { void @event(int @in) {} }")
	cls := unit.Declarations[0].(*Class)
	if cls.Name != "class" {
		t.Errorf("Name = %q, want %q", cls.Name, "class")
	}
	m := cls.Members[0].(*Method)
	if m.Name != "event" || m.Parameters[0].Name != "in" {
		t.Errorf("method = %+v", m)
	}
}

func TestUnitFromSourceByteOrderMark(t *testing.T) {
	unit := mustUnit(t, "\uFEFFusing System;\r\nnamespace N { class A { void M() { x = 1; } } }")
	if len(unit.Stray) != 0 {
		t.Fatalf("stray = %+v, want none", unit.Stray)
	}
	ns, ok := unit.Declarations[0].(*Namespace)
	if !ok || ns.Name != "N" {
		t.Fatalf("got %+v, want namespace N", unit.Declarations[0])
	}
	m := ns.Members[0].(*Class).Members[0].(*Method)
	if !reflect.DeepEqual(m.Body, []string{"x = 1;"}) {
		t.Errorf("Body = %q", m.Body)
	}
}
