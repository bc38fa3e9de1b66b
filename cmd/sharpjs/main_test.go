package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadSourcesExpandsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b.cs", "class B {}")
	writeSource(t, dir, "a.cs", "class A {}")
	writeSource(t, dir, "readme.md", "# not source")
	extra := writeSource(t, t.TempDir(), "z.cs", "class Z {}")

	sources, err := readSources([]string{extra, dir}, nil)
	if err != nil {
		t.Fatalf("readSources: %v", err)
	}
	var names []string
	for _, s := range sources {
		names = append(names, filepath.Base(s.Name))
	}
	if got := strings.Join(names, " "); got != "z.cs a.cs b.cs" {
		t.Errorf("sources = %s, want z.cs a.cs b.cs", got)
	}
}

func TestReadSourcesStdin(t *testing.T) {
	sources, err := readSources(nil, strings.NewReader("class A {}"))
	if err != nil {
		t.Fatalf("readSources: %v", err)
	}
	if len(sources) != 1 || sources[0].Name != "<stdin>" || sources[0].Text != "class A {}" {
		t.Errorf("sources = %+v", sources)
	}
}

func TestReadSourcesErrors(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{"missing file", filepath.Join(t.TempDir(), "missing.cs")},
		{"empty directory", t.TempDir()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := readSources([]string{tt.arg}, nil); err == nil {
				t.Errorf("readSources(%q) succeeded", tt.arg)
			}
		})
	}
}

func TestCompileCmd(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.cs", "class A { [EntryPoint] static void Run() { } }")
	writeSource(t, dir, "b.cs", "class B { [EntryPoint] static void Main() { } }")

	t.Run("stdout", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newCompileCmd()
		cmd.SetArgs([]string{"-j", "2", dir})
		cmd.SetOut(&out)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if !strings.Contains(out.String(), "A.Run();\nB.Main();\n") {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("output file", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "out.js")
		cmd := newCompileCmd()
		cmd.SetArgs([]string{"-o", target, dir})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		data, err := os.ReadFile(target)
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		if !strings.HasSuffix(string(data), "/* COMPILED WITH sharpjs */") {
			t.Errorf("output = %q", data)
		}
	})

	t.Run("shape error", func(t *testing.T) {
		bad := writeSource(t, t.TempDir(), "bad.cs", "Console.WriteLine(1);")
		cmd := newCompileCmd()
		cmd.SetArgs([]string{bad})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "shape error") {
			t.Errorf("Execute error = %v, want a shape error", err)
		}
	})
}

func TestCompileCmdStripAttributeSuffix(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.cs", "[ExcludeAttribute] class Hidden { }\n[ExcludeAttribute] enum HiddenEnum { A }\nclass Shown { }")

	tests := []struct {
		args   []string
		hidden bool
	}{
		{[]string{path}, true},
		{[]string{"--strip-attribute-suffix", path}, false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		cmd := newCompileCmd()
		cmd.SetArgs(tt.args)
		cmd.SetOut(&out)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute %v: %v", tt.args, err)
		}
		for _, marker := range []string{"Class: Hidden", "Enum: HiddenEnum"} {
			if got := strings.Contains(out.String(), marker); got != tt.hidden {
				t.Errorf("args %v: %s emitted = %v, want %v", tt.args, marker, got, tt.hidden)
			}
		}
	}
}

func TestModelCmdLineFormat(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.cs", "namespace N { enum E { X } }")
	var out bytes.Buffer
	cmd := newModelCmd()
	cmd.SetArgs([]string{"-f", "line", path})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := "namespace\tN\nenum\tN.E\tX\t-\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestParseCmdRejectsUnknownFormat(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.cs", "class A {}")
	cmd := newParseCmd()
	cmd.SetArgs([]string{"-f", "xml", path})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Error("Execute succeeded with an unknown format")
	}
}

func TestGrammarCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newGrammarCmd()
	cmd.SetArgs([]string{"--check"})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.String() != "ok\n" {
		t.Errorf("output = %q, want %q", out.String(), "ok\n")
	}
}

func TestGrammarCmdMatch(t *testing.T) {
	tests := []struct {
		args    []string
		want    string
		wantErr bool
	}{
		{[]string{"--match", "identifier", "_id1", "@class"}, "match\t_id1\nmatch\t@class\n", false},
		{[]string{"--match", "identifier", "abc def"}, "prefix 3\tabc def\n", true},
		{[]string{"--match", "integer_literal", "x"}, "none\tx\n", true},
		{[]string{"--match", "ClassDecl", "class A {}"}, "", true},
		{[]string{"stray"}, "", true},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			var out bytes.Buffer
			cmd := newGrammarCmd()
			cmd.SilenceUsage = true
			cmd.SetArgs(tt.args)
			cmd.SetOut(&out)
			cmd.SetErr(&bytes.Buffer{})
			err := cmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute error = %v, wantErr %v", err, tt.wantErr)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}
