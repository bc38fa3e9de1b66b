package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type notification struct {
	method string
	params any
}

func testContext(sent *[]notification) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			*sent = append(*sent, notification{method, params})
		},
	}
}

func newTestServer(t *testing.T) *LSPServer {
	t.Helper()
	ls := NewLSPServer("test")
	root := t.TempDir()
	if _, err := ls.initialize(&glsp.Context{}, &protocol.InitializeParams{RootPath: &root}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return ls
}

func TestLSPInitializeAdvertisesCompile(t *testing.T) {
	ls := NewLSPServer("test")
	root := t.TempDir()
	result, err := ls.initialize(&glsp.Context{}, &protocol.InitializeParams{RootPath: &root})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	init := result.(protocol.InitializeResult)
	provider := init.Capabilities.ExecuteCommandProvider
	if provider == nil || len(provider.Commands) != 1 || provider.Commands[0] != CommandCompile {
		t.Errorf("ExecuteCommandProvider = %+v", provider)
	}
	if ls.workspace.RootDir() != root {
		t.Errorf("root = %q, want %q", ls.workspace.RootDir(), root)
	}
}

func TestLSPDidOpenPublishesDiagnostics(t *testing.T) {
	ls := newTestServer(t)
	var sent []notification
	uri := "file:///project/a.cs"

	err := ls.textDocumentDidOpen(testContext(&sent), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "class A { }\nRun();"},
	})
	if err != nil {
		t.Fatalf("didOpen: %v", err)
	}
	if len(sent) != 1 || sent[0].method != protocol.ServerTextDocumentPublishDiagnostics {
		t.Fatalf("notifications = %+v", sent)
	}
	params := sent[0].params.(protocol.PublishDiagnosticsParams)
	if params.URI != uri || len(params.Diagnostics) != 1 {
		t.Fatalf("params = %+v", params)
	}
	d := params.Diagnostics[0]
	if *d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity = %v, want error", *d.Severity)
	}
	if d.Range.Start.Line != 1 || d.Range.Start.Character != 0 {
		t.Errorf("start = %+v, want 1:0", d.Range.Start)
	}

	sent = nil
	err = ls.textDocumentDidChange(testContext(&sent), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "class A { }"}},
	})
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}
	params = sent[0].params.(protocol.PublishDiagnosticsParams)
	if len(params.Diagnostics) != 0 {
		t.Errorf("diagnostics after fix = %+v", params.Diagnostics)
	}
	if params.Diagnostics == nil {
		t.Error("cleared diagnostics must be an empty list, not null")
	}
}

func TestLSPExecuteCompile(t *testing.T) {
	ls := newTestServer(t)
	ls.workspace.UpdateFile("/project/a.cs", []byte("class A { [EntryPoint] static void Run() { } }"))

	target := filepath.Join(t.TempDir(), "out.js")
	result, err := ls.workspaceExecuteCommand(&glsp.Context{}, &protocol.ExecuteCommandParams{
		Command:   CommandCompile,
		Arguments: []any{target},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	output := result.(string)
	if !strings.Contains(output, "A.Run();\n") {
		t.Errorf("output = %q", output)
	}
	written, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(written) != output {
		t.Error("written file differs from the returned output")
	}

	if _, err := ls.workspaceExecuteCommand(&glsp.Context{}, &protocol.ExecuteCommandParams{Command: "other"}); err == nil {
		t.Error("unknown command did not fail")
	}
	if _, err := ls.workspaceExecuteCommand(&glsp.Context{}, &protocol.ExecuteCommandParams{
		Command:   CommandCompile,
		Arguments: []any{42},
	}); err == nil {
		t.Error("non-string output path did not fail")
	}
}

func TestURIConversion(t *testing.T) {
	tests := []struct {
		uri  string
		path string
	}{
		{"file:///home/me/a.cs", "/home/me/a.cs"},
		{"file:///home/me/my%20dir/a.cs", "/home/me/my dir/a.cs"},
		{"untitled:1", "untitled:1"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := uriToPath(tt.uri)
			if err != nil {
				t.Fatalf("uriToPath: %v", err)
			}
			if got != tt.path {
				t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, got, tt.path)
			}
		})
	}

	if got := pathToURI("/home/me/my dir/a.cs"); got != "file:///home/me/my%20dir/a.cs" {
		t.Errorf("pathToURI = %q", got)
	}
}

func TestToProtocolPosition(t *testing.T) {
	if got := toProtocolPosition(3, 5); got.Line != 2 || got.Character != 4 {
		t.Errorf("toProtocolPosition(3, 5) = %+v", got)
	}
	if got := toProtocolPosition(0, 0); got.Line != 0 || got.Character != 0 {
		t.Errorf("toProtocolPosition(0, 0) = %+v", got)
	}
}
