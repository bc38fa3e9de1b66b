package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dhamidi/sharpjs/transpile"
	"github.com/dhamidi/sharpjs/workspace"
)

// readSources loads the sources named on the command line, in argument
// order. A directory stands for its source files sorted by name. With no
// arguments the source is read from stdin.
func readSources(args []string, stdin io.Reader) ([]transpile.Source, error) {
	if len(args) == 0 {
		text, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []transpile.Source{{Name: "<stdin>", Text: string(text)}}, nil
	}

	var sources []transpile.Source
	for _, arg := range args {
		paths, err := expandPath(arg)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			text, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read source: %w", err)
			}
			sources = append(sources, transpile.Source{Name: path, Text: string(text)})
		}
	}
	return sources, nil
}

func expandPath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	// Glob returns matches in lexical order.
	paths, err := filepath.Glob(filepath.Join(path, "*"+workspace.SourceExt))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: no %s files", path, workspace.SourceExt)
	}
	return paths, nil
}

// writeOutput writes text to path, or to w when path is empty or "-".
func writeOutput(path string, w io.Writer, text string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(w, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
