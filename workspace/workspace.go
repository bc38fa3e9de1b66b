package workspace

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/sharpjs/csharp"
	"github.com/dhamidi/sharpjs/csharp/parser"
	"github.com/dhamidi/sharpjs/transpile"
)

// SourceExt is the extension of the files a workspace tracks.
const SourceExt = ".cs"

// Workspace is the set of source files under a root directory together
// with their cached parse results.
type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*File
	opts    []transpile.Option
	log     commonlog.Logger
}

type File struct {
	Path    string
	Content []byte
	// AST is nil when the parser could not produce a complete tree.
	AST  *parser.Node
	Unit csharp.Unit
	// Err is the reason the file cannot be translated, nil when it can.
	Err error
}

// New returns an empty workspace rooted at rootDir. The options are
// passed to the translator on every Compile.
func New(rootDir string, opts ...transpile.Option) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*File),
		opts:    opts,
		log:     commonlog.GetLogger("sharpjs.workspace"),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// ScanAll loads every source file below the root directory. Hidden
// directories are skipped.
func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.rootDir && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			if err := w.ScanFile(path); err != nil {
				w.log.Warningf("scan %s: %s", path, err)
			}
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile replaces the content of path and reparses it.
func (w *Workspace) UpdateFile(path string, content []byte) {
	file := parseFile(path, content)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = file
	w.log.Infof("updated %s", path)
}

func parseFile(path string, content []byte) *File {
	src := transpile.Source{Name: filepath.Base(path), Text: string(content)}
	var ast *parser.Node
	if !transpile.IsBlank(src.Text) {
		ast = parser.ParseCompilationUnit(bytes.NewReader(content), parser.WithFile(src.Name)).Finish()
	}
	unit, err := transpile.UnitFromTree(src, ast)
	return &File{
		Path:    path,
		Content: content,
		AST:     ast,
		Unit:    unit,
		Err:     err,
	}
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.files[path]; ok {
		delete(w.files, path)
		w.log.Infof("removed %s", path)
	}
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Paths returns the tracked file paths in sorted order, which is also the
// order their units are compiled in.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.sortedPathsLocked()
}

func (w *Workspace) sortedPathsLocked() []string {
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Compile translates every tracked file in path order. It fails with the
// error of the first file that cannot be translated.
func (w *Workspace) Compile() (string, error) {
	w.mu.RLock()
	paths := w.sortedPathsLocked()
	units := make([]csharp.Unit, 0, len(paths))
	for _, path := range paths {
		f := w.files[path]
		if f.Err != nil {
			w.mu.RUnlock()
			return "", f.Err
		}
		units = append(units, f.Unit)
	}
	w.mu.RUnlock()

	if len(units) == 0 {
		return "", ErrNoSources
	}
	return transpile.Assemble(units, w.opts...), nil
}

// ErrNoSources is returned by Compile when no file is tracked.
var ErrNoSources = errors.New("workspace has no source files")

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
