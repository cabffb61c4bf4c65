package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/config"
	"github.com/wynlang/wyn/internal/lexer"
	"github.com/wynlang/wyn/internal/parser"
)

// Loader handles loading modules and their dependencies. Caching by
// canonical path lives here, not in the analyzer: loading the same path
// twice returns the same Program instance.
type Loader struct {
	BaseDir       string
	LoadedModules map[string]*Module // cache keyed by canonical path
	Processing    map[string]bool    // cycle detection during loading
}

func NewLoader(baseDir string) *Loader {
	return &Loader{
		BaseDir:       baseDir,
		LoadedModules: make(map[string]*Module),
		Processing:    make(map[string]bool),
	}
}

// Resolve maps an import path to a file path relative to the base
// directory, appending the source extension when missing.
func (l *Loader) Resolve(importPath string) string {
	path := importPath
	if !strings.HasSuffix(path, config.SourceFileExt) {
		path += config.SourceFileExt
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.BaseDir, path)
}

// Load parses the module at the given import path, caching by canonical
// path. Re-entrant loads of a module currently being processed are
// import cycles.
func (l *Loader) Load(importPath string) (*Module, error) {
	filePath := l.Resolve(importPath)

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	if mod, ok := l.LoadedModules[absPath]; ok {
		return mod, nil
	}

	if l.Processing[absPath] {
		return nil, fmt.Errorf("import cycle detected at %s", importPath)
	}
	l.Processing[absPath] = true
	defer delete(l.Processing, absPath)

	source, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot load module %s: %w", importPath, err)
	}

	program, errs := Parse(string(source))
	if len(errs) > 0 {
		return nil, fmt.Errorf("parse errors in module %s: %s", importPath, errs[0])
	}
	program.Path = absPath

	mod := &Module{
		Path:    absPath,
		Dir:     filepath.Dir(absPath),
		Name:    ModuleName(absPath),
		Program: program,
	}
	l.LoadedModules[absPath] = mod
	return mod, nil
}

// Parse runs the lexer and parser over a source string. Exposed so the
// driver and tests share one entry point.
func Parse(source string) (*ast.Program, []error) {
	stream := lexer.NewTokenStream(lexer.New(source))
	p := parser.New(stream)
	program := p.ParseProgram()

	var errs []error
	for _, e := range p.Errors() {
		errs = append(errs, e)
	}
	return program, errs
}
