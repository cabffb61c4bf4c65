package modules

import (
	"path/filepath"
	"strings"

	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/config"
)

// Module is one loaded source file plus what the analyzer learned from
// it. The loader hands out the same instance for repeated loads of the
// same canonical path.
type Module struct {
	Path    string // canonical absolute path
	Dir     string
	Name    string // short module name: last path component, no extension
	Program *ast.Program

	// Analyzed is set once the analyzer has merged this module; repeat
	// imports are then cheap.
	Analyzed bool
}

// ModuleName derives the short module name from a path:
// "geometry/math.wyn" -> "math".
func ModuleName(path string) string {
	base := filepath.Base(path)
	for _, ext := range config.SourceFileExtensions {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
