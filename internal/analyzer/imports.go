package analyzer

import (
	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/diagnostics"
)

// processImport loads a module, registers its short name for ambiguity
// tracking, analyzes it under its own module cursor, and merges its
// function declarations into the importing program so the code
// generator sees one compilation unit. Visibility stays enforced
// through the visibility table even after the merge.
func (a *Analyzer) processImport(s *ast.ImportStatement, program *ast.Program) {
	short := s.ShortName()
	a.imports.Register(short, s.Path, s.GetToken().Line)

	if a.loader == nil {
		a.errorf(diagnostics.ErrA011, s.GetToken(), "no module loader configured for import "+s.Path)
		return
	}

	mod, err := a.loader.Load(s.Path)
	if err != nil {
		a.errorf(diagnostics.ErrA011, s.GetToken(), err.Error())
		return
	}

	if a.analyzedModules[mod.Path] {
		return
	}
	a.analyzedModules[mod.Path] = true

	// Enter the module: swap the current-module cursor and file, run
	// the declaration passes and body checks, then restore.
	prevModule, prevFile := a.currentModule, a.currentFile
	a.currentModule, a.currentFile = mod.Name, mod.Path

	a.declareTypes(mod.Program)
	a.declareSignatures(mod.Program)
	a.checkBodies(mod.Program)

	a.currentModule, a.currentFile = prevModule, prevFile
	mod.Analyzed = true

	// Merge the module's top-level functions (and the types they rely
	// on) into the importing program. Non-public functions come along
	// so generated code links, but stay non-callable across the module
	// boundary via the visibility table.
	for _, stmt := range mod.Program.Statements {
		switch unwrapExport(stmt).(type) {
		case *ast.FunctionStatement, *ast.StructStatement, *ast.EnumStatement,
			*ast.ImplStatement, *ast.ConstStatement:
			program.Statements = append(program.Statements, stmt)
		}
	}
}
