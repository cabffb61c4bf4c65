package analyzer

import (
	"fmt"
	"sort"

	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/modules"
	"github.com/wynlang/wyn/internal/symbols"
	"github.com/wynlang/wyn/internal/token"
	"github.com/wynlang/wyn/internal/typesystem"
)

// ModuleLoader is the loader collaborator. Caching by canonical path is
// the loader's responsibility; the analyzer just asks.
type ModuleLoader interface {
	Load(path string) (*modules.Module, error)
}

// Analyzer performs semantic analysis on the AST. All state that the
// original design kept process-wide lives here: the scope chain head,
// the registries, the current-module cursor, and the accumulated
// diagnostics.
type Analyzer struct {
	global     *symbols.Scope
	types      *typesystem.Registry
	traits     *TraitRegistry
	generics   *GenericRegistry
	imports    *ImportTable
	visibility *VisibilityTable
	methods    *MethodTable
	loader     ModuleLoader

	errorSet map[string]*diagnostics.DiagnosticError

	// currentModule is empty while analyzing the entry file and holds
	// the module's short name during imported-module analysis.
	currentModule string
	currentFile   string

	// currentFunctionReturn is the declared return type of the function
	// whose body is being checked; return statements compare against it.
	currentFunctionReturn typesystem.Type

	inLoop   bool
	inLambda bool

	// analyzedModules guards against re-merging a module imported twice.
	analyzedModules map[string]bool

	// checkedFns marks function bodies already checked, so functions
	// merged from imported modules are not re-checked in the importing
	// unit.
	checkedFns map[*ast.FunctionStatement]bool
}

// New creates an Analyzer with seeded registries and builtin symbols.
func New() (*Analyzer, error) {
	a := &Analyzer{
		global:          symbols.NewScope(),
		types:           typesystem.NewRegistry(),
		traits:          NewTraitRegistry(),
		generics:        NewGenericRegistry(),
		imports:         NewImportTable(),
		visibility:      NewVisibilityTable(),
		errorSet:        make(map[string]*diagnostics.DiagnosticError),
		analyzedModules: make(map[string]bool),
		checkedFns:      make(map[*ast.FunctionStatement]bool),
	}
	if err := a.registerBuiltins(); err != nil {
		return nil, err
	}
	methods, err := loadMethodTable(a.types)
	if err != nil {
		return nil, err
	}
	a.methods = methods
	return a, nil
}

func (a *Analyzer) SetLoader(l ModuleLoader) {
	a.loader = l
}

// GlobalScope exposes the global symbol environment for code gen.
func (a *Analyzer) GlobalScope() *symbols.Scope { return a.global }

// TypeRegistry exposes the named-type store.
func (a *Analyzer) TypeRegistry() *typesystem.Registry { return a.types }

// Generics exposes the recorded instantiations for monomorphization.
func (a *Analyzer) Generics() *GenericRegistry { return a.generics }

// HadError reports whether any diagnostic was recorded. The flag is
// sticky by construction: errors accumulate and are never cleared.
func (a *Analyzer) HadError() bool { return len(a.errorSet) > 0 }

// addError records a diagnostic, deduplicating by position and code.
func (a *Analyzer) addError(err *diagnostics.DiagnosticError) {
	if err.File == "" && a.currentFile != "" {
		err.File = a.currentFile
	}
	key := fmt.Sprintf("%d:%d:%s", err.Token.Line, err.Token.Column, err.Code)
	a.errorSet[key] = err
}

func (a *Analyzer) errorf(code diagnostics.ErrorCode, tok token.Token, args ...interface{}) {
	a.addError(diagnostics.NewAnalyzerError(code, tok, args...))
}

// Errors returns all unique diagnostics sorted by position.
func (a *Analyzer) Errors() []*diagnostics.DiagnosticError {
	result := make([]*diagnostics.DiagnosticError, 0, len(a.errorSet))
	for _, err := range a.errorSet {
		result = append(result, err)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Token.Line != result[j].Token.Line {
			return result[i].Token.Line < result[j].Token.Line
		}
		if result[i].Token.Column != result[j].Token.Column {
			return result[i].Token.Column < result[j].Token.Column
		}
		return result[i].Code < result[j].Code
	})
	return result
}

// Check runs the three passes over a program. Each pass visits every
// statement even after errors, so a single run surfaces as many
// diagnostics as possible.
func (a *Analyzer) Check(program *ast.Program) []*diagnostics.DiagnosticError {
	a.declareTypes(program)
	a.declareSignatures(program)
	a.checkBodies(program)
	return a.Errors()
}

// getNodeToken extracts a token from an AST node if possible.
func getNodeToken(node ast.Node) token.Token {
	if node == nil {
		return token.Token{}
	}
	if getter, ok := node.(ast.TokenProvider); ok {
		return getter.GetToken()
	}
	return token.Token{}
}

// sentinel is returned by failed checks so analysis continues; by
// convention the sentinel type is Int.
func sentinel() typesystem.Type { return typesystem.Int }
