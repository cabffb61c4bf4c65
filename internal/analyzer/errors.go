package analyzer

import (
	"strings"

	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/symbols"
	"github.com/wynlang/wyn/internal/token"
	"github.com/wynlang/wyn/internal/typesystem"
)

// typeMismatch reports expected vs actual with the checked position.
func (a *Analyzer) typeMismatch(tok token.Token, expected, actual typesystem.Type, context string) {
	a.errorf(diagnostics.ErrA003, tok,
		"expected "+expected.String()+", got "+actual.String()+" in "+context)
}

// requireCompatible records a mismatch diagnostic unless actual may
// flow into expected.
func (a *Analyzer) requireCompatible(expected, actual typesystem.Type, tok token.Token, context string) {
	if typesystem.Compatible(expected, actual) {
		return
	}
	if isOptionalMismatch(expected, actual) {
		a.errorf(diagnostics.ErrA010, tok, actual.String(), expected.String())
		return
	}
	a.typeMismatch(tok, expected, actual, context)
}

// reportUndefined records an undefined-identifier diagnostic with up to
// three fuzzy suggestions from names in scope.
func (a *Analyzer) reportUndefined(e *ast.Identifier, scope *symbols.Scope) {
	err := diagnostics.NewAnalyzerError(diagnostics.ErrA001, e.Token, e.Value)
	if suggestions := suggestNames(e.Value, scope.AllNames(), 3); len(suggestions) > 0 {
		err.Hint = "did you mean " + strings.Join(suggestions, ", ") + "?"
	}
	a.addError(err)
}

// suggestNames picks candidates within Hamming-style distance 2 of the
// misspelled name. Equal-length names compare position-wise; a length
// difference of one counts as one edit plus positional drift.
func suggestNames(name string, candidates []string, limit int) []string {
	var result []string
	for _, candidate := range candidates {
		if candidate == name {
			continue
		}
		if nameDistance(name, candidate) <= 2 {
			result = append(result, candidate)
			if len(result) >= limit {
				break
			}
		}
	}
	return result
}

func nameDistance(a, b string) int {
	la, lb := len(a), len(b)
	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	if diff > 2 {
		return diff
	}
	// Compare the overlapping prefix position-wise; the length gap
	// counts as one edit per missing character.
	n := la
	if lb < n {
		n = lb
	}
	dist := diff
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			dist++
			if dist > 2 {
				return dist
			}
		}
	}
	return dist
}
