package analyzer

import (
	"strings"

	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/token"
	"github.com/wynlang/wyn/internal/typesystem"
)

// checkExhaustiveness fires when the matched value is an enum and no
// arm is a catch-all: every declared variant must appear in some arm.
// Option, result, and union subjects are not required to be exhaustive;
// guards and bindings are assumed to cover.
func (a *Analyzer) checkExhaustiveness(tok token.Token, subject typesystem.Type, patterns []ast.Pattern) {
	enum, ok := subject.(typesystem.TEnum)
	if !ok {
		return
	}

	covered := make(map[string]bool)
	for _, p := range patterns {
		if isCatchAll(p) {
			return
		}
		collectCoveredVariants(p, enum.Name, covered)
	}

	var missing []string
	for _, v := range enum.Variants {
		if !covered[v.Name] {
			missing = append(missing, v.Name)
		}
	}

	if len(missing) > 0 {
		a.errorf(diagnostics.ErrA009, tok, strings.Join(missing, ", "))
	}
}

// isCatchAll reports whether a pattern matches every value of the
// subject: wildcards, bare identifier bindings, and or-patterns with a
// catch-all alternative. Arm guards are not seen here, so a guarded
// catch-all still counts.
func isCatchAll(p ast.Pattern) bool {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return true
	case *ast.IdentifierPattern:
		return true
	case *ast.OrPattern:
		for _, alt := range pat.Alternatives {
			if isCatchAll(alt) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// collectCoveredVariants records variant names covered by a pattern:
// bare variant identifiers, Enum::Variant and Enum.Variant forms, and
// every alternative of an or-pattern. Guarded arms cover their variants
// like unguarded ones.
func collectCoveredVariants(p ast.Pattern, enumName string, covered map[string]bool) {
	switch pat := p.(type) {
	case *ast.EnumVariantPattern:
		if pat.EnumName != nil && pat.EnumName.Value != enumName {
			return
		}
		covered[pat.Variant.Value] = true
	case *ast.OrPattern:
		for _, alt := range pat.Alternatives {
			collectCoveredVariants(alt, enumName, covered)
		}
	}
}
