package diagnostics

import (
	"fmt"

	"github.com/wynlang/wyn/internal/token"
)

// Phase represents the processing phase where an error occurred
type Phase string

const (
	PhaseLexer    Phase = "lexer"
	PhaseParser   Phase = "parser"
	PhaseAnalyzer Phase = "analyzer"
)

type ErrorCode string

const (
	// Lexer Errors
	ErrL001 ErrorCode = "L001" // Invalid character
	ErrL002 ErrorCode = "L002" // Unterminated string

	// Parser Errors
	ErrP001 ErrorCode = "P001" // Unexpected token
	ErrP002 ErrorCode = "P002" // Expected identifier
	ErrP003 ErrorCode = "P003" // Could not parse literal
	ErrP004 ErrorCode = "P004" // No prefix parse function found
	ErrP005 ErrorCode = "P005" // Expected specific token

	// Analyzer Errors
	ErrA001 ErrorCode = "A001" // Undefined identifier
	ErrA002 ErrorCode = "A002" // Undefined function
	ErrA003 ErrorCode = "A003" // Type mismatch
	ErrA004 ErrorCode = "A004" // Wrong argument count
	ErrA005 ErrorCode = "A005" // Duplicate signature
	ErrA006 ErrorCode = "A006" // Ambiguous overload
	ErrA007 ErrorCode = "A007" // Ambiguous module
	ErrA008 ErrorCode = "A008" // Visibility violation
	ErrA009 ErrorCode = "A009" // Non-exhaustive match
	ErrA010 ErrorCode = "A010" // Non-optional nullability
	ErrA011 ErrorCode = "A011" // Illegal construct
	ErrA012 ErrorCode = "A012" // Undeclared type
)

var errorTemplates = map[ErrorCode]string{
	ErrL001: "invalid character: '%s'",
	ErrL002: "unterminated string literal",
	ErrP001: "unexpected token: expected '%s', but got '%s'",
	ErrP002: "expected an identifier, got '%s'",
	ErrP003: "could not parse '%s' as %s",
	ErrP004: "cannot parse expression starting with '%s'",
	ErrP005: "expected next token to be '%s', but got '%s' instead",
	ErrA001: "undefined identifier: '%s'",
	ErrA002: "undefined function: '%s'",
	ErrA003: "type mismatch: %s",
	ErrA004: "wrong argument count for '%s': expected %d, got %d",
	ErrA005: "duplicate signature for '%s': %s",
	ErrA006: "ambiguous overload for '%s': multiple candidates match equally well",
	ErrA007: "ambiguous module '%s': imported from %s (line %d) and %s (line %d); use a fully-qualified path",
	ErrA008: "function '%s' is not public in module '%s'",
	ErrA009: "non-exhaustive match, missing case: %s",
	ErrA010: "cannot assign optional %s to non-optional %s without unwrapping",
	ErrA011: "illegal construct: %s",
	ErrA012: "undeclared type: '%s'",
}

type DiagnosticError struct {
	Code  ErrorCode
	Phase Phase
	Args  []interface{}
	Token token.Token
	File  string
	Hint  string // Optional hint for fixing the error
}

func (e *DiagnosticError) Error() string {
	template, ok := errorTemplates[e.Code]
	if !ok {
		return fmt.Sprintf("unknown error code: %s", e.Code)
	}

	message := fmt.Sprintf(template, e.Args...)

	prefix := ""
	if e.File != "" {
		prefix = fmt.Sprintf("%s: ", e.File)
	}

	phaseStr := ""
	if e.Phase != "" {
		phaseStr = fmt.Sprintf("[%s] ", e.Phase)
	}

	var result string
	if e.Token.Line > 0 {
		result = fmt.Sprintf("%s%serror at %d:%d [%s]: %s", prefix, phaseStr, e.Token.Line, e.Token.Column, e.Code, message)
	} else {
		result = fmt.Sprintf("%s%serror [%s]: %s", prefix, phaseStr, e.Code, message)
	}

	if e.Hint != "" {
		result += "\n  hint: " + e.Hint
	}
	return result
}

// NewError creates an error with just code and token
func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:  code,
		Token: tok,
		Args:  args,
	}
}

// NewPhaseError creates an error with phase information
func NewPhaseError(phase Phase, code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:  code,
		Phase: phase,
		Token: tok,
		Args:  args,
	}
}

// NewAnalyzerError creates an analyzer phase error
func NewAnalyzerError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	return NewPhaseError(PhaseAnalyzer, code, tok, args...)
}

// InternalError creates an internal error (for "should never happen" cases)
func InternalError(tok token.Token, message string) *DiagnosticError {
	return NewAnalyzerError(ErrA011, tok, "internal error: "+message)
}

// WrapError wraps an existing error with phase and location info
func WrapError(phase Phase, tok token.Token, err error) *DiagnosticError {
	if ce, ok := err.(*DiagnosticError); ok {
		if ce.Phase == "" {
			ce.Phase = phase
		}
		if ce.Token.Line == 0 && tok.Line > 0 {
			ce.Token = tok
		}
		return ce
	}
	return NewPhaseError(phase, ErrA003, tok, err.Error())
}
