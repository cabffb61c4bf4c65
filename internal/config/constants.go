package config

const SourceFileExt = ".wyn"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".wyn"}

// Built-in function names with hardcoded call contracts in the analyzer
const (
	PrintFuncName   = "print"
	PrintlnFuncName = "println"
	LenFuncName     = "len"
	AssertFuncName  = "assert"
	TypeofFuncName  = "typeof"
	ExitFuncName    = "exit"
	PanicFuncName   = "panic"
	SleepFuncName   = "sleep"
	SomeFuncName    = "some"
	NoneFuncName    = "none"
	OkFuncName      = "ok"
	ErrFuncName     = "err"
)

// BuiltinModules are the module namespaces whose methods desugar from
// obj.m(args) to Module::m(args).
var BuiltinModules = map[string]bool{
	"File":    true,
	"Math":    true,
	"HashMap": true,
	"HashSet": true,
	"Json":    true,
	"Http":    true,
	"Time":    true,
	"Env":     true,
	"Process": true,
	"Term":    true,
	"Crypto":  true,
}

// EnumToStringSuffix names the implicit per-enum helper registered in
// pass 0: <EnumName>_toString : (Enum) -> String.
const EnumToStringSuffix = "_toString"
