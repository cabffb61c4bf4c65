// Package config carries the analyzer's data tables: the standard
// library signature surface and the per-receiver method dispatch table.
// Both are data, not code — an embedded YAML document parsed once at
// startup.
package config

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed builtins.yaml
var builtinsYAML []byte

// BuiltinSignature describes one standard-library function seeded into
// the global scope. Param and Return are type strings in the analyzer's
// own notation; lowercase names are generic placeholders.
type BuiltinSignature struct {
	Name     string   `yaml:"name"`
	Params   []string `yaml:"params"`
	Return   string   `yaml:"return"`
	Variadic bool     `yaml:"variadic,omitempty"`
}

// MethodEntry is one row of the method dispatch table: a method on a
// built-in receiver kind, the backing function emitted for it, and the
// receiver-passing convention.
type MethodEntry struct {
	Receiver string   `yaml:"receiver"`
	Name     string   `yaml:"name"`
	Params   []string `yaml:"params"`
	Return   string   `yaml:"return"`
	CFunc    string   `yaml:"cfunc"`
	ByRef    bool     `yaml:"by_ref,omitempty"`
}

type tables struct {
	Builtins []BuiltinSignature `yaml:"builtins"`
	Methods  []MethodEntry      `yaml:"methods"`
}

var (
	loadOnce   sync.Once
	loadErr    error
	loadedData tables
)

func load() {
	loadErr = yaml.Unmarshal(builtinsYAML, &loadedData)
	if loadErr != nil {
		loadErr = fmt.Errorf("parsing embedded builtins table: %w", loadErr)
	}
}

// Builtins returns the standard library signature table.
func Builtins() ([]BuiltinSignature, error) {
	loadOnce.Do(load)
	return loadedData.Builtins, loadErr
}

// Methods returns the method dispatch table.
func Methods() ([]MethodEntry, error) {
	loadOnce.Do(load)
	return loadedData.Methods, loadErr
}
