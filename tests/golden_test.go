package tests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/wynlang/wyn/internal/analyzer"
	"github.com/wynlang/wyn/internal/modules"
)

// TestGolden drives the frontend end to end over the archives in
// tests/golden. Each archive holds an input.wyn source and a
// diagnostics file: one expected-substring per line, or empty for a
// clean analysis.
func TestGolden(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("golden", "*.txt"))
	require.NoError(t, err)
	require.NotEmpty(t, archives, "no golden archives found")

	for _, path := range archives {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			archive := txtar.Parse(data)

			var source string
			var expected []string
			for _, file := range archive.Files {
				switch file.Name {
				case "input.wyn":
					source = string(file.Data)
				case "diagnostics":
					for _, line := range strings.Split(strings.TrimSpace(string(file.Data)), "\n") {
						line = strings.TrimSpace(line)
						if line != "" {
							expected = append(expected, line)
						}
					}
				}
			}
			require.NotEmpty(t, source, "%s has no input.wyn", path)

			program, parseErrs := modules.Parse(source)
			require.Empty(t, parseErrs, "parse errors in %s", path)

			a, err := analyzer.New()
			require.NoError(t, err)
			errs := a.Check(program)

			if len(expected) == 0 {
				assert.Empty(t, errs, "expected clean analysis")
				assert.False(t, a.HadError())
				return
			}

			assert.True(t, a.HadError())
			var rendered []string
			for _, e := range errs {
				rendered = append(rendered, e.Error())
			}
			all := strings.Join(rendered, "\n")
			for _, want := range expected {
				assert.Contains(t, all, want)
			}
		})
	}
}
