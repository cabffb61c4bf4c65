// Package main implements the Wyn compiler CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wynlang/wyn/internal/analyzer"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/lexer"
	"github.com/wynlang/wyn/internal/modules"
	"github.com/wynlang/wyn/internal/parser"
	"github.com/wynlang/wyn/internal/pipeline"
	"github.com/wynlang/wyn/internal/prettyprinter"
)

var version = "0.3.0"

func main() {
	rootCmd := &cobra.Command{
		Use:          "wyn <file.wyn>",
		Short:        "Wyn - a small statically-typed application language",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return compile(args[0], compileOptions{
				output:   flagOutput,
				coverage: flagCoverage,
				emitOnly: flagEmitC,
			})
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output path for the compiled binary")
	rootCmd.PersistentFlags().BoolVar(&flagCoverage, "coverage", false, "instrument the build for coverage")
	rootCmd.PersistentFlags().BoolVar(&flagEmitC, "emit-c", false, "stop after emission planning, do not build")

	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	flagOutput   string
	flagCoverage bool
	flagEmitC    bool
)

type compileOptions struct {
	output   string
	coverage bool
	emitOnly bool
	dumpAST  bool
}

func checkCmd() *cobra.Command {
	var dumpAST bool
	cmd := &cobra.Command{
		Use:   "check <file.wyn>",
		Short: "Parse and analyze a source file without building",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compile(args[0], compileOptions{emitOnly: true, dumpAST: dumpAST})
		},
	}
	cmd.Flags().BoolVar(&dumpAST, "ast", false, "dump the typed AST after analysis")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the compiler version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("wyn %s\n", version)
		},
	}
}

// compile runs the pipeline: lex, parse, analyze. Code generation is
// gated on a clean analysis verdict.
func compile(path string, opts compileOptions) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	a, err := analyzer.New()
	if err != nil {
		return fmt.Errorf("analyzer init: %w", err)
	}
	a.SetLoader(modules.NewLoader(filepath.Dir(path)))

	ctx := pipeline.NewPipelineContext(string(source))
	ctx.FilePath = path

	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.AnalyzerProcessor{Analyzer: a},
	)
	ctx = p.Run(ctx)

	if len(ctx.Errors) > 0 {
		renderer := diagnostics.NewRenderer(os.Stderr)
		renderer.RenderAll(ctx.Errors)
		return fmt.Errorf("compilation failed")
	}

	if opts.dumpAST {
		fmt.Print(prettyprinter.NewTreePrinter().Print(ctx.AstRoot))
	}

	if opts.emitOnly {
		fmt.Printf("%s: analysis clean (%d instantiation(s) recorded)\n",
			path, len(a.Generics().Instantiations()))
		return nil
	}

	// The emitter consumes the analyzed program and the global scope;
	// building native output is handled outside this tree.
	out := opts.output
	if out == "" {
		out = defaultOutput(path)
	}
	fmt.Printf("%s: analysis clean, would emit %s", path, out)
	if opts.coverage {
		fmt.Print(" (with coverage instrumentation)")
	}
	fmt.Println()
	return nil
}

func defaultOutput(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}
