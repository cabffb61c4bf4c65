// Terminal rendering for diagnostics. Styled output is used only when
// stderr is a real terminal; piped output stays plain for tooling.
package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B9D")).
			Bold(true)

	styleCode = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	styleLocation = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#56C3F4"))

	styleHint = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7DC6F")).
			Italic(true)
)

// Renderer writes diagnostics to a terminal or a plain stream.
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer creates a renderer for the given stream. Color is enabled
// only when the stream is a terminal.
func NewRenderer(out io.Writer) *Renderer {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{out: out, color: color}
}

// Render writes a single diagnostic.
func (r *Renderer) Render(err *DiagnosticError) {
	if !r.color {
		fmt.Fprintln(r.out, err.Error())
		return
	}

	template, ok := errorTemplates[err.Code]
	if !ok {
		fmt.Fprintln(r.out, err.Error())
		return
	}
	message := fmt.Sprintf(template, err.Args...)

	loc := ""
	if err.Token.Line > 0 {
		loc = fmt.Sprintf("%d:%d", err.Token.Line, err.Token.Column)
		if err.File != "" {
			loc = err.File + ":" + loc
		}
	} else if err.File != "" {
		loc = err.File
	}

	line := styleError.Render("error") + styleCode.Render(fmt.Sprintf("[%s]", err.Code))
	if loc != "" {
		line += " " + styleLocation.Render(loc)
	}
	line += ": " + message
	fmt.Fprintln(r.out, line)
	if err.Hint != "" {
		fmt.Fprintln(r.out, "  "+styleHint.Render("hint: "+err.Hint))
	}
}

// RenderAll writes every diagnostic followed by a summary line.
func (r *Renderer) RenderAll(errs []*DiagnosticError) {
	for _, e := range errs {
		r.Render(e)
	}
	if len(errs) > 0 {
		summary := fmt.Sprintf("%d error(s)", len(errs))
		if r.color {
			summary = styleError.Render(summary)
		}
		fmt.Fprintln(r.out, summary)
	}
}
