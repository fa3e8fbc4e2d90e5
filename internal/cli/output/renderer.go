// Package output renders CLI status lines and tables for terminals, pipes
// and machine consumers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// OutputMode selects how output is rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"     // text on a TTY, markdown otherwise
	ModeText     OutputMode = "text"     // styled terminal output
	ModeMarkdown OutputMode = "markdown" // plain, agent-friendly output
	ModeJSON     OutputMode = "json"     // single JSON document on stdout
)

// Modes lists the accepted output mode names.
func Modes() []string {
	return []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON)}
}

// Mode converts a config string to an OutputMode. Unknown values map to auto.
func Mode(s string) OutputMode {
	switch OutputMode(strings.ToLower(s)) {
	case ModeText:
		return ModeText
	case ModeMarkdown, "md":
		return ModeMarkdown
	case ModeJSON:
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Event is a status line captured in JSON mode.
type Event struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Renderer writes status lines and tables in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles styles
	events []Event
}

type styles struct {
	plain   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
	header  lipgloss.Style
}

// NewRenderer creates a Renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a Renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	lr := lipgloss.NewRenderer(out)
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: styles{
			plain:   lr.NewStyle(),
			success: lr.NewStyle().Foreground(lipgloss.Color("2")),
			warning: lr.NewStyle().Foreground(lipgloss.Color("3")),
			err:     lr.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
			header:  lr.NewStyle().Bold(true).Underline(true),
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// EffectiveMode resolves ModeAuto against the TTY state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether stdout is a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Writer returns the stdout writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Events returns the status lines captured in JSON mode.
func (r *Renderer) Events() []Event {
	return r.events
}

// ResetEvents drops the captured JSON mode status lines.
func (r *Renderer) ResetEvents() {
	r.events = nil
}

// Info writes a neutral status line.
func (r *Renderer) Info(msg string) {
	r.status("info", msg, r.out, r.styles.plain.Render)
}

// Success writes a success status line.
func (r *Renderer) Success(msg string) {
	r.status("success", msg, r.out, r.styles.success.Render)
}

// Warning writes a warning status line.
func (r *Renderer) Warning(msg string) {
	r.status("warning", msg, r.out, r.styles.warning.Render)
}

// Error writes an error status line to stderr.
func (r *Renderer) Error(msg string) {
	r.status("error", msg, r.errOut, r.styles.err.Render)
}

// Muted writes a de-emphasized line.
func (r *Renderer) Muted(msg string) {
	r.status("debug", msg, r.out, r.styles.muted.Render)
}

func (r *Renderer) status(level, msg string, w io.Writer, style func(...string) string) {
	switch r.EffectiveMode() {
	case ModeJSON:
		r.events = append(r.events, Event{Level: level, Message: msg})
	case ModeText:
		_, _ = fmt.Fprintln(w, style(msg))
	default:
		if level == "warning" || level == "error" {
			msg = strings.ToUpper(level[:1]) + level[1:] + ": " + msg
		}
		_, _ = fmt.Fprintln(w, msg)
	}
}

// Header writes a section header. It is a no-op in JSON mode.
func (r *Renderer) Header(level int, title string) {
	switch r.EffectiveMode() {
	case ModeJSON:
	case ModeText:
		_, _ = fmt.Fprintln(r.out, r.styles.header.Render(title))
	default:
		_, _ = fmt.Fprintln(r.out, FormatHeader(level, title))
	}
}

// Println writes a line to stdout.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to stdout.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// JSON encodes v as indented JSON on stdout.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatHeader returns a markdown header line.
func FormatHeader(level int, title string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + title
}

// FormatKeyValue returns a markdown bold key/value line.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("**%s:** %s", key, value)
}
