package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/deepgram/siplog/internal/model"
)

// Renderer writes normalized entries to an output stream.
type Renderer interface {
	Render(entry model.Entry) error
}

// Severity styles: bold red, yellow, white, blue, magenta.
var (
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	styleInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true)
	styleDebug = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	styleTrace = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)

// TextRenderer prints one fixed-layout line per entry: a severity-
// colored "[LEVEL timestamp]" or "[LEVEL timestamp location]" header,
// an extras block when the entry carries structured fields, then the
// message after a style reset.
type TextRenderer struct {
	w     io.Writer
	color bool
}

// NewTextRenderer returns a Renderer that writes colorized text to stdout.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{w: os.Stdout, color: true}
}

// NewPlainRenderer returns a Renderer with styling disabled. The
// layout is identical, only the escape sequences are gone.
func NewPlainRenderer() *TextRenderer {
	return &TextRenderer{w: os.Stdout, color: false}
}

func (r *TextRenderer) Render(entry model.Entry) error {
	header := "[" + entry.Severity.Tag() + " " + entry.Timestamp
	if entry.Location != "" {
		header += " " + entry.Location
	}
	header += "]"

	parts := []string{r.stylize(entry.Severity, header)}
	if len(entry.Extras) > 0 {
		parts = append(parts, r.stylize(entry.Severity, extrasBlock(entry.Extras)))
	}
	if entry.Message != "" {
		parts = append(parts, entry.Message)
	}

	_, err := fmt.Fprintln(r.w, strings.Join(parts, " "))
	return err
}

func (r *TextRenderer) stylize(s model.Severity, text string) string {
	if !r.color {
		return text
	}
	return severityStyle(s).Render(text)
}

func severityStyle(s model.Severity) lipgloss.Style {
	switch s {
	case model.Error:
		return styleError
	case model.Warn:
		return styleWarn
	case model.Debug:
		return styleDebug
	case model.Trace:
		return styleTrace
	default:
		return styleInfo
	}
}

// extrasBlock renders the auxiliary fields as a bracketed key:value
// run, preserving their fixed order.
func extrasBlock(fields []model.Field) string {
	pairs := make([]string, len(fields))
	for i, f := range fields {
		pairs[i] = f.Key + ":" + f.Value
	}
	return "[" + strings.Join(pairs, " ") + "]"
}
