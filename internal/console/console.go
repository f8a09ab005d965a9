// Package console escribe la salida de las etapas en la terminal con estilos
// de lipgloss. Sin TTY los estilos se degradan a texto plano.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Primary = lipgloss.Color("#101F38")
	Accent  = lipgloss.Color("#8BC34A")
	Warning = lipgloss.Color("#FFC107")
	Muted   = lipgloss.Color("#6B7280")
)

// Printer acumula el primer error de escritura; los métodos posteriores son no-op.
type Printer struct {
	w   io.Writer
	err error

	header  lipgloss.Style
	section lipgloss.Style
	good    lipgloss.Style
	warn    lipgloss.Style
	muted   lipgloss.Style
}

func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		header:  r.NewStyle().Bold(true).Foreground(Accent),
		section: r.NewStyle().Bold(true).Foreground(Primary),
		good:    r.NewStyle().Foreground(Accent),
		warn:    r.NewStyle().Foreground(Warning),
		muted:   r.NewStyle().Foreground(Muted),
	}
}

func (p *Printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// Rule imprime una línea de 50 "=".
func (p *Printer) Rule() {
	p.write(p.muted.Render(strings.Repeat("=", 50)) + "\n")
}

// Header: "=== TITLE ===" precedido de una línea en blanco salvo al inicio.
func (p *Printer) Header(title string, first bool) {
	prefix := "\n"
	if first {
		prefix = ""
	}
	p.write(prefix + p.header.Render("=== "+title+" ===") + "\n")
}

func (p *Printer) Section(title string) {
	p.write(p.section.Render(title) + "\n")
}

func (p *Printer) Line(format string, args ...any) {
	p.write(fmt.Sprintf(format, args...) + "\n")
}

func (p *Printer) Blank() { p.write("\n") }

func (p *Printer) Success(format string, args ...any) {
	p.write(p.good.Render(fmt.Sprintf(format, args...)) + "\n")
}

func (p *Printer) Warn(format string, args ...any) {
	p.write(p.warn.Render(fmt.Sprintf(format, args...)) + "\n")
}

func (p *Printer) Note(format string, args ...any) {
	p.write(p.muted.Render(fmt.Sprintf(format, args...)) + "\n")
}

// Writer expone el destino para bloques ya formateados (el reporte).
func (p *Printer) Writer() io.Writer { return p.w }

func (p *Printer) Err() error { return p.err }
