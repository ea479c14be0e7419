package ui

import (
	"fmt"
	"io"
	"os"
)

// Printer writes sub-command output.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a Printer writing to w, or to os.Stdout if w is nil.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{out: w, width: GetTerminalWidth()}
}

// Width returns the width boxes are rendered at
func (p *Printer) Width() int {
	return p.width
}

// SetWidth overrides the detected width.
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(h *Header) {
	p.Println(h.SetWidth(p.width).Render())
}

// PrintResult prints a result box
func (p *Printer) PrintResult(r *Result) {
	p.Println(r.SetWidth(p.width).Render())
}
