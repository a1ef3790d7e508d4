// Package report prints progress lines and the markdown timeline report.
package report

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Console prints the "[*]" style status lines, coloured when the output
// supports it.
type Console struct {
	out *termenv.Output
}

func NewConsole(w io.Writer) *Console {
	return &Console{out: termenv.NewOutput(w)}
}

func (c *Console) line(prefix, color, format string, args ...any) {
	p := c.out.String(prefix).Foreground(c.out.Color(color)).Bold()
	fmt.Fprintf(c.out, "%s %s\n", p, fmt.Sprintf(format, args...))
}

func (c *Console) Info(format string, args ...any) { c.line("[*]", "#818cf8", format, args...) }

func (c *Console) Step(format string, args ...any) { c.line("[>]", "#9ca3af", format, args...) }

func (c *Console) Warn(format string, args ...any) { c.line("[!]", "#f59e0b", format, args...) }

func (c *Console) Done(format string, args ...any) { c.line("[+++]", "#22c55e", format, args...) }
