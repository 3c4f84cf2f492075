package printer

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/gengc/gc"
)

const (
	DefaultIndentSize = 2
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text format only).
	// Default: 2
	IndentSize int

	// ShowRootWords lists every word of every root entry with the
	// generation it points into.
	// Default: true
	ShowRootWords bool

	// ShowFree includes free old-generation chunks.
	// Default: true
	ShowFree bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:        FormatText,
		IndentSize:    DefaultIndentSize,
		ShowRootWords: true,
		ShowFree:      true,
	}
}

// Printer handles formatted dumps of collector state.
type Printer struct {
	opts   Options
	writer io.Writer
	c      *gc.Collector
	num    *message.Printer
}

// New creates a new Printer.
//
// Example:
//
//	p := printer.New(c, os.Stdout, printer.DefaultOptions())
//	p.PrintHeap()
func New(c *gc.Collector, w io.Writer, opts Options) *Printer {
	if opts.IndentSize <= 0 {
		opts.IndentSize = DefaultIndentSize
	}
	return &Printer{
		opts:   opts,
		writer: w,
		c:      c,
		num:    message.NewPrinter(language.English),
	}
}

// PrintNursery prints every allocated nursery slot.
func (p *Printer) PrintNursery() error {
	n := p.nursery()
	if p.opts.Format == FormatJSON {
		return p.writeJSON(n)
	}
	return p.printNurseryText(n)
}

// PrintOldGen prints every old-generation chunk in arena order.
func (p *Printer) PrintOldGen() error {
	g, err := p.oldGen()
	if err != nil {
		return err
	}
	if p.opts.Format == FormatJSON {
		return p.writeJSON(g)
	}
	return p.printOldGenText(g)
}

// PrintRoots prints the root registry slots.
func (p *Printer) PrintRoots() error {
	r := p.roots()
	if p.opts.Format == FormatJSON {
		return p.writeJSON(r)
	}
	return p.printRootsText(r)
}

// PrintHeap prints the nursery, old generation, roots, and counters.
func (p *Printer) PrintHeap() error {
	g, err := p.oldGen()
	if err != nil {
		return err
	}
	h := heapDump{
		Nursery: p.nursery(),
		OldGen:  g,
		Roots:   p.roots(),
		Stats:   p.c.Stats(),
	}
	if p.opts.Format == FormatJSON {
		return p.writeJSON(h)
	}
	return p.printHeapText(h)
}
