// Package lines writes flat entries as "path<delimiter>literal" lines.
package lines

import (
	"bufio"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"github.com/jacoelho/jflat/internal/flat"
	"github.com/jacoelho/jflat/internal/formatter"
	"github.com/jacoelho/jflat/internal/literal"
	"github.com/jacoelho/jflat/internal/path"
	"github.com/jacoelho/jflat/internal/value"
)

// Options controls line layout.
type Options struct {
	Delimiter string
	// Sort orders lines by path, comparing array indices numerically.
	Sort bool
	// Align pads paths so every delimiter starts in the same column.
	Align     bool
	PathsOnly bool
	Color     bool
}

// Formatter implements line-based output formatting.
type Formatter struct {
	writer  io.Writer
	opts    Options
	palette palette
}

// NewWithWriter creates a new line formatter with a custom writer.
func NewWithWriter(writer io.Writer, opts Options) formatter.Formatter {
	if opts.Delimiter == "" {
		opts.Delimiter = literal.DefaultDelimiter
	}
	return &Formatter{
		writer:  writer,
		opts:    opts,
		palette: newPalette(opts.Color),
	}
}

// Format writes one line per entry.
func (f *Formatter) Format(doc *formatter.Document) error {
	if f.opts.PathsOnly {
		return f.formatPaths(doc.Entries)
	}

	entries := doc.Entries
	if f.opts.Sort {
		entries = slices.Clone(entries)
		slices.SortStableFunc(entries, func(a, b flat.Entry) int {
			return path.Compare(a.Path, b.Path)
		})
	}

	width := 0
	if f.opts.Align {
		for _, e := range entries {
			width = max(width, runewidth.StringWidth(e.Path))
		}
	}

	w := bufio.NewWriter(f.writer)
	for _, e := range entries {
		if err := f.writeLine(w, e, width); err != nil {
			return err
		}
	}
	return w.Flush()
}

// formatPaths writes one path per line. Align has nothing to pad.
func (f *Formatter) formatPaths(entries []flat.Entry) error {
	paths := flat.Paths(entries)
	if f.opts.Sort {
		path.Sort(paths)
	}

	w := bufio.NewWriter(f.writer)
	for _, p := range paths {
		if _, err := w.WriteString(f.palette.path(p) + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (f *Formatter) writeLine(w *bufio.Writer, e flat.Entry, width int) error {
	var line strings.Builder
	line.WriteString(f.palette.path(e.Path))
	if pad := width - runewidth.StringWidth(e.Path); pad > 0 {
		line.WriteString(strings.Repeat(" ", pad))
	}
	line.WriteString(f.palette.delimiter(f.opts.Delimiter))
	line.WriteString(f.palette.value(e.Value))
	line.WriteByte('\n')

	_, err := w.WriteString(line.String())
	return err
}

// Terminal reports whether w is an interactive terminal.
func Terminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type palette struct {
	enabled bool
	colors  map[value.Kind]*color.Color
	paths   *color.Color
	delims  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		enabled: enabled,
		paths:   color.New(color.FgCyan),
		delims:  color.New(color.Faint),
		colors: map[value.Kind]*color.Color{
			value.KindNull:   color.New(color.FgMagenta),
			value.KindBool:   color.New(color.FgYellow),
			value.KindNumber: color.New(color.FgHiBlue),
			value.KindString: color.New(color.FgGreen),
			value.KindObject: color.New(color.FgWhite),
			value.KindArray:  color.New(color.FgWhite),
		},
	}
	if !enabled {
		return p
	}
	// The package-level NoColor default follows stdout; the caller has
	// already decided.
	p.paths.EnableColor()
	p.delims.EnableColor()
	for _, c := range p.colors {
		c.EnableColor()
	}
	return p
}

func (p palette) path(s string) string {
	if !p.enabled {
		return s
	}
	return p.paths.Sprint(s)
}

func (p palette) delimiter(s string) string {
	if !p.enabled {
		return s
	}
	return p.delims.Sprint(s)
}

func (p palette) value(v value.Value) string {
	text := literal.Encode(v)
	if !p.enabled {
		return text
	}
	return p.colors[v.Kind()].Sprint(text)
}
