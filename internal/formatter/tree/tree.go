// Package tree writes a document's tree as JSON or YAML.
package tree

import (
	"io"

	"github.com/jacoelho/jflat/internal/formatter"
	"github.com/jacoelho/jflat/internal/value"
)

// Indent is the JSON indentation unit.
const Indent = "  "

// Encoding selects the tree serialization.
type Encoding int

const (
	JSON Encoding = iota
	YAML
)

// Formatter implements tree output formatting.
type Formatter struct {
	writer   io.Writer
	encoding Encoding
}

// NewWithWriter creates a new tree formatter with a custom writer.
func NewWithWriter(writer io.Writer, encoding Encoding) formatter.Formatter {
	return &Formatter{
		writer:   writer,
		encoding: encoding,
	}
}

// Format writes doc.Tree.
func (f *Formatter) Format(doc *formatter.Document) error {
	if f.encoding == YAML {
		return value.EncodeYAML(f.writer, doc.Tree)
	}
	return value.EncodeJSON(f.writer, doc.Tree, Indent)
}
