package formatter

import (
	"github.com/jacoelho/jflat/internal/flat"
	"github.com/jacoelho/jflat/internal/value"
)

// Document is the outcome of one run. Entries is always set; Tree is set
// when the run produced a tree for output.
type Document struct {
	Entries []flat.Entry
	Tree    value.Value
}

// Formatter defines the interface for different output formats.
// Implementations are responsible for determining the output device (stdout, file, etc.).
type Formatter interface {
	// Format writes the document. Line formatters use Entries, tree
	// formatters use Tree.
	Format(doc *Document) error
}
