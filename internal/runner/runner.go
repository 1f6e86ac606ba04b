package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jacoelho/jflat/internal/config"
	"github.com/jacoelho/jflat/internal/deepen"
	"github.com/jacoelho/jflat/internal/exit"
	"github.com/jacoelho/jflat/internal/flat"
	"github.com/jacoelho/jflat/internal/formatter"
	"github.com/jacoelho/jflat/internal/formatter/lines"
	"github.com/jacoelho/jflat/internal/formatter/tree"
	"github.com/jacoelho/jflat/internal/literal"
	"github.com/jacoelho/jflat/internal/scope"
	"github.com/jacoelho/jflat/internal/value"
)

// Runner executes one flatten or deepen run.
type Runner struct {
	config    *config.Config
	stdin     io.Reader
	stderr    io.Writer
	formatter formatter.Formatter
	log       *slog.Logger
}

// New creates a new Runner bound to the process standard streams.
func New(cfg *config.Config) *Runner {
	return NewWithIO(cfg, os.Stdin, os.Stdout, os.Stderr)
}

// NewWithIO creates a new Runner with custom streams.
// This is useful for testing or embedding.
func NewWithIO(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) *Runner {
	return &Runner{
		config:    cfg,
		stdin:     stdin,
		stderr:    stderr,
		formatter: newFormatter(cfg, stdout),
		log:       newLogger(stderr, cfg.Debug),
	}
}

func newFormatter(cfg *config.Config, stdout io.Writer) formatter.Formatter {
	switch cfg.Output {
	case config.OutputJSON:
		return tree.NewWithWriter(stdout, tree.JSON)
	case config.OutputYAML:
		return tree.NewWithWriter(stdout, tree.YAML)
	default:
		return lines.NewWithWriter(stdout, lines.Options{
			Delimiter: cfg.Delimiter,
			Sort:      cfg.Sort,
			Align:     cfg.Align,
			PathsOnly: cfg.PathsOnly,
			Color:     useColor(cfg.Color, stdout),
		})
	}
}

func useColor(mode config.ColorMode, stdout io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return os.Getenv("NO_COLOR") == "" && lines.Terminal(stdout)
	}
}

// Run executes the configured run and returns the process exit code.
// Failures are reported on the runner's stderr.
func (r *Runner) Run(ctx context.Context) int {
	start := time.Now()

	if err := r.run(ctx); err != nil {
		r.log.Debug("run failed", "error", err, "elapsed", time.Since(start))
		result := exit.FromError(err)
		result.Output = r.stderr
		result.Print()
		return result.ExitCode
	}

	r.log.Debug("run finished", "elapsed", time.Since(start))
	return exit.CodeSuccess
}

func (r *Runner) run(ctx context.Context) error {
	in, closeInput, err := r.open()
	if err != nil {
		return err
	}
	defer closeInput()

	var doc *formatter.Document
	if r.config.Deepen {
		doc, err = r.deepen(ctx, in)
	} else {
		doc, err = r.flatten(ctx, in)
	}
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.formatter.Format(doc); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (r *Runner) open() (io.Reader, func(), error) {
	if r.config.ReadsStdin() {
		return r.stdin, func() {}, nil
	}

	f, err := os.Open(r.config.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func (r *Runner) inputName() string {
	if r.config.ReadsStdin() {
		return "stdin"
	}
	return r.config.Input
}

// flatten decodes a tree, flattens it and applies the scope.
func (r *Runner) flatten(ctx context.Context, in io.Reader) (*formatter.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := r.config.ResolvedInputFormat()
	var (
		root value.Value
		err  error
	)
	switch format {
	case config.InputYAML:
		root, err = value.DecodeYAML(in)
	default:
		root, err = value.DecodeJSON(in)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.inputName(), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := flat.Flatten(root)
	r.log.Debug("flattened input", "input", r.inputName(), "format", format, "entries", len(entries))

	set, scoped, err := r.resolveScope(entries, &root)
	if err != nil {
		return nil, err
	}

	doc := &formatter.Document{Entries: entries}
	if scoped {
		doc.Entries = flat.Filter(entries, set.Contains)
	}

	if r.config.Output == config.OutputLines {
		return doc, nil
	}
	if !scoped {
		doc.Tree = root
		return doc, nil
	}

	doc.Tree, err = deepen.Deepen(entries, set)
	if err != nil {
		return nil, fmt.Errorf("rebuild selection: %w", err)
	}
	return doc, nil
}

// deepen reads flat lines and rebuilds the tree from the entries in scope.
func (r *Runner) deepen(ctx context.Context, in io.Reader) (*formatter.Document, error) {
	entries, err := literal.ReadEntries(ctx, in, r.config.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.inputName(), err)
	}
	r.log.Debug("read flat input", "input", r.inputName(), "entries", len(entries))

	set, scoped, err := r.resolveScope(entries, nil)
	if err != nil {
		return nil, err
	}

	var root value.Value
	if scoped {
		root, err = deepen.Deepen(entries, set)
	} else {
		root, err = deepen.DeepenAll(entries)
	}
	if err != nil {
		return nil, err
	}

	doc := &formatter.Document{Tree: root}
	if r.config.Output == config.OutputLines {
		doc.Entries = flat.Flatten(root)
	}
	return doc, nil
}

// resolveScope resolves the configured selectors against the entry paths.
// scoped is false when no selection applies and every entry is used.
func (r *Runner) resolveScope(entries []flat.Entry, root *value.Value) (set scope.Set, scoped bool, err error) {
	if len(r.config.Selectors) == 0 && !r.config.Invert {
		return nil, false, nil
	}

	resolver := &scope.Resolver{Known: flat.Paths(entries), Tree: root}
	paths, err := resolver.Resolve(r.config.Selectors, r.config.Invert)
	if err != nil {
		return nil, false, err
	}

	r.log.Debug("resolved scope", "selectors", len(r.config.Selectors), "invert", r.config.Invert, "paths", len(paths))
	return scope.NewSet(paths...), true, nil
}
