package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jacoelho/jflat/internal/exit"
	"github.com/jacoelho/jflat/internal/literal"
)

// Version is set at build time.
var Version = "dev"

// InputFormat selects the decoder for tree input.
type InputFormat string

const (
	InputAuto InputFormat = "auto"
	InputJSON InputFormat = "json"
	InputYAML InputFormat = "yaml"
)

// OutputFormat selects how results are written.
type OutputFormat string

const (
	OutputLines OutputFormat = "lines"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// ColorMode controls colorized line output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

var (
	ErrTooManyInputs       = errors.New("at most one input file may be given")
	ErrEmptyDelimiter      = errors.New("delimiter cannot be empty")
	ErrInvalidInputFormat  = errors.New("input format must be one of auto, json, yaml")
	ErrInvalidColorMode    = errors.New("color must be one of auto, always, never")
	ErrConflictingOutputs  = errors.New("--json and --yaml are mutually exclusive")
	ErrFlatWithTreeOutput  = errors.New("--flat cannot be combined with --json or --yaml")
	ErrInputFormatInDeepen = errors.New("--input-format applies to tree input only, not with --deepen")
)

// Config represents the complete configuration for the jflat tool.
type Config struct {
	// Input is the file to read; "" or "-" reads standard input.
	Input       string
	InputFormat InputFormat
	Deepen      bool

	// Scope selection
	Selectors []string
	Invert    bool

	// Output
	Output    OutputFormat
	Sort      bool
	Align     bool
	PathsOnly bool
	Delimiter string
	Color     ColorMode

	Debug bool
}

// ReadsStdin reports whether input comes from standard input.
func (c *Config) ReadsStdin() bool {
	return c.Input == "" || c.Input == "-"
}

// ResolvedInputFormat returns the tree decoder to use. Auto picks YAML for
// .yaml and .yml files and JSON otherwise.
func (c *Config) ResolvedInputFormat() InputFormat {
	if c.InputFormat != InputAuto && c.InputFormat != "" {
		return c.InputFormat
	}
	switch strings.ToLower(filepath.Ext(c.Input)) {
	case ".yaml", ".yml":
		return InputYAML
	default:
		return InputJSON
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Delimiter == "" {
		return ErrEmptyDelimiter
	}

	switch c.InputFormat {
	case InputAuto, InputJSON, InputYAML:
	default:
		return fmt.Errorf("%w, got: %s", ErrInvalidInputFormat, c.InputFormat)
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w, got: %s", ErrInvalidColorMode, c.Color)
	}

	if !c.ReadsStdin() {
		if _, err := os.Stat(c.Input); err != nil {
			return fmt.Errorf("input file %s not found: %w", c.Input, err)
		}
	}

	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	name := "jflat"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)

	// Usage and errors are reported through the exit result.
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	var (
		deepen      = fs.BoolP("deepen", "d", false, "Read flat path/value lines and rebuild the tree")
		selectors   = fs.StringArrayP("attr", "a", nil, "Select paths by exact, prefix, suffix or substring match, or a $-JSONPath (repeatable)")
		invert      = fs.BoolP("invert", "v", false, "Use every path not selected by --attr")
		sortLines   = fs.BoolP("sort", "s", false, "Sort lines by path, comparing indices numerically")
		asJSON      = fs.BoolP("json", "j", false, "Write a JSON tree")
		asYAML      = fs.BoolP("yaml", "y", false, "Write a YAML tree")
		flatOut     = fs.BoolP("flat", "f", false, "With --deepen, write flat lines instead of a tree")
		align       = fs.Bool("align", false, "Align the delimiter column")
		pathsOnly   = fs.Bool("paths", false, "Write paths only")
		delimiter   = fs.String("delimiter", literal.DefaultDelimiter, "Separator between path and value")
		inputFormat = fs.String("input-format", string(InputAuto), "Tree input format: auto, json or yaml")
		color       = fs.String("color", string(ColorAuto), "Colorize lines: auto, always or never")
		debug       = fs.Bool("debug", false, "Log processing details to stderr")
		version     = fs.Bool("version", false, "Show version information")
	)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Usagef("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	if *version {
		return nil, exit.Success(fmt.Sprintf("jflat %s\n", Version))
	}

	files := fs.Args()
	if len(files) > 1 {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrTooManyInputs, Usage())
	}

	output, err := resolveOutput(*deepen, *asJSON, *asYAML, *flatOut)
	if err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}
	if *deepen && fs.Changed("input-format") {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrInputFormatInDeepen, Usage())
	}

	config := &Config{
		InputFormat: InputFormat(strings.ToLower(*inputFormat)),
		Deepen:      *deepen,
		Selectors:   *selectors,
		Invert:      *invert,
		Output:      output,
		Sort:        *sortLines,
		Align:       *align,
		PathsOnly:   *pathsOnly,
		Delimiter:   *delimiter,
		Color:       ColorMode(strings.ToLower(*color)),
		Debug:       *debug,
	}
	if len(files) == 1 {
		config.Input = files[0]
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

func resolveOutput(deepen, asJSON, asYAML, flatOut bool) (OutputFormat, error) {
	switch {
	case asJSON && asYAML:
		return "", ErrConflictingOutputs
	case flatOut && (asJSON || asYAML):
		return "", ErrFlatWithTreeOutput
	case asJSON:
		return OutputJSON, nil
	case asYAML:
		return OutputYAML, nil
	case deepen && !flatOut:
		return OutputJSON, nil
	default:
		return OutputLines, nil
	}
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jflat - flatten JSON into path/value lines and back

Usage: jflat [options] [file]

Reads standard input when no file (or "-") is given.

Options:
  -d, --deepen              Read flat path/value lines and rebuild the tree
  -a, --attr SELECTOR       Select paths (repeatable). Tried in order: exact,
                            prefix, suffix, substring. A selector starting
                            with $ is a JSONPath query against the tree
  -v, --invert              Use every path not selected by --attr
  -s, --sort                Sort lines by path, comparing indices numerically
  -j, --json                Write a JSON tree
  -y, --yaml                Write a YAML tree
  -f, --flat                With --deepen, write flat lines instead of a tree
      --align               Align the delimiter column
      --paths               Write paths only
      --delimiter STR       Separator between path and value (default " = ")
      --input-format FMT    Tree input format: auto, json, yaml (default auto)
      --color WHEN          Colorize lines: auto, always, never (default auto)
      --debug               Log processing details to stderr
  -h, --help                Show this help message
      --version             Show version information

Examples:
  jflat data.json                      # Print every leaf as path = value
  jflat -s --align data.json           # Sorted, aligned lines
  jflat -a Name data.json              # Paths ending in "Name"
  jflat -a '$.users[*].id' data.json   # JSONPath selection
  jflat -v -a meta -j data.json        # Tree without paths starting with "meta"
  jflat data.json | jflat -d           # Round trip back to JSON
  jflat -d -y flat.txt                 # Flat lines to YAML
`
}
