package literal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jacoelho/jflat/internal/flat"
)

// DefaultDelimiter separates the path from the value on a flat line.
const DefaultDelimiter = " = "

const maxLineSize = 16 * 1024 * 1024

// ParseLine splits line at the first delimiter and decodes the value. Blank
// lines and lines starting with '#' yield ok == false. lineNum is used in
// errors only.
func ParseLine(line string, delimiter string, lineNum int) (entry flat.Entry, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return flat.Entry{}, false, nil
	}

	key, raw, found := strings.Cut(line, delimiter)
	if bare := strings.TrimSpace(delimiter); !found && bare != "" && bare != delimiter {
		// The padding around a delimiter such as " = " may be missing, as
		// in "key=value" or a trimmed "key =".
		key, raw, found = strings.Cut(trimmed, bare)
	}
	if !found {
		return flat.Entry{}, false, &MalformedLiteralError{
			Line:   lineNum,
			Text:   line,
			Reason: fmt.Sprintf("missing delimiter %q", delimiter),
		}
	}

	v, err := Decode(raw)
	if err != nil {
		var litErr *MalformedLiteralError
		if errors.As(err, &litErr) {
			litErr.Line = lineNum
		}
		return flat.Entry{}, false, err
	}

	return flat.Entry{Path: strings.TrimSpace(key), Value: v}, true, nil
}

// ReadEntries parses every line of r. It stops at the first malformed line.
func ReadEntries(ctx context.Context, r io.Reader, delimiter string) ([]flat.Entry, error) {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var entries []flat.Entry
	lineNum := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNum++

		entry, ok, err := ParseLine(scanner.Text(), delimiter, lineNum)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read flat input: %w", err)
	}

	return entries, nil
}
