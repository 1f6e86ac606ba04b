package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Limits enforced by Parse: the largest index and the most segments a
// path may have.
const (
	MaxIndex = 1<<20 - 1
	MaxDepth = 10000
)

// ErrMalformedPath is matched by every MalformedPathError.
var ErrMalformedPath = errors.New("malformed path")

// MalformedPathError reports a syntax error in a path string.
type MalformedPathError struct {
	Path   string
	Offset int
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("%v %q at offset %d: %s", ErrMalformedPath, e.Path, e.Offset, e.Reason)
}

func (e *MalformedPathError) Unwrap() error {
	return ErrMalformedPath
}

// Parse converts a path string into segments. It accepts exactly the
// strings Format produces:
//
//	path      := segment ('.' field_seg | index_seg)*
//	segment   := field_seg index_seg*
//	index_seg := '[' integer ']'
//
// The empty string is the root path. The leading field may be empty only
// when an index follows it, as in "[0].name".
func Parse(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}

	p := Path{}
	name, pos := scanName(s, 0)
	switch {
	case name != "":
		p = append(p, Field(name))
	case s[0] != '[':
		return nil, malformed(s, 0, "empty field name")
	}

	for pos < len(s) {
		if len(p) == MaxDepth {
			return nil, malformed(s, pos, fmt.Sprintf("more than %d segments", MaxDepth))
		}
		switch s[pos] {
		case '[':
			index, next, err := scanIndex(s, pos)
			if err != nil {
				return nil, err
			}
			p = append(p, Index(index))
			pos = next
		case '.':
			name, next := scanName(s, pos+1)
			if name == "" {
				return nil, malformed(s, pos+1, "empty field name")
			}
			p = append(p, Field(name))
			pos = next
		default:
			return nil, malformed(s, pos, "expected '.' or '[' after index")
		}
	}

	return p, nil
}

// scanName returns the run of characters starting at pos that contains no
// '.' or '[', and the offset just past it.
func scanName(s string, pos int) (string, int) {
	end := strings.IndexAny(s[pos:], ".[")
	if end == -1 {
		return s[pos:], len(s)
	}
	return s[pos : pos+end], pos + end
}

// scanIndex parses "[digits]" at pos and returns the index and the offset
// just past the closing bracket.
func scanIndex(s string, pos int) (int, int, error) {
	end := strings.IndexByte(s[pos+1:], ']')
	if end == -1 {
		return 0, 0, malformed(s, pos, "unterminated index")
	}
	digits := s[pos+1 : pos+1+end]
	next := pos + end + 2

	switch {
	case digits == "":
		return 0, 0, malformed(s, pos+1, "empty index")
	case digits[0] == '-':
		return 0, 0, malformed(s, pos+1, "negative index")
	case !isDigits(digits):
		return 0, 0, malformed(s, pos+1, fmt.Sprintf("index %q is not an integer", digits))
	case len(digits) > 1 && digits[0] == '0':
		return 0, 0, malformed(s, pos+1, fmt.Sprintf("index %q has a leading zero", digits))
	}

	index, err := strconv.Atoi(digits)
	if err != nil || index > MaxIndex {
		return 0, 0, malformed(s, pos+1, fmt.Sprintf("index %q exceeds %d", digits, MaxIndex))
	}
	return index, next, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func malformed(s string, offset int, reason string) error {
	return &MalformedPathError{Path: s, Offset: offset, Reason: reason}
}
