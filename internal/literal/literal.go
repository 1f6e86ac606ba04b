// Package literal decodes the value column of flat "path = value" text.
//
// The grammar is closed: JSON scalars, double-quoted JSON strings,
// single-quoted strings, JSON arrays and objects. Anything else is taken
// verbatim as a string. Text that starts like a quoted string, array or
// object but does not decode as one is rejected rather than passed through.
package literal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacoelho/jflat/internal/number"
	"github.com/jacoelho/jflat/internal/value"
)

// ErrMalformedLiteral is matched by every MalformedLiteralError.
var ErrMalformedLiteral = errors.New("malformed literal")

// MalformedLiteralError reports input that does not fit the literal grammar.
// Line is 1-based, or 0 when the text did not come from a numbered line.
type MalformedLiteralError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedLiteralError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v at line %d: %s: %q", ErrMalformedLiteral, e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%v: %s: %q", ErrMalformedLiteral, e.Reason, e.Text)
}

func (e *MalformedLiteralError) Unwrap() error {
	return ErrMalformedLiteral
}

// Decode converts literal text into a value. Surrounding whitespace is
// ignored; empty text is the empty string.
func Decode(raw string) (value.Value, error) {
	text := strings.TrimSpace(raw)

	switch text {
	case "":
		return value.String(""), nil
	case "null":
		return value.Null(), nil
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	}

	if number.IsJSON(text) {
		return value.Number(text), nil
	}

	switch text[0] {
	case '"', '[', '{':
		v, err := value.DecodeJSONString(text)
		if err != nil {
			return value.Value{}, &MalformedLiteralError{Text: text, Reason: describeJSONError(text[0], err)}
		}
		return v, nil
	case '\'':
		s, ok := decodeSingleQuoted(text)
		if !ok {
			return value.Value{}, &MalformedLiteralError{Text: text, Reason: "invalid single-quoted string"}
		}
		return value.String(s), nil
	}

	return value.String(text), nil
}

// Encode renders v so that Decode returns an equal value.
func Encode(v value.Value) string {
	return v.String()
}

func describeJSONError(lead byte, err error) string {
	kind := "string"
	switch lead {
	case '[':
		kind = "array"
	case '{':
		kind = "object"
	}
	msg := strings.TrimPrefix(err.Error(), value.ErrMalformed.Error()+": ")
	return fmt.Sprintf("invalid JSON %s: %s", kind, msg)
}

func decodeSingleQuoted(text string) (string, bool) {
	if len(text) < 2 || text[len(text)-1] != '\'' {
		return "", false
	}
	inner := text[1 : len(text)-1]

	escaped := false
	for i := 0; i < len(inner); i++ {
		switch {
		case escaped:
			escaped = false
		case inner[i] == '\\':
			escaped = true
		case inner[i] == '\'':
			return "", false
		}
	}
	if escaped {
		return "", false
	}

	return unquote(inner, '\'')
}
