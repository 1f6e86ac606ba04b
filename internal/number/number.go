package number

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

// jsonNumber is the RFC 8259 number grammar.
var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// IsJSON reports whether text is a valid JSON number literal.
func IsJSON(text string) bool {
	return jsonNumber.MatchString(text)
}

// ToText converts supported numeric values to JSON number text. Non-finite
// floats are rejected since JSON cannot represent them.
func ToText(value any) (string, bool) {
	switch current := value.(type) {
	case int:
		return strconv.FormatInt(int64(current), 10), true
	case int8:
		return strconv.FormatInt(int64(current), 10), true
	case int16:
		return strconv.FormatInt(int64(current), 10), true
	case int32:
		return strconv.FormatInt(int64(current), 10), true
	case int64:
		return strconv.FormatInt(current, 10), true
	case uint:
		return strconv.FormatUint(uint64(current), 10), true
	case uint8:
		return strconv.FormatUint(uint64(current), 10), true
	case uint16:
		return strconv.FormatUint(uint64(current), 10), true
	case uint32:
		return strconv.FormatUint(uint64(current), 10), true
	case uint64:
		return strconv.FormatUint(current, 10), true
	case float32:
		return formatFloat(float64(current), 32)
	case float64:
		return formatFloat(current, 64)
	case json.Number:
		if !IsJSON(current.String()) {
			return "", false
		}
		return current.String(), true
	default:
		return "", false
	}
}

// FromText converts JSON number text to the narrowest of int64, uint64 or
// float64 that holds it exactly; otherwise the text is returned as a
// json.Number.
func FromText(text string) any {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(text, 10, 64); err == nil {
		return u
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && strconv.FormatFloat(f, 'g', -1, 64) == text {
		return f
	}
	return json.Number(text)
}

func formatFloat(f float64, bitSize int) (string, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", false
	}
	return strconv.FormatFloat(f, 'g', -1, bitSize), true
}
