package literal

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// unquote resolves backslash escapes in the body of a quoted string.
// Unknown escapes yield the escaped character itself.
func unquote(raw string, quote byte) (string, bool) {
	var out strings.Builder
	out.Grow(len(raw))

	for index := 0; index < len(raw); index++ {
		current := raw[index]
		if current != '\\' {
			out.WriteByte(current)
			continue
		}

		index++
		if index >= len(raw) {
			return "", false
		}

		escaped := raw[index]
		switch escaped {
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case 'v':
			out.WriteByte('\v')
		case '0':
			out.WriteByte('\x00')
		case 'x':
			if index+2 >= len(raw) {
				return "", false
			}
			value, err := strconv.ParseUint(raw[index+1:index+3], 16, 8)
			if err != nil {
				return "", false
			}
			out.WriteRune(rune(value))
			index += 2
		case 'u':
			r, width, ok := decodeUnicodeEscape(raw[index+1:])
			if !ok {
				return "", false
			}
			out.WriteRune(r)
			index += width
		default:
			// Covers \\, \/, the quote character and any other escaped byte.
			if escaped == quote {
				out.WriteByte(quote)
				continue
			}
			out.WriteByte(escaped)
		}
	}

	return out.String(), true
}

// decodeUnicodeEscape decodes the text following "\u": either four hex
// digits, optionally followed by a "\uXXXX" low surrogate, or "{hex}". It
// returns the rune and the number of bytes consumed.
func decodeUnicodeEscape(rest string) (rune, int, bool) {
	if strings.HasPrefix(rest, "{") {
		end := strings.IndexByte(rest, '}')
		if end < 2 {
			return 0, 0, false
		}
		value, err := strconv.ParseUint(rest[1:end], 16, 32)
		if err != nil || value > utf8.MaxRune {
			return 0, 0, false
		}
		return rune(value), end + 1, true
	}

	if len(rest) < 4 {
		return 0, 0, false
	}
	first, err := strconv.ParseUint(rest[:4], 16, 16)
	if err != nil {
		return 0, 0, false
	}
	firstRune := rune(first)

	if utf16.IsSurrogate(firstRune) && len(rest) >= 10 && rest[4] == '\\' && rest[5] == 'u' {
		second, err := strconv.ParseUint(rest[6:10], 16, 16)
		if err == nil {
			decoded := utf16.DecodeRune(firstRune, rune(second))
			if decoded != utf8.RuneError {
				return decoded, 10, true
			}
		}
	}

	return firstRune, 4, true
}
