package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformed indicates that input could not be decoded into a Value.
var ErrMalformed = errors.New("value: malformed input")

// MaxDepth is the deepest container nesting the decoders accept.
const MaxDepth = 10000

// DecodeJSON reads exactly one JSON document from r. Object member order
// and number text are preserved. Trailing data after the document is an
// error.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	v, err := decodeToken(dec, tok, 0)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("%w: unexpected data after top-level value", ErrMalformed)
	}

	return v, nil
}

// DecodeJSONString is DecodeJSON over a string.
func DecodeJSONString(s string) (Value, error) {
	return DecodeJSON(bytes.NewBufferString(s))
}

func decodeToken(dec *json.Decoder, tok json.Token, depth int) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		return decodeSubtree(dec, t, depth+1)
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	default:
		return Value{}, fmt.Errorf("%w: unexpected token %v", ErrMalformed, tok)
	}
}

func decodeSubtree(dec *json.Decoder, openingDelim json.Delim, depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, fmt.Errorf("%w: nesting deeper than %d", ErrMalformed, MaxDepth)
	}
	switch openingDelim {
	case '{':
		return decodeObjectSubtree(dec, depth)
	case '[':
		return decodeArraySubtree(dec, depth)
	default:
		return Value{}, fmt.Errorf("%w: unexpected delimiter %q", ErrMalformed, rune(openingDelim))
	}
}

func decodeObjectSubtree(dec *json.Decoder, depth int) (Value, error) {
	obj := NewObject()
	for {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		if d, ok := tok.(json.Delim); ok && d == '}' {
			return ObjectValue(obj), nil
		}

		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: object key must be a string", ErrMalformed)
		}

		valueToken, err := dec.Token()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		member, err := decodeToken(dec, valueToken, depth)
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, member)
	}
}

func decodeArraySubtree(dec *json.Decoder, depth int) (Value, error) {
	items := make([]Value, 0)
	for {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		if d, ok := tok.(json.Delim); ok && d == ']' {
			return Array(items...), nil
		}

		item, err := decodeToken(dec, tok, depth)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
}

// AppendJSON appends the compact JSON encoding of v to dst.
func AppendJSON(dst []byte, v Value) []byte {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		if v.b {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindNumber:
		return append(dst, v.text...)
	case KindString:
		return appendQuoted(dst, v.text)
	case KindObject:
		dst = append(dst, '{')
		for i, m := range v.obj.Members() {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendQuoted(dst, m.Key)
			dst = append(dst, ':')
			dst = AppendJSON(dst, m.Value)
		}
		return append(dst, '}')
	case KindArray:
		dst = append(dst, '[')
		for i, item := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendJSON(dst, item)
		}
		return append(dst, ']')
	default:
		return dst
	}
}

// EncodeJSON writes v to w followed by a newline. A non-empty indent
// pretty-prints the document.
func EncodeJSON(w io.Writer, v Value, indent string) error {
	compact := AppendJSON(nil, v)
	if indent == "" {
		_, err := w.Write(append(compact, '\n'))
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", indent); err != nil {
		return fmt.Errorf("indent JSON: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func appendQuoted(dst []byte, s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return append(dst, bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})...)
}
