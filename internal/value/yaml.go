package value

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// DecodeYAML reads the first YAML document from r. Mapping order is
// preserved.
func DecodeYAML(r io.Reader) (Value, error) {
	var raw any
	dec := yaml.NewDecoder(r, yaml.UseOrderedMap())
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, fmt.Errorf("%w: empty document", ErrMalformed)
		}
		return Value{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return FromAny(raw)
}

// EncodeYAML writes v as a YAML document.
func EncodeYAML(w io.Writer, v Value) error {
	payload, err := yaml.Marshal(toYAML(v))
	if err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	_, err = w.Write(payload)
	return err
}

// yamlNumber emits the number text verbatim.
type yamlNumber string

func (n yamlNumber) MarshalYAML() ([]byte, error) {
	return []byte(n), nil
}

func toYAML(v Value) any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return yamlNumber(v.text)
	case KindString:
		return v.text
	case KindObject:
		out := make(yaml.MapSlice, 0, v.obj.Len())
		for _, m := range v.obj.Members() {
			out = append(out, yaml.MapItem{Key: m.Key, Value: toYAML(m.Value)})
		}
		return out
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = toYAML(item)
		}
		return out
	default:
		return nil
	}
}
