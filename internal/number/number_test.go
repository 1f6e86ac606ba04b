package number

import (
	"encoding/json"
	"math"
	"testing"
)

func TestToText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		ok    bool
		want  string
	}{
		{name: "int", input: int(10), ok: true, want: "10"},
		{name: "negative_int64", input: int64(-7), ok: true, want: "-7"},
		{name: "uint64_max", input: uint64(math.MaxUint64), ok: true, want: "18446744073709551615"},
		{name: "float64", input: 12.5, ok: true, want: "12.5"},
		{name: "json_number", input: json.Number("1e3"), ok: true, want: "1e3"},
		{name: "bad_json_number", input: json.Number("0x10"), ok: false},
		{name: "nan", input: math.NaN(), ok: false},
		{name: "inf", input: math.Inf(1), ok: false},
		{name: "non_numeric", input: "x", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ToText(tt.input)
			if ok != tt.ok {
				t.Fatalf("ToText(%v) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("ToText(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want any
	}{
		{text: "42", want: int64(42)},
		{text: "-3", want: int64(-3)},
		{text: "18446744073709551615", want: uint64(math.MaxUint64)},
		{text: "2.5", want: 2.5},
		{text: "1.0", want: json.Number("1.0")},
		{text: "123456789012345678901234567890", want: json.Number("123456789012345678901234567890")},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			if got := FromText(tt.text); got != tt.want {
				t.Fatalf("FromText(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsJSON(t *testing.T) {
	t.Parallel()

	valid := []string{"0", "-0", "1", "10", "1.5", "-2.25e10", "3E-2"}
	invalid := []string{"", "01", "+1", "1.", ".5", "1e", "0x1f", "NaN", "1_000"}

	for _, s := range valid {
		if !IsJSON(s) {
			t.Errorf("IsJSON(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsJSON(s) {
			t.Errorf("IsJSON(%q) = true, want false", s)
		}
	}
}
