package flat

import (
	"slices"
	"testing"

	"github.com/jacoelho/jflat/internal/value"
)

func mustDecode(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := value.DecodeJSONString(s)
	if err != nil {
		t.Fatalf("DecodeJSONString(%q) error = %v", s, err)
	}
	return v
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "nested",
			input: `{"a":{"b":[1,{"c":"x"}]},"d":true}`,
			want:  []string{`a.b[0]=1`, `a.b[1].c="x"`, `d=true`},
		},
		{
			name:  "insertion_order",
			input: `{"z":1,"a":2,"m":3}`,
			want:  []string{`z=1`, `a=2`, `m=3`},
		},
		{
			name:  "empty_containers_are_leaves",
			input: `{"o":{},"l":[],"n":{"x":[]}}`,
			want:  []string{`o={}`, `l=[]`, `n.x=[]`},
		},
		{
			name:  "array_of_arrays",
			input: `{"k":[[1,2],[],[[3]]]}`,
			want:  []string{`k[0][0]=1`, `k[0][1]=2`, `k[1]=[]`, `k[2][0][0]=3`},
		},
		{
			name:  "root_array",
			input: `[{"a":1},null]`,
			want:  []string{`[0].a=1`, `[1]=null`},
		},
		{
			name:  "scalar_root",
			input: `"hello"`,
			want:  []string{`="hello"`},
		},
		{
			name:  "empty_root",
			input: `{}`,
			want:  []string{`={}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			entries := Flatten(mustDecode(t, tt.input))
			got := make([]string, len(entries))
			for i, e := range entries {
				got[i] = e.Path + "=" + e.Value.String()
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Flatten(%s) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFlatten_NeverEmitsNonEmptyContainers(t *testing.T) {
	t.Parallel()

	entries := Flatten(mustDecode(t, `{"a":[{"b":{"c":[1]}}],"d":{"e":{}}}`))
	for _, e := range entries {
		if e.Value.IsContainer() && e.Value.Len() > 0 {
			t.Errorf("entry %q holds non-empty container %s", e.Path, e.Value)
		}
	}
}

func TestPathsAndFilter(t *testing.T) {
	t.Parallel()

	entries := Flatten(mustDecode(t, `{"a":1,"b":2,"c":3}`))
	if got := Paths(entries); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Paths() = %v", got)
	}

	kept := Filter(entries, func(p string) bool { return p != "b" })
	if got := Paths(kept); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("Filter() = %v", got)
	}
}
