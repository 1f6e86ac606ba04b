package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jacoelho/jflat/internal/config"
	"github.com/jacoelho/jflat/internal/exit"
	"github.com/jacoelho/jflat/internal/value"
)

const sampleJSON = `{"b":{"c":[1,2]},"a":"x"}`

type runResult struct {
	code   int
	stdout string
	stderr string
}

// execute parses args like the CLI does and runs them against stdin.
func execute(t *testing.T, ctx context.Context, stdin string, args ...string) runResult {
	t.Helper()

	cfg, result := config.Parse(append([]string{"jflat"}, args...))
	if result != nil {
		t.Fatalf("config.Parse(%q) = exit %d: %s", args, result.ExitCode, result.Message)
	}

	var stdout, stderr bytes.Buffer
	code := NewWithIO(cfg, strings.NewReader(stdin), &stdout, &stderr).Run(ctx)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stdin  string
		args   []string
		stdout string
	}{
		{
			name:   "flatten",
			stdin:  sampleJSON,
			stdout: "b.c[0] = 1\nb.c[1] = 2\na = \"x\"\n",
		},
		{
			name:   "flatten_paths_only",
			stdin:  sampleJSON,
			args:   []string{"--paths"},
			stdout: "b.c[0]\nb.c[1]\na\n",
		},
		{
			name:   "flatten_scalar_root",
			stdin:  `"hello"`,
			stdout: " = \"hello\"\n",
		},
		{
			name:   "flatten_sorted_numerically",
			stdin:  `{"n":[0,1,2,3,4,5,6,7,8,9,10]}`,
			args:   []string{"-s", "-a", "n[1"},
			stdout: "n[1] = 1\nn[10] = 10\n",
		},
		{
			name:   "flatten_substring_selector_to_json",
			stdin:  sampleJSON,
			args:   []string{"-a", "c", "-j"},
			stdout: "{\n  \"b\": {\n    \"c\": [\n      1,\n      2\n    ]\n  }\n}\n",
		},
		{
			name:   "flatten_inverted",
			stdin:  sampleJSON,
			args:   []string{"-v", "-a", "b"},
			stdout: "a = \"x\"\n",
		},
		{
			name:   "flatten_jsonpath_selector",
			stdin:  sampleJSON,
			args:   []string{"-a", "$.b.c[1]"},
			stdout: "b.c[1] = 2\n",
		},
		{
			name:   "flatten_whole_tree_to_yaml",
			stdin:  `{"name":"svc","port":8080}`,
			args:   []string{"-y"},
			stdout: "name: svc\nport: 8080\n",
		},
		{
			name:   "yaml_input",
			stdin:  "name: svc\nports:\n  - 80\n  - 443\n",
			args:   []string{"--input-format", "yaml"},
			stdout: "name = \"svc\"\nports[0] = 80\nports[1] = 443\n",
		},
		{
			name:   "deepen",
			stdin:  "# generated\na.b[1] = 2\nx = 'hi'\n",
			args:   []string{"-d"},
			stdout: "{\n  \"a\": {\n    \"b\": [\n      null,\n      2\n    ]\n  },\n  \"x\": \"hi\"\n}\n",
		},
		{
			name:   "deepen_scoped",
			stdin:  "a.b = 1\na.c = 2\nz = 3\n",
			args:   []string{"-d", "-a", "a"},
			stdout: "{\n  \"a\": {\n    \"b\": 1,\n    \"c\": 2\n  }\n}\n",
		},
		{
			name:   "deepen_flat_sorted",
			stdin:  "b[1] = 1\na = 'x'\n",
			args:   []string{"-d", "-f", "-s"},
			stdout: "a = \"x\"\nb[0] = null\nb[1] = 1\n",
		},
		{
			name:   "deepen_later_entry_wins",
			stdin:  "a = 1\na = 2\n",
			args:   []string{"-d", "-f"},
			stdout: "a = 2\n",
		},
		{
			name:   "deepen_root_array",
			stdin:  "[0] = 'x'\n[1] = true\n",
			args:   []string{"-d"},
			stdout: "[\n  \"x\",\n  true\n]\n",
		},
		{
			name:   "deepen_tab_delimiter",
			stdin:  "a\t1\nb\t[]\n",
			args:   []string{"-d", "-y", "--delimiter", "\t"},
			stdout: "a: 1\nb: []\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := execute(t, context.Background(), tt.stdin, tt.args...)
			if got.code != exit.CodeSuccess {
				t.Fatalf("Run() = %d, stderr: %s", got.code, got.stderr)
			}
			if got.stdout != tt.stdout {
				t.Errorf("stdout = %q, want %q", got.stdout, tt.stdout)
			}
		})
	}
}

func TestRun_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stdin  string
		args   []string
		stderr string
	}{
		{name: "malformed_json", stdin: `{"a":`, stderr: "malformed"},
		{name: "trailing_json", stdin: `{} {}`, stderr: "malformed"},
		{name: "unresolved_selector", stdin: sampleJSON, args: []string{"-a", "zzz", "-a", "a"}, stderr: `"zzz"`},
		{name: "invalid_jsonpath", stdin: sampleJSON, args: []string{"-a", "$[?"}, stderr: "invalid JSONPath"},
		{name: "deepen_conflict", stdin: "a = 1\na.b = 2\n", args: []string{"-d"}, stderr: "path conflict"},
		{name: "deepen_malformed_literal", stdin: "a = 1\nb = [1,\n", args: []string{"-d"}, stderr: "line 2"},
		{name: "deepen_malformed_path", stdin: "a[x] = 1\n", args: []string{"-d"}, stderr: "malformed path"},
		{name: "deepen_missing_delimiter", stdin: "just text\n", args: []string{"-d"}, stderr: "missing delimiter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := execute(t, context.Background(), tt.stdin, tt.args...)
			if got.code != exit.CodeFailure {
				t.Fatalf("Run() = %d, want %d", got.code, exit.CodeFailure)
			}
			if got.stdout != "" {
				t.Errorf("stdout = %q, want empty on failure", got.stdout)
			}
			if !strings.HasPrefix(got.stderr, "Error: ") || !strings.Contains(got.stderr, tt.stderr) {
				t.Errorf("stderr = %q, want it to contain %q", got.stderr, tt.stderr)
			}
		})
	}
}

func TestRun_Interrupted(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, args := range [][]string{nil, {"-d"}} {
		got := execute(t, ctx, "a = 1\n", args...)
		if got.code != exit.CodeInterrupted {
			t.Errorf("Run(%q) = %d, want %d", args, got.code, exit.CodeInterrupted)
		}
	}
}

func TestRun_InputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlFile := filepath.Join(dir, "service.yml")
	if err := os.WriteFile(yamlFile, []byte("service:\n  name: api\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got := execute(t, context.Background(), "", yamlFile)
	if got.code != exit.CodeSuccess {
		t.Fatalf("Run() = %d, stderr: %s", got.code, got.stderr)
	}
	if got.stdout != "service.name = \"api\"\n" {
		t.Errorf("stdout = %q", got.stdout)
	}
}

func TestRun_Debug(t *testing.T) {
	t.Parallel()

	got := execute(t, context.Background(), sampleJSON, "--debug", "-a", "b")
	if got.code != exit.CodeSuccess {
		t.Fatalf("Run() = %d, stderr: %s", got.code, got.stderr)
	}

	for _, want := range []string{"level=DEBUG", "msg=\"flattened input\"", "entries=3", "paths=2", "msg=\"run finished\""} {
		if !strings.Contains(got.stderr, want) {
			t.Errorf("debug log missing %q:\n%s", want, got.stderr)
		}
	}
	if strings.Contains(got.stderr, "time=") {
		t.Errorf("debug log has timestamps:\n%s", got.stderr)
	}
}

func TestRun_RoundTrip(t *testing.T) {
	t.Parallel()

	input := `{"users":[{"id":1,"tags":[],"meta":{}},{"id":2.50,"name":"b \"q\"","nested":[[true,null]]}],"empty":""}`

	flattened := execute(t, context.Background(), input)
	if flattened.code != exit.CodeSuccess {
		t.Fatalf("flatten = %d, stderr: %s", flattened.code, flattened.stderr)
	}

	deepened := execute(t, context.Background(), flattened.stdout, "-d")
	if deepened.code != exit.CodeSuccess {
		t.Fatalf("deepen = %d, stderr: %s", deepened.code, deepened.stderr)
	}

	want, err := value.DecodeJSONString(input)
	if err != nil {
		t.Fatal(err)
	}
	got, err := value.DecodeJSONString(deepened.stdout)
	if err != nil {
		t.Fatalf("DecodeJSONString(%q) error = %v", deepened.stdout, err)
	}
	if !got.Equal(want) {
		t.Errorf("round trip = %s, want %s", got, want)
	}
}
