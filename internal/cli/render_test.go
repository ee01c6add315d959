package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/elecciones/pkg/errors"
	"github.com/matzehuels/elecciones/pkg/io"
	"github.com/matzehuels/elecciones/pkg/pipeline"
)

// captureStdout redirects command output for the rest of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

// runCLI executes the root command with a config that disables caching.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs(append([]string{"--config", cfg}, args...))
	root.SetOut(&logs)
	root.SetErr(&logs)
	return root.ExecuteContext(context.Background())
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,png,pdf", []string{"svg", "png", "pdf"}},
		{"svg, json , dot", []string{"svg", "json", "dot"}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
			t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, fallback, want string
	}{
		{"", "legislativo-2024-hemiciclo", "legislativo-2024-hemiciclo"},
		{"out/asamblea.svg", "x", "out/asamblea"},
		{"out/asamblea.dot", "x", "out/asamblea"},
		{"out/asamblea", "x", "out/asamblea"},
		{"out/asamblea.v2", "x", "out/asamblea.v2"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.fallback); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.fallback, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		pipeline.FormatJSON: []byte("{}"),
		pipeline.FormatSVG:  []byte("<svg/>"),
	}

	paths, err := writeArtifacts(artifacts, filepath.Join(dir, "sub", "chart"), "")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "sub", "chart.svg"), filepath.Join(dir, "sub", "chart.json")}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}

	single := filepath.Join(dir, "exact.name")
	paths, err = writeArtifacts(map[string][]byte{pipeline.FormatSVG: []byte("<svg/>")}, "ignored", single)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || paths[0] != single {
		t.Errorf("single artifact written to %v, want %s", paths, single)
	}
}

func TestParseElectionArgs(t *testing.T) {
	var opts pipeline.Options
	if err := parseElectionArgs([]string{"Legislativo"}, &opts); err != nil {
		t.Fatal(err)
	}
	if opts.Election != "legislativo" || opts.Year != pipeline.DefaultYear {
		t.Errorf("got %s %d, want legislativo %d", opts.Election, opts.Year, pipeline.DefaultYear)
	}

	if err := parseElectionArgs([]string{"ejecutivo", "2023"}, &opts); !errors.Is(err, errors.ErrCodeInvalidYear) {
		t.Errorf("year 2023: error = %v, want INVALID_YEAR", err)
	}
	if err := parseElectionArgs([]string{"municipal"}, &opts); !errors.Is(err, errors.ErrCodeInvalidElection) {
		t.Errorf("municipal: error = %v, want INVALID_ELECTION", err)
	}
}

func TestRenderCommand(t *testing.T) {
	out := captureStdout(t)
	base := filepath.Join(t.TempDir(), "asamblea")

	err := runCLI(t, "render", "legislativo", "2024", "-c", "hemiciclo", "-f", "svg,json,dot", "-o", base)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	l, err := io.ImportLayout(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(svg), `class="seat"`); got != len(l.Seats) {
		t.Errorf("svg has %d seats, layout has %d", got, len(l.Seats))
	}
	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), "graph hemicycle {") {
		t.Errorf("dot output starts with %q", string(dot[:min(20, len(dot))]))
	}
	if !strings.Contains(out.String(), base+".svg") {
		t.Errorf("output %q does not list the svg file", out.String())
	}
}

func TestRenderCommandErrors(t *testing.T) {
	captureStdout(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"executive hemicycle", []string{"render", "ejecutivo", "-c", "hemiciclo", "-o", filepath.Join(dir, "a.svg")}, errors.ErrCodeUnsupported},
		{"dot for bars", []string{"render", "ejecutivo", "-f", "dot", "-o", filepath.Join(dir, "b.dot")}, errors.ErrCodeUnsupported},
		{"unknown chart", []string{"render", "ejecutivo", "-c", "torta", "-o", filepath.Join(dir, "c.svg")}, errors.ErrCodeInvalidChart},
		{"unknown format", []string{"render", "ejecutivo", "-f", "gif", "-o", filepath.Join(dir, "d.gif")}, errors.ErrCodeInvalidFormat},
		{"too many rows", []string{"render", "legislativo", "-c", "hemiciclo", "--rows", "40", "-o", filepath.Join(dir, "e.svg")}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runCLI(t, tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderFallback(t *testing.T) {
	out := captureStdout(t)
	path := filepath.Join(t.TempDir(), "ejecutivo.svg")

	if err := runCLI(t, "render", "ejecutivo", "2019", "-c", "hemiciclo", "--fallback", "-o", path); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "drew barras instead") {
		t.Errorf("output %q lacks the fallback warning", out.String())
	}
}
