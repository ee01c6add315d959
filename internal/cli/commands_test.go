package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/elecciones/pkg/election"
	"github.com/matzehuels/elecciones/pkg/errors"
	"github.com/matzehuels/elecciones/pkg/hemicycle"
	"github.com/matzehuels/elecciones/pkg/io"
	"github.com/matzehuels/elecciones/pkg/pipeline"
)

func TestYearsCommand(t *testing.T) {
	out := captureStdout(t)
	if err := runCLI(t, "years"); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"ejecutivo", "legislativo", "1994", "2024"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output lacks %q:\n%s", want, out.String())
		}
	}
}

func TestYearsCommandResult(t *testing.T) {
	data, err := election.Default()
	if err != nil {
		t.Fatal(err)
	}
	r, err := data.Result(election.Executive, 2019)
	if err != nil {
		t.Fatal(err)
	}
	winner, _ := r.Winner()

	out := captureStdout(t)
	if err := runCLI(t, "years", "ejecutivo", "2019"); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Elecciones Ejecutivas 2019", "Candidato", winner.Name, "Ganador"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output lacks %q:\n%s", want, out.String())
		}
	}

	if err := runCLI(t, "years", "ejecutivo", "1990"); !errors.Is(err, errors.ErrCodeInvalidYear) {
		t.Errorf("years ejecutivo 1990: error = %v, want INVALID_YEAR", err)
	}
}

func TestLayoutCommandJSON(t *testing.T) {
	out := captureStdout(t)
	if err := runCLI(t, "layout", "2019", "--json"); err != nil {
		t.Fatal(err)
	}
	l, err := io.ReadLayout(strings.NewReader(out.String()))
	if err != nil {
		t.Fatalf("read layout: %v\n%s", err, out.String())
	}
	data, _ := election.Default()
	r, _ := data.Result(election.Legislative, 2019)
	if len(l.Seats) != r.TotalSeats {
		t.Errorf("layout has %d seats, want %d", len(l.Seats), r.TotalSeats)
	}
}

func TestLayoutCommandInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "request.json")
	req := hemicycle.Request{
		TotalSeats: 5,
		Parties: []hemicycle.PartyAllocation{
			{Name: "A", Seats: 3, Color: "#ff0000"},
			{Name: "B", Seats: 2, Color: "#0000ff"},
		},
	}
	raw, _ := json.Marshal(req)
	if err := os.WriteFile(input, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "layout.json")

	out := captureStdout(t)
	if err := runCLI(t, "layout", "--input", input, "-o", output, "--rows", "2"); err != nil {
		t.Fatal(err)
	}
	l, err := io.ImportLayout(output)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Seats) != 5 || l.Rows.RowCount != 2 {
		t.Errorf("got %d seats in %d rows, want 5 in 2", len(l.Seats), l.Rows.RowCount)
	}
	if !strings.Contains(out.String(), "Layout complete") {
		t.Errorf("output lacks the completion line:\n%s", out.String())
	}
}

func TestLayoutCommandStrict(t *testing.T) {
	input := filepath.Join(t.TempDir(), "request.json")
	raw := `{"total_seats": 10, "parties": [{"name": "A", "seats": 3, "color": "#ff0000"}]}`
	if err := os.WriteFile(input, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	captureStdout(t)
	if err := runCLI(t, "layout", "--input", input); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("strict layout: error = %v, want INVALID_INPUT", err)
	}

	out := captureStdout(t)
	if err := runCLI(t, "layout", "--input", input, "--strict=false"); err != nil {
		t.Fatalf("lenient layout: %v", err)
	}
	if !strings.Contains(out.String(), "party seats sum to 3") {
		t.Errorf("output lacks the mismatch warning:\n%s", out.String())
	}
}

func TestCachePathCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	out := captureStdout(t)
	if err := runCLI(t, "cache", "path"); err != nil {
		t.Fatal(err)
	}
	if got, want := strings.TrimSpace(out.String()), filepath.Join("/tmp/xdg", appName); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	root := New(os.Stderr, LogInfo).RootCommand()
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "years"})
	root.SetErr(new(strings.Builder))
	if err := root.Execute(); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

// =============================================================================
// Pick
// =============================================================================

func press(m PickModel, keys ...string) (PickModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(PickModel)
	}
	return m, cmd
}

func newTestPickModel(t *testing.T) PickModel {
	t.Helper()
	data, err := election.Default()
	if err != nil {
		t.Fatal(err)
	}
	return NewPickModel(data)
}

func TestPickModelSelectsLatestHemicycle(t *testing.T) {
	m := newTestPickModel(t)

	// legislativo, most recent year, third chart (hemiciclo)
	m, cmd := press(m, "down", "enter", "enter", "down", "down", "enter")
	if m.Selected == nil {
		t.Fatal("nothing selected")
	}
	want := PickSelection{Election: election.Legislative, Year: 2024, Chart: pipeline.ChartHemicycle}
	if *m.Selected != want {
		t.Errorf("selected %+v, want %+v", *m.Selected, want)
	}
	if cmd == nil {
		t.Error("final selection should quit the program")
	}
}

func TestPickModelExecutiveHasNoHemicycle(t *testing.T) {
	m := newTestPickModel(t)
	m, _ = press(m, "enter", "enter")

	if m.Stage != stageChart {
		t.Fatalf("stage = %d, want chart stage", m.Stage)
	}
	for _, c := range m.choices() {
		if c == pipeline.ChartHemicycle {
			t.Error("hemiciclo offered for an executive election")
		}
	}
	if strings.Contains(m.View(), pipeline.ChartHemicycle) {
		t.Error("view lists hemiciclo for an executive election")
	}
}

func TestPickModelBackAndQuit(t *testing.T) {
	m := newTestPickModel(t)
	m, _ = press(m, "enter", "esc")
	if m.Stage != stageType {
		t.Errorf("stage after esc = %d, want type stage", m.Stage)
	}

	m, cmd := press(m, "q")
	if m.Selected != nil || cmd == nil {
		t.Error("q should quit without a selection")
	}
}

func TestPickModelCursorBounds(t *testing.T) {
	m := newTestPickModel(t)
	m, _ = press(m, "k", "k")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after moving up from the top", m.Cursor)
	}
	m, _ = press(m, "j", "j", "j", "j")
	if want := len(election.Types) - 1; m.Cursor != want {
		t.Errorf("cursor = %d, want clamped to %d", m.Cursor, want)
	}
}
