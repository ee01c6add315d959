package dot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/elecciones/pkg/hemicycle"
)

func TestToDOT(t *testing.T) {
	l := hemicycle.Build(hemicycle.Request{
		TotalSeats: 3,
		Parties:    []hemicycle.PartyAllocation{{Name: "A", Seats: 3, Color: "#111111"}},
	})
	src := ToDOT(l)

	if !strings.HasPrefix(src, "graph hemicycle {") {
		t.Errorf("DOT header = %q", src[:20])
	}
	if n := strings.Count(src, `"seat-`); n != 3 {
		t.Errorf("seat nodes = %d, want 3", n)
	}
	// Seat 0 sits at the left end of its row; y is mirrored into Graphviz space.
	s := l.Seats[0]
	want := fmt.Sprintf(`"seat-0" [pos="%.2f,%.2f!"`, s.X, l.Height-s.Y)
	if !strings.Contains(src, want) {
		t.Errorf("DOT missing %s\n%s", want, src)
	}
	if !strings.Contains(src, `tooltip="A — Seat 1"`) {
		t.Error("tooltip missing")
	}
	if !strings.Contains(src, "width=0.2778") {
		t.Errorf("node width for marker radius %v missing", l.MarkerRadius)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("normalizeViewBox() changed svg without viewBox: %s", got)
	}
}
