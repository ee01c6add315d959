package hemicycle

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const tol = 1e-9

func twoParties() Request {
	return Request{
		Parties: []PartyAllocation{
			{Name: "A", Seats: 6, Color: "#ff0000"},
			{Name: "B", Seats: 4, Color: "#0000ff"},
		},
		TotalSeats: 10,
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < tol }

func TestBuildTwoParties(t *testing.T) {
	l := Build(twoParties())

	if l.Rows.RowCount != 3 {
		t.Fatalf("RowCount = %d, want 3", l.Rows.RowCount)
	}
	if len(l.Seats) != 10 {
		t.Fatalf("len(Seats) = %d, want 10", len(l.Seats))
	}
	for i, s := range l.Seats {
		want := "A"
		if i >= 6 {
			want = "B"
		}
		if s.Party != want {
			t.Errorf("seat %d party = %q, want %q", i, s.Party, want)
		}
		if s.Index != i {
			t.Errorf("seat %d index = %d", i, s.Index)
		}
	}
	if l.MarkerRadius != MaxMarkerRadius {
		t.Errorf("MarkerRadius = %v, want %v", l.MarkerRadius, MaxMarkerRadius)
	}
}

func TestBuildPositions(t *testing.T) {
	l := Build(twoParties())

	// Rows hold 3, 4 and 3 seats at radii 200, 245 and 290.
	tests := []struct {
		index int
		row   int
		x, y  float64
	}{
		{0, 0, 300, 500},
		{1, 0, 500, 300},
		{2, 0, 700, 500},
		{3, 1, 255, 500},
		{6, 1, 745, 500},
		{7, 2, 210, 500},
		{8, 2, 500, 210},
		{9, 2, 790, 500},
	}

	for _, tt := range tests {
		s := l.Seats[tt.index]
		if s.Row != tt.row {
			t.Errorf("seat %d row = %d, want %d", tt.index, s.Row, tt.row)
		}
		if !near(s.X, tt.x) || !near(s.Y, tt.y) {
			t.Errorf("seat %d at (%.3f, %.3f), want (%.0f, %.0f)", tt.index, s.X, s.Y, tt.x, tt.y)
		}
	}
}

func TestBuildSingleSeat(t *testing.T) {
	l := Build(Request{
		Parties:    []PartyAllocation{{Name: "Solo", Seats: 1, Color: "#000"}},
		TotalSeats: 1,
	})

	if len(l.Seats) != 1 {
		t.Fatalf("len(Seats) = %d, want 1", len(l.Seats))
	}
	s := l.Seats[0]
	if !near(s.Angle, math.Pi) {
		t.Errorf("Angle = %v, want PI", s.Angle)
	}

	if s.Row != 0 {
		t.Errorf("Row = %d, want 0", s.Row)
	}
	radius := l.Rows.RadiusPerRow[0]
	if !near(radius, DefaultBaseRadius) {
		t.Errorf("row 0 radius = %v, want %v", radius, DefaultBaseRadius)
	}
	if !near(s.X, l.CenterX-radius) || !near(s.Y, l.CenterY) {
		t.Errorf("seat at (%v, %v), want (%v, %v)", s.X, s.Y, l.CenterX-radius, l.CenterY)
	}
}

func TestBuildFitsFrame(t *testing.T) {
	for rows := 0; rows <= MaxRows+2; rows++ {
		for _, total := range []int{1, 10, 71, 400} {
			l := Build(requestFrom([]int{total / 2, total - total/2}), WithRows(rows))

			if l.Rows.RowCount > MaxRows {
				t.Errorf("rows=%d total=%d: RowCount = %d, want at most %d", rows, total, l.Rows.RowCount, MaxRows)
			}
			m := l.MarkerRadius
			for _, s := range l.Seats {
				if s.X-m < 0 || s.X+m > l.Width || s.Y-m < 0 || s.Y+m > l.Height {
					t.Errorf("rows=%d total=%d: seat %d at (%.1f, %.1f) outside %gx%g frame",
						rows, total, s.Index, s.X, s.Y, l.Width, l.Height)
					break
				}
			}
		}
	}
}

func TestBuildSingleArc(t *testing.T) {
	l := Build(twoParties(), WithRows(1))

	if l.Rows.RowCount != 1 || l.Rows.SeatsPerRow[0] != 10 {
		t.Fatalf("Rows = %+v, want one row of 10", l.Rows)
	}
	first, last := l.Seats[0], l.Seats[9]
	if !near(first.Angle, math.Pi) || !near(last.Angle, 0) {
		t.Errorf("arc spans %v..%v, want PI..0", first.Angle, last.Angle)
	}
}

func TestBuildEmpty(t *testing.T) {
	for _, total := range []int{0, -5} {
		l := Build(Request{Parties: []PartyAllocation{{Name: "A", Seats: 3}}, TotalSeats: total})
		if len(l.Seats) != 0 || l.Rows.RowCount != 0 || l.MarkerRadius != 0 {
			t.Errorf("Build(total=%d) = %+v, want empty layout", total, l)
		}
	}
}

func TestBuildUnderRun(t *testing.T) {
	req := Request{
		Parties:    []PartyAllocation{{Name: "A", Seats: 3}, {Name: "B", Seats: 2}},
		TotalSeats: 10,
	}
	l := Build(req)

	if len(l.Seats) != 5 {
		t.Fatalf("len(Seats) = %d, want 5", len(l.Seats))
	}
	if l.Rows.Total() != 10 {
		t.Errorf("plan holds %d slots, want 10", l.Rows.Total())
	}
	// The plan is the same as for a consistent request of the same size.
	full := Build(twoParties())
	for i, s := range l.Seats {
		if !near(s.X, full.Seats[i].X) || !near(s.Y, full.Seats[i].Y) {
			t.Errorf("seat %d moved: (%v, %v) vs (%v, %v)", i, s.X, s.Y, full.Seats[i].X, full.Seats[i].Y)
		}
	}
}

func TestBuildOverRun(t *testing.T) {
	req := Request{
		Parties:    []PartyAllocation{{Name: "A", Seats: 6}, {Name: "B", Seats: 6}},
		TotalSeats: 10,
	}
	l := Build(req)

	if len(l.Seats) != 12 {
		t.Fatalf("len(Seats) = %d, want 12", len(l.Seats))
	}
	last := l.Rows.RowCount - 1
	for _, s := range l.Seats[10:] {
		if s.Row != last {
			t.Errorf("overflow seat %d on row %d, want %d", s.Index, s.Row, last)
		}
		if s.Angle >= 0 {
			t.Errorf("overflow seat %d angle = %v, want < 0", s.Index, s.Angle)
		}
	}
}

func TestBuildNegativeSeats(t *testing.T) {
	req := Request{
		Parties:    []PartyAllocation{{Name: "A", Seats: -2}, {Name: "B", Seats: 4}},
		TotalSeats: 4,
	}
	l := Build(req)
	if len(l.Seats) != 4 || l.Seats[0].Party != "B" {
		t.Errorf("negative count should contribute no seats, got %d seats", len(l.Seats))
	}
}

func TestBuildOptions(t *testing.T) {
	l := Build(twoParties(), WithCenter(0, 0), WithRadii(100, 10))

	if got := l.Rows.RadiusPerRow; !cmp.Equal(got, []float64{100, 110, 120}) {
		t.Errorf("RadiusPerRow = %v", got)
	}
	if s := l.Seats[0]; !near(s.X, -100) || !near(s.Y, 0) {
		t.Errorf("first seat at (%v, %v), want (-100, 0)", s.X, s.Y)
	}

	// Invalid values are ignored.
	d := Build(twoParties(), WithRows(0), WithRadii(200, -1))
	if d.Rows.RowCount != 3 || d.Rows.RadiusPerRow[1] != 245 {
		t.Errorf("invalid options changed the plan: %+v", d.Rows)
	}
}

func TestBuildDeterministic(t *testing.T) {
	req := Request{
		Parties: []PartyAllocation{
			{Name: "PRD", Seats: 35, Color: "#1f7a3a"},
			{Name: "CD", Seats: 18, Color: "#f28c28"},
			{Name: "Panameñista", Seats: 8, Color: "#6a2c91"},
			{Name: "Libre Postulación", Seats: 5, Color: "#6b7280"},
			{Name: "MOLIRENA", Seats: 5, Color: "#0e7490"},
		},
		TotalSeats: 71,
	}
	a, b := Build(req), Build(req)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Build not deterministic (-a +b):\n%s", diff)
	}
}

func TestTooltip(t *testing.T) {
	s := Seat{Party: "PRD", Index: 0}
	if got, want := Tooltip(s), "PRD — Seat 1"; got != want {
		t.Errorf("Tooltip() = %q, want %q", got, want)
	}
}

func TestArcPath(t *testing.T) {
	got := ArcPath(200, 500, 500)
	want := "M 300.00 500.00 A 200.00 200.00 0 0 1 700.00 500.00"
	if got != want {
		t.Errorf("ArcPath() = %q, want %q", got, want)
	}
}

func TestTally(t *testing.T) {
	got := Tally(Build(twoParties()))
	want := []PartyCount{
		{Party: "A", Color: "#ff0000", Seats: 6},
		{Party: "B", Color: "#0000ff", Seats: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tally() mismatch (-want +got):\n%s", diff)
	}
	if got[0].Label() != "A: 6" {
		t.Errorf("Label() = %q", got[0].Label())
	}
}
