package chart

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/elecciones/pkg/election"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{31, "31"},
		{33.3, "33.3"},
		{16.04, "16"},
		{0, "0"},
		{2.25, "2.3"},
		{-1.5, "-1.5"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNiceStep(t *testing.T) {
	tests := []struct {
		peak float64
		want float64
	}{
		{60, 20},
		{42, 10},
		{34.2, 10},
		{5, 1},
		{0.7, 0.2},
		{0, 1},
		{-3, 1},
	}
	for _, tt := range tests {
		if got := NiceStep(tt.peak, 5); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NiceStep(%v) = %v, want %v", tt.peak, got, tt.want)
		}
	}
}

func TestFromResult(t *testing.T) {
	exec := election.Result{Type: election.Executive, Parties: []election.Party{
		{Name: "A", Color: "#111", Percentage: 60, Seats: 9},
	}}
	s := FromResult(exec)
	if s.Name != "% Votos" || s.Unit != "%" || s.Data[0].Value != 60 {
		t.Errorf("executive series = %+v", s)
	}
	if got := s.Label(s.Data[0]); got != "A: 60%" {
		t.Errorf("Label() = %q, want %q", got, "A: 60%")
	}

	leg := election.Result{Type: election.Legislative, Parties: []election.Party{
		{Name: "A", Color: "#111", Percentage: 60, Seats: 9},
	}}
	s = FromResult(leg)
	if s.Name != "Escaños" || s.Unit != "" || s.Data[0].Value != 9 {
		t.Errorf("legislative series = %+v", s)
	}
	if got := s.Label(s.Data[0]); got != "A: 9" {
		t.Errorf("Label() = %q, want %q", got, "A: 9")
	}
}

func TestBars(t *testing.T) {
	s := Series{Name: "Escaños", Data: []Datum{
		{Name: "A", Value: 42},
		{Name: "B", Value: 21},
		{Name: "C", Value: -4},
	}}
	c := Bars(s, 400, 380)

	if c.AxisMax != 50 {
		t.Errorf("AxisMax = %v, want 50", c.AxisMax)
	}
	if len(c.Ticks) != 6 || c.Ticks[5].Value != 50 || c.Ticks[0].Y != c.Baseline() {
		t.Errorf("Ticks = %+v", c.Ticks)
	}
	if len(c.Bars) != 3 {
		t.Fatalf("len(Bars) = %d, want 3", len(c.Bars))
	}
	if got, want := c.Bars[1].Height*2, c.Bars[0].Height; math.Abs(got-want) > 1e-9 {
		t.Errorf("bar heights not proportional: %v vs %v", got, want)
	}
	if c.Bars[2].Height != 0 {
		t.Errorf("negative value height = %v, want 0", c.Bars[2].Height)
	}
	for i := 1; i < len(c.Bars); i++ {
		if c.Bars[i].X <= c.Bars[i-1].X {
			t.Errorf("bar %d not right of bar %d", i, i-1)
		}
	}
	last := c.Bars[2]
	if last.X+last.Width > c.PlotLeft+c.PlotWidth {
		t.Errorf("last bar overflows the plot")
	}
}

func TestBarsEmpty(t *testing.T) {
	c := Bars(Series{}, 400, 300)
	if len(c.Bars) != 0 {
		t.Errorf("len(Bars) = %d, want 0", len(c.Bars))
	}
	if c.AxisMax != 1 {
		t.Errorf("AxisMax = %v, want 1", c.AxisMax)
	}
}

func TestPie(t *testing.T) {
	s := Series{Unit: "%", Data: []Datum{
		{Name: "A", Value: 50},
		{Name: "Z", Value: 0},
		{Name: "B", Value: 25},
		{Name: "C", Value: 25},
	}}
	c := Pie(s, 400, 400)

	if math.Abs(c.Radius-120) > 1e-9 {
		t.Errorf("Radius = %v, want 120", c.Radius)
	}
	if len(c.Slices) != 3 {
		t.Fatalf("len(Slices) = %d, want 3", len(c.Slices))
	}
	a := c.Slices[0]
	if a.Start != 0 || math.Abs(a.End-math.Pi) > 1e-9 || a.Label != "A: 50%" {
		t.Errorf("first slice = %+v", a)
	}
	if math.Abs(c.Slices[2].End-2*math.Pi) > 1e-9 {
		t.Errorf("last slice ends at %v, want 2π", c.Slices[2].End)
	}
	// A covers the right half, so its label sits at 3 o'clock.
	if a.LabelAnchor != "start" || a.LabelX <= c.CenterX || math.Abs(a.LabelY-c.CenterY) > 1e-9 {
		t.Errorf("slice A label = (%v, %v) %s", a.LabelX, a.LabelY, a.LabelAnchor)
	}
	if c.Slices[1].LabelAnchor != "end" || c.Slices[1].LabelX >= c.CenterX {
		t.Errorf("slice B label = (%v, %v) %s", c.Slices[1].LabelX, c.Slices[1].LabelY, c.Slices[1].LabelAnchor)
	}
	if a.Path != "M 200.00 200.00 L 200.00 80.00 A 120.00 120.00 0 0 1 200.00 320.00 Z" {
		t.Errorf("first slice path = %q", a.Path)
	}
}

func TestPieFullAndEmpty(t *testing.T) {
	full := Pie(Series{Data: []Datum{{Name: "A", Value: 71}, {Name: "B", Value: 0}}}, 400, 400)
	if len(full.Slices) != 1 || !full.Slices[0].Full {
		t.Fatalf("single slice = %+v", full.Slices)
	}
	if strings.Count(full.Slices[0].Path, "A ") != 2 {
		t.Errorf("full slice path = %q, want two arcs", full.Slices[0].Path)
	}

	empty := Pie(Series{Data: []Datum{{Name: "A", Value: 0}}}, 400, 400)
	if len(empty.Slices) != 0 {
		t.Errorf("zero total produced %d slices", len(empty.Slices))
	}
}
