package chart

import (
	"strconv"

	"github.com/matzehuels/elecciones/pkg/election"
)

// Datum is one charted party.
type Datum struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Series is an ordered list of data with a name and a unit suffix.
type Series struct {
	Name string  `json:"name"`
	Unit string  `json:"unit,omitempty"`
	Data []Datum `json:"data"`
}

// FromResult charts r: percentages for executive results, seats for
// legislative ones.
func FromResult(r election.Result) Series {
	s := Series{Name: "Escaños"}
	if r.Type == election.Executive {
		s = Series{Name: "% Votos", Unit: "%"}
	}
	s.Data = make([]Datum, 0, len(r.Parties))
	for _, p := range r.Parties {
		s.Data = append(s.Data, Datum{Name: p.Name, Value: p.Value(r.Type), Color: p.Color})
	}
	return s
}

// Total sums the non-negative values of the series.
func (s Series) Total() float64 {
	var t float64
	for _, d := range s.Data {
		t += max(d.Value, 0)
	}
	return t
}

// Label renders "{name}: {value}{unit}".
func (s Series) Label(d Datum) string {
	return d.Name + ": " + FormatValue(d.Value) + s.Unit
}

// FormatValue prints v with at most one decimal and no trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(roundTo(v, 1), 'f', -1, 64)
}

func roundTo(v float64, decimals int) float64 {
	p := 1.0
	for range decimals {
		p *= 10
	}
	r := v * p
	if r < 0 {
		return -float64(int64(-r+0.5)) / p
	}
	return float64(int64(r+0.5)) / p
}
