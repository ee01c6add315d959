package hemicycle

import "fmt"

// Tooltip returns the hover text for a seat, numbering seats from 1.
func Tooltip(s Seat) string {
	return fmt.Sprintf("%s — Seat %d", s.Party, s.Index+1)
}

// ArcPath returns an SVG path for the background arc of a row of the given
// radius, drawn from the left end of the baseline to the right end.
func ArcPath(radius, cx, cy float64) string {
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 0 1 %.2f %.2f",
		cx-radius, cy, radius, radius, cx+radius, cy)
}

// PartyCount is the number of seats a party actually received in a layout.
type PartyCount struct {
	Party string `json:"party"`
	Color string `json:"color"`
	Seats int    `json:"seats"`
}

// Tally counts placed seats per party, in first-seen order.
func Tally(l Layout) []PartyCount {
	var out []PartyCount
	pos := make(map[string]int)
	for _, s := range l.Seats {
		i, ok := pos[s.Party]
		if !ok {
			i = len(out)
			pos[s.Party] = i
			out = append(out, PartyCount{Party: s.Party, Color: s.Color})
		}
		out[i].Seats++
	}
	return out
}

// Label returns the legend entry for a party count, e.g. "PRD: 35".
func (c PartyCount) Label() string {
	return fmt.Sprintf("%s: %d", c.Party, c.Seats)
}
