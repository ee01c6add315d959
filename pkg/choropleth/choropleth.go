package choropleth

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/elecciones/pkg/election"
)

// MutedColor fills provinces without data or without a known winner color.
const MutedColor = "#d4d4d8"

// Tooltip is the hover card of a province.
type Tooltip struct {
	Name       string `json:"name"`
	Votes      string `json:"votes"`
	Percentage string `json:"percentage,omitempty"`
	Winner     string `json:"winner"`
}

// Lines renders the card the way the site shows it.
func (t Tooltip) Lines() []string {
	lines := []string{t.Name, "Votos: " + t.Votes}
	if t.Percentage != "" {
		lines = append(lines, "Porcentaje: "+t.Percentage)
	}
	return append(lines, "Ganador: "+t.Winner)
}

// LegendEntry counts the provinces a party carried.
type LegendEntry struct {
	Party string `json:"party"`
	Color string `json:"color"`
	Count int    `json:"count"`
	Label string `json:"label"`
}

// Binding joins province results with party colors.
type Binding struct {
	rows   []election.ProvinceResult
	byKey  map[string]int
	colors map[string]string
	total  int
}

// Bind indexes results by province name. Lookups ignore case and accents,
// so "Colon" finds "Colón".
func Bind(results []election.ProvinceResult, colors map[string]string) *Binding {
	b := &Binding{
		rows:   slices.Clone(results),
		byKey:  make(map[string]int, len(results)),
		colors: colors,
	}
	for i, r := range b.rows {
		b.byKey[Key(r.Name)] = i
		b.total += max(r.Votes, 0)
	}
	return b
}

// Provinces returns the bound rows in input order.
func (b *Binding) Provinces() []election.ProvinceResult {
	return slices.Clone(b.rows)
}

// TotalVotes sums the votes of every bound province.
func (b *Binding) TotalVotes() int {
	return b.total
}

func (b *Binding) lookup(name string) (election.ProvinceResult, bool) {
	i, ok := b.byKey[Key(name)]
	if !ok {
		return election.ProvinceResult{}, false
	}
	return b.rows[i], true
}

// Fill returns the winner's color for the province, or MutedColor.
func (b *Binding) Fill(name string) string {
	r, ok := b.lookup(name)
	if !ok {
		return MutedColor
	}
	return b.partyColor(r.Winner)
}

func (b *Binding) partyColor(party string) string {
	if c := b.colors[party]; c != "" {
		return c
	}
	return MutedColor
}

// Tooltip describes the province, or reports false when it has no data.
// The share of votes is omitted when no votes were counted at all.
func (b *Binding) Tooltip(name string) (Tooltip, bool) {
	r, ok := b.lookup(name)
	if !ok {
		return Tooltip{}, false
	}
	t := Tooltip{
		Name:   r.Name,
		Votes:  humanize.Comma(int64(r.Votes)),
		Winner: r.Winner,
	}
	if b.total > 0 {
		t.Percentage = fmt.Sprintf("%.1f%%", float64(r.Votes)/float64(b.total)*100)
	}
	return t, true
}

// Legend counts provinces per winning party, most provinces first and
// ties by party name.
func (b *Binding) Legend() []LegendEntry {
	counts := make(map[string]int)
	for _, r := range b.rows {
		counts[r.Winner]++
	}
	entries := make([]LegendEntry, 0, len(counts))
	for party, n := range counts {
		noun := "provincias"
		if n == 1 {
			noun = "provincia"
		}
		entries = append(entries, LegendEntry{
			Party: party,
			Color: b.partyColor(party),
			Count: n,
			Label: fmt.Sprintf("%s (%d %s)", party, n, noun),
		})
	}
	slices.SortFunc(entries, func(x, y LegendEntry) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return strings.Compare(x.Party, y.Party)
	})
	return entries
}

// Key normalizes a province name for matching: lower case, no accents,
// single spaces.
func Key(name string) string {
	// Chained transformers carry state; build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, name)
	if err != nil {
		s = name
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
