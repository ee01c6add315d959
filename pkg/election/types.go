package election

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/elecciones/pkg/errors"
)

// Type is the kind of election.
type Type string

const (
	Executive   Type = "ejecutivo"
	Legislative Type = "legislativo"
)

// Types lists the election types in display order.
var Types = []Type{Executive, Legislative}

// Years lists the general elections held since the return to democracy.
var Years = []int{1994, 1999, 2004, 2009, 2014, 2019, 2024}

// ParseType accepts an election type by name, case-insensitively.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Types, t) {
		return "", errors.New(errors.ErrCodeInvalidElection,
			"unknown election type %q (want ejecutivo or legislativo)", s)
	}
	return t, nil
}

// ParseYear accepts one of [Years].
func ParseYear(s string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidYear, "invalid year %q", s)
	}
	if !IsElectionYear(y) {
		return 0, errors.New(errors.ErrCodeInvalidYear, "no general election in %d", y)
	}
	return y, nil
}

// IsElectionYear reports whether y is one of [Years].
func IsElectionYear(y int) bool {
	return slices.Contains(Years, y)
}

// Label is the heading used for the type on the site.
func (t Type) Label() string {
	switch t {
	case Executive:
		return "Elecciones Ejecutivas"
	case Legislative:
		return "Elecciones Legislativas"
	}
	return string(t)
}

// TotalLabel names the quantity a result of this type totals.
func (t Type) TotalLabel() string {
	if t == Legislative {
		return "Total de escaños"
	}
	return "Total de votos"
}

// Party is one party's line in a result. Executive results fill
// Candidate, Percentage and Votes; legislative results fill Seats.
type Party struct {
	Name       string  `json:"name" yaml:"name" validate:"required,max=120"`
	Candidate  string  `json:"candidate,omitempty" yaml:"candidate,omitempty"`
	Color      string  `json:"color" yaml:"color" validate:"required,csscolor"`
	Percentage float64 `json:"percentage,omitempty" yaml:"percentage,omitempty" validate:"gte=0,lte=100"`
	Votes      int     `json:"votes,omitempty" yaml:"votes,omitempty" validate:"gte=0"`
	Seats      int     `json:"seats,omitempty" yaml:"seats,omitempty" validate:"gte=0"`
}

// Value is the number charted for the party: vote percentage for
// executive results, seats for legislative ones.
func (p Party) Value(t Type) float64 {
	if t == Legislative {
		return float64(p.Seats)
	}
	return p.Percentage
}

// Result is one election of one type.
type Result struct {
	Year       int     `json:"year" yaml:"-" validate:"election_year"`
	Type       Type    `json:"type" yaml:"-" validate:"oneof=ejecutivo legislativo"`
	TotalVotes int     `json:"total_votes,omitempty" yaml:"total_votes,omitempty" validate:"gte=0"`
	TotalSeats int     `json:"total_seats,omitempty" yaml:"total_seats,omitempty" validate:"gte=0"`
	Parties    []Party `json:"parties" yaml:"parties" validate:"required,min=1,dive"`
}

// Total is the subtitle figure: total votes or total seats.
func (r Result) Total() int {
	if r.Type == Legislative {
		return r.TotalSeats
	}
	return r.TotalVotes
}

// Winner returns the party with the largest value. Ties go to the party
// listed first.
func (r Result) Winner() (Party, bool) {
	if len(r.Parties) == 0 {
		return Party{}, false
	}
	best := r.Parties[0]
	for _, p := range r.Parties[1:] {
		if p.Value(r.Type) > best.Value(r.Type) {
			best = p
		}
	}
	return best, true
}

// ProvinceResult is the vote total of one province and the party that
// carried it.
type ProvinceResult struct {
	Name   string `json:"name" yaml:"name" validate:"required"`
	Votes  int    `json:"votes" yaml:"votes" validate:"gte=0"`
	Winner string `json:"winner" yaml:"winner" validate:"required"`
}

// Milestone is an entry of the democratic timeline shown on the home page.
type Milestone struct {
	Year        int    `json:"year" yaml:"year" validate:"gte=1900,lte=2100"`
	Title       string `json:"title" yaml:"title" validate:"required"`
	Description string `json:"description" yaml:"description"`
}
