package election

import (
	"maps"
	"slices"

	"github.com/matzehuels/elecciones/pkg/errors"
	"github.com/matzehuels/elecciones/pkg/hemicycle"
)

// Dataset is an immutable set of election tables. Accessors return copies,
// so a Dataset can be shared between goroutines.
type Dataset struct {
	executive   map[int]Result
	legislative map[int]Result
	provinces   map[int][]ProvinceResult
	timeline    []Milestone
	hash        string
}

// Years returns the years with a result of type t, ascending.
func (d *Dataset) Years(t Type) []int {
	return slices.Sorted(maps.Keys(d.table(t)))
}

// Result returns the result of type t held in year.
func (d *Dataset) Result(t Type, year int) (Result, error) {
	if !slices.Contains(Types, t) {
		return Result{}, errors.New(errors.ErrCodeInvalidElection, "unknown election type %q", t)
	}
	r, ok := d.table(t)[year]
	if !ok {
		if !IsElectionYear(year) {
			return Result{}, errors.New(errors.ErrCodeInvalidYear, "no general election in %d", year)
		}
		return Result{}, errors.New(errors.ErrCodeNotFound, "no %s results for %d", t, year)
	}
	r.Parties = slices.Clone(r.Parties)
	return r, nil
}

// Provinces returns the per-province results of year in file order.
func (d *Dataset) Provinces(year int) ([]ProvinceResult, error) {
	ps, ok := d.provinces[year]
	if !ok {
		if !IsElectionYear(year) {
			return nil, errors.New(errors.ErrCodeInvalidYear, "no general election in %d", year)
		}
		return nil, errors.New(errors.ErrCodeNotFound, "no province results for %d", year)
	}
	return slices.Clone(ps), nil
}

// PartyColors maps party name to color for one result. Unknown results
// yield an empty map.
func (d *Dataset) PartyColors(t Type, year int) map[string]string {
	colors := make(map[string]string)
	for _, p := range d.table(t)[year].Parties {
		colors[p.Name] = p.Color
	}
	return colors
}

// Seats converts the legislative result of year into a seat-layout request.
// Party order is preserved; it decides where each bloc sits.
func (d *Dataset) Seats(year int) (hemicycle.Request, error) {
	r, err := d.Result(Legislative, year)
	if err != nil {
		return hemicycle.Request{}, err
	}
	return SeatRequest(r)
}

// SeatRequest converts a legislative result into a seat-layout request.
func SeatRequest(r Result) (hemicycle.Request, error) {
	if r.Type != Legislative {
		return hemicycle.Request{}, errors.New(errors.ErrCodeUnsupported,
			"%s elections have no seat layout", r.Type)
	}
	req := hemicycle.Request{
		Parties:    make([]hemicycle.PartyAllocation, 0, len(r.Parties)),
		TotalSeats: r.TotalSeats,
	}
	for _, p := range r.Parties {
		req.Parties = append(req.Parties, hemicycle.PartyAllocation{
			Name:  p.Name,
			Seats: p.Seats,
			Color: p.Color,
		})
	}
	return req, nil
}

// Timeline returns the milestones ordered by year.
func (d *Dataset) Timeline() []Milestone {
	return slices.Clone(d.timeline)
}

// Hash identifies the dataset's content. Two datasets loaded from the same
// bytes have the same hash.
func (d *Dataset) Hash() string {
	return d.hash
}

func (d *Dataset) table(t Type) map[int]Result {
	if t == Legislative {
		return d.legislative
	}
	if t == Executive {
		return d.executive
	}
	return nil
}
