package pipeline

import (
	"github.com/matzehuels/elecciones/pkg/election"
	"github.com/matzehuels/elecciones/pkg/errors"
)

// Source is the data one chart is drawn from.
type Source struct {
	Result election.Result

	// Provinces is only loaded for maps.
	Provinces []election.ProvinceResult

	// Colors maps each party of Result to its color.
	Colors map[string]string
}

// Resolve looks up the data a chart needs. Maps also need the year's
// province results; their fills use the party colors of the selected
// election type.
func Resolve(d *election.Dataset, opts Options) (Source, error) {
	if d == nil {
		return Source{}, errors.New(errors.ErrCodeInternal, "no dataset loaded")
	}
	if err := opts.ValidateForResolve(); err != nil {
		return Source{}, err
	}
	t := opts.ElectionType()

	r, err := d.Result(t, opts.Year)
	if err != nil {
		return Source{}, err
	}
	src := Source{Result: r, Colors: d.PartyColors(t, opts.Year)}

	if opts.Chart == ChartMap {
		if src.Provinces, err = d.Provinces(opts.Year); err != nil {
			return Source{}, err
		}
	}
	return src, nil
}
