package election

import (
	stderrors "errors"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/elecciones/pkg/errors"
)

// percentSlack absorbs rounding in published percentages.
const percentSlack = 0.5

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("election_year", func(fl validator.FieldLevel) bool {
		return IsElectionYear(int(fl.Field().Int()))
	})
	_ = v.RegisterValidation("csscolor", func(fl validator.FieldLevel) bool {
		return errors.ValidateColor(fl.Field().String()) == nil
	})
	return v
}

// Validate checks a single result: struct constraints, unique party
// names, and totals consistent with the party lines.
func (r Result) Validate() error {
	if err := validate.Struct(r); err != nil {
		return formatValidationError(r, err)
	}

	seen := make(map[string]bool, len(r.Parties))
	var seats int
	var pct float64
	for _, p := range r.Parties {
		if err := errors.ValidatePartyName(p.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDataset, err, "%s %d", r.Type, r.Year)
		}
		if seen[p.Name] {
			return errors.New(errors.ErrCodeInvalidDataset, "%s %d: duplicate party %q", r.Type, r.Year, p.Name)
		}
		seen[p.Name] = true
		seats += p.Seats
		pct += p.Percentage
	}

	switch r.Type {
	case Legislative:
		if r.TotalSeats < 1 {
			return errors.New(errors.ErrCodeInvalidDataset, "legislativo %d: total_seats must be positive", r.Year)
		}
		if seats != r.TotalSeats {
			return errors.New(errors.ErrCodeInvalidDataset,
				"legislativo %d: party seats sum to %d, want %d", r.Year, seats, r.TotalSeats)
		}
	case Executive:
		if math.Abs(pct-100) > percentSlack {
			return errors.New(errors.ErrCodeInvalidDataset,
				"ejecutivo %d: percentages sum to %.1f, want 100", r.Year, pct)
		}
	}
	return nil
}

// Validate checks every table of the dataset.
func (d *Dataset) Validate() error {
	for _, t := range Types {
		for _, year := range d.Years(t) {
			if err := d.table(t)[year].Validate(); err != nil {
				return err
			}
		}
	}
	for _, year := range slices.Sorted(maps.Keys(d.provinces)) {
		rows := d.provinces[year]
		if !IsElectionYear(year) {
			return errors.New(errors.ErrCodeInvalidDataset, "provincias: no general election in %d", year)
		}
		seen := make(map[string]bool, len(rows))
		for _, row := range rows {
			if err := validate.Struct(row); err != nil {
				return formatValidationError(row, err)
			}
			if seen[row.Name] {
				return errors.New(errors.ErrCodeInvalidDataset, "provincias %d: duplicate province %q", year, row.Name)
			}
			seen[row.Name] = true
		}
	}
	for _, m := range d.timeline {
		if err := validate.Struct(m); err != nil {
			return formatValidationError(m, err)
		}
	}
	return nil
}

// formatValidationError reports the first failed constraint.
func formatValidationError(subject any, err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidDataset, err, "validate %T", subject)
	}
	e := verrs[0]
	where := describe(subject)
	field := e.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch e.Tag() {
	case "required":
		return errors.New(errors.ErrCodeInvalidDataset, "%s: %s is required", where, field)
	case "min", "gte":
		return errors.New(errors.ErrCodeInvalidDataset, "%s: %s must be at least %s", where, field, e.Param())
	case "max", "lte":
		return errors.New(errors.ErrCodeInvalidDataset, "%s: %s must not exceed %s", where, field, e.Param())
	case "csscolor":
		return errors.New(errors.ErrCodeInvalidDataset, "%s: %s %q is not a color", where, field, e.Value())
	case "election_year":
		return errors.New(errors.ErrCodeInvalidDataset, "%s: no general election in %v", where, e.Value())
	default:
		return errors.New(errors.ErrCodeInvalidDataset, "%s: %s failed %s", where, field, e.Tag())
	}
}

func describe(subject any) string {
	switch s := subject.(type) {
	case Result:
		return string(s.Type) + " " + strconv.Itoa(s.Year)
	case ProvinceResult:
		return "provincias " + s.Name
	case Milestone:
		return "hitos " + strconv.Itoa(s.Year)
	}
	return "dataset"
}
