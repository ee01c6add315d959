package hemicycle

import (
	"github.com/matzehuels/elecciones/pkg/errors"
)

// Validate reports whether req is internally consistent. [Build] does not
// call it; callers that want to fail fast on bad data do.
//
// It rejects a non-positive total, an empty party list, empty or duplicate
// party names, negative seat counts, and party counts that do not add up to
// TotalSeats. All failures carry [errors.ErrCodeInvalidInput].
func Validate(req Request) error {
	if req.TotalSeats < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "total seats must be positive, got %d", req.TotalSeats)
	}
	if len(req.Parties) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one party is required")
	}

	seen := make(map[string]bool, len(req.Parties))
	sum := 0
	for i, p := range req.Parties {
		if p.Name == "" {
			return errors.New(errors.ErrCodeInvalidInput, "party %d has no name", i)
		}
		if seen[p.Name] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate party %q", p.Name)
		}
		seen[p.Name] = true
		if p.Seats < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "party %q has negative seats (%d)", p.Name, p.Seats)
		}
		sum += p.Seats
	}

	if sum != req.TotalSeats {
		return errors.New(errors.ErrCodeInvalidInput, "party seats sum to %d, want %d", sum, req.TotalSeats)
	}
	return nil
}
