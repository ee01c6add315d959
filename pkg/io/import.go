package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/elecciones/pkg/errors"
	"github.com/matzehuels/elecciones/pkg/hemicycle"
)

// ReadRequest decodes a seat request from r. A missing total_seats is
// filled with the sum of the party seats; consistency is left to
// [hemicycle.Validate].
//
// ReadRequest does not close r.
func ReadRequest(r io.Reader) (hemicycle.Request, error) {
	var req hemicycle.Request
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return hemicycle.Request{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	if req.TotalSeats == 0 {
		req.TotalSeats = req.SeatSum()
	}
	return req, nil
}

// ImportRequest reads a seat request from the JSON file at path.
func ImportRequest(path string) (hemicycle.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return hemicycle.Request{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadRequest(f)
}

// ReadLayout decodes a layout previously written by [WriteLayout].
func ReadLayout(r io.Reader) (hemicycle.Layout, error) {
	var l hemicycle.Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return hemicycle.Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
	}
	if l.Rows.RowCount != len(l.Rows.SeatsPerRow) || len(l.Rows.SeatsPerRow) != len(l.Rows.RadiusPerRow) {
		return hemicycle.Layout{}, errors.New(errors.ErrCodeInvalidInput,
			"layout rows disagree: %d rows, %d counts, %d radii",
			l.Rows.RowCount, len(l.Rows.SeatsPerRow), len(l.Rows.RadiusPerRow))
	}
	return l, nil
}

// ImportLayout reads a layout from the JSON file at path.
func ImportLayout(path string) (hemicycle.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return hemicycle.Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadLayout(f)
}
