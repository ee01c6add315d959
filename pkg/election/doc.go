// Package election holds Panama's historical election results.
//
// A [Dataset] carries four tables: executive (presidential) results with
// vote percentages, legislative results with seats per party, per-province
// vote totals with the winning party, and a timeline of democratic
// milestones. The results for 1994 through 2024 ship with the binary and
// are returned by [Default]; [Load] reads the same tables from a directory
// so the site can be pointed at corrected or extended data.
//
// # File Layout
//
// A data directory contains up to four files, each either JSON or YAML:
//
//	ejecutivo.json     year -> {total_votes, parties[{name, candidate, color, percentage, votes}]}
//	legislativo.json   year -> {total_seats, parties[{name, color, seats}]}
//	provincias.json    year -> [{name, votes, winner}]
//	hitos.json         [{year, title, description}]
//
// The executive and legislative tables are required. Every table is
// validated on load: party names must be unique within a result, colors
// must be CSS colors, and the seats of a legislative result must add up to
// its total.
//
// # Seat Layouts
//
// [Dataset.Seats] converts a legislative result into the
// [hemicycle.Request] the seat-layout engine consumes. Executive results
// have no seats and are rejected with [errors.ErrCodeUnsupported].
package election
