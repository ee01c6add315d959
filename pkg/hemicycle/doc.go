// Package hemicycle computes seat positions for legislative seat diagrams.
//
// # Overview
//
// A hemicycle draws every seat of an assembly as a marker on one of several
// concentric half-circle arcs ("rows"). Seats are assigned to parties in the
// order the parties are given, so each party occupies one contiguous wedge
// that sweeps from the left end of the inner row to the right end of the
// outer row.
//
// [Build] is a pure function: the same [Request] always yields the same
// [Layout], there is no randomness, no clock, and no state kept between
// calls. Cost is linear in the number of seats.
//
// # Row Planning
//
// The number of rows grows with the square root of the assembly size and is
// clamped to [MinRows, MaxRows]:
//
//	rows = clamp(ceil(sqrt(total / 8)), 3, 6)
//
// Seats are spread across rows with a weighting that puts fewer seats on the
// inner rows, whose arcs are shorter:
//
//	target(i) = round(total/rows * (0.7 + (i+1)/rows*0.6))
//
// Each target is capped by the seats still unassigned and any remainder goes
// to the outermost row, so the plan always accounts for every seat. A
// one-seat assembly is the exception: its seat goes to the innermost row.
//
// # Placement
//
// Seat k lands on the row whose cumulative range contains k. Within a row the
// angle runs from PI (left) to 0 (right):
//
//	theta = PI - seatInRow/max(1, rowTotal-1) * PI
//	x     = cx + r*cos(theta)
//	y     = cy - r*sin(theta)
//
// A row holding a single seat places it at theta = PI.
//
// # Inconsistent Input
//
// [Build] never fails. When the party counts do not add up to
// [Request.TotalSeats] the plan is still sized to TotalSeats: missing seats
// leave trailing slots empty, extra seats continue along the outer row past
// its right end. Callers that prefer to reject such input call [Validate]
// first.
//
// # Options
//
//   - [WithRows]: fixed row count; WithRows(1) is the classic single arc
//   - [WithCenter]: baseline midpoint of the semicircle (default 500, 500)
//   - [WithRadii]: inner radius and gap between rows (default 200, 45)
package hemicycle
