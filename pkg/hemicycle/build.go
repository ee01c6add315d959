package hemicycle

import "math"

// Option configures [Build].
type Option func(*config)

type config struct {
	rows       int
	centerX    float64
	centerY    float64
	baseRadius float64
	rowGap     float64
}

// WithRows fixes the number of rows instead of deriving it from the
// assembly size. Values below 1 are ignored and values above [MaxRows] are
// capped, so the outermost row stays inside the frame.
func WithRows(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.rows = min(n, MaxRows)
		}
	}
}

// WithCenter sets the midpoint of the semicircle's baseline.
func WithCenter(x, y float64) Option {
	return func(c *config) { c.centerX, c.centerY = x, y }
}

// WithRadii sets the innermost row radius and the gap between rows.
// A non-positive gap is ignored so radii stay strictly increasing.
func WithRadii(base, gap float64) Option {
	return func(c *config) {
		c.baseRadius = base
		if gap > 0 {
			c.rowGap = gap
		}
	}
}

// Build lays out every seat of req. It never fails: see the package
// documentation for how inconsistent requests degrade.
func Build(req Request, opts ...Option) Layout {
	cfg := config{
		centerX:    DefaultCenterX,
		centerY:    DefaultCenterY,
		baseRadius: DefaultBaseRadius,
		rowGap:     DefaultRowGap,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	l := Layout{
		CenterX:    cfg.centerX,
		CenterY:    cfg.centerY,
		Width:      2 * cfg.centerX,
		Height:     cfg.centerY + framePadding,
		TotalSeats: max(req.TotalSeats, 0),
	}
	if req.TotalSeats < 1 {
		return l
	}

	rows := cfg.rows
	if rows == 0 {
		rows = RowCount(req.TotalSeats)
	}
	l.Rows = planRows(req.TotalSeats, rows, cfg.baseRadius, cfg.rowGap)
	l.MarkerRadius = MarkerRadius(req.TotalSeats)

	offsets := l.Rows.Offsets()
	l.Seats = make([]Seat, 0, req.SeatSum())

	index := 0
	for _, p := range req.Parties {
		for range max(p.Seats, 0) {
			l.Seats = append(l.Seats, place(l.Rows, offsets, index, cfg, p))
			index++
		}
	}
	return l
}

// place positions seat k. Seats past the end of the plan stay on the last
// row and keep advancing clockwise beyond angle 0.
func place(plan RowPlan, offsets []int, k int, cfg config, p PartyAllocation) Seat {
	r := rowOf(plan, offsets, k)
	seatInRow := k - offsets[r]
	rowTotal := plan.SeatsPerRow[r]

	theta := math.Pi - (float64(seatInRow)/float64(max(1, rowTotal-1)))*math.Pi
	radius := plan.RadiusPerRow[r]

	return Seat{
		X:     cfg.centerX + radius*math.Cos(theta),
		Y:     cfg.centerY - radius*math.Sin(theta),
		Party: p.Name,
		Color: p.Color,
		Index: k,
		Row:   r,
		Angle: theta,
	}
}

func rowOf(plan RowPlan, offsets []int, k int) int {
	for r := range plan.SeatsPerRow {
		if k < offsets[r]+plan.SeatsPerRow[r] {
			return r
		}
	}
	return plan.RowCount - 1
}
