package hemicycle

// Layout-space constants. They describe a 1000-wide frame whose semicircle
// baseline sits at y = 500.
const (
	DefaultCenterX    = 500.0
	DefaultCenterY    = 500.0
	DefaultBaseRadius = 200.0
	DefaultRowGap     = 45.0

	MinRows = 3
	MaxRows = 6

	MinMarkerRadius = 5.0
	MaxMarkerRadius = 10.0

	// seatsPerRowDivisor sets how quickly the row count grows with assembly size.
	seatsPerRowDivisor = 8.0
	// markerScale is the marker radius of a one-seat assembly before clamping.
	markerScale = 250.0
	// framePadding is the space kept below the baseline for the outermost markers.
	framePadding = 60.0
)

// PartyAllocation is one party's share of an assembly.
type PartyAllocation struct {
	Name  string `json:"name"`
	Seats int    `json:"seats"`
	Color string `json:"color"`
}

// Request is the input to [Build]. Parties are laid out in slice order.
type Request struct {
	Parties    []PartyAllocation `json:"parties"`
	TotalSeats int               `json:"total_seats"`
}

// SeatSum returns the sum of all party seat counts, ignoring negative values.
func (r Request) SeatSum() int {
	var n int
	for _, p := range r.Parties {
		if p.Seats > 0 {
			n += p.Seats
		}
	}
	return n
}

// RowPlan describes how seats are spread over the concentric rows.
// Row 0 is the innermost.
type RowPlan struct {
	RowCount     int       `json:"row_count"`
	SeatsPerRow  []int     `json:"seats_per_row"`
	RadiusPerRow []float64 `json:"radius_per_row"`
}

// Total returns the number of seat slots in the plan.
func (p RowPlan) Total() int {
	var n int
	for _, c := range p.SeatsPerRow {
		n += c
	}
	return n
}

// Offsets returns the cumulative number of seats before each row.
func (p RowPlan) Offsets() []int {
	offs := make([]int, len(p.SeatsPerRow))
	var sum int
	for i, c := range p.SeatsPerRow {
		offs[i] = sum
		sum += c
	}
	return offs
}

// Seat is a single placed marker.
type Seat struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Party string  `json:"party"`
	Color string  `json:"color"`
	Index int     `json:"index"`
	Row   int     `json:"row"`
	Angle float64 `json:"angle"`
}

// Layout is the result of [Build].
type Layout struct {
	Seats        []Seat  `json:"seats"`
	Rows         RowPlan `json:"rows"`
	MarkerRadius float64 `json:"marker_radius"`
	CenterX      float64 `json:"center_x"`
	CenterY      float64 `json:"center_y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	TotalSeats   int     `json:"total_seats"`
}
