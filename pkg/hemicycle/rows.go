package hemicycle

import "math"

// RowCount returns the number of rows used for an assembly of total seats.
// The result is always within [MinRows, MaxRows]; it is 0 when total < 1.
func RowCount(total int) int {
	if total < 1 {
		return 0
	}
	n := int(math.Ceil(math.Sqrt(float64(total) / seatsPerRowDivisor)))
	return clampInt(n, MinRows, MaxRows)
}

// DistributeSeats splits total seats over rows, inner rows receiving fewer.
// The returned counts always sum to total. A lone seat goes to row 0.
func DistributeSeats(total, rows int) []int {
	if total < 1 || rows < 1 {
		return nil
	}

	counts := make([]int, rows)
	if total == 1 {
		counts[0] = 1
		return counts
	}
	perRow := float64(total) / float64(rows)
	remaining := total
	for i := range counts {
		weight := 0.7 + (float64(i+1)/float64(rows))*0.6
		target := int(math.Round(perRow * weight))
		counts[i] = min(target, remaining)
		remaining -= counts[i]
	}
	counts[rows-1] += remaining
	return counts
}

// Radii returns the radius of each row, starting at base and growing by gap.
func Radii(rows int, base, gap float64) []float64 {
	radii := make([]float64, rows)
	for i := range radii {
		radii[i] = base + float64(i)*gap
	}
	return radii
}

// MarkerRadius returns the seat marker radius for an assembly of total seats.
// Larger assemblies get smaller markers, clamped to
// [MinMarkerRadius, MaxMarkerRadius]. It returns 0 when total < 1.
func MarkerRadius(total int) float64 {
	if total < 1 {
		return 0
	}
	r := markerScale / math.Sqrt(float64(total))
	return math.Max(MinMarkerRadius, math.Min(MaxMarkerRadius, r))
}

// PlanRows builds the full row plan for total seats using the default
// radii.
func PlanRows(total int) RowPlan {
	return planRows(total, RowCount(total), DefaultBaseRadius, DefaultRowGap)
}

func planRows(total, rows int, base, gap float64) RowPlan {
	if total < 1 || rows < 1 {
		return RowPlan{}
	}
	return RowPlan{
		RowCount:     rows,
		SeatsPerRow:  DistributeSeats(total, rows),
		RadiusPerRow: Radii(rows, base, gap),
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
