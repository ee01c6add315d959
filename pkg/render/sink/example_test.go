package sink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/elecciones/pkg/hemicycle"
	"github.com/matzehuels/elecciones/pkg/render/sink"
)

func ExampleHemicycle() {
	l := hemicycle.Build(hemicycle.Request{
		TotalSeats: 10,
		Parties: []hemicycle.PartyAllocation{
			{Name: "A", Seats: 6, Color: "#1f7a3a"},
			{Name: "B", Seats: 4, Color: "#f28c28"},
		},
	})

	svg := string(sink.Hemicycle(l, sink.WithTitle("Asamblea")))

	fmt.Println("SVG starts with:", svg[:4])
	fmt.Println("Seats:", strings.Count(svg, `class="seat"`))
	fmt.Println("Rows:", strings.Count(svg, `stroke-dasharray="5,5"`))
	fmt.Println(strings.Contains(svg, "<title>B — Seat 10</title>"))
	// Output:
	// SVG starts with: <svg
	// Seats: 10
	// Rows: 3
	// true
}
