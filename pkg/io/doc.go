// Package io reads seat requests and writes seat layouts as JSON.
//
// # Overview
//
// The bundled election data covers Panama's National Assembly, but the
// layout engine works for any assembly. This package lets the CLI lay out
// an arbitrary chamber from a small JSON file and export the computed
// layout for other tools:
//
//	req, err := io.ImportRequest("senado.json")
//	l := hemicycle.Build(req)
//	err = io.ExportLayout(l, "senado-layout.json")
//
// # Request Format
//
//	{
//	  "total_seats": 10,
//	  "parties": [
//	    {"name": "A", "seats": 6, "color": "#1f7a3a"},
//	    {"name": "B", "seats": 4, "color": "#f28c28"}
//	  ]
//	}
//
// total_seats may be omitted, in which case it is the sum of the party
// seats. Party order is kept: it decides where each bloc sits, left to
// right.
//
// # Layout Format
//
// A layout document carries the frame (width, height, center), the row
// plan, the marker radius and every seat with its coordinates, row, angle,
// party and color. [ReadLayout] reads it back so a layout can be rendered
// again without recomputing it.
package io
