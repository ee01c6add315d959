// Package pkg provides the core libraries for elecciones, the charts of
// Panama's general elections.
//
// # Overview
//
// Election results are turned into bar, pie, hemicycle and map charts. The
// pkg directory is organized by stage:
//
//  1. [election] - The dataset: results per year and type, province
//     winners and the democratic timeline
//  2. [hemicycle] - Seat layout of an assembly on concentric arcs
//  3. [chart] and [choropleth] - Bar, pie and province map geometry
//  4. [render] - SVG, PNG, PDF and Graphviz DOT output
//  5. [pipeline] - Orchestration (resolve → layout → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	election.Dataset
//	       ↓
//	  [pipeline] Resolve (result, provinces, party colors)
//	       ↓
//	  [hemicycle] / [chart] / [choropleth] (geometry)
//	       ↓
//	  [render/sink] (SVG) → [render] (PNG/PDF) or [render/dot]
//	       ↓
//	  SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
// Lay out the 2024 National Assembly and draw it:
//
//	import (
//	    "github.com/matzehuels/elecciones/pkg/election"
//	    "github.com/matzehuels/elecciones/pkg/hemicycle"
//	    "github.com/matzehuels/elecciones/pkg/render/sink"
//	)
//
//	data, _ := election.Default()
//	req, _ := data.Seats(2024)
//	l := hemicycle.Build(req)
//	svg := sink.Hemicycle(l, sink.WithTitle("Asamblea Nacional 2024"))
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil, data)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Election: "legislativo",
//	    Year:     2024,
//	    Chart:    pipeline.ChartHemicycle,
//	    Formats:  []string{"svg", "json"},
//	})
//
// # Main Packages
//
// [election] - Results of the executive and legislative elections from 1994
// to 2024, bundled with the binary and validated on load. Another directory
// of JSON or YAML tables can replace them.
//
// [hemicycle] - Deterministic seat placement: row planning, per-row seat
// counts, radii and marker size. Parties fill seats in order from the left
// end of the arc.
//
// [chart] - Bar and pie geometry for one result.
//
// [choropleth] - Province map coloured by the winning party, from GeoJSON
// outlines or a built-in tile grid.
//
// [render] - Output formats. [render/sink] writes SVG; PNG and PDF convert
// that SVG with rsvg-convert; [render/dot] draws hemicycles through Graphviz.
//
// [pipeline] - Options, validation and the [pipeline.Runner] that caches
// layouts and artifacts.
//
// ## Infrastructure
//
// [cache] - File, Redis and no-op caches with content-addressed keys.
//
// [observability] - Hooks for pipeline, cache and HTTP events, with a
// Prometheus implementation.
//
// [errors] - Coded errors shared by the CLI and the web site.
//
// [io] - JSON import and export of seat requests and layouts.
//
// [buildinfo] - Version information set at link time.
package pkg
