// Package sink renders chart geometry as SVG.
//
// # Overview
//
// A sink takes computed geometry and writes a standalone SVG document:
//
//   - [Hemicycle]: seats of a [hemicycle.Layout] over dashed row arcs
//   - [Bar]: a [chart.BarChart] with y-axis gridlines
//   - [Pie]: a [chart.PieChart] with outside labels
//   - [Map]: a [choropleth.Map] with hover cards
//
// Every seat, bar, slice and province carries a <title> so the tooltip
// works without scripts, and an aria-label for screen readers. Legends are
// drawn below the chart unless [WithoutLegend] is given.
//
// Basic usage:
//
//	l := hemicycle.Build(req)
//	svg := sink.Hemicycle(l, sink.WithTitle("Asamblea Nacional 2019"))
//
// # Options
//
//   - [WithTitle]: heading drawn above the chart
//   - [WithPopups]: scripted hover cards on maps (in addition to <title>)
//   - [WithoutLegend]: omit the legend band
//   - [WithBackground]: fill color behind the chart
//
// # PDF and PNG Output
//
// Convert the SVG with [render.ToPDF] or [render.ToPNG]; both require
// librsvg.
//
// [render.ToPDF]: github.com/matzehuels/elecciones/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/elecciones/pkg/render.ToPNG
package sink
