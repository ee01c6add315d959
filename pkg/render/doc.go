// Package render turns chart geometry into images.
//
// # Overview
//
// Geometry is computed elsewhere ([hemicycle], [chart], [choropleth]); the
// subpackages of render draw it:
//
//   - [sink]: SVG for hemicycles, bar charts, pie charts and maps
//   - [dot]: Graphviz rendering of a hemicycle with pinned seat positions
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg):
//
//	svg := sink.Hemicycle(layout, sink.WithTitle("Asamblea 2019"))
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//	pdf, err := render.ToPDF(svg)
//
// [Available] reports whether the tool is installed, so servers can hide
// raster formats instead of failing per request.
//
// [hemicycle]: github.com/matzehuels/elecciones/pkg/hemicycle
// [chart]: github.com/matzehuels/elecciones/pkg/chart
// [choropleth]: github.com/matzehuels/elecciones/pkg/choropleth
// [sink]: github.com/matzehuels/elecciones/pkg/render/sink
// [dot]: github.com/matzehuels/elecciones/pkg/render/dot
package render
