// Package chart computes bar and pie chart geometry for election results.
//
// Geometry is kept apart from drawing: [Bars] and [Pie] return plain values
// with coordinates in a caller-chosen frame, and the SVG sinks in
// render/sink turn them into markup. A [Series] is built from an
// [election.Result] with [FromResult]; executive results chart vote
// percentages and legislative results chart seats.
package chart
