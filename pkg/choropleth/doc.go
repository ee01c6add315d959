// Package choropleth colors Panama's provinces by the party that carried
// them.
//
// [Bind] joins per-province results with a result's party colors and
// answers the three questions a map view asks of a province: its fill
// ([Binding.Fill]), its hover card ([Binding.Tooltip]) and its place in the
// winners legend ([Binding.Legend]). Provinces without data, or whose
// winner has no known color, are filled with [MutedColor].
//
// Province outlines come from a GeoJSON file projected with [Mercator]
// ([LoadGeoJSON]); when no file is configured [Tiles] lays the provinces
// out as a tile cartogram that keeps their rough west-to-east order.
// [Build] combines a binding with either geometry into a drawable [Map].
package choropleth
