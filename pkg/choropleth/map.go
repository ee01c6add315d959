package choropleth

// Region is one filled province of a map.
type Region struct {
	Shape
	Fill    string   `json:"fill"`
	Tooltip *Tooltip `json:"tooltip,omitempty"`
}

// Map is a drawable choropleth.
type Map struct {
	Regions []Region      `json:"regions"`
	Legend  []LegendEntry `json:"legend"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
}

// Build colors shapes with b. With no shapes the bound provinces are drawn
// as tiles. Shapes without data keep the muted fill and no tooltip.
func Build(b *Binding, shapes []Shape, width, height float64) Map {
	if len(shapes) == 0 {
		rows := b.Provinces()
		names := make([]string, len(rows))
		for i, r := range rows {
			names[i] = r.Name
		}
		shapes = Tiles(names, width, height)
	}

	m := Map{
		Regions: make([]Region, 0, len(shapes)),
		Legend:  b.Legend(),
		Width:   width,
		Height:  height,
	}
	for _, s := range shapes {
		r := Region{Shape: s, Fill: b.Fill(s.Name)}
		if tt, ok := b.Tooltip(s.Name); ok {
			r.Tooltip = &tt
		}
		m.Regions = append(m.Regions, r)
	}
	return m
}
