package choropleth

import (
	"fmt"
	"math"
)

// Shape is a drawable province outline in frame coordinates.
type Shape struct {
	Name   string  `json:"name"`
	Path   string  `json:"path"`
	LabelX float64 `json:"label_x"`
	LabelY float64 `json:"label_y"`
}

type cell struct{ col, row int }

const (
	tileCols = 6
	tileRows = 3
	// tileGap is the share of a cell left empty around its tile.
	tileGap = 0.08
)

// tileGrid places each province roughly where it lies on the isthmus,
// west to east, Caribbean coast on top.
var tileGrid = map[string]cell{
	Key("Bocas del Toro"): {0, 0},
	Key("Chiriquí"):       {0, 1},
	Key("Veraguas"):       {1, 1},
	Key("Colón"):          {2, 0},
	Key("Coclé"):          {2, 1},
	Key("Herrera"):        {2, 2},
	Key("Los Santos"):     {3, 2},
	Key("Panamá Oeste"):   {3, 1},
	Key("Panamá"):         {4, 1},
	Key("Darién"):         {5, 1},
}

// Tiles lays out names as square tiles in a width×height frame. Known
// provinces take their fixed cell; any other name is appended below the
// grid in input order.
func Tiles(names []string, width, height float64) []Shape {
	var extra int
	cells := make([]cell, len(names))
	for i, name := range names {
		c, ok := tileGrid[Key(name)]
		if !ok {
			c = cell{extra % tileCols, tileRows + extra/tileCols}
			extra++
		}
		cells[i] = c
	}
	rows := tileRows + (extra+tileCols-1)/tileCols

	size := math.Min(width/tileCols, height/float64(rows))
	offX := (width - size*tileCols) / 2
	offY := (height - size*float64(rows)) / 2
	inner := size * (1 - 2*tileGap)

	shapes := make([]Shape, len(names))
	for i, name := range names {
		x := offX + float64(cells[i].col)*size + size*tileGap
		y := offY + float64(cells[i].row)*size + size*tileGap
		shapes[i] = Shape{
			Name:   name,
			Path:   fmt.Sprintf("M%.1f %.1fh%.1fv%.1fh%.1fZ", x, y, inner, inner, -inner),
			LabelX: x + inner/2,
			LabelY: y + inner/2,
		}
	}
	return shapes
}
