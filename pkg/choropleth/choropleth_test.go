package choropleth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/elecciones/pkg/election"
)

var sample = []election.ProvinceResult{
	{Name: "Panamá", Votes: 600000, Winner: "PRD"},
	{Name: "Colón", Votes: 100000, Winner: "PRD"},
	{Name: "Chiriquí", Votes: 200000, Winner: "CD"},
	{Name: "Darién", Votes: 100000, Winner: "VMP"},
}

var sampleColors = map[string]string{"PRD": "#1f7a3a", "CD": "#f28c28"}

func TestBindingFill(t *testing.T) {
	b := Bind(sample, sampleColors)

	assert.Equal(t, "#1f7a3a", b.Fill("Panamá"))
	assert.Equal(t, "#1f7a3a", b.Fill("COLON"), "lookup ignores case and accents")
	assert.Equal(t, MutedColor, b.Fill("Darién"), "winner without a color")
	assert.Equal(t, MutedColor, b.Fill("Veraguas"), "province without data")
}

func TestBindingTooltip(t *testing.T) {
	b := Bind(sample, sampleColors)

	tt, ok := b.Tooltip("Panamá")
	require.True(t, ok)
	assert.Equal(t, Tooltip{Name: "Panamá", Votes: "600,000", Percentage: "60.0%", Winner: "PRD"}, tt)
	assert.Equal(t, []string{"Panamá", "Votos: 600,000", "Porcentaje: 60.0%", "Ganador: PRD"}, tt.Lines())

	_, ok = b.Tooltip("Veraguas")
	assert.False(t, ok)
}

func TestBindingTooltipZeroTotal(t *testing.T) {
	b := Bind([]election.ProvinceResult{{Name: "Coclé", Votes: 0, Winner: "PRD"}}, sampleColors)

	tt, ok := b.Tooltip("Coclé")
	require.True(t, ok)
	assert.Empty(t, tt.Percentage)
	assert.NotContains(t, strings.Join(tt.Lines(), "\n"), "Porcentaje")
}

func TestBindingLegend(t *testing.T) {
	legend := Bind(sample, sampleColors).Legend()

	require.Len(t, legend, 3)
	assert.Equal(t, LegendEntry{Party: "PRD", Color: "#1f7a3a", Count: 2, Label: "PRD (2 provincias)"}, legend[0])
	assert.Equal(t, "CD (1 provincia)", legend[1].Label)
	assert.Equal(t, "VMP", legend[2].Party)
	assert.Equal(t, MutedColor, legend[2].Color)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "panama oeste", Key("  Panamá   Oeste "))
	assert.Equal(t, "bocas del toro", Key("Bocas del Toro"))
	assert.Equal(t, Key("Chiriquí"), Key("chiriqui"))
}

func TestMercator(t *testing.T) {
	m := DefaultMercator()

	x, y := m.Project(-80, 8.5)
	assert.InDelta(t, 400, x, 1e-9)
	assert.InDelta(t, 300, y, 1e-9)

	// East and north of the center land right and up.
	x, y = m.Project(-79.5, 9)
	assert.Greater(t, x, 400.0)
	assert.Less(t, y, 300.0)
	assert.InDelta(t, 400+6500*0.5*3.141592653589793/180, x, 1e-6)
}

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "Colón"},
     "geometry": {"type": "Polygon", "coordinates": [[[-80.0, 9.0], [-79.5, 9.0], [-79.5, 9.4], [-80.0, 9.0]]]}},
    {"type": "Feature", "properties": {"nombre": "Los Santos"},
     "geometry": {"type": "MultiPolygon", "coordinates": [
       [[[-80.5, 7.5, 0], [-80.0, 7.5, 0], [-80.0, 7.8, 0], [-80.5, 7.5, 0]]],
       [[[-80.1, 7.2], [-80.0, 7.2], [-80.0, 7.3], [-80.1, 7.2]]]]}},
    {"type": "Feature", "properties": {"name": "Punto"},
     "geometry": {"type": "Point", "coordinates": [-80, 9]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "Polygon", "coordinates": []}}
  ]
}`

func TestLoadGeoJSON(t *testing.T) {
	b, err := LoadGeoJSON(strings.NewReader(sampleGeoJSON))
	require.NoError(t, err)
	require.Len(t, b.Features, 2)
	assert.Equal(t, "Colón", b.Features[0].Name)
	assert.Len(t, b.Features[1].Polygons, 2)

	shapes := b.Shapes(DefaultMercator())
	require.Len(t, shapes, 2)
	assert.True(t, strings.HasPrefix(shapes[0].Path, "M400.0 "), shapes[0].Path)
	assert.Equal(t, 2, strings.Count(shapes[1].Path, "Z"))
	assert.Greater(t, shapes[0].LabelX, 400.0)
}

func TestLoadGeoJSONErrors(t *testing.T) {
	_, err := LoadGeoJSON(strings.NewReader(`{`))
	assert.Error(t, err)

	_, err = LoadGeoJSON(strings.NewReader(`{"type": "Feature"}`))
	assert.Error(t, err)

	_, err = LoadGeoJSON(strings.NewReader(`{"type": "FeatureCollection", "features": [
		{"properties": {"name": "X"}, "geometry": {"type": "Polygon", "coordinates": [[[1]]]}}]}`))
	assert.Error(t, err)
}

func TestTiles(t *testing.T) {
	shapes := Tiles([]string{"Darién", "Bocas del Toro", "Comarca"}, 600, 400)
	require.Len(t, shapes, 3)

	assert.Equal(t, "Darién", shapes[0].Name)
	assert.Greater(t, shapes[0].LabelX, shapes[1].LabelX, "Darién east of Bocas del Toro")
	assert.Greater(t, shapes[2].LabelY, shapes[0].LabelY, "unknown names go below the grid")
	for _, s := range shapes {
		assert.True(t, strings.HasPrefix(s.Path, "M"))
		assert.True(t, strings.HasSuffix(s.Path, "Z"))
	}
}

func TestBuild(t *testing.T) {
	b := Bind(sample, sampleColors)

	m := Build(b, nil, 800, 600)
	require.Len(t, m.Regions, len(sample))
	assert.Equal(t, "#1f7a3a", m.Regions[0].Fill)
	require.NotNil(t, m.Regions[0].Tooltip)
	assert.Equal(t, "600,000", m.Regions[0].Tooltip.Votes)
	assert.Len(t, m.Legend, 3)

	m = Build(b, []Shape{{Name: "Veraguas", Path: "M0 0Z"}}, 800, 600)
	require.Len(t, m.Regions, 1)
	assert.Equal(t, MutedColor, m.Regions[0].Fill)
	assert.Nil(t, m.Regions[0].Tooltip)
}
