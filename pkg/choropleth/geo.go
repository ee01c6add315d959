package choropleth

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/matzehuels/elecciones/pkg/errors"
)

// Mercator is a spherical Mercator projection centered on a lon/lat point
// of a width×height frame.
type Mercator struct {
	Scale     float64
	CenterLon float64
	CenterLat float64
	Width     float64
	Height    float64
}

// DefaultMercator frames the isthmus in an 800×600 view.
func DefaultMercator() Mercator {
	return Mercator{Scale: 6500, CenterLon: -80, CenterLat: 8.5, Width: 800, Height: 600}
}

// Project maps degrees to frame coordinates. The center lands in the
// middle of the frame; y grows southwards.
func (m Mercator) Project(lon, lat float64) (x, y float64) {
	x = m.Width/2 + m.Scale*radians(lon-m.CenterLon)
	y = m.Height/2 - m.Scale*(mercatorY(lat)-mercatorY(m.CenterLat))
	return x, y
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func mercatorY(lat float64) float64 {
	return math.Log(math.Tan(math.Pi/4 + radians(lat)/2))
}

// Point is a longitude/latitude pair in degrees.
type Point struct {
	Lon float64
	Lat float64
}

// Boundary is the outline of one named province: a list of polygons, each
// a list of rings.
type Boundary struct {
	Name     string
	Polygons [][][]Point
}

// Boundaries is a parsed GeoJSON feature collection.
type Boundaries struct {
	Features []Boundary
}

type geoFeatureCollection struct {
	Type     string       `json:"type"`
	Features []geoFeature `json:"features"`
}

type geoFeature struct {
	Properties map[string]any `json:"properties"`
	Geometry   *geoGeometry   `json:"geometry"`
}

type geoGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// nameProperties are tried in order to name a feature.
var nameProperties = []string{"name", "nombre", "NAME_1"}

// LoadGeoJSONFile reads a boundary file from disk.
func LoadGeoJSONFile(path string) (*Boundaries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open boundaries %s", path)
	}
	defer f.Close()
	return LoadGeoJSON(f)
}

// LoadGeoJSON parses a FeatureCollection of Polygon and MultiPolygon
// features. Features of other geometry types, and features without a
// name, are skipped.
func LoadGeoJSON(r io.Reader) (*Boundaries, error) {
	var fc geoFeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse GeoJSON")
	}
	if fc.Type != "FeatureCollection" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "GeoJSON type %q, want FeatureCollection", fc.Type)
	}

	b := &Boundaries{}
	for i, f := range fc.Features {
		name := featureName(f.Properties)
		if name == "" || f.Geometry == nil {
			continue
		}
		polys, err := decodeGeometry(f.Geometry)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "feature %d (%s)", i, name)
		}
		if polys == nil {
			continue
		}
		b.Features = append(b.Features, Boundary{Name: name, Polygons: polys})
	}
	return b, nil
}

func featureName(props map[string]any) string {
	for _, key := range nameProperties {
		if s, ok := props[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func decodeGeometry(g *geoGeometry) ([][][]Point, error) {
	switch g.Type {
	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, err
		}
		poly, err := toRings(rings)
		if err != nil {
			return nil, err
		}
		return [][][]Point{poly}, nil
	case "MultiPolygon":
		var polys [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &polys); err != nil {
			return nil, err
		}
		out := make([][][]Point, 0, len(polys))
		for _, rings := range polys {
			poly, err := toRings(rings)
			if err != nil {
				return nil, err
			}
			out = append(out, poly)
		}
		return out, nil
	}
	return nil, nil
}

func toRings(rings [][][]float64) ([][]Point, error) {
	out := make([][]Point, 0, len(rings))
	for _, ring := range rings {
		pts := make([]Point, 0, len(ring))
		for _, c := range ring {
			if len(c) < 2 {
				return nil, fmt.Errorf("position with %d coordinates", len(c))
			}
			pts = append(pts, Point{Lon: c[0], Lat: c[1]})
		}
		out = append(out, pts)
	}
	return out, nil
}

// Shapes projects every boundary into an SVG path. The label point is the
// center of the bounding box of the boundary's largest outer ring.
func (b *Boundaries) Shapes(m Mercator) []Shape {
	shapes := make([]Shape, 0, len(b.Features))
	for _, f := range b.Features {
		var sb strings.Builder
		best := -1.0
		s := Shape{Name: f.Name}
		for _, poly := range f.Polygons {
			for ri, ring := range poly {
				minX, minY := math.Inf(1), math.Inf(1)
				maxX, maxY := math.Inf(-1), math.Inf(-1)
				for pi, p := range ring {
					x, y := m.Project(p.Lon, p.Lat)
					cmd := "L"
					if pi == 0 {
						cmd = "M"
					}
					fmt.Fprintf(&sb, "%s%.1f %.1f", cmd, x, y)
					minX, maxX = math.Min(minX, x), math.Max(maxX, x)
					minY, maxY = math.Min(minY, y), math.Max(maxY, y)
				}
				if len(ring) > 0 {
					sb.WriteString("Z")
				}
				if area := (maxX - minX) * (maxY - minY); ri == 0 && area > best {
					best = area
					s.LabelX, s.LabelY = (minX+maxX)/2, (minY+maxY)/2
				}
			}
		}
		s.Path = sb.String()
		shapes = append(shapes, s)
	}
	return shapes
}
