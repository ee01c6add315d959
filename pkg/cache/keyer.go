package cache

// Keyer derives cache keys from pipeline inputs.
type Keyer interface {
	// LayoutKey identifies computed chart geometry.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered file of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs that change chart geometry.
type LayoutKeyOpts struct {
	Election string  `json:"election"`
	Year     int     `json:"year"`
	Chart    string  `json:"chart"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Rows     int     `json:"rows,omitempty"`
	Strict   bool    `json:"strict,omitempty"`
	Geometry string  `json:"geometry,omitempty"`
}

// ArtifactKeyOpts are the inputs that change a rendered file.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Title    string  `json:"title,omitempty"`
	Popups   bool    `json:"popups,omitempty"`
	NoLegend bool    `json:"no_legend,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Engine   string  `json:"engine,omitempty"`
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
