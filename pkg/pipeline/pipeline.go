// Package pipeline turns an election result into chart files.
//
// This package implements the resolve → layout → render pipeline shared by
// the CLI and the web site, so both produce byte-identical charts for the
// same request.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: Look up the result, province votes and party colors for an
//     election type and year in an [election.Dataset]
//  2. Layout: Compute chart geometry (hemicycle seats, bars, pie slices or
//     map regions)
//  3. Render: Generate output in the requested formats (SVG, JSON, PNG,
//     PDF, DOT)
//
// Layouts and artifacts are cached; keys are scoped by the dataset hash so
// replacing the data never serves stale charts.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger, data)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Election: "legislativo",
//	    Year:     2024,
//	    Chart:    pipeline.ChartHemicycle,
//	    Formats:  []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/elecciones/pkg/cache"
	"github.com/matzehuels/elecciones/pkg/election"
	"github.com/matzehuels/elecciones/pkg/errors"
	"github.com/matzehuels/elecciones/pkg/hemicycle"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Site
// =============================================================================

const (
	// DefaultWidth is the default frame width of bar, pie and map charts.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height of bar and pie charts.
	DefaultHeight = 450.0

	// DefaultMapHeight is the default frame height of maps.
	DefaultMapHeight = 600.0

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultYear is the most recent election.
	DefaultYear = 2024

	// MaxRows bounds a forced hemicycle row count; more rows would not fit
	// the hemicycle frame.
	MaxRows = hemicycle.MaxRows
)

// Chart types. The names are the ones used in URLs.
const (
	ChartBar       = "barras"
	ChartPie       = "circular"
	ChartHemicycle = "hemiciclo"
	ChartMap       = "mapa"
)

// DefaultChart is the default chart type.
const DefaultChart = ChartBar

// Charts lists the chart types in menu order.
var Charts = []string{ChartBar, ChartPie, ChartHemicycle, ChartMap}

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// PNG engines. EngineAuto prefers rsvg-convert and falls back to Graphviz
// for hemicycles.
const (
	EngineAuto     = "auto"
	EngineRSVG     = "rsvg"
	EngineGraphviz = "graphviz"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Resolve options
	Election string `json:"election"`
	Year     int    `json:"year"`
	Refresh  bool   `json:"refresh,omitempty"`

	// Layout options
	Chart  string  `json:"chart,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Rows   int     `json:"rows,omitempty"`
	Strict bool    `json:"strict,omitempty"`

	// Fallback replaces a hemicycle requested for an executive election
	// with a bar chart instead of failing.
	Fallback bool `json:"fallback,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Title    string   `json:"title,omitempty"`
	Popups   bool     `json:"popups,omitempty"`
	NoLegend bool     `json:"no_legend,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Engine   string   `json:"engine,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed chart geometry.
	Layout Layout

	// LayoutHash is the content hash of the layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items       int
	ResolveTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateChart checks that a chart type is valid.
func ValidateChart(chart string) error {
	if !slices.Contains(Charts, chart) {
		return errors.New(errors.ErrCodeInvalidChart,
			"invalid chart: %q (must be one of: barras, circular, hemiciclo, mapa)", chart)
	}
	return nil
}

// ValidateEngine checks that a PNG engine is valid.
func ValidateEngine(engine string) error {
	switch engine {
	case EngineAuto, EngineRSVG, EngineGraphviz:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput,
		"invalid engine: %q (must be one of: auto, rsvg, graphviz)", engine)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForResolve(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForResolve checks the election type and year.
func (o *Options) ValidateForResolve() error {
	if o.Year == 0 {
		o.Year = DefaultYear
	}
	t, err := election.ParseType(o.Election)
	if err != nil {
		return err
	}
	o.Election = string(t)
	if !election.IsElectionYear(o.Year) {
		return errors.New(errors.ErrCodeInvalidYear,
			"no general election in %d (years: %v)", o.Year, election.Years)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Chart == "" {
		o.Chart = DefaultChart
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
		if o.Chart == ChartMap {
			o.Height = DefaultMapHeight
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// A hemicycle of an executive election is rewritten to a bar chart when
// Fallback is set and rejected otherwise.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateChart(o.Chart); err != nil {
		return err
	}
	if o.Chart == ChartHemicycle && o.Election == string(election.Executive) {
		if !o.Fallback {
			return errors.New(errors.ErrCodeUnsupported,
				"hemicycle is only available for legislative elections")
		}
		o.Logger.Debug("hemicycle not available for executive election, using bar chart")
		o.Chart = ChartBar
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame must not be negative: %gx%g", o.Width, o.Height)
	}
	if o.Rows < 0 || o.Rows > MaxRows {
		return errors.New(errors.ErrCodeInvalidInput, "rows must be between 0 (automatic) and %d, got %d", MaxRows, o.Rows)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Engine == "" {
		o.Engine = EngineAuto
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateChart(o.Chart); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if slices.Contains(o.Formats, FormatDOT) && o.Chart != ChartHemicycle {
		return errors.New(errors.ErrCodeUnsupported, "dot output is only available for hemicycles")
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return ValidateEngine(o.Engine)
}

// ElectionType returns the parsed election type. Options must be validated.
func (o *Options) ElectionType() election.Type {
	return election.Type(o.Election)
}

// IsHemicycle returns true if this is a hemicycle chart.
func (o *Options) IsHemicycle() bool {
	return o.Chart == ChartHemicycle
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(geometry string) cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Election: o.Election,
		Year:     o.Year,
		Chart:    o.Chart,
		Rows:     o.Rows,
	}
	// The hemicycle frame is fixed; only the other charts scale. A lenient
	// hemicycle may hold a degraded layout a strict request must not reuse.
	if o.IsHemicycle() {
		k.Strict = o.Strict
	} else {
		k.Width, k.Height = o.Width, o.Height
	}
	if o.Chart == ChartMap {
		k.Geometry = geometry
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:   format,
		Title:    o.Title,
		Popups:   o.Popups,
		NoLegend: o.NoLegend,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
		k.Engine = o.Engine
	}
	return k
}
