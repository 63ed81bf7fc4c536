// Package pipeline provides the layout → render pipeline for roomscene.
//
// The CLI and the HTTP server both run layouts through this package so that
// defaults, validation, logging and hooks behave the same at every entry
// point.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Build a static or randomized room layout and fingerprint it
//  2. Render: Generate visualizations (floor plan SVG, text plan, scene graph DOT/SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Variant:     "random",
//	    Seed:        1,
//	    ObjectCount: 30,
//	    HalfExtent:  15,
//	    Formats:     []string{"svg", "dot"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.ComputeLayout(ctx, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomscene/pkg/config"
	"github.com/matzehuels/roomscene/pkg/errors"
	"github.com/matzehuels/roomscene/pkg/room"
	"github.com/matzehuels/roomscene/pkg/sequence"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultVariant is the layout policy used when none is given.
	DefaultVariant = room.VariantRandom

	// DefaultScale is the floor plan scale in pixels per world unit.
	DefaultScale = 20.0
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"       // top-down floor plan
	FormatText     = "txt"       // text floor plan
	FormatDOT      = "dot"       // scene graph as Graphviz DOT
	FormatGraphSVG = "graph.svg" // scene graph rendered by Graphviz
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatText:     true,
	FormatDOT:      true,
	FormatGraphSVG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for logging and debugging.
type Options struct {
	// Layout options
	Variant       string   `json:"variant,omitempty"`
	Seed          int64    `json:"seed"`
	ObjectCount   int      `json:"object_count,omitempty"`
	HalfExtent    float64  `json:"floor_half_extent,omitempty"`
	RestingHeight *float64 `json:"resting_height,omitempty"` // nil selects the default; zero is valid
	Generator     string   `json:"generator,omitempty"`

	// Scene content. Nil slices select the reference catalog, palette and
	// furniture; a zero Env selects the reference environment.
	Catalog   room.Catalog     `json:"-"`
	Palette   room.Palette     `json:"-"`
	Furniture []room.Furniture `json:"-"`
	Env       room.Environment `json:"-"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Labels   bool     `json:"labels,omitempty"`
	Grid     float64  `json:"grid,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // detailed scene graph labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// OptionsFromConfig copies a room configuration into pipeline options.
func OptionsFromConfig(c *config.Config) Options {
	restingHeight := c.RestingHeight
	return Options{
		Variant:       c.Variant,
		Seed:          c.Seed,
		ObjectCount:   c.ObjectCount,
		HalfExtent:    c.HalfExtent,
		RestingHeight: &restingHeight,
		Generator:     c.Generator,
		Catalog:       c.Catalog,
		Palette:       c.Palette,
		Furniture:     c.Furniture,
		Env:           c.Environment,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed room layout.
	Layout room.Layout

	// Fingerprint identifies the layout's content. Equal options yield
	// equal fingerprints.
	Fingerprint string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Objects    int
	Draws      int // generator draws consumed; zero for static layouts
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, txt, dot, graph.svg)", format)
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

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation. Seed,
// ObjectCount and HalfExtent are left alone: zero is a valid seed, and a
// zero count or extent is a configuration error rather than a request for
// the default.
func (o *Options) SetLayoutDefaults() {
	if o.Variant == "" {
		o.Variant = string(DefaultVariant)
	}
	if o.Generator == "" {
		o.Generator = string(sequence.AlgorithmSine)
	}
	if o.RestingHeight == nil {
		h := room.DefaultRestingHeight
		o.RestingHeight = &h
	}
	if o.Catalog == nil {
		o.Catalog = room.DefaultCatalog()
	}
	if o.Palette == nil {
		o.Palette = room.DefaultPalette()
	}
	if o.Furniture == nil {
		o.Furniture = room.DefaultFurniture()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	variant, err := room.ParseVariant(o.Variant)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "variant")
	}
	if _, err := sequence.ParseAlgorithm(o.Generator); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "generator")
	}
	if variant == room.VariantStatic {
		return nil
	}
	if err := errors.ValidateObjectCount(o.ObjectCount); err != nil {
		return err
	}
	return errors.ValidatePositive("floor half extent", o.HalfExtent)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if !(o.Scale > 0) || math.IsInf(o.Scale, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number, got %v", o.Scale)
	}
	if !(o.Grid >= 0) || math.IsInf(o.Grid, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "grid step must be a non-negative number, got %v", o.Grid)
	}
	return nil
}

// IsStatic returns true if this is a static layout.
func (o *Options) IsStatic() bool {
	return o.Variant == string(room.VariantStatic)
}

// String summarizes the layout parameters for log lines.
func (o *Options) String() string {
	if o.IsStatic() {
		return fmt.Sprintf("static (%d pieces)", len(o.Furniture))
	}
	return fmt.Sprintf("random (seed=%d, count=%d, extent=%g, generator=%s)",
		o.Seed, o.ObjectCount, o.HalfExtent, o.Generator)
}
