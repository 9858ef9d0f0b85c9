// Package pipeline provides the core computation pipeline for Kinview.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a people snapshot from a JSON or GEDCOM file
//  2. Layout: Assign generations and compute canvas positions
//  3. Render: Generate output in various formats (JSON, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
// Layouts and artifacts are cached under content-addressed keys: the key
// embeds a hash of the snapshot plus every option that shapes the output, so
// cached results can never be stale.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:   "family.json",
//	    Strategy: "beautify",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	people, err := runner.LoadPeople(ctx, "family.ged")
//
//	// Layout with an existing snapshot
//	layout, err := runner.ComputeLayout(ctx, people, opts)
//
//	// Kinship between two people
//	path, found := runner.Describe(ctx, people, "ada", "kid")
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kinview/pkg/cache"
	"github.com/matzehuels/kinview/pkg/graph"
	"github.com/matzehuels/kinview/pkg/kin"
	"github.com/matzehuels/kinview/pkg/kin/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

// DefaultStrategy is the default layout strategy.
const DefaultStrategy = string(layout.StrategyHierarchical)

// DefaultOrientation is the default genealogical orientation.
const DefaultOrientation = string(layout.TopDown)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// ValidStrategies is the set of supported layout strategies.
var ValidStrategies = map[string]bool{
	string(layout.StrategyHierarchical): true,
	string(layout.StrategyGenealogical): true,
	string(layout.StrategyBeautify):     true,
}

// ValidOrientations is the set of supported orientations.
var ValidOrientations = map[string]bool{
	string(layout.TopDown):  true,
	string(layout.BottomUp): true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the computation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source  string `json:"source,omitempty"`  // .json snapshot or .ged file
	Refresh bool   `json:"refresh,omitempty"` // bypass the layout cache

	// Layout options
	Strategy    string        `json:"strategy,omitempty"`
	Orientation string        `json:"orientation,omitempty"`
	RootID      string        `json:"root_id,omitempty"` // defaults to the first person
	Spacing     layout.Config `json:"spacing,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // generation + dates in node labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// People is the loaded snapshot.
	People []kin.Person

	// SnapshotHash is the content hash of the snapshot.
	SnapshotHash string

	// Layout contains the computed tree (positions, generations, edges).
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PeopleCount int
	EdgeCount   int
	LoadTime    time.Duration
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
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, png)", format)
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

// ValidateStrategy checks that a layout strategy is valid.
func ValidateStrategy(strategy string) error {
	if !ValidStrategies[strategy] {
		return fmt.Errorf("invalid strategy: %q (must be one of: hierarchical, genealogical, beautify)", strategy)
	}
	return nil
}

// ValidateOrientation checks that an orientation is valid.
func ValidateOrientation(orientation string) error {
	if !ValidOrientations[orientation] {
		return fmt.Errorf("invalid orientation: %q (must be one of: top-down, bottom-up)", orientation)
	}
	return nil
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
	if o.Source == "" {
		return fmt.Errorf("source is required")
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.Orientation == "" {
		o.Orientation = DefaultOrientation
	}
	if o.Spacing == (layout.Config{}) {
		o.Spacing = layout.DefaultConfig()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// Spacing errors surface here as hard failures; everything else in the
// pipeline degrades to an empty result instead.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateStrategy(o.Strategy); err != nil {
		return err
	}
	if err := ValidateOrientation(o.Orientation); err != nil {
		return err
	}
	return o.Spacing.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutOptions returns the strategy selector for the layout engine.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Strategy:    layout.Strategy(o.Strategy),
		Orientation: layout.Orientation(o.Orientation),
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Strategy:    o.Strategy,
		Orientation: o.Orientation,
		RootID:      o.RootID,
		Config:      o.Spacing,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
