package layout

import (
	"errors"
	"fmt"

	"github.com/matzehuels/kinview/pkg/kin"
)

var (
	// ErrInvalidSpacing is returned when a spacing value is zero or negative,
	// or when the gap ordering (spouse < sibling <= family unit) is violated.
	// Bad spacing would silently produce overlapping or inverted coordinates,
	// so it is the one configuration class surfaced as a hard failure.
	ErrInvalidSpacing = errors.New("invalid spacing configuration")

	// ErrUnknownStrategy is returned by [Compute] for an unrecognized
	// strategy name.
	ErrUnknownStrategy = errors.New("unknown layout strategy")
)

// Position is a node center on the canvas.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Strategy selects a layout algorithm.
type Strategy string

// Available strategies.
const (
	StrategyHierarchical Strategy = "hierarchical"
	StrategyGenealogical Strategy = "genealogical"
	StrategyBeautify     Strategy = "beautify"
)

// Orientation controls the vertical direction of the genealogical strategy.
type Orientation string

// Orientations. TopDown places the earliest generation at y=0 with
// descendants increasing downward; BottomUp mirrors it.
const (
	TopDown  Orientation = "top-down"
	BottomUp Orientation = "bottom-up"
)

// Config carries the spacing constants. Values affect spacing math only,
// never topology.
type Config struct {
	NodeWidth          float64 `json:"node_width" toml:"node_width"`
	NodeHeight         float64 `json:"node_height" toml:"node_height"`
	SpouseGap          float64 `json:"spouse_gap" toml:"spouse_gap"`
	SiblingGap         float64 `json:"sibling_gap" toml:"sibling_gap"`
	GenerationGap      float64 `json:"generation_gap" toml:"generation_gap"`
	FamilyUnitGap      float64 `json:"family_unit_gap" toml:"family_unit_gap"`
	YearsPerGeneration int     `json:"years_per_generation" toml:"years_per_generation"`
}

// DefaultConfig returns spacing that renders comfortably at typical zoom.
func DefaultConfig() Config {
	return Config{
		NodeWidth:          120,
		NodeHeight:         80,
		SpouseGap:          40,
		SiblingGap:         60,
		GenerationGap:      150,
		FamilyUnitGap:      100,
		YearsPerGeneration: 25,
	}
}

// Validate checks the spacing constants. It returns an error wrapping
// [ErrInvalidSpacing] naming the offending field.
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"node_width", c.NodeWidth},
		{"node_height", c.NodeHeight},
		{"spouse_gap", c.SpouseGap},
		{"sibling_gap", c.SiblingGap},
		{"generation_gap", c.GenerationGap},
		{"family_unit_gap", c.FamilyUnitGap},
		{"years_per_generation", float64(c.YearsPerGeneration)},
	}
	for _, ch := range checks {
		if ch.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidSpacing, ch.name, ch.value)
		}
	}
	if c.SpouseGap >= c.SiblingGap {
		return fmt.Errorf("%w: spouse_gap (%v) must be smaller than sibling_gap (%v)",
			ErrInvalidSpacing, c.SpouseGap, c.SiblingGap)
	}
	if c.SiblingGap > c.FamilyUnitGap {
		return fmt.Errorf("%w: sibling_gap (%v) must not exceed family_unit_gap (%v)",
			ErrInvalidSpacing, c.SiblingGap, c.FamilyUnitGap)
	}
	return nil
}

// minSpacing is the post-resolution minimum distance between two node
// centers in the same generation.
func (c Config) minSpacing() float64 {
	return c.NodeWidth + c.SiblingGap/2
}

// Options selects the strategy for [Compute]. Zero values mean hierarchical,
// top-down.
type Options struct {
	Strategy    Strategy
	Orientation Orientation
}

// Compute dispatches to the selected strategy. All strategies share the same
// contract: every person reachable from rootID receives exactly one position,
// and the result is a pure function of the input.
func Compute(people []kin.Person, rootID string, cfg Config, opts Options) (map[string]Position, error) {
	switch opts.Strategy {
	case StrategyHierarchical, "":
		return Hierarchical(people, rootID, cfg)
	case StrategyGenealogical:
		orient := opts.Orientation
		if orient == "" {
			orient = TopDown
		}
		return Genealogical(people, rootID, cfg, orient)
	case StrategyBeautify:
		return Beautify(people, rootID, cfg)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, opts.Strategy)
}
