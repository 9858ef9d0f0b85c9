package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kinview/pkg/cache"
	"github.com/matzehuels/kinview/pkg/graph"
	"github.com/matzehuels/kinview/pkg/kin"
	"github.com/matzehuels/kinview/pkg/kin/generation"
	"github.com/matzehuels/kinview/pkg/kin/layout"
	"github.com/matzehuels/kinview/pkg/kin/relate"
	"github.com/matzehuels/kinview/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	people, err := r.LoadPeople(ctx, opts.Source)
	if err != nil {
		return nil, err
	}
	result.People = people
	result.SnapshotHash = SnapshotHash(people)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.PeopleCount = len(people)

	r.Logger.Info("loaded snapshot",
		"people", len(people),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	lay, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, people, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = lay
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.EdgeCount = len(lay.Graph.Edges)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"strategy", lay.Strategy,
		"nodes", len(lay.Graph.Nodes),
		"edges", len(lay.Graph.Edges),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, lay, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
//
// An empty RootID defaults to the first person in the snapshot. The resolved
// root is part of the cache key, so the default and an explicit first-person
// root share an entry only when they agree.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, people []kin.Person, opts Options) (graph.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	r.applyLogger(&opts)

	if opts.RootID == "" && len(people) > 0 {
		opts.RootID = people[0].ID
	}

	snapshotHash := SnapshotHash(people)
	cacheKey := r.Keyer.LayoutKey(snapshotHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := graph.UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Strategy, len(people))

	lay, err := r.computeLayout(people, snapshotHash, opts)

	observability.Pipeline().OnLayoutComplete(ctx, opts.Strategy, time.Since(start), err)
	if err != nil {
		return graph.Layout{}, false, err
	}

	// Cache the result
	if data, err := graph.MarshalLayout(lay); err == nil {
		if cerr := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); cerr == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return lay, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo
// and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, people []kin.Person, opts Options) (graph.Layout, error) {
	lay, _, err := r.ComputeLayoutWithCacheInfo(ctx, people, opts)
	return lay, err
}

// computeLayout assigns generations, positions everyone reachable from the
// root, and assembles the serializable layout.
func (r *Runner) computeLayout(people []kin.Person, snapshotHash string, opts Options) (graph.Layout, error) {
	gens := generation.Assign(people, opts.RootID)
	if gens.Dangling > 0 {
		r.Logger.Warn("ignoring relations to unknown people", "count", gens.Dangling)
	}
	for _, c := range gens.Conflicts {
		r.Logger.Warn("inconsistent generation data",
			"person", c.PersonID,
			"other", c.OtherID,
			"relation", c.Type,
			"got", c.Got,
			"want", c.Want)
	}

	positions, err := layout.Compute(people, opts.RootID, opts.Spacing, opts.LayoutOptions())
	if err != nil {
		return graph.Layout{}, err
	}

	return graph.Layout{
		Strategy:     opts.Strategy,
		Orientation:  opts.Orientation,
		RootID:       opts.RootID,
		SnapshotHash: snapshotHash,
		Graph:        graph.Build(people, positions, gens.Generations),
	}, nil
}

// InvalidateLayout removes the cached layout for a snapshot and options.
// Artifacts are keyed by the layout hash and expire via TTL, so only the
// layout entry needs explicit invalidation.
func (r *Runner) InvalidateLayout(ctx context.Context, people []kin.Person, opts Options) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	if opts.RootID == "" && len(people) > 0 {
		opts.RootID = people[0].ID
	}
	key := r.Keyer.LayoutKey(SnapshotHash(people), opts.LayoutKeyOpts())
	return r.Cache.Delete(ctx, key)
}

// Describe finds the shortest relationship path between two people.
// The second return value is false when either ID is unknown or the two
// are not connected.
func (r *Runner) Describe(ctx context.Context, people []kin.Person, fromID, toID string) (*relate.Path, bool) {
	start := time.Now()
	observability.Pipeline().OnPathStart(ctx, fromID, toID)

	path, found := relate.Find(people, fromID, toID)

	observability.Pipeline().OnPathComplete(ctx, fromID, toID, found, time.Since(start))
	if found {
		r.Logger.Debug("described relationship",
			"from", fromID, "to", toID,
			"distance", path.Distance,
			"description", path.Description)
	}
	return path, found
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
