package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/kinview/pkg/cache"
	"github.com/matzehuels/kinview/pkg/graph"
	"github.com/matzehuels/kinview/pkg/observability"
)

// RenderWithCacheInfo renders artifacts for every requested format with
// caching and returns cache hit info. The hit flag is true only when all
// formats came from cache; a single miss re-renders everything so the
// artifacts stay consistent with each other.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, lay graph.Layout, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := graph.MarshalLayout(lay)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := RenderLayout(lay, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if cerr := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); cerr == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, lay graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, lay, opts)
	return artifacts, err
}

// RenderLayout renders a layout into the requested formats without caching.
// SVG and PNG go through Graphviz; DOT and JSON are direct serializations.
func RenderLayout(lay graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)
	dotOpts := graph.DOTOptions{Detailed: opts.Detailed}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = graph.MarshalLayout(lay)
		case FormatDOT:
			data = []byte(graph.ToDOT(lay.Graph, dotOpts))
		case FormatSVG:
			data, err = graph.RenderSVG(graph.ToDOT(lay.Graph, dotOpts))
		case FormatPNG:
			data, err = graph.RenderPNG(graph.ToDOT(lay.Graph, dotOpts))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
