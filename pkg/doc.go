// Package pkg provides the core libraries for Kinview family tree analysis.
//
// # Overview
//
// Kinview turns a flat list of people and typed relations into generational
// layouts, kinship descriptions, and rendered family tree diagrams. The pkg
// directory is organized into four main areas:
//
//  1. [kin] - Domain logic (relationship graph, generations, kinship paths, layout)
//  2. [graph] - Serialization types for render graphs and layouts, DOT export
//  3. [pipeline] - Orchestration (load → layout → render) with caching
//  4. [store], [cache] - Persistence and content-addressed caching backends
//
// # Architecture
//
// The typical data flow through Kinview:
//
//	GEDCOM / JSON snapshot
//	         ↓
//	    [gedcom] or [graph] package (load people)
//	         ↓
//	    [kin] package (relationship graph + generations)
//	         ↓
//	    [kin/layout] package (canvas positions)
//	         ↓
//	    [graph] package (render graph, DOT, SVG/PNG)
//
// # Quick Start
//
// Load a snapshot and compute a layout:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/kinview/pkg/cache"
//	    "github.com/matzehuels/kinview/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Source:   "family.ged",
//	    Strategy: "beautify",
//	    Formats:  []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Describe how two people are related:
//
//	path, found := runner.Describe(ctx, result.People, "ada", "kid")
//	if found {
//	    fmt.Println(path.Description) // e.g. "grandmother"
//	}
//
// # Main Packages
//
// [kin] - Person/Relation model and the normalized relationship graph.
// Construction derives the inverse of every stored relation, skips dangling
// references, and iterates deterministically.
//
// [kin/generation] - Generation assignment: DFS propagation from a root plus
// birth-year relaxation for snapshots without a connected root.
//
// [kin/relate] - BFS shortest relationship path and kinship term
// classification (grandparents, cousins with removal, in-laws).
//
// [kin/layout] - Three positioning strategies (hierarchical, genealogical,
// beautify) sharing one spacing configuration and overlap resolution.
//
// [kin/visibility] - Collapse/expand tracking for interactive viewers.
//
// [gedcom] - GEDCOM 5.5 import (INDI/FAM records into people).
//
// [graph] - Render graph serialization (JSON/BSON), DOT export, and
// Graphviz SVG/PNG rasterization.
//
// [pipeline] - Complete load → layout → render pipeline used by CLI and API,
// with content-addressed caching of layouts and artifacts.
//
// [cache] - Cache backends: file (CLI), redis (server), null (tests).
//
// [store] - Tree persistence: in-memory and MongoDB-backed stores for
// snapshots, computed layouts, and collapse state.
//
// [observability] - Hook interfaces with no-op defaults for metrics and
// tracing integration.
//
// [buildinfo] - ldflags-injected version information.
//
// [kin]: https://pkg.go.dev/github.com/matzehuels/kinview/pkg/kin
// [kin/generation]: https://pkg.go.dev/github.com/matzehuels/kinview/pkg/kin/generation
// [kin/relate]: https://pkg.go.dev/github.com/matzehuels/kinview/pkg/kin/relate
// [kin/layout]: https://pkg.go.dev/github.com/matzehuels/kinview/pkg/kin/layout
// [kin/visibility]: https://pkg.go.dev/github.com/matzehuels/kinview/pkg/kin/visibility
// [gedcom]: https://pkg.go.dev/github.com/matzehuels/kinview/pkg/gedcom
// [graph]: https://pkg.go.dev/github.com/matzehuels/kinview/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/kinview/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/kinview/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/kinview/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/kinview/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/kinview/pkg/buildinfo
package pkg
