// Package kin defines the core data model for kinship analysis: people,
// typed relations between them, and the normalized relationship graph that
// the generation assigner, path finder, and layout engine traverse.
//
// # Data Model
//
// A [Person] carries identity, optional life dates, gender, and an ordered
// list of [Relation] records. Relations are typed (parent, child, spouse,
// sibling) and point at the other endpoint by person ID. Parent and child are
// directed inverses of each other; spouse and sibling are symmetric.
//
// # Normalization
//
// Upstream storage sometimes records a relation on only one side. Building a
// [Graph] derives the logical inverse of every stored relation when the
// reciprocal record is absent, so traversal works regardless of which side
// recorded it. Reciprocals that are present are not double-counted, and
// relations pointing at unknown person IDs are skipped.
//
// # Determinism
//
// Graph traversal order is stable: neighbors are returned in the order they
// were first discovered, which is a function of the input slice order and
// each person's relation order. Identical input always produces identical
// adjacency, which downstream algorithms rely on for reproducible output.
package kin
