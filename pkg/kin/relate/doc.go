// Package relate finds the shortest connecting path between two people and
// classifies it into a kinship term.
//
// [Find] runs a breadth-first search over the normalized relationship graph,
// so the result is the shortest path by edge count with stable tie-breaking
// (discovery order, which is deterministic for identical input order). The
// resulting [Path] carries the typed steps, the distance, a human-readable
// description ("second cousin once removed", "mother-in-law"), and whether
// the two people are blood relatives.
//
// Classification recognizes direct relations, ancestor and descendant chains
// with ordinal great- prefixes, uncles/aunts and nephews/nieces, cousins with
// degree and removal, and in-laws. Paths that match no known pattern fall
// back to a generic description that joins each step's gendered term with
// arrows.
//
// Wording is gendered from the target person of each step; unknown gender
// falls back to a neutral joint term such as "uncle/aunt".
package relate
