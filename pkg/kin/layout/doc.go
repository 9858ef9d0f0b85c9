// Package layout assigns 2-D canvas coordinates to every person reachable
// from a chosen root.
//
// Three interchangeable strategies share the same contract shape:
//
//   - [Hierarchical] stacks generations top to bottom, keeps spouses adjacent
//     with a tighter gap, groups siblings, and centers each generation on the
//     vertical axis.
//   - [Genealogical] derives generations from birth-year-seeded relaxation,
//     centers each sibling group under the midpoint of its parents, and
//     resolves overlaps per generation with a sequential push. It supports
//     top-down and bottom-up orientation.
//   - [Beautify] keeps sibling clusters visually intact, places out-of-cluster
//     spouses on the cluster edges, re-centers parent clusters above their
//     children, and finally centers the whole layout on x = 0.
//
// All strategies are pure functions of (people, root, config): identical
// input yields identical output, which the layout cache and the tests rely
// on. After overlap resolution no two same-generation centers are closer
// than the configured minimum spacing.
//
// Malformed configuration (non-positive spacing) is the only hard failure;
// empty input or a missing root returns an empty position map.
package layout
