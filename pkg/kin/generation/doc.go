// Package generation assigns an integer generation number to every person
// reachable from a chosen root.
//
// Two assigners are provided. [Assign] is the primary depth-first propagator:
// the root starts at 0, parent edges propagate -1, child edges +1, and spouse
// or sibling edges propagate the same value. [Relax] is the alternative used
// by the genealogy-style layouts: it seeds parentless roots from birth-year
// buckets and then runs a bounded fixed-point relaxation that only ever
// raises a child strictly above its parents and equalizes spouse pairs.
//
// Both assigners are deterministic, terminate on cyclic or contradictory
// relation data, and treat empty input or a missing root as "nothing to
// compute" rather than an error.
package generation
