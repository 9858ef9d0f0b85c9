// Package visibility tracks collapsed subtrees of the family graph.
//
// Collapsing a person hides every descendant reachable over child edges; the
// collapsed person itself stays visible so it can be expanded again. The
// [Tracker] owns this state exclusively, keeps one hidden set per collapsed
// person, and answers visibility queries against the union of all hidden
// sets. Serialize the state with [Tracker.State] and rebuild it with
// [Restore]; positions and rendering stay with the caller.
package visibility
