package kin

// Graph is the normalized adjacency view of a people snapshot.
//
// Each stored relation also inserts its logical inverse when the reciprocal
// record is missing, so traversal works regardless of which side recorded the
// relation. Relations that point at person IDs absent from the snapshot are
// skipped. When both sides recorded the relation, the first recorded type
// wins and the reciprocal is not double-counted.
//
// Graph is built once per snapshot and shared read-only by the generation
// assigner and the path finder. It is not safe for concurrent mutation, but
// all methods are read-only after NewGraph returns.
type Graph struct {
	adj       map[string]map[string]RelationType
	neighbors map[string][]string // discovery-ordered neighbor IDs
	order     []string            // person IDs in snapshot order
	dangling  int                 // relations skipped for pointing outside the snapshot
}

// NewGraph builds the adjacency structure from a snapshot of people.
// The input slice is not retained.
func NewGraph(people []Person) *Graph {
	g := &Graph{
		adj:       make(map[string]map[string]RelationType, len(people)),
		neighbors: make(map[string][]string, len(people)),
		order:     make([]string, 0, len(people)),
	}

	known := make(map[string]struct{}, len(people))
	for _, p := range people {
		if p.ID == "" {
			continue
		}
		if _, dup := known[p.ID]; dup {
			continue
		}
		known[p.ID] = struct{}{}
		g.order = append(g.order, p.ID)
		g.adj[p.ID] = make(map[string]RelationType)
	}

	for _, p := range people {
		for _, r := range p.Relations {
			if !r.Type.Valid() || r.PersonID == p.ID {
				continue
			}
			if _, ok := known[r.PersonID]; !ok {
				g.dangling++ // tolerated, reported via Dangling
				continue
			}
			g.insert(p.ID, r.PersonID, r.Type)
			g.insert(r.PersonID, p.ID, r.Type.Inverse())
		}
	}

	return g
}

// insert records an edge unless one already exists for the pair.
// Existing entries win so reciprocal records never double-count and
// conflicting duplicate records resolve by first occurrence.
func (g *Graph) insert(from, to string, t RelationType) {
	if _, ok := g.adj[from][to]; ok {
		return
	}
	g.adj[from][to] = t
	g.neighbors[from] = append(g.neighbors[from], to)
}

// Contains reports whether the person ID exists in the snapshot.
func (g *Graph) Contains(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// Relation returns the relation type from one person to another, as seen
// from the first person, and whether such an edge exists.
func (g *Graph) Relation(from, to string) (RelationType, bool) {
	t, ok := g.adj[from][to]
	return t, ok
}

// Neighbors returns the IDs adjacent to the person in discovery order.
// The returned slice is a read-only view; do not modify it.
func (g *Graph) Neighbors(id string) []string {
	return g.neighbors[id]
}

// NeighborsOfType returns the adjacent IDs connected by the given relation
// type, in discovery order.
func (g *Graph) NeighborsOfType(id string, t RelationType) []string {
	var out []string
	for _, nb := range g.neighbors[id] {
		if g.adj[id][nb] == t {
			out = append(out, nb)
		}
	}
	return out
}

// PersonIDs returns all person IDs in snapshot order.
// The returned slice is a read-only view; do not modify it.
func (g *Graph) PersonIDs() []string {
	return g.order
}

// Size returns the number of people in the graph.
func (g *Graph) Size() int { return len(g.adj) }

// Dangling returns the number of relations that were skipped during
// construction because they point at person IDs absent from the snapshot.
// Callers can surface the count as a data-quality warning.
func (g *Graph) Dangling() int { return g.dangling }

// Reachable returns the set of IDs reachable from root over any relation
// type, including root itself. A missing root yields an empty set.
func (g *Graph) Reachable(root string) map[string]struct{} {
	seen := make(map[string]struct{})
	if !g.Contains(root) {
		return seen
	}
	queue := []string{root}
	seen[root] = struct{}{}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, nb := range g.neighbors[curr] {
			if _, ok := seen[nb]; !ok {
				seen[nb] = struct{}{}
				queue = append(queue, nb)
			}
		}
	}
	return seen
}
