package relate

import "github.com/matzehuels/kinview/pkg/kin"

// Step is one hop along a relationship path. Type describes what To is
// relative to From; Description is the gendered term for that single hop.
type Step struct {
	FromID      string           `json:"from_id" bson:"from_id"`
	ToID        string           `json:"to_id" bson:"to_id"`
	Type        kin.RelationType `json:"type" bson:"type"`
	Description string           `json:"description" bson:"description"`
}

// Path is the shortest connection between two people.
type Path struct {
	// IDs lists every person along the path, endpoints included.
	IDs []string `json:"ids" bson:"ids"`

	// Steps is the typed hop list; empty for a same-person path.
	Steps []Step `json:"steps,omitempty" bson:"steps,omitempty"`

	// Distance is the number of hops.
	Distance int `json:"distance" bson:"distance"`

	// Description is the classified kinship term, phrased from the
	// perspective of the starting person ("b is a's <description>").
	Description string `json:"description" bson:"description"`

	// Blood is false when the path crosses at least one spouse edge.
	Blood bool `json:"blood" bson:"blood"`

	// CommonAncestor is the apex person for pure ancestor/descendant chains
	// and ancestor-then-descendant paths; empty when not applicable.
	CommonAncestor string `json:"common_ancestor,omitempty" bson:"common_ancestor,omitempty"`
}

// Find returns the shortest relationship path from one person to another.
//
// The second return value is false when either ID is unknown or no path
// exists (disconnected components); that is a legitimate outcome, not an
// error.
// Identical IDs return a zero-length "Same person" path.
func Find(people []kin.Person, fromID, toID string) (*Path, bool) {
	g := kin.NewGraph(people)
	if !g.Contains(fromID) || !g.Contains(toID) {
		return nil, false
	}

	if fromID == toID {
		return &Path{
			IDs:         []string{fromID},
			Distance:    0,
			Description: "Same person",
			Blood:       true,
		}, true
	}

	prev := bfs(g, fromID, toID)
	if _, reached := prev[toID]; !reached {
		return nil, false
	}

	ids := reconstruct(prev, fromID, toID)
	byID := kin.PeopleByID(people)

	p := &Path{
		IDs:      ids,
		Distance: len(ids) - 1,
		Blood:    true,
	}
	for i := 0; i+1 < len(ids); i++ {
		t, _ := g.Relation(ids[i], ids[i+1])
		p.Steps = append(p.Steps, Step{
			FromID:      ids[i],
			ToID:        ids[i+1],
			Type:        t,
			Description: directTerm(t, byID[ids[i+1]].Gender),
		})
		if t == kin.RelationSpouse {
			p.Blood = false
		}
	}

	p.Description = describe(p.Steps, byID)
	p.CommonAncestor = commonAncestor(p.Steps, ids)

	return p, true
}

// bfs explores from start in discovery order and returns the predecessor map.
// Search stops once goal is dequeued; every enqueued node already holds its
// shortest-distance predecessor.
func bfs(g *kin.Graph, start, goal string) map[string]string {
	prev := map[string]string{start: ""}
	queue := []string{start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if curr == goal {
			break
		}
		for _, nb := range g.Neighbors(curr) {
			if _, seen := prev[nb]; !seen {
				prev[nb] = curr
				queue = append(queue, nb)
			}
		}
	}
	return prev
}

func reconstruct(prev map[string]string, start, goal string) []string {
	var rev []string
	for id := goal; id != ""; id = prev[id] {
		rev = append(rev, id)
		if id == start {
			break
		}
	}
	ids := make([]string, len(rev))
	for i, id := range rev {
		ids[len(rev)-1-i] = id
	}
	return ids
}

// commonAncestor returns the apex of a parent-run followed by a child-run.
// For cousin paths the true common ancestor is off-path (a parent of the two
// sibling intermediaries), so it stays empty.
func commonAncestor(steps []Step, ids []string) string {
	if len(steps) == 0 {
		return ""
	}
	ups := 0
	for ups < len(steps) && steps[ups].Type == kin.RelationParent {
		ups++
	}
	if ups == 0 {
		return ""
	}
	for _, s := range steps[ups:] {
		if s.Type != kin.RelationChild {
			return ""
		}
	}
	return ids[ups]
}
