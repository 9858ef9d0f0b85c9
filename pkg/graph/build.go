package graph

import (
	"sort"

	"github.com/matzehuels/kinview/pkg/kin"
	"github.com/matzehuels/kinview/pkg/kin/layout"
)

// Build flattens core output into the wire format. Only people with a
// position become nodes, so a layout computed from a root naturally scopes
// the graph to that root's connected component. Nodes are sorted by ID;
// edges follow the sorted node order with each spouse pair serialized once.
func Build(people []kin.Person, positions map[string]layout.Position, generations map[string]int) Graph {
	g := kin.NewGraph(people)
	byID := kin.PeopleByID(people)

	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := Graph{Nodes: make([]Node, 0, len(ids))}
	for _, id := range ids {
		p := byID[id]
		pos := positions[id]
		out.Nodes = append(out.Nodes, Node{
			ID:         id,
			Label:      p.FullName(),
			Gender:     string(p.Gender),
			Birth:      p.BirthDate,
			Death:      p.DeathDate,
			Generation: generations[id],
			X:          pos.X,
			Y:          pos.Y,
		})
	}

	for _, id := range ids {
		nbs := g.Neighbors(id)
		sort.Strings(nbs)
		for _, nb := range nbs {
			if _, ok := positions[nb]; !ok {
				continue
			}
			t, _ := g.Relation(id, nb)
			switch t {
			case kin.RelationChild:
				out.Edges = append(out.Edges, Edge{
					From:      id,
					To:        nb,
					Type:      EdgeChild,
					Mergeable: parentsAreSpouses(g, id, nb),
				})
			case kin.RelationSpouse:
				if id < nb {
					out.Edges = append(out.Edges, Edge{From: id, To: nb, Type: EdgeSpouse})
				}
			}
		}
	}

	return out
}

// parentsAreSpouses reports whether child has another recorded parent that
// is parent's spouse.
func parentsAreSpouses(g *kin.Graph, parent, child string) bool {
	for _, op := range g.NeighborsOfType(child, kin.RelationParent) {
		if op == parent {
			continue
		}
		if t, ok := g.Relation(parent, op); ok && t == kin.RelationSpouse {
			return true
		}
	}
	return false
}
