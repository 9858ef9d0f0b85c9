package layout

import (
	"github.com/matzehuels/kinview/pkg/kin"
	"github.com/matzehuels/kinview/pkg/kin/generation"
)

// Beautify keeps sibling clusters visually intact. Generations come from the
// birth-year-seeded relaxation. Within a generation each sibling cluster is
// placed as one block with out-of-cluster spouses pushed to the cluster edges
// (the first sibling's spouse on its left, every other spouse on the right of
// its partner) instead of interleaved between siblings. A bottom-up pass then
// re-centers each parent cluster above the horizontal midpoint of all of its
// children, residual overlaps are pushed apart per generation, and the whole
// layout is re-centered on x = 0.
func Beautify(people []kin.Person, rootID string, cfg Config) (map[string]Position, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := kin.NewGraph(people)
	pos := make(map[string]Position)
	if !g.Contains(rootID) {
		return pos, nil
	}

	reach := g.Reachable(rootID)
	gens := generation.Relax(people, cfg.YearsPerGeneration)

	buckets := make(map[int][]string)
	for _, id := range g.PersonIDs() {
		if _, ok := reach[id]; ok {
			buckets[gens[id]] = append(buckets[gens[id]], id)
		}
	}
	levels := sortedLevels(buckets)
	if len(levels) == 0 {
		return pos, nil
	}
	minGen := levels[0]

	// Initial placement: clusters laid out left to right per generation.
	// Cluster membership is kept so the re-centering pass can move each
	// cluster as a rigid block.
	clusters := make([][][]string, len(levels))
	for li, lvl := range levels {
		members := buckets[lvl]
		inRow := memberSet(members)
		rowPlaced := make(map[string]bool, len(members))
		y := float64(lvl-minGen) * cfg.GenerationGap
		cursor := 0.0

		for _, group := range siblingGroups(g, members) {
			row := orderCluster(g, group, inRow, rowPlaced, cfg)
			if len(row) == 0 {
				continue
			}
			x := cursor
			ids := make([]string, 0, len(row))
			for i, c := range row {
				if i > 0 {
					x += cfg.NodeWidth + c.gap
				}
				pos[c.id] = Position{X: x, Y: y}
				ids = append(ids, c.id)
			}
			clusters[li] = append(clusters[li], ids)
			cursor = x + cfg.NodeWidth + cfg.FamilyUnitGap
		}
	}

	// Bottom-up: shift every parent cluster so its span midpoint sits above
	// the midpoint of its children, then settle the row.
	for li := len(levels) - 2; li >= 0; li-- {
		for _, ids := range clusters[li] {
			mid, ok := childMidpoint(g, ids, pos)
			if !ok {
				continue
			}
			shift := mid - clusterMid(ids, pos)
			for _, id := range ids {
				p := pos[id]
				p.X += shift
				pos[id] = p
			}
		}
		resolveRow(buckets[levels[li]], pos, cfg.minSpacing())
	}
	resolveRow(buckets[levels[len(levels)-1]], pos, cfg.minSpacing())

	recenterAll(pos)
	return pos, nil
}

// orderCluster arranges one sibling cluster with spouses on the edges: the
// first sibling's spouse precedes it, every other sibling's spouse follows it.
func orderCluster(g *kin.Graph, group []string, inRow, placed map[string]bool, cfg Config) []cell {
	var sibs []string
	for _, id := range group {
		if !placed[id] {
			sibs = append(sibs, id)
			placed[id] = true
		}
	}
	if len(sibs) == 0 {
		return nil
	}

	var row []cell
	if sp := spouseInRow(g, sibs[0], inRow, placed); sp != "" {
		placed[sp] = true
		row = append(row, cell{id: sp}, cell{id: sibs[0], gap: cfg.SpouseGap})
	} else {
		row = append(row, cell{id: sibs[0]})
	}
	for _, s := range sibs[1:] {
		row = append(row, cell{id: s, gap: cfg.SiblingGap})
		if sp := spouseInRow(g, s, inRow, placed); sp != "" {
			placed[sp] = true
			row = append(row, cell{id: sp, gap: cfg.SpouseGap})
		}
	}
	return row
}

// childMidpoint averages the positions of the distinct children of the
// cluster's members.
func childMidpoint(g *kin.Graph, ids []string, pos map[string]Position) (float64, bool) {
	sum, n := 0.0, 0
	seen := make(map[string]bool)
	for _, id := range ids {
		for _, cid := range g.NeighborsOfType(id, kin.RelationChild) {
			if seen[cid] {
				continue
			}
			seen[cid] = true
			if p, ok := pos[cid]; ok {
				sum += p.X
				n++
			}
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// clusterMid is the midpoint of the cluster's horizontal span.
func clusterMid(ids []string, pos map[string]Position) float64 {
	minX, maxX := pos[ids[0]].X, pos[ids[0]].X
	for _, id := range ids[1:] {
		x := pos[id].X
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
	}
	return (minX + maxX) / 2
}
