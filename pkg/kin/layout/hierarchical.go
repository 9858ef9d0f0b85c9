package layout

import (
	"github.com/matzehuels/kinview/pkg/kin"
	"github.com/matzehuels/kinview/pkg/kin/generation"
)

// cell is a node scheduled for sequential placement: gap is the horizontal
// space between this node and its left neighbor.
type cell struct {
	id  string
	gap float64
}

// Hierarchical positions generations top to bottom. Within a generation,
// spouses sit adjacent with the tighter spouse gap, siblings are grouped with
// the sibling gap, and a spouse's own siblings extend to the spouse's outer
// side. Each generation is centered horizontally around the overall span.
func Hierarchical(people []kin.Person, rootID string, cfg Config) (map[string]Position, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res := generation.Assign(people, rootID)
	pos := make(map[string]Position, len(res.Generations))
	if len(res.Generations) == 0 {
		return pos, nil
	}

	g := kin.NewGraph(people)
	levels := sortedLevels(res.Buckets)
	minGen := levels[0]

	for _, lvl := range levels {
		row := orderHierarchicalRow(g, res.Buckets[lvl], cfg)
		placeRow(row, pos, cfg, float64(lvl-minGen)*cfg.GenerationGap)
	}

	return pos, nil
}

// orderHierarchicalRow arranges one generation into placement order.
// Walking the members in bucket order, each unplaced member pulls in its
// sibling run; every sibling is followed by its in-row spouse, and the
// spouse's own siblings extend outward past the spouse.
func orderHierarchicalRow(g *kin.Graph, members []string, cfg Config) []cell {
	inRow := memberSet(members)
	placed := make(map[string]bool, len(members))
	var row []cell

	add := func(id string, gap float64) {
		row = append(row, cell{id: id, gap: gap})
		placed[id] = true
	}

	for _, m := range members {
		if placed[m] {
			continue
		}

		sibs := []string{m}
		placed[m] = true // reserve before collecting the run
		for _, sib := range g.NeighborsOfType(m, kin.RelationSibling) {
			if inRow[sib] && !placed[sib] {
				sibs = append(sibs, sib)
				placed[sib] = true
			}
		}

		for i, s := range sibs {
			gap := cfg.SiblingGap
			if i == 0 {
				gap = cfg.FamilyUnitGap
			}
			row = append(row, cell{id: s, gap: gap})

			if sp := spouseInRow(g, s, inRow, placed); sp != "" {
				add(sp, cfg.SpouseGap)
				for _, ss := range g.NeighborsOfType(sp, kin.RelationSibling) {
					if inRow[ss] && !placed[ss] {
						add(ss, cfg.SiblingGap)
					}
				}
			}
		}
	}

	return row
}

// placeRow lays the cells out sequentially at the given y, then centers the
// row on x = 0.
func placeRow(row []cell, pos map[string]Position, cfg Config, y float64) {
	x := 0.0
	for i, c := range row {
		if i > 0 {
			x += cfg.NodeWidth + c.gap
		}
		pos[c.id] = Position{X: x, Y: y}
	}
	shift := x / 2
	for _, c := range row {
		p := pos[c.id]
		p.X -= shift
		pos[c.id] = p
	}
}
