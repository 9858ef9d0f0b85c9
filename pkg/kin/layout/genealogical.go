package layout

import (
	"github.com/matzehuels/kinview/pkg/kin"
	"github.com/matzehuels/kinview/pkg/kin/generation"
)

// Genealogical lays out the family in birth-order generations. Generations
// come from the birth-year-seeded relaxation, sibling groups are centered
// under the horizontal midpoint of their parents when parent positions are
// known (sequential placement otherwise), and a per-generation overlap pass
// pushes crowded neighbors apart. Orientation selects whether the earliest
// generation sits at the top (TopDown) or the bottom (BottomUp).
func Genealogical(people []kin.Person, rootID string, cfg Config, orient Orientation) (map[string]Position, error) {
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
	minGen, maxGen := levels[0], levels[len(levels)-1]

	rowY := func(lvl int) float64 {
		if orient == BottomUp {
			return float64(maxGen-lvl) * cfg.GenerationGap
		}
		return float64(lvl-minGen) * cfg.GenerationGap
	}

	// Parents first, so child groups can center under them.
	for _, lvl := range levels {
		members := buckets[lvl]
		inRow := memberSet(members)
		rowPlaced := make(map[string]bool, len(members))
		y := rowY(lvl)
		cursor := 0.0

		for _, group := range siblingGroups(g, members) {
			row := orderGroup(g, group, inRow, rowPlaced, cfg)
			if len(row) == 0 {
				continue
			}
			width := rowWidth(row, cfg)

			start := cursor
			if mid, ok := parentMidpoint(g, group, pos); ok {
				start = mid - width/2
			}

			x := start
			for i, c := range row {
				if i > 0 {
					x += cfg.NodeWidth + c.gap
				}
				pos[c.id] = Position{X: x, Y: y}
			}
			if end := start + width; end+cfg.NodeWidth+cfg.FamilyUnitGap > cursor {
				cursor = end + cfg.NodeWidth + cfg.FamilyUnitGap
			}
		}

		resolveRow(members, pos, cfg.minSpacing())
	}

	return pos, nil
}

// orderGroup arranges one sibling group: siblings in input order, each
// followed by its unclaimed in-row spouse. placed is shared across the whole
// generation so a person claimed as a spouse here is skipped when their own
// group comes up.
func orderGroup(g *kin.Graph, group []string, inRow, placed map[string]bool, cfg Config) []cell {
	var sibs []string
	for _, id := range group {
		if !placed[id] {
			sibs = append(sibs, id)
			placed[id] = true
		}
	}

	var row []cell
	for i, s := range sibs {
		gap := cfg.SiblingGap
		if i == 0 {
			gap = 0
		}
		row = append(row, cell{id: s, gap: gap})
		if sp := spouseInRow(g, s, inRow, placed); sp != "" {
			row = append(row, cell{id: sp, gap: cfg.SpouseGap})
			placed[sp] = true
		}
	}
	return row
}

// rowWidth is the span between the first and last node center of a
// sequentially placed row.
func rowWidth(row []cell, cfg Config) float64 {
	w := 0.0
	for i, c := range row {
		if i > 0 {
			w += cfg.NodeWidth + c.gap
		}
	}
	return w
}

// parentMidpoint averages the known positions of the group's parents.
func parentMidpoint(g *kin.Graph, group []string, pos map[string]Position) (float64, bool) {
	sum, n := 0.0, 0
	seen := make(map[string]bool)
	for _, id := range group {
		for _, pid := range g.NeighborsOfType(id, kin.RelationParent) {
			if seen[pid] {
				continue
			}
			seen[pid] = true
			if p, ok := pos[pid]; ok {
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
