package layout

import (
	"sort"

	"github.com/matzehuels/kinview/pkg/kin"
)

// resolveRow removes residual overlaps within one generation. Nodes are
// sorted by x (ties broken by ID for reproducibility); whenever two neighbors
// are closer than minDist, the right-hand neighbor and everyone further right
// shift right by the deficit, preserving their relative spacing.
func resolveRow(ids []string, pos map[string]Position, minDist float64) {
	if len(ids) < 2 {
		return
	}
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := pos[sorted[i]], pos[sorted[j]]
		if a.X != b.X {
			return a.X < b.X
		}
		return sorted[i] < sorted[j]
	})

	for i := 1; i < len(sorted); i++ {
		gap := pos[sorted[i]].X - pos[sorted[i-1]].X
		if gap >= minDist {
			continue
		}
		deficit := minDist - gap
		for j := i; j < len(sorted); j++ {
			p := pos[sorted[j]]
			p.X += deficit
			pos[sorted[j]] = p
		}
	}
}

// recenterAll shifts every position so the horizontal bounding box of the
// layout is centered on x = 0.
func recenterAll(pos map[string]Position) {
	if len(pos) == 0 {
		return
	}
	first := true
	var minX, maxX float64
	for _, p := range pos {
		if first {
			minX, maxX = p.X, p.X
			first = false
			continue
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
	}
	shift := (minX + maxX) / 2
	if shift == 0 {
		return
	}
	for id, p := range pos {
		p.X -= shift
		pos[id] = p
	}
}

// sortedLevels returns the generation numbers present in buckets, ascending.
func sortedLevels(buckets map[int][]string) []int {
	levels := make([]int, 0, len(buckets))
	for lvl := range buckets {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)
	return levels
}

// siblingGroups partitions one generation's members into sibling clusters:
// maximal sets of people sharing at least one recorded parent or an explicit
// sibling edge. Group order follows the first member's position in the input;
// members keep input order within their group.
func siblingGroups(g *kin.Graph, members []string) [][]string {
	index := make(map[string]int, len(members))
	for i, id := range members {
		index[id] = i
	}

	// Union-find over member indices.
	parent := make([]int, len(members))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if ra > rb {
			ra, rb = rb, ra
		}
		parent[rb] = ra // keep the earliest member as representative
	}

	byParent := make(map[string]int) // parent ID -> first member index seen
	for i, id := range members {
		for _, pid := range g.NeighborsOfType(id, kin.RelationParent) {
			if j, ok := byParent[pid]; ok {
				union(i, j)
			} else {
				byParent[pid] = i
			}
		}
		for _, sib := range g.NeighborsOfType(id, kin.RelationSibling) {
			if j, ok := index[sib]; ok {
				union(i, j)
			}
		}
	}

	groupOf := make(map[int][]string)
	var reps []int
	for i, id := range members {
		r := find(i)
		if _, ok := groupOf[r]; !ok {
			reps = append(reps, r)
		}
		groupOf[r] = append(groupOf[r], id)
	}

	groups := make([][]string, len(reps))
	for i, r := range reps {
		groups[i] = groupOf[r]
	}
	return groups
}

// spouseInRow returns the first spouse of id that belongs to the same
// generation and is not placed yet, or "".
func spouseInRow(g *kin.Graph, id string, inRow map[string]bool, placed map[string]bool) string {
	for _, sp := range g.NeighborsOfType(id, kin.RelationSpouse) {
		if inRow[sp] && !placed[sp] {
			return sp
		}
	}
	return ""
}

// memberSet builds a membership lookup for one generation.
func memberSet(members []string) map[string]bool {
	m := make(map[string]bool, len(members))
	for _, id := range members {
		m[id] = true
	}
	return m
}
