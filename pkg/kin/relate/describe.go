package relate

import (
	"fmt"
	"strings"

	"github.com/matzehuels/kinview/pkg/kin"
)

// describe classifies the ordered step list into a kinship term, phrased for
// the final person on the path.
func describe(steps []Step, byID map[string]kin.Person) string {
	if len(steps) == 0 {
		return "Same person"
	}

	target := byID[steps[len(steps)-1].ToID].Gender

	if len(steps) == 1 {
		return directTerm(steps[0].Type, target)
	}

	types := make([]kin.RelationType, len(steps))
	counts := map[kin.RelationType]int{}
	for i, s := range steps {
		types[i] = s.Type
		counts[s.Type]++
	}

	switch {
	case counts[kin.RelationParent] == len(steps):
		return ancestorTerm(len(steps), target)
	case counts[kin.RelationChild] == len(steps):
		return descendantTerm(len(steps), target)
	}

	if term, ok := apexTerm(types, counts, target); ok {
		return term
	}
	if term, ok := collateralTerm(types, counts, target); ok {
		return term
	}
	if term, ok := cousinTerm(types, counts); ok {
		return term
	}
	if term, ok := inLawTerm(types, target); ok {
		return term
	}

	// No named pattern: list each hop's gendered term.
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.Description
	}
	return strings.Join(parts, " → ")
}

// ancestorTerm names a pure parent chain: grandparent, great-grandparent,
// then ordinal great- forms ("2nd great-grandfather" for four steps).
func ancestorTerm(n int, g kin.Gender) string {
	base := pick(g, "grandfather", "grandmother", "grandparent")
	return greatPrefix(n) + base
}

func descendantTerm(n int, g kin.Gender) string {
	base := pick(g, "grandson", "granddaughter", "grandchild")
	return greatPrefix(n) + base
}

func greatPrefix(n int) string {
	switch {
	case n <= 2:
		return ""
	case n == 3:
		return "great-"
	default:
		return ordinalNumber(n-2) + " great-"
	}
}

// apexTerm names paths that climb to a common ancestor and descend again
// without an explicit sibling edge: the shared-parent path between two
// children is a sibling, one generation of asymmetry gives uncle/aunt or
// nephew/niece, and deeper symmetric paths are cousins with degree
// min(up,down)-1 and removal |up-down|.
func apexTerm(types []kin.RelationType, counts map[kin.RelationType]int, g kin.Gender) (string, bool) {
	if counts[kin.RelationSpouse] != 0 || counts[kin.RelationSibling] != 0 {
		return "", false
	}
	up := counts[kin.RelationParent]
	down := counts[kin.RelationChild]
	if up == 0 || down == 0 || up+down != len(types) {
		return "", false
	}
	for i, t := range types {
		if i < up && t != kin.RelationParent {
			return "", false
		}
		if i >= up && t != kin.RelationChild {
			return "", false
		}
	}

	switch {
	case up == 1 && down == 1:
		return pick(g, "brother", "sister", "sibling"), true
	case down == 1:
		term := pick(g, "uncle", "aunt", "uncle/aunt")
		if up == 3 {
			term = "great-" + term
		}
		return term, up <= 3
	case up == 1:
		term := pick(g, "nephew", "niece", "nephew/niece")
		if down == 3 {
			term = "great-" + term
		}
		return term, down <= 3
	}

	degree := min(up, down) - 1
	removal := up - down
	if removal < 0 {
		removal = -removal
	}
	return cousinWording(degree, removal), true
}

// collateralTerm handles uncles/aunts and nephews/nieces, including the
// great- forms one generation further out.
func collateralTerm(types []kin.RelationType, counts map[kin.RelationType]int, g kin.Gender) (string, bool) {
	if counts[kin.RelationSpouse] != 0 || counts[kin.RelationSibling] != 1 {
		return "", false
	}

	switch {
	case counts[kin.RelationChild] == 0 && counts[kin.RelationParent] >= 1 && len(types) <= 3:
		// parent steps then one sibling step: uncle/aunt family
		if types[len(types)-1] != kin.RelationSibling {
			return "", false
		}
		term := pick(g, "uncle", "aunt", "uncle/aunt")
		if counts[kin.RelationParent] == 2 {
			term = "great-" + term
		}
		return term, true

	case counts[kin.RelationParent] == 0 && counts[kin.RelationChild] >= 1 && len(types) <= 3:
		// one sibling step then child steps: nephew/niece family
		if types[0] != kin.RelationSibling {
			return "", false
		}
		term := pick(g, "nephew", "niece", "nephew/niece")
		if counts[kin.RelationChild] == 2 {
			term = "great-" + term
		}
		return term, true
	}

	return "", false
}

// cousinTerm handles parent^a sibling child^b paths. Degree is the smaller
// of the two runs, removal their absolute difference.
func cousinTerm(types []kin.RelationType, counts map[kin.RelationType]int) (string, bool) {
	if counts[kin.RelationSpouse] != 0 || counts[kin.RelationSibling] != 1 {
		return "", false
	}
	up := counts[kin.RelationParent]
	down := counts[kin.RelationChild]
	if up == 0 || down == 0 {
		return "", false
	}

	// Shape must be exactly: parents, one sibling, children.
	for i, t := range types {
		switch {
		case i < up:
			if t != kin.RelationParent {
				return "", false
			}
		case i == up:
			if t != kin.RelationSibling {
				return "", false
			}
		default:
			if t != kin.RelationChild {
				return "", false
			}
		}
	}

	degree := min(up, down)
	removal := up - down
	if removal < 0 {
		removal = -removal
	}
	return cousinWording(degree, removal), true
}

func cousinWording(degree, removal int) string {
	term := ordinalWord(degree) + " cousin"
	switch removal {
	case 0:
	case 1:
		term += " once removed"
	case 2:
		term += " twice removed"
	default:
		term += fmt.Sprintf(" %d times removed", removal)
	}
	return term
}

// inLawTerm handles the two-step marriage connections. The order matters:
// a spouse's parent is a parent-in-law, but a parent's spouse is a
// step-parent and falls through to the generic description.
func inLawTerm(types []kin.RelationType, g kin.Gender) (string, bool) {
	if len(types) != 2 {
		return "", false
	}
	a, b := types[0], types[1]
	switch {
	case a == kin.RelationSpouse && b == kin.RelationParent:
		return pick(g, "father-in-law", "mother-in-law", "parent-in-law"), true
	case a == kin.RelationChild && b == kin.RelationSpouse:
		return pick(g, "son-in-law", "daughter-in-law", "child-in-law"), true
	case a == kin.RelationSpouse && b == kin.RelationSibling,
		a == kin.RelationSibling && b == kin.RelationSpouse:
		return pick(g, "brother-in-law", "sister-in-law", "sibling-in-law"), true
	}
	return "", false
}

// directTerm is the gendered word for a single relation step.
func directTerm(t kin.RelationType, g kin.Gender) string {
	switch t {
	case kin.RelationParent:
		return pick(g, "father", "mother", "parent")
	case kin.RelationChild:
		return pick(g, "son", "daughter", "child")
	case kin.RelationSibling:
		return pick(g, "brother", "sister", "sibling")
	case kin.RelationSpouse:
		return pick(g, "husband", "wife", "spouse")
	}
	return string(t)
}

func pick(g kin.Gender, male, female, neutral string) string {
	switch g {
	case kin.GenderMale:
		return male
	case kin.GenderFemale:
		return female
	}
	return neutral
}

// ordinalWord spells small ordinals ("first cousin" reads better than
// "1st cousin"); larger degrees fall back to numeric form.
func ordinalWord(n int) string {
	words := []string{"", "first", "second", "third", "fourth", "fifth",
		"sixth", "seventh", "eighth", "ninth", "tenth"}
	if n > 0 && n < len(words) {
		return words[n]
	}
	return ordinalNumber(n)
}

func ordinalNumber(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
