package gedcom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/kinview/pkg/kin"
)

// ParseFile reads a GEDCOM file and returns the people it describes, in
// document order.
func ParseFile(path string) ([]kin.Person, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads GEDCOM 5.5 from r. Unknown tags are skipped; malformed lines
// are ignored.
func Parse(r io.Reader) ([]kin.Person, error) {
	var (
		indis []*indi
		fams  []*fam

		cur     any    // record being filled, *indi or *fam
		dateFor string // "BIRT" or "DEAT" while expecting a level-2 DATE
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		ln, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}

		if ln.level == 0 {
			cur, dateFor = nil, ""
			switch ln.tag {
			case "INDI":
				rec := &indi{id: ln.xref}
				indis = append(indis, rec)
				cur = rec
			case "FAM":
				rec := &fam{}
				fams = append(fams, rec)
				cur = rec
			}
			continue
		}

		switch rec := cur.(type) {
		case *indi:
			if ln.level == 1 {
				dateFor = ""
				switch ln.tag {
				case "NAME":
					rec.first, rec.last = splitName(ln.value)
				case "SEX":
					rec.sex = ln.value
				case "BIRT", "DEAT":
					dateFor = ln.tag
				}
				continue
			}
			if ln.level == 2 && ln.tag == "DATE" {
				switch dateFor {
				case "BIRT":
					rec.birth = ln.value
				case "DEAT":
					rec.death = ln.value
				}
			}
		case *fam:
			if ln.level != 1 {
				continue
			}
			switch ln.tag {
			case "HUSB":
				rec.husb = xref(ln.value)
			case "WIFE":
				rec.wife = xref(ln.value)
			case "CHIL":
				rec.children = append(rec.children, xref(ln.value))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read gedcom: %w", err)
	}

	return assemble(indis, fams), nil
}

type indi struct {
	id    string
	first string
	last  string
	sex   string
	birth string
	death string
}

type fam struct {
	husb     string
	wife     string
	children []string
}

type line struct {
	level int
	xref  string
	tag   string
	value string
}

// parseLine splits "LEVEL [@XREF@] TAG [value]".
func parseLine(s string) (line, bool) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return line{}, false
	}
	level, err := strconv.Atoi(fields[0])
	if err != nil {
		return line{}, false
	}

	var ln line
	ln.level = level
	rest := fields[1:]
	if strings.HasPrefix(rest[0], "@") {
		if len(rest) < 2 {
			return line{}, false
		}
		ln.xref = xref(rest[0])
		rest = rest[1:]
	}
	ln.tag = rest[0]
	ln.value = strings.Join(rest[1:], " ")
	return ln, true
}

// xref strips the @...@ wrapper from a GEDCOM pointer.
func xref(s string) string {
	return strings.Trim(s, "@")
}

// splitName separates "Given /Surname/" into its parts.
func splitName(name string) (first, last string) {
	open := strings.Index(name, "/")
	if open < 0 {
		return strings.TrimSpace(name), ""
	}
	first = strings.TrimSpace(name[:open])
	last = strings.TrimSpace(strings.Trim(name[open:], "/ "))
	return first, last
}

// assemble turns raw records into people. Individuals without an xref get a
// generated ID; family records expand into relations on both sides, skipping
// references to individuals missing from the file.
func assemble(indis []*indi, fams []*fam) []kin.Person {
	people := make([]kin.Person, 0, len(indis))
	index := make(map[string]int, len(indis))

	for _, rec := range indis {
		if rec.id == "" {
			rec.id = uuid.NewString()
		}
		index[rec.id] = len(people)
		people = append(people, kin.Person{
			ID:        rec.id,
			FirstName: rec.first,
			LastName:  rec.last,
			BirthDate: rec.birth,
			DeathDate: rec.death,
			Gender:    sexToGender(rec.sex),
		})
	}

	// Relation IDs are derived from the endpoints and type so parsing the
	// same file always yields the same snapshot (and the same snapshot hash).
	addRel := func(from string, t kin.RelationType, to string) {
		i, ok := index[from]
		if !ok {
			return
		}
		if _, ok := index[to]; !ok {
			return
		}
		people[i].Relations = append(people[i].Relations, kin.Relation{
			ID:       fmt.Sprintf("%s-%s-%s", from, t, to),
			Type:     t,
			PersonID: to,
		})
	}

	for _, f := range fams {
		if f.husb != "" && f.wife != "" {
			addRel(f.husb, kin.RelationSpouse, f.wife)
			addRel(f.wife, kin.RelationSpouse, f.husb)
		}
		for _, c := range f.children {
			for _, parent := range []string{f.husb, f.wife} {
				if parent == "" {
					continue
				}
				addRel(c, kin.RelationParent, parent)
				addRel(parent, kin.RelationChild, c)
			}
			for _, sib := range f.children {
				if sib != c {
					addRel(c, kin.RelationSibling, sib)
				}
			}
		}
	}

	return people
}

func sexToGender(sex string) kin.Gender {
	switch strings.ToUpper(sex) {
	case "M":
		return kin.GenderMale
	case "F":
		return kin.GenderFemale
	case "":
		return ""
	}
	return kin.GenderOther
}
