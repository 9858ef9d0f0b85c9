package gedcom

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/kinview/pkg/kin"
)

const sample = `0 HEAD
1 SOUR kinview-test
0 @I1@ INDI
1 NAME John /Smith/
1 SEX M
1 BIRT
2 DATE 12 MAR 1940
2 PLAC Boston
1 DEAT
2 DATE 1 JAN 2010
0 @I2@ INDI
1 NAME Mary /Jones/
1 SEX F
1 BIRT
2 DATE 1942
0 @I3@ INDI
1 NAME Tom /Smith/
1 SEX M
0 @I4@ INDI
1 NAME Sue /Smith/
1 SEX F
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
1 CHIL @I4@
1 CHIL @I9@
0 TRLR
`

func parseSample(t *testing.T) []kin.Person {
	t.Helper()
	people, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return people
}

func TestParseIndividuals(t *testing.T) {
	people := parseSample(t)
	if len(people) != 4 {
		t.Fatalf("len(people) = %d, want 4", len(people))
	}

	john := people[0]
	if john.ID != "I1" || john.FirstName != "John" || john.LastName != "Smith" {
		t.Errorf("john = %+v", john)
	}
	if john.Gender != kin.GenderMale {
		t.Errorf("john.Gender = %q, want male", john.Gender)
	}
	if john.BirthDate != "12 MAR 1940" || john.DeathDate != "1 JAN 2010" {
		t.Errorf("john dates = %q / %q", john.BirthDate, john.DeathDate)
	}
	if y, ok := john.BirthYear(); !ok || y != 1940 {
		t.Errorf("john.BirthYear() = %d, %v", y, ok)
	}

	mary := people[1]
	if mary.Gender != kin.GenderFemale || mary.BirthDate != "1942" {
		t.Errorf("mary = %+v", mary)
	}
	if mary.DeathDate != "" {
		t.Errorf("mary.DeathDate = %q, want empty", mary.DeathDate)
	}
}

func relTypes(p kin.Person) map[string][]kin.RelationType {
	out := make(map[string][]kin.RelationType)
	for _, r := range p.Relations {
		out[r.PersonID] = append(out[r.PersonID], r.Type)
	}
	return out
}

func TestParseFamilyRelations(t *testing.T) {
	people := parseSample(t)
	byID := kin.PeopleByID(people)

	john := relTypes(byID["I1"])
	if got := john["I2"]; len(got) != 1 || got[0] != kin.RelationSpouse {
		t.Errorf("john->mary relations = %v, want [spouse]", got)
	}
	if got := john["I3"]; len(got) != 1 || got[0] != kin.RelationChild {
		t.Errorf("john->tom relations = %v, want [child]", got)
	}

	tom := relTypes(byID["I3"])
	if got := tom["I1"]; len(got) != 1 || got[0] != kin.RelationParent {
		t.Errorf("tom->john relations = %v, want [parent]", got)
	}
	if got := tom["I4"]; len(got) != 1 || got[0] != kin.RelationSibling {
		t.Errorf("tom->sue relations = %v, want [sibling]", got)
	}

	// @I9@ is referenced by the family but never defined.
	for id, p := range byID {
		for _, r := range p.Relations {
			if r.PersonID == "I9" {
				t.Errorf("%s carries relation to undefined I9", id)
			}
		}
	}
}

func TestParseRelationIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range parseSample(t) {
		for _, r := range p.Relations {
			if r.ID == "" {
				t.Fatalf("%s has relation without ID", p.ID)
			}
			if seen[r.ID] {
				t.Fatalf("duplicate relation ID %s", r.ID)
			}
			seen[r.ID] = true
		}
	}
}

func TestParseDeterministic(t *testing.T) {
	first := parseSample(t)
	second := parseSample(t)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two parses of the same file differ:\n%+v\n%+v", first, second)
	}
}

func TestParseMissingXref(t *testing.T) {
	people, err := Parse(strings.NewReader("0 INDI\n1 NAME Ghost //\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(people) != 1 {
		t.Fatalf("len(people) = %d, want 1", len(people))
	}
	if people[0].ID == "" {
		t.Error("missing xref did not get a generated ID")
	}
	if people[0].FirstName != "Ghost" || people[0].LastName != "" {
		t.Errorf("person = %+v", people[0])
	}
}

func TestParseToleratesJunk(t *testing.T) {
	junk := "not gedcom at all\n0 @I1@ INDI\n1 NAME A /B/\nxyz\n1 UNKNOWNTAG value\n"
	people, err := Parse(strings.NewReader(junk))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(people) != 1 || people[0].FirstName != "A" {
		t.Errorf("people = %+v", people)
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in          string
		first, last string
	}{
		{"John /Smith/", "John", "Smith"},
		{"John", "John", ""},
		{"/Smith/", "", "Smith"},
		{"Mary Ann /van Dyke/", "Mary Ann", "van Dyke"},
		{"", "", ""},
	}
	for _, tt := range tests {
		first, last := splitName(tt.in)
		if first != tt.first || last != tt.last {
			t.Errorf("splitName(%q) = %q, %q, want %q, %q", tt.in, first, last, tt.first, tt.last)
		}
	}
}
