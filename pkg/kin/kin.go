package kin

import (
	"strconv"
	"strings"
)

// RelationType identifies the kind of kinship edge between two people.
type RelationType string

// The four relation types. Parent and child are directed inverses of each
// other; spouse and sibling are their own inverse.
const (
	RelationParent  RelationType = "parent"
	RelationChild   RelationType = "child"
	RelationSpouse  RelationType = "spouse"
	RelationSibling RelationType = "sibling"
)

// Inverse returns the relation type as seen from the other endpoint.
// A person's parent sees that person as a child; spouse and sibling are
// symmetric and return themselves.
func (t RelationType) Inverse() RelationType {
	switch t {
	case RelationParent:
		return RelationChild
	case RelationChild:
		return RelationParent
	default:
		return t
	}
}

// Valid reports whether t is one of the four known relation types.
func (t RelationType) Valid() bool {
	switch t {
	case RelationParent, RelationChild, RelationSpouse, RelationSibling:
		return true
	}
	return false
}

// Gender is the recorded gender of a person, used to pick gendered wording
// in relationship descriptions.
type Gender string

// Recognized gender values. Anything else falls back to neutral wording.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Relation is a typed edge from its owning person to another person.
// The type describes what the target is relative to the owner: a relation of
// type parent means the target is the owner's parent.
type Relation struct {
	ID       string       `json:"id" bson:"id"`
	Type     RelationType `json:"type" bson:"type"`
	PersonID string       `json:"person_id" bson:"person_id"`
}

// Person is a single individual in a snapshot. The core only reads people;
// creation, editing, and deletion happen in the external persistence layer.
type Person struct {
	ID        string     `json:"id" bson:"id"`
	FirstName string     `json:"first_name" bson:"first_name"`
	LastName  string     `json:"last_name" bson:"last_name"`
	BirthDate string     `json:"birth_date,omitempty" bson:"birth_date,omitempty"`
	DeathDate string     `json:"death_date,omitempty" bson:"death_date,omitempty"`
	Gender    Gender     `json:"gender,omitempty" bson:"gender,omitempty"`
	Relations []Relation `json:"relations,omitempty" bson:"relations,omitempty"`
}

// FullName returns "First Last", trimming whichever part is empty.
func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// BirthYear extracts the four-digit year from BirthDate and reports whether
// one was found. Dates arrive in assorted formats (ISO, GEDCOM "12 MAR 1890",
// bare years), so this scans tokens for the first plausible year rather than
// parsing a fixed layout.
func (p Person) BirthYear() (int, bool) {
	return yearOf(p.BirthDate)
}

func yearOf(date string) (int, bool) {
	for _, tok := range strings.Fields(date) {
		tok = strings.Trim(tok, "-/.,")
		if len(tok) >= 4 {
			if y, err := strconv.Atoi(tok[:4]); err == nil && y >= 1000 && y <= 9999 {
				return y, true
			}
		}
	}
	return 0, false
}

// PeopleByID builds an index from person ID to person. Later duplicates of
// the same ID are ignored so the first occurrence wins, matching traversal
// determinism elsewhere.
func PeopleByID(people []Person) map[string]Person {
	m := make(map[string]Person, len(people))
	for _, p := range people {
		if _, ok := m[p.ID]; !ok {
			m[p.ID] = p
		}
	}
	return m
}
