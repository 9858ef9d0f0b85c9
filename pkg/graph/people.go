package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/kinview/pkg/kin"
)

// ReadPeopleFile reads a people snapshot from a JSON file: a top-level array
// of person records, each carrying its relation list.
func ReadPeopleFile(path string) ([]kin.Person, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var people []kin.Person
	if err := json.Unmarshal(data, &people); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return people, nil
}

// WritePeopleFile writes a people snapshot to a JSON file with 0644
// permissions.
func WritePeopleFile(people []kin.Person, path string) error {
	data, err := json.MarshalIndent(people, "", "  ")
	if err != nil {
		return fmt.Errorf("encode people: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
