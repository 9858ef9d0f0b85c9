package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/kinview/pkg/cache"
	"github.com/matzehuels/kinview/pkg/gedcom"
	"github.com/matzehuels/kinview/pkg/graph"
	"github.com/matzehuels/kinview/pkg/kin"
	"github.com/matzehuels/kinview/pkg/observability"
)

// LoadPeople reads a people snapshot from source. GEDCOM files (.ged,
// .gedcom) go through the importer; everything else is read as a JSON
// snapshot.
func (r *Runner) LoadPeople(ctx context.Context, source string) ([]kin.Person, error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)

	var (
		people []kin.Person
		err    error
	)
	switch strings.ToLower(filepath.Ext(source)) {
	case ".ged", ".gedcom":
		people, err = gedcom.ParseFile(source)
	default:
		people, err = graph.ReadPeopleFile(source)
	}

	observability.Pipeline().OnLoadComplete(ctx, source, len(people), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}

	r.Logger.Debug("loaded snapshot", "source", source, "people", len(people))
	return people, nil
}

// SnapshotHash computes the content hash of a people snapshot. The hash
// covers IDs, names, dates, genders, and the full relation lists, so any
// edit to the family changes every layout cache key derived from it.
func SnapshotHash(people []kin.Person) string {
	data, _ := json.Marshal(people)
	return cache.Hash(data)
}
