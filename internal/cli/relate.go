package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kinview/pkg/kin"
	"github.com/matzehuels/kinview/pkg/kin/relate"
)

// relateCommand creates the relate command for describing kinship.
func (c *CLI) relateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relate [family.json|family.ged] [from-id] [to-id]",
		Short: "Describe how two people are related",
		Long: `Describe how two people are related.

The relate command finds the shortest relationship path between two people
and names it ("grandmother", "first cousin once removed", "mother-in-law").
When the person IDs are omitted, an interactive picker is shown.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var fromID, toID string
			if len(args) > 1 {
				fromID = args[1]
			}
			if len(args) > 2 {
				toID = args[2]
			}
			return c.runRelate(cmd.Context(), args[0], fromID, toID)
		},
	}

	return cmd
}

func (c *CLI) runRelate(ctx context.Context, input, fromID, toID string) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	people, err := runner.LoadPeople(ctx, input)
	if err != nil {
		return err
	}
	if len(people) == 0 {
		return fmt.Errorf("%s contains no people", input)
	}

	if fromID == "" {
		if fromID, err = pickPerson("Who is the starting person?", people); err != nil {
			return err
		}
	}
	if toID == "" {
		if toID, err = pickPerson("Who are they related to?", people); err != nil {
			return err
		}
	}

	path, found := runner.Describe(ctx, people, fromID, toID)
	if !found {
		printWarning("No relationship found between %s and %s", fromID, toID)
		return nil
	}

	byID := kin.PeopleByID(people)
	printSuccess("%s is %s's %s",
		displayName(byID, toID), displayName(byID, fromID), StyleHighlight.Render(path.Description))
	printNewline()
	printKeyValue("Distance", fmt.Sprintf("%d", path.Distance))
	printKeyValue("Blood", fmt.Sprintf("%t", path.Blood))
	if path.CommonAncestor != "" {
		printKeyValue("Via", displayName(byID, path.CommonAncestor))
	}

	if len(path.Steps) > 0 {
		printNewline()
		printDetail("%s", formatSteps(path.Steps, byID))
	}

	return nil
}

// formatSteps renders the hop chain as "Ada → mother → Eve → sister → Ivy".
func formatSteps(steps []relate.Step, byID map[string]kin.Person) string {
	var b strings.Builder
	b.WriteString(displayName(byID, steps[0].FromID))
	for _, s := range steps {
		fmt.Fprintf(&b, " %s %s %s %s", iconArrow, s.Description, iconArrow, displayName(byID, s.ToID))
	}
	return b.String()
}

func displayName(byID map[string]kin.Person, id string) string {
	if p, ok := byID[id]; ok {
		if name := p.FullName(); name != "" {
			return name
		}
	}
	return id
}
