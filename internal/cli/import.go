package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kinview/pkg/gedcom"
	"github.com/matzehuels/kinview/pkg/graph"
)

// importCommand creates the import command for converting GEDCOM files.
func (c *CLI) importCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "import [family.ged]",
		Short: "Convert a GEDCOM file into a people snapshot",
		Long: `Convert a GEDCOM file into a people snapshot.

The import command reads GEDCOM 5.5 individual and family records and writes
a JSON snapshot usable by the layout, relate, and visualize commands. Records
without a cross-reference ID receive a generated one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.json)")

	return cmd
}

func (c *CLI) runImport(input, output string) error {
	prog := newProgress(c.Logger)

	people, err := gedcom.ParseFile(input)
	if err != nil {
		return fmt.Errorf("import %s: %w", input, err)
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
	}
	if err := graph.WritePeopleFile(people, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	prog.done(fmt.Sprintf("Imported %d people", len(people)))
	printSuccess("Import complete")
	printFile(output)
	printNewline()
	printNextStep("Compute layout", appName+" layout "+output)

	return nil
}
