package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kinview/pkg/graph"
	"github.com/matzehuels/kinview/pkg/pipeline"
)

// layoutCommand creates the layout command for computing tree layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := c.layoutOptions()

	cmd := &cobra.Command{
		Use:   "layout [family.json|family.ged]",
		Short: "Compute canvas positions for a family tree",
		Long: `Compute canvas positions for a family tree.

The layout command loads a people snapshot (JSON or GEDCOM), assigns
generations relative to the root person, and computes a position for everyone
reachable from the root. The output is a layout.json file that can be rendered
with the 'visualize' command.

Strategies:
  hierarchical   root generation centered rows (default)
  genealogical   family units under parent midpoints, top-down or bottom-up
  beautify       sibling clusters re-centered over children, spouses on edges

Results are cached locally under a content hash for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")

	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", pipeline.DefaultStrategy, "layout strategy: hierarchical, genealogical, beautify")
	cmd.Flags().StringVar(&opts.Orientation, "orientation", pipeline.DefaultOrientation, "vertical direction (genealogical): top-down, bottom-up")
	cmd.Flags().StringVarP(&opts.RootID, "root", "r", "", "root person ID (default: first person in the snapshot)")

	return cmd
}

// runLayout loads the snapshot, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	people, err := runner.LoadPeople(ctx, input)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Strategy))
	spinner.Start()

	lay, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, people, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := graph.WriteLayoutFile(lay, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(lay.Graph.Nodes), len(lay.Graph.Edges), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
