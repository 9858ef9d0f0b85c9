package graph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// DOTOptions configures family tree DOT export.
type DOTOptions struct {
	// Detailed includes generation numbers and life dates in node labels.
	// When false, only the display label is shown.
	Detailed bool
}

// ToDOT converts a Graph to Graphviz DOT format. Generations become same-rank
// groups so the hierarchy reads top to bottom; spouse edges are drawn dashed
// without arrowheads and do not constrain ranking. The resulting DOT string
// can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(g Graph, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph family {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		label := fmtLabel(n, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, label)
	}

	buf.WriteString("\n")
	for _, rank := range generationRanks(g.Nodes) {
		fmt.Fprintf(&buf, "  { rank=same; %s }\n", rank)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if e.Type == EdgeSpouse {
			fmt.Fprintf(&buf, "  %q -> %q [dir=none, style=dashed, constraint=false];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n Node, detailed bool) string {
	label := n.DisplayLabel()
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("gen: %d", n.Generation)}
	if n.Birth != "" {
		parts = append(parts, "b. "+n.Birth)
	}
	if n.Death != "" {
		parts = append(parts, "d. "+n.Death)
	}
	return label + "\n" + strings.Join(parts, "\n")
}

// generationRanks groups node IDs by generation, in node order.
func generationRanks(nodes []Node) []string {
	byGen := make(map[int][]string)
	var gens []int
	for _, n := range nodes {
		if _, ok := byGen[n.Generation]; !ok {
			gens = append(gens, n.Generation)
		}
		byGen[n.Generation] = append(byGen[n.Generation], n.ID)
	}

	ranks := make([]string, 0, len(gens))
	for _, gen := range gens {
		quoted := make([]string, len(byGen[gen]))
		for i, id := range byGen[gen] {
			quoted[i] = strconv.Quote(id) + ";"
		}
		ranks = append(ranks, strings.Join(quoted, " "))
	}
	return ranks
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG, nil)
}

func render(dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
