package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pivotgrid/pkg/pivot"
)

// Expansion answers whether a node is expanded. [pivot.NodeCache]
// implements it.
type Expansion interface {
	Expanded(id string) bool
}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the cell type and node id to every label.
	// When false, only the node's caption is shown.
	Detailed bool
	// Values includes value and measure label leaves. They outnumber the
	// group nodes by far, so they are left out by default.
	Values bool
	// Expansion marks collapsed groups. When nil, each node's Expanded
	// field is used.
	Expansion Expansion
}

// ToDOT converts a data or header tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Totals are filled grey, grand totals are bold, and collapsed groups are
// drawn with dashed outlines.
func ToDOT[T any](root *pivot.Node[T], opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	var edges []string
	for _, e := range Flatten(root, opts) {
		fmt.Fprintf(&buf, "  %q [%s];\n", e.ID, strings.Join(fmtAttrs(e, opts.Detailed), ", "))
		if e.Parent != "" {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", e.Parent, e.ID))
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(e Entry, detailed bool) string {
	label := e.Value
	if label == "" {
		label = e.ID
	}
	if !detailed {
		return label
	}
	return label + "\n" + e.CellType.String() + "\n" + e.ID
}

func fmtAttrs(e Entry, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(e, detailed))}
	switch {
	case e.CellType.IsValue(), e.CellType.IsLabel():
		attrs = append(attrs, "shape=plaintext", "style=\"\"")
	case e.CanToggle && !e.Expanded:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	switch e.CellType {
	case pivot.CellTypeTotalHeader:
		attrs = append(attrs, "fillcolor=lightgrey")
	case pivot.CellTypeGrandTotalHeader:
		attrs = append(attrs, "fillcolor=lightgrey", "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg tag with one sized
// in user units, so the diagram scales when embedded.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
