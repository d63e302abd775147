// Package report renders clustering results for human consumption: plain
// text summaries for the terminal and Graphviz-based molecule drawings for
// SVG export.
package report

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/synforge/routecluster/pkg/chem"
)

// Options configures molecule rendering.
type Options struct {
	// Detailed includes atom numbers in node labels.
	// When false, only the element symbol is shown.
	Detailed bool
}

// ToDOT converts a transformation graph to Graphviz DOT format. Bonds are
// styled by their reaction dynamics: formed bonds bold green, broken bonds
// dashed red, order changes orange. The resulting DOT string can be rendered
// with [RenderSVG].
func ToDOT(g *chem.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, margin=\"0.05,0.02\"];\n")
	buf.WriteString("\n")

	for _, a := range g.Atoms() {
		fmt.Fprintf(&buf, "  %d [label=%q];\n", a.Num, atomLabel(a, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, b := range g.Bonds() {
		attrs := bondAttrs(b)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %d -- %d;\n", b.A1, b.A2)
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d [%s];\n", b.A1, b.A2, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ReactionToDOT renders a reaction record as one DOT graph with reactant and
// product fragments grouped into clusters, separated by an arrow node.
func ReactionToDOT(rxn *chem.Reaction, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	writeFragments := func(name string, frags []*chem.Graph) {
		fmt.Fprintf(&buf, "  subgraph cluster_%s {\n", name)
		buf.WriteString("    style=invis;\n")
		for _, frag := range frags {
			for _, a := range frag.Atoms() {
				fmt.Fprintf(&buf, "    %d [label=%q];\n", a.Num, atomLabel(a, opts.Detailed))
			}
			for _, b := range frag.Bonds() {
				attrs := bondAttrs(b)
				if len(attrs) == 0 {
					fmt.Fprintf(&buf, "    %d -- %d;\n", b.A1, b.A2)
					continue
				}
				fmt.Fprintf(&buf, "    %d -- %d [%s];\n", b.A1, b.A2, strings.Join(attrs, ", "))
			}
		}
		buf.WriteString("  }\n")
	}

	writeFragments("reactants", rxn.Reactants)
	buf.WriteString("  arrow [label=\"→\", shape=plaintext, fontsize=24];\n")
	writeFragments("products", rxn.Products)

	buf.WriteString("}\n")
	return buf.String()
}

func atomLabel(a chem.Atom, detailed bool) string {
	label := a.Element
	if a.Charge > 0 {
		label += fmt.Sprintf("+%d", a.Charge)
	} else if a.Charge < 0 {
		label += fmt.Sprintf("%d", a.Charge)
	}
	if detailed {
		label += fmt.Sprintf(":%d", a.Num)
	}
	return label
}

func bondAttrs(b chem.Bond) []string {
	var attrs []string
	switch b.Dynamics {
	case chem.BondFormed:
		attrs = append(attrs, "color=forestgreen", "penwidth=2")
	case chem.BondBroken:
		attrs = append(attrs, "color=crimson", "style=dashed")
	case chem.BondOrderChanged:
		attrs = append(attrs, "color=darkorange")
	}
	if b.Order > 1 {
		attrs = append(attrs, fmt.Sprintf("label=%q", strconv.Itoa(b.Order)))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display.
func RenderSVG(dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
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
