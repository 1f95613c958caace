package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/jarscope/pkg/artifact"
	"github.com/matzehuels/jarscope/pkg/order"
)

// bandColors fill dependency nodes by their relation to the root's group.
var bandColors = map[int]string{
	order.BandSameGroup:  "#dbeafe",
	order.BandAncestor:   "#dcfce7",
	order.BandDescendant: "#fef9c3",
	order.BandOther:      "white",
}

// ToDOT converts r to Graphviz DOT source. The root is drawn at the top with
// an edge to each dependency; test and provided dependencies get dashed
// edges and optional ones dotted.
func ToDOT(r Result) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	root := r.Artifact.Coordinates()
	fmt.Fprintf(&buf, "  %q [label=%q, penwidth=2];\n", root, label(r.Artifact.GroupID, r.Artifact.ArtifactID, r.Artifact.Version))

	for _, d := range r.Dependencies {
		id := d.GroupID + ":" + d.ArtifactID + ":" + d.Version
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", id, label(d.GroupID, d.ArtifactID, d.Version), fillColor(r.Artifact, d))
	}

	buf.WriteString("\n")
	for _, d := range r.Dependencies {
		id := d.GroupID + ":" + d.ArtifactID + ":" + d.Version
		attrs := edgeAttrs(d)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", root, id)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", root, id, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(group, name, version string) string {
	return group + "\n" + name + "\n" + version
}

func fillColor(root artifact.Artifact, d artifact.Dependency) string {
	rank := order.Rank(root, d)
	if rank < order.BandAncestor {
		return bandColors[order.BandSameGroup]
	}
	return bandColors[rank]
}

func edgeAttrs(d artifact.Dependency) []string {
	var attrs []string
	if d.Scope != artifact.ScopeCompile {
		attrs = append(attrs, fmt.Sprintf("label=%q", d.Scope.String()))
		if d.Scope == artifact.ScopeTest || d.Scope == artifact.ScopeProvided {
			attrs = append(attrs, `style="dashed"`)
		}
	}
	if d.Optional {
		attrs = append(attrs, `style="dotted"`)
	}
	return attrs
}

// RenderSVG lays out a DOT graph with Graphviz and returns SVG bytes.
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

// normalizeViewBox rewrites the root element so the drawing scales from a
// zero origin.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
