package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chartcore/pkg/errors"
	"github.com/matzehuels/chartcore/pkg/pipeline"
	"github.com/matzehuels/chartcore/pkg/render"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds metadata to role and dimension labels and geometry to
	// panel labels. When false, only names are shown.
	Detailed bool
}

func header(buf *bytes.Buffer, rankdir string) {
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
}

// RolesDOT converts the role bindings of a report to Graphviz DOT.
func RolesDOT(r *pipeline.Report, opts Options) string {
	var buf bytes.Buffer
	header(&buf, "LR")

	for _, d := range r.Dimensions {
		label := d.Name
		if opts.Detailed && d.ValueType != "" {
			label += "\n" + string(d.ValueType)
		}
		fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, fillcolor=lightyellow];\n", "dim:"+d.Name, label)
	}
	buf.WriteString("\n")

	for _, rr := range r.Roles {
		fmt.Fprintf(&buf, "  %q [%s];\n", "role:"+rr.Key, strings.Join(roleAttrs(rr, opts.Detailed), ", "))
	}
	buf.WriteString("\n")

	for _, rr := range r.Roles {
		if rr.Source != "" {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, label=\"from\"];\n", "role:"+rr.Key, "role:"+rr.Source)
			continue
		}
		for _, d := range rr.Dimensions {
			fmt.Fprintf(&buf, "  %q -> %q;\n", "role:"+rr.Key, "dim:"+d)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func roleAttrs(rr pipeline.RoleReport, detailed bool) []string {
	label := rr.Key
	if detailed {
		parts := []string{rr.State}
		if rr.Required {
			parts = append(parts, "required")
		}
		if rr.Reversed {
			parts = append(parts, "reversed")
		}
		if !rr.LegendVisible {
			parts = append(parts, "no legend")
		}
		label += "\n" + strings.Join(parts, ", ")
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch rr.State {
	case "null":
		attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=black")
	case "unbound":
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// PanelsDOT converts the panel tree of a report to Graphviz DOT. A report
// without panels yields an empty graph.
func PanelsDOT(r *pipeline.Report, opts Options) string {
	var buf bytes.Buffer
	header(&buf, "TB")

	if r.Root != nil {
		var edges []string
		writePanel(&buf, &edges, r.Root, r.Root.Name, opts.Detailed)
		buf.WriteString("\n")
		for _, e := range edges {
			buf.WriteString(e)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writePanel(buf *bytes.Buffer, edges *[]string, p *pipeline.PanelReport, path string, detailed bool) {
	label := p.Name + "\n" + p.Anchor
	if p.Align != "" {
		label += " / " + p.Align
	}
	if detailed {
		l := p.Layout
		label += fmt.Sprintf("\n%s @ (%g, %g)", l.Size, l.Position.X, l.Position.Y)
		if l.SizeIncrease.Width > 0 || l.SizeIncrease.Height > 0 {
			label += fmt.Sprintf("\n+%s", l.SizeIncrease)
		}
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if !p.Layout.Visible {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	fmt.Fprintf(buf, "  %q [%s];\n", path, strings.Join(attrs, ", "))

	for _, c := range p.Children {
		child := path + "/" + c.Name
		*edges = append(*edges, fmt.Sprintf("  %q -> %q;\n", path, child))
		writePanel(buf, edges, c, child, detailed)
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg element so the drawing scales from
// the origin.
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

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
