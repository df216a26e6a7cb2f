// Package render turns pipeline reports into diagrams.
//
// # Overview
//
// The [dot] subpackage draws two views of a [pipeline.Report] as Graphviz
// graphs:
//
//   - the role graph: roles, the dimensions they are bound to and the
//     source-role chains between them
//   - the panel tree: every panel with its anchor and solved geometry
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := dot.RenderSVG(ctx, dot.RolesDOT(report, dot.Options{}))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
package render
