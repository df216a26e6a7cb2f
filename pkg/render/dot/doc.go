// Package dot renders pipeline reports as Graphviz diagrams.
//
// # Usage
//
//	src := dot.RolesDOT(report, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// [RolesDOT] draws roles as boxes and dimensions as ellipses. A solid edge
// points from a role to each dimension of its grouping; a dashed edge points
// from a role to the role it takes its grouping from. Null roles are grey,
// unbound roles are dashed.
//
// [PanelsDOT] draws the panel tree top-down. With Detailed set, labels carry
// the solved size and position; invisible panels are dashed.
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := dot.RenderPDF(ctx, src)
//	png, err := dot.RenderPNG(ctx, src, 2.0)  // 2x scale
package dot
