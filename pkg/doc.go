// Package pkg provides the core libraries for chartcore, the binding and
// layout engine behind declarative charts.
//
// # Overview
//
// A chart definition names dimensions, visual roles and a tree of panels.
// chartcore resolves which dimensions each role groups by and solves where
// every panel sits. The pkg directory is organized into three areas:
//
//  1. Domain logic: [dimension], [role] and [panel]
//  2. Definitions and formats: [chart] and [io]
//  3. Orchestration: [pipeline], [cache], [render] and [observability]
//
// # Architecture
//
// The typical data flow:
//
//	chart file (TOML, HCL or JSON)
//	         ↓
//	    [io] package (decode into a chart.Definition)
//	         ↓
//	    [role] package (bind roles against the dimension registry)
//	         ↓
//	    [panel] package (dock, align and grow the panel tree)
//	         ↓
//	    pipeline.Report (JSON, DOT, SVG, PDF, PNG)
//
// # Quick Start
//
//	def, _ := io.ImportChart("sales.toml")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, _ := runner.Execute(ctx, def, pipeline.Options{Width: 800, Height: 600})
//	legend, _ := res.Report.Panel("root/legend")
//	fmt.Println(legend.Layout.Size)
//
// # Main Packages
//
// [dimension] - Dimension registry with discovery-ordered indices, metadata
// defaults and an immutable schema snapshot.
//
// [role] - Visual roles and the phased binder that resolves each role to a
// grouping: explicit dimensions, another role via "from", declared defaults
// or the null grouping.
//
// [panel] - Nested panels with margins, paddings and borders. Side children
// dock along the edges, fill children take the rest and the tree grows until
// every child fits.
//
// [chart] - The declarative chart definition shared by all file formats.
//
// [io] - Decoding of chart files and writing of reports.
//
// [pipeline] - Bind and layout stages plus the cached [pipeline.Runner] used
// by the CLI and the HTTP API.
//
// [cache] - File, Redis and null cache backends with retrying reads.
//
// [render] - Graphviz drawings of roles and panels with SVG to PDF/PNG
// conversion.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Coded errors shared by every package.
//
// [buildinfo] - Version information stamped at build time.
//
// [dimension]: https://pkg.go.dev/github.com/matzehuels/chartcore/pkg/dimension
// [role]: https://pkg.go.dev/github.com/matzehuels/chartcore/pkg/role
// [panel]: https://pkg.go.dev/github.com/matzehuels/chartcore/pkg/panel
// [chart]: https://pkg.go.dev/github.com/matzehuels/chartcore/pkg/chart
// [io]: https://pkg.go.dev/github.com/matzehuels/chartcore/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chartcore/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/chartcore/pkg/cache
// [render]: https://pkg.go.dev/github.com/matzehuels/chartcore/pkg/render
// [observability]: https://pkg.go.dev/github.com/matzehuels/chartcore/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/chartcore/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/chartcore/pkg/buildinfo
package pkg
