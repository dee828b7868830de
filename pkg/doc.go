// Package pkg provides the libraries behind graphic, a generator of graph
// drawings for LaTeX documents.
//
// # Overview
//
// graphic builds standard graph families (cycles, wheels, Petersen graphs,
// grids, trees and more), lays them out in the unit square, styles them to a
// physical size and exports them as TikZ, the native .grphc text format,
// SVG, raster images, PDF, Graphviz DOT or JSON.
//
// # Architecture
//
// The data flow:
//
//	family name + parameters
//	         ↓
//	    [generate] (nodes, edges and a preview layout)
//	         ↓
//	    [style] (size, rotation, colours and labels)
//	         ↓
//	    [render] (TikZ, .grphc, SVG, PNG, PDF, ...)
//
// [pipeline] runs these steps behind a [cache], and is shared by the CLI and
// the HTTP [server] so both produce identical output.
//
// # Quick Start
//
//	g, _ := generate.Generate("petersen", generate.Params{N: 5, M: 2, DrawEdges: true})
//
//	p := style.DefaultParams()
//	p.TopPrefix = "v"
//	style.Apply(g, style.All, p)
//
//	var buf bytes.Buffer
//	_ = render.Render(ctx, g, render.FormatTikZ, &buf, config.DefaultExportConfig())
//
// # Main Packages
//
// ## Model
//
// [graph] - Nodes, edges, roles and the geometry that clips edges at the node
// discs and builds their selection outlines.
//
// [colour] - 24-bit colours with the TikZ colour-name table.
//
// [label] - The label markup (v_{1}, x^{2}) parsed into fragments, with
// validation and the span layout exporters share.
//
// ## Domain Logic
//
// [generate] - The family registry and one generator per family.
//
// [style] - Style parameters and the incremental changes that apply them.
//
// ## Formats
//
// [io] - The .grphc format, edge lists and node-link JSON.
//
// [render] - Every export format behind one [render.Render] call, with the
// subpackages tikz, svg, raster and nodelink.
//
// [fonts] - The bundled faces used for raster labels.
//
// ## Infrastructure
//
// [pipeline] - Validation, caching and rendering of generated graphs.
//
// [cache] - Key-value cache with file, Redis and no-op backends.
//
// [server] - The HTTP API.
//
// [config] - The TOML settings file.
//
// [observability] - Hooks for pipeline, cache and server events.
//
// [errors] - Coded errors and input validation.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/generate/... # Specific package
//	go test -run Example       # Examples only
//
// [generate]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/generate
// [style]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/style
// [render]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/render
// [render.Render]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/render#Render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/server
// [graph]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/graph
// [colour]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/colour
// [label]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/label
// [io]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/io
// [fonts]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/fonts
// [config]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphic/pkg/errors
package pkg
