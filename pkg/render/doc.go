// Package render exports graphs in every supported format.
//
// # Overview
//
// [Render] is the single entry point: it takes a styled graph, a [Format]
// and an [config.ExportConfig] and writes the encoded output to a writer.
// The export config replaces any global settings; exporters read DPI and
// background preferences only from it.
//
// # Formats
//
//   - tikz: TikZ picture for LaTeX ([tikz] subpackage)
//   - grphc: native line-oriented text format ([io.WriteGrphc])
//   - edges: node count and edge list
//   - json: node-link JSON with positions and styles
//   - dot: Graphviz DOT source with pinned positions ([nodelink])
//   - svg: standalone SVG ([svg] subpackage)
//   - neato: SVG rendered by Graphviz neato from the pinned DOT
//   - png, jpg: raster images scaled to the export resolution ([raster])
//   - pdf: the SVG output converted by rsvg-convert
//
// # Format Conversion
//
// [ToPDF] converts any SVG with the external rsvg-convert tool (from
// librsvg). It is only needed for the pdf format.
//
// [tikz]: github.com/matzehuels/graphic/pkg/render/tikz
// [svg]: github.com/matzehuels/graphic/pkg/render/svg
// [raster]: github.com/matzehuels/graphic/pkg/render/raster
// [nodelink]: github.com/matzehuels/graphic/pkg/render/nodelink
// [io.WriteGrphc]: github.com/matzehuels/graphic/pkg/io.WriteGrphc
package render
