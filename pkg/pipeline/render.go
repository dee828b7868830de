package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/graphic/pkg/config"
	"github.com/matzehuels/graphic/pkg/generate"
	"github.com/matzehuels/graphic/pkg/graph"
	"github.com/matzehuels/graphic/pkg/observability"
	"github.com/matzehuels/graphic/pkg/render"
	"github.com/matzehuels/graphic/pkg/style"
)

// Build generates opts.Family and applies opts.Style with style.All.
// Options must already be validated.
func Build(ctx context.Context, opts Options) (*graph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Family)
	start := time.Now()
	g, err := generate.Generate(opts.Family, opts.Params)
	if err != nil {
		hooks.OnGenerateComplete(ctx, opts.Family, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnGenerateComplete(ctx, opts.Family, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)

	start = time.Now()
	style.Apply(g, style.All, opts.Style)
	hooks.OnStyleComplete(ctx, style.All.String(), time.Since(start))
	return g, nil
}

// RenderFormat encodes a copy of g so that concurrent renders of one graph
// never race on export ids.
func RenderFormat(ctx context.Context, g *graph.Graph, f render.Format, cfg config.ExportConfig) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, string(f))
	start := time.Now()
	data, err := render.Bytes(ctx, g.Clone(), f, cfg)
	hooks.OnRenderComplete(ctx, string(f), len(data), time.Since(start), err)
	return data, err
}
