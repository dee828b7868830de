package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/graphic/pkg/cache"
	"github.com/matzehuels/graphic/pkg/config"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/graph"
	graphio "github.com/matzehuels/graphic/pkg/io"
	"github.com/matzehuels/graphic/pkg/observability"
	"github.com/matzehuels/graphic/pkg/render"
)

// DefaultTTL is used when a Runner has no TTL.
const DefaultTTL = 24 * time.Hour

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultTTL,
	}
}

// Execute builds the styled graph and renders every requested format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	g, hit, err := r.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{Graph: g}
	result.Stats.BuildTime = time.Since(start)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.GraphHit = hit

	r.Logger.Debug("built graph",
		"family", opts.Family,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"cached", hit,
		"duration", result.Stats.BuildTime)

	start = time.Now()
	artifacts, hash, hit, err := r.renderWithCacheInfo(ctx, g, opts.RenderFormats(), opts.Export)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.GraphHash = hash
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// BuildWithCacheInfo returns the styled graph for opts and whether it came
// from the cache.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*graph.Graph, bool, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.GraphKey(opts.Family, opts.GraphKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if g, err := graphio.ReadJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	g, err := Build(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	r.store(ctx, "graph", key, g)
	return g, false, nil
}

// Build is BuildWithCacheInfo without the cache.
func (r *Runner) Build(ctx context.Context, opts Options) (*graph.Graph, error) {
	g, _, err := r.BuildWithCacheInfo(ctx, opts)
	return g, err
}

// Render encodes g in each format, reusing cached artifacts. g is not
// modified.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, formats []render.Format, cfg config.ExportConfig) (map[render.Format][]byte, error) {
	artifacts, _, _, err := r.renderWithCacheInfo(ctx, g, formats, cfg)
	return artifacts, err
}

func (r *Runner) renderWithCacheInfo(ctx context.Context, g *graph.Graph, formats []render.Format, cfg config.ExportConfig) (map[render.Format][]byte, string, bool, error) {
	var buf bytes.Buffer
	if err := graphio.WriteJSON(g, &buf); err != nil {
		return nil, "", false, err
	}
	hash := cache.Hash(buf.Bytes())

	artifacts := make(map[render.Format][]byte, len(formats))
	allCached := true
	for _, f := range formats {
		key := r.Keyer.ArtifactKey(hash, ArtifactKeyOpts(f, cfg))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[f] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		allCached = false

		data, err := RenderFormat(ctx, g, f, cfg)
		if err != nil {
			return nil, "", false, err
		}
		artifacts[f] = data
		r.setRaw(ctx, "artifact", key, data)
	}
	return artifacts, hash, allCached, nil
}

// Save stores g under a fresh id and returns the id.
func (r *Runner) Save(ctx context.Context, g *graph.Graph) (string, error) {
	id := uuid.NewString()
	var buf bytes.Buffer
	if err := graphio.WriteJSON(g, &buf); err != nil {
		return "", err
	}
	if err := r.Cache.Set(ctx, r.Keyer.StoredKey(id), buf.Bytes(), r.ttl()); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "store graph")
	}
	observability.Cache().OnCacheSet(ctx, "stored", buf.Len())
	return id, nil
}

// Load returns the graph stored under id.
func (r *Runner) Load(ctx context.Context, id string) (*graph.Graph, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "bad graph id %q", id)
	}
	data, hit, err := r.Cache.Get(ctx, r.Keyer.StoredKey(id))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "load graph")
	}
	if !hit {
		return nil, errors.New(errors.ErrCodeNotFound, "graph %s not found", id)
	}
	return graphio.ReadJSON(bytes.NewReader(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) store(ctx context.Context, keyType, key string, g *graph.Graph) {
	var buf bytes.Buffer
	if err := graphio.WriteJSON(g, &buf); err != nil {
		return
	}
	r.setRaw(ctx, keyType, key, buf.Bytes())
}

func (r *Runner) setRaw(ctx context.Context, keyType, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) ttl() time.Duration {
	if r.TTL == 0 {
		return DefaultTTL
	}
	return r.TTL
}
