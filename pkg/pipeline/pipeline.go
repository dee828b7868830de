// Package pipeline runs the generate → style → render pipeline shared by the
// CLI, the TUI browser and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Generate: build a family's graph with preview coordinates
//  2. Style: apply [style.Params] with [style.All] to size, place and label it
//  3. Render: encode the styled graph in one or more [render.Format]s
//
// A [Runner] caches the styled graph and every artifact, keyed by a hash of
// the inputs, so repeated requests are served from the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Family:  "petersen",
//	    Params:  generate.Params{N: 5, M: 2, DrawEdges: true},
//	    Formats: []string{"tikz", "svg"},
//	})
//	tex := result.Artifacts[render.FormatTikZ]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphic/pkg/cache"
	"github.com/matzehuels/graphic/pkg/config"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/generate"
	"github.com/matzehuels/graphic/pkg/graph"
	"github.com/matzehuels/graphic/pkg/render"
	"github.com/matzehuels/graphic/pkg/style"
)

// DefaultFormat is rendered when Options.Formats is empty.
const DefaultFormat = render.FormatTikZ

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Family  string          `json:"family"`
	Params  generate.Params `json:"params"`
	Style   style.Params    `json:"style"`
	Formats []string        `json:"formats,omitempty"`
	Refresh bool            `json:"refresh,omitempty"`

	// Export holds resolution and backgrounds. A zero value means
	// config.DefaultExportConfig.
	Export config.ExportConfig `json:"-"`
	Logger *log.Logger         `json:"-"`

	formats   []render.Format
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the styled graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the styled graph's JSON encoding.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[render.Format][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GraphHit  bool // styled graph came from cache
	RenderHit bool // every artifact came from cache
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the family and style and coerces the family
// parameters into range.
func (o *Options) ValidateForBuild() error {
	if o.Family == "" {
		return errors.New(errors.ErrCodeInvalidInput, "family is required")
	}
	p, err := generate.Normalize(o.Family, o.Params)
	if err != nil {
		return err
	}
	if err := errors.ValidateCount("first parameter", p.N, 0, generate.MaxParam); err != nil {
		return err
	}
	if err := errors.ValidateCount("second parameter", p.M, 0, generate.MaxParam); err != nil {
		return err
	}
	f, _ := generate.Lookup(o.Family)
	o.Family, o.Params = f.Name, p

	o.setExportDefaults()
	if o.Style == (style.Params{}) {
		o.Style = style.DefaultParams()
	}
	if o.Style.XDPI == 0 {
		o.Style.XDPI = o.Export.XDPI
	}
	if o.Style.YDPI == 0 {
		o.Style.YDPI = o.Export.YDPI
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Style.Validate()
}

// ValidateForRender parses the requested formats.
func (o *Options) ValidateForRender() error {
	o.setExportDefaults()
	if len(o.Formats) == 0 {
		o.Formats = []string{string(DefaultFormat)}
	}
	o.formats = o.formats[:0]
	for _, s := range o.Formats {
		f, err := render.ParseFormat(s)
		if err != nil {
			return err
		}
		o.formats = append(o.formats, f)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// RenderFormats returns the parsed formats. Valid after ValidateForRender.
func (o *Options) RenderFormats() []render.Format { return o.formats }

func (o *Options) setExportDefaults() {
	if o.Export.XDPI <= 0 || o.Export.YDPI <= 0 {
		o.Export = config.DefaultExportConfig()
	}
}

// GraphKeyOpts returns cache key options for the styled graph.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		A:         o.Params.N,
		B:         o.Params.M,
		Edges:     o.Params.DrawEdges,
		StyleHash: cache.HashValue([]any{o.Style, o.Style.XDPI, o.Style.YDPI}),
	}
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(f render.Format) cache.ArtifactKeyOpts {
	return ArtifactKeyOpts(f, o.Export)
}

// ArtifactKeyOpts returns cache key options for rendering f with cfg.
func ArtifactKeyOpts(f render.Format, cfg config.ExportConfig) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     string(f),
		XDPI:       cfg.XDPI,
		YDPI:       cfg.YDPI,
		Resolution: cfg.Resolution,
		Background: cfg.ImageBackground.String() + "/" + cfg.JPGBackground.String(),
	}
}
