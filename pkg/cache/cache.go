// Package cache stores generated graphs and rendered artifacts by key.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for a shared server deployment and [NullCache] when caching is disabled.
// Keys come from a [Keyer] so that every layer hashes its inputs the same way:
//
//	k := cache.NewDefaultKeyer()
//	key := k.GraphKey("cycle", cache.GraphKeyOpts{A: 6, Edges: true, StyleHash: h})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    ...
//	}
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/graphic/pkg/errors"
)

// Cache is a byte store with per-entry expiry. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GraphKeyOpts identifies a generated, styled graph.
type GraphKeyOpts struct {
	A, B      int
	Edges     bool
	StyleHash string
}

// ArtifactKeyOpts identifies one rendering of a graph.
type ArtifactKeyOpts struct {
	Format     string
	XDPI, YDPI float64
	Resolution float64
	Background string
}

// Keyer builds cache keys.
type Keyer interface {
	GraphKey(family string, opts GraphKeyOpts) string
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
	StoredKey(id string) string
}

// DefaultKeyer hashes its inputs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey returns "graph:<sha256>" over the family and its options.
func (DefaultKeyer) GraphKey(family string, opts GraphKeyOpts) string {
	return hashKey("graph", family, opts)
}

// ArtifactKey returns "artifact:<sha256>" over the graph hash and options.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// StoredKey names a graph uploaded through the API. The id is used as is.
func (DefaultKeyer) StoredKey(id string) string {
	return "stored:" + id
}

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Open builds the named backend. dir is used by the file backend and addr by
// the redis backend.
func Open(ctx context.Context, backend, dir, addr string) (Cache, error) {
	switch backend {
	case BackendFile, "":
		return NewFileCache(dir)
	case BackendRedis:
		return NewRedisCache(ctx, addr)
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", backend)
}
