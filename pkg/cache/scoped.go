package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each server instance or
// test its own namespace in a shared backend:
//
//	keys := NewScopedKeyer(NewDefaultKeyer(), "graphic:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for a styled graph.
func (k *ScopedKeyer) GraphKey(family string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(family, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}

// StoredKey generates a prefixed key for an uploaded graph.
func (k *ScopedKeyer) StoredKey(id string) string {
	return k.prefix + k.inner.StoredKey(id)
}
