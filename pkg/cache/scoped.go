package cache

// ScopedKeyer wraps a Keyer with a prefix so separate contexts get separate
// cache namespaces. The preview server uses it to keep its entries apart
// from plain CLI entries in a shared backend.
//
// Example usage:
//
//	serveKeyer := NewScopedKeyer(NewDefaultKeyer(), "serve:")
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

// ModelKey generates a prefixed key for a generated model's OpenSCAD text.
func (k *ScopedKeyer) ModelKey(name string, opts ModelKeyOpts) string {
	return k.prefix + k.inner.ModelKey(name, opts)
}

// ArtifactKey generates a prefixed key for an exported artifact.
func (k *ScopedKeyer) ArtifactKey(scadHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(scadHash, opts)
}
