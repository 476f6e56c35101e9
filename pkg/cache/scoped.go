package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance without seeing each other's entries.
//
// Example usage:
//
//	// Server instance keys
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "lewis:prod:")
//
//	// CLI keys stay unprefixed
//	cliKeyer := NewDefaultKeyer()
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

// SolveKey generates a prefixed key for solve results.
func (k *ScopedKeyer) SolveKey(formula string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.SolveKey(formula, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(structureHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(structureHash, opts)
}
