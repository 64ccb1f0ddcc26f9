package cache

// ScopedKeyer wraps a Keyer with a prefix so that several front ends can
// share one backend without colliding.
//
// Example usage:
//
//	// Keys written by the HTTP API
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
//
//	// Keys written by the CLI
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

// LayoutKey generates a prefixed key for layout results.
func (k *ScopedKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(sceneHash, opts)
}

// DiagramKey generates a prefixed key for diagrams.
func (k *ScopedKeyer) DiagramKey(layoutHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(layoutHash, opts)
}
