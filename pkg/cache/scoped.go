package cache

// ScopedKeyer wraps a Keyer with a prefix so that multiple tenants of one
// cache backend (for example per-user namespaces of the HTTP service) do
// not collide.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated
// keys. A nil inner keyer defaults to the standard one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DecompositionKey generates a prefixed key for a solve result.
func (k *ScopedKeyer) DecompositionKey(graphHash string, opts DecompositionKeyOpts) string {
	return k.prefix + k.inner.DecompositionKey(graphHash, opts)
}
