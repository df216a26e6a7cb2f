package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tenants can share
// one backend:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "team:42:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means the
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ReportKey returns the prefixed report key.
func (k *ScopedKeyer) ReportKey(definitionHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(definitionHash, opts)
}
