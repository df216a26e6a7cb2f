package dimension

import (
	"fmt"
	"strings"
)

// Registry maps unique dimension names to their definitions.
//
// The zero value is not usable - use [NewRegistry].
type Registry struct {
	dims      []*Dimension
	byName    map[string]*Dimension
	finalized bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Dimension)}
}

// Has reports whether a dimension with exactly this name exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Get returns the named dimension.
func (r *Registry) Get(name string) (*Dimension, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Len returns the number of defined dimensions.
func (r *Registry) Len() int { return len(r.dims) }

// Names returns dimension names in discovery order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.dims))
	for i, d := range r.dims {
		names[i] = d.Name
	}
	return names
}

// Define returns the named dimension, creating it if it does not exist yet.
func (r *Registry) Define(name string) (*Dimension, error) {
	return r.DefineWith(name, Metadata{})
}

// DefineWith is like Define but sets the metadata of a newly created
// dimension. Metadata of an existing dimension is left untouched.
func (r *Registry) DefineWith(name string, meta Metadata) (*Dimension, error) {
	if r.finalized {
		return nil, ErrFinalized
	}
	if name == "" {
		return nil, ErrInvalidName
	}
	if d, ok := r.byName[name]; ok {
		return d, nil
	}
	d := &Dimension{Name: name, Metadata: meta, index: len(r.dims)}
	r.dims = append(r.dims, d)
	r.byName[name] = d
	return d, nil
}

// SetDefaults fills the unset metadata fields of the named dimension from
// defaults. Fields that already have a value are kept.
func (r *Registry) SetDefaults(name string, defaults Metadata) error {
	if r.finalized {
		return ErrFinalized
	}
	d, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDimension, name)
	}
	d.Metadata = d.Metadata.withDefaults(defaults)
	return nil
}

// MatchPrefix returns every dimension whose name starts with prefix,
// in discovery order.
func (r *Registry) MatchPrefix(prefix string) []*Dimension {
	var out []*Dimension
	for _, d := range r.dims {
		if strings.HasPrefix(d.Name, prefix) {
			out = append(out, d)
		}
	}
	return out
}

// Finalized reports whether Finalize has been called.
func (r *Registry) Finalized() bool { return r.finalized }

// Finalize freezes the registry and returns an immutable snapshot of it.
// Calling Finalize more than once returns equivalent snapshots.
func (r *Registry) Finalize() *Schema {
	r.finalized = true
	s := &Schema{
		dims:   make([]*Dimension, len(r.dims)),
		byName: make(map[string]*Dimension, len(r.dims)),
	}
	for i, d := range r.dims {
		c := *d
		s.dims[i] = &c
		s.byName[c.Name] = &c
	}
	return s
}

// Schema is an immutable snapshot of a finalized registry.
type Schema struct {
	dims   []*Dimension
	byName map[string]*Dimension
}

// Lookup returns the named dimension.
func (s *Schema) Lookup(name string) (*Dimension, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Len returns the number of dimensions.
func (s *Schema) Len() int { return len(s.dims) }

// Dimensions returns copies of all dimensions in discovery order.
func (s *Schema) Dimensions() []Dimension {
	out := make([]Dimension, len(s.dims))
	for i, d := range s.dims {
		out[i] = *d
	}
	return out
}

// Names returns dimension names in discovery order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.dims))
	for i, d := range s.dims {
		names[i] = d.Name
	}
	return names
}
