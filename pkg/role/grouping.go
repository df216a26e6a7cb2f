package role

import (
	"fmt"
	"strings"

	"github.com/matzehuels/chartcore/pkg/dimension"
)

// GroupingSpec is a pre-binding: the dimension names a role was bound to
// before the registry was finalized, or the null grouping.
type GroupingSpec struct {
	DimensionNames []string
	Null           bool
}

// single returns the dimension name of a single-dimension spec.
func (s *GroupingSpec) single() (string, bool) {
	if s == nil || s.Null || len(s.DimensionNames) != 1 {
		return "", false
	}
	return s.DimensionNames[0], true
}

// String renders the spec the way it would be configured.
func (s *GroupingSpec) String() string {
	if s == nil {
		return "<none>"
	}
	if s.Null {
		return "null"
	}
	return strings.Join(s.DimensionNames, ", ")
}

// Grouping is the resolved binding of a role to one or more dimensions.
// Groupings are compared by identity.
type Grouping struct {
	dims []*dimension.Dimension
	null bool
}

var nullGrouping = &Grouping{null: true}

// NullGrouping returns the distinguished empty grouping.
func NullGrouping() *Grouping { return nullGrouping }

// IsNull reports whether g is the null grouping. An unbound role has a nil
// grouping, which is not null; use Instance.State to tell the two apart.
func (g *Grouping) IsNull() bool { return g != nil && g.null }

// empty reports whether g binds no dimensions: nil or null.
func (g *Grouping) empty() bool { return g == nil || g.null }

// IsSingleDimension reports whether g binds exactly one dimension.
func (g *Grouping) IsSingleDimension() bool { return !g.empty() && len(g.dims) == 1 }

// Dimensions returns the bound dimensions in grouping order.
func (g *Grouping) Dimensions() []*dimension.Dimension {
	if g.empty() {
		return nil
	}
	out := make([]*dimension.Dimension, len(g.dims))
	copy(out, g.dims)
	return out
}

// DimensionNames returns the names of the bound dimensions in grouping order.
func (g *Grouping) DimensionNames() []string {
	if g.empty() {
		return nil
	}
	names := make([]string, len(g.dims))
	for i, d := range g.dims {
		names[i] = d.Name
	}
	return names
}

func (g *Grouping) String() string {
	switch {
	case g == nil:
		return "unbound"
	case g.null:
		return "null"
	}
	return strings.Join(g.DimensionNames(), ", ")
}

// materialize resolves a spec against a finalized schema.
func materialize(spec *GroupingSpec, schema *dimension.Schema) (*Grouping, error) {
	if spec.Null {
		return nullGrouping, nil
	}
	g := &Grouping{dims: make([]*dimension.Dimension, 0, len(spec.DimensionNames))}
	for _, name := range spec.DimensionNames {
		d, ok := schema.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", dimension.ErrUnknownDimension, name)
		}
		g.dims = append(g.dims, d)
	}
	return g, nil
}
