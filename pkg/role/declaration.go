package role

import (
	"strings"

	"github.com/matzehuels/chartcore/pkg/dimension"
)

// WildcardMarker ends a default dimension name that matches by prefix.
const WildcardMarker = "*"

// Declaration is the static description of a visual role.
//
// Roles that share the same Name are instances of one logical role: the first
// declared is the primary, later ones are secondary and must carry a distinct
// Scope (e.g. "plot2") so that their keys differ.
type Declaration struct {
	Name  string
	Scope string

	// DefaultDimension is bound when nothing else binds the role. A trailing
	// WildcardMarker matches every dimension whose name starts with the rest.
	DefaultDimension string

	// DefaultSourceRole is sourced from when the role has no binding of its
	// own and the named role ends up bound.
	DefaultSourceRole string

	// DimensionDefaults is applied to a dimension that this role, alone,
	// explicitly binds.
	DimensionDefaults dimension.Metadata

	AutoCreateDimension bool
	Required            bool
}

// Key returns the unique lookup key of the role: Name, or Scope.Name for a
// scoped role.
func (d Declaration) Key() string {
	if d.Scope == "" {
		return d.Name
	}
	return d.Scope + "." + d.Name
}

// defaultDimensionPattern splits DefaultDimension into its name or prefix and
// whether it is a wildcard.
func (d Declaration) defaultDimensionPattern() (string, bool) {
	if strings.HasSuffix(d.DefaultDimension, WildcardMarker) {
		return strings.TrimSuffix(d.DefaultDimension, WildcardMarker), true
	}
	return d.DefaultDimension, false
}
