package role

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartcore/pkg/dimension"
)

// Registry is the view of the dimension registry the binder needs.
// [*dimension.Registry] implements it.
type Registry interface {
	Has(name string) bool
	Define(name string) (*dimension.Dimension, error)
	SetDefaults(name string, defaults dimension.Metadata) error
	MatchPrefix(prefix string) []*dimension.Dimension
	Finalize() *dimension.Schema
}

var _ Registry = (*dimension.Registry)(nil)

// ConfigSource supplies the user configuration of a role.
type ConfigSource interface {
	RoleConfig(r *Instance) Value
}

// ConfigMap is a ConfigSource keyed by role key. A primary role is also found
// under its plain name, which is the same as its key.
type ConfigMap map[string]Value

// RoleConfig implements ConfigSource.
func (m ConfigMap) RoleConfig(r *Instance) Value {
	return m[r.Key()]
}

// ConfigFunc adapts a function to ConfigSource.
type ConfigFunc func(r *Instance) Value

// RoleConfig implements ConfigSource.
func (f ConfigFunc) RoleConfig(r *Instance) Value { return f(r) }

// Context supplies what the binder consumes from the surrounding chart build.
// Role lookup is served by the [Binder] itself, over the instances it owns.
type Context struct {
	// Registry is mutated by the binder. Required.
	Registry Registry

	// Config supplies per-role configuration. nil means every role is Absent.
	Config ConfigSource

	// Logger receives debug notes about degraded roles. nil discards them.
	Logger *log.Logger
}

func (c Context) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.New(io.Discard)
}

func (c Context) config(r *Instance) Value {
	if c.Config == nil {
		return Absent()
	}
	return c.Config.RoleConfig(r)
}
