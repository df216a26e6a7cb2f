package role

import (
	"strings"

	"github.com/matzehuels/chartcore/pkg/errors"
)

// Set is the frozen result of a binder run.
type Set struct {
	roles  []*Instance
	byKey  map[string]*Instance
	byName map[string]*Instance
}

func newSet(b *Binder) *Set {
	return &Set{roles: b.Roles(), byKey: b.byKey, byName: b.byName}
}

// Roles returns all roles in declaration order.
func (s *Set) Roles() []*Instance {
	out := make([]*Instance, len(s.roles))
	copy(out, s.roles)
	return out
}

// Len returns the number of roles.
func (s *Set) Len() int { return len(s.roles) }

// Lookup finds a role by key, falling back to the primary role of a name.
func (s *Set) Lookup(name string) (*Instance, bool) {
	if r, ok := s.byKey[name]; ok {
		return r, true
	}
	r, ok := s.byName[name]
	return r, ok
}

// Bound returns the roles that ended bound to dimensions.
func (s *Set) Bound() []*Instance {
	var out []*Instance
	for _, r := range s.roles {
		if r.isBound {
			out = append(out, r)
		}
	}
	return out
}

// CheckRequired reports every required role that is unbound or null.
func (s *Set) CheckRequired() error {
	var missing []string
	for _, r := range s.roles {
		if r.decl.Required && !r.isBound {
			missing = append(missing, r.Key())
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeRoleRequired, "required roles not bound: %s", strings.Join(missing, ", "))
}
