package role

// State is the terminal resolution state of a role.
type State int

const (
	StateUnbound State = iota
	StateBound
	StateNull
)

func (s State) String() string {
	switch s {
	case StateBound:
		return "bound"
	case StateNull:
		return "null"
	default:
		return "unbound"
	}
}

// Instance is the runtime resolution state of one role during one binder run.
// Instances are owned by their Binder and are frozen after [Binder.Bind].
type Instance struct {
	decl    Declaration
	index   int
	primary *Instance // nil for primary instances

	isReversed    bool
	legendVisible bool

	sourceRole *Instance
	preBound   *GroupingSpec
	// claimsDefaults marks an explicit single-dimension pre-binding, the only
	// kind that counts when deciding whose dimension defaults apply.
	claimsDefaults bool

	isBound  bool
	grouping *Grouping
}

func newInstance(decl Declaration, index int) *Instance {
	return &Instance{decl: decl, index: index, legendVisible: true}
}

// Declaration returns the static declaration of the role.
func (r *Instance) Declaration() Declaration { return r.decl }

// Name returns the declared (unscoped) name.
func (r *Instance) Name() string { return r.decl.Name }

// Key returns the unique lookup key.
func (r *Instance) Key() string { return r.decl.Key() }

// Index returns the declaration order.
func (r *Instance) Index() int { return r.index }

// IsPrimary reports whether r is the first role declared with its name.
func (r *Instance) IsPrimary() bool { return r.primary == nil }

// Primary returns the primary instance of a secondary role, or nil.
func (r *Instance) Primary() *Instance { return r.primary }

// IsReversed reports the configured isReversed flag.
func (r *Instance) IsReversed() bool { return r.isReversed }

// LegendVisible reports the configured legend visibility (default true).
func (r *Instance) LegendVisible() bool { return r.legendVisible }

// SourceRole returns the role this one sources its grouping from, or nil.
func (r *Instance) SourceRole() *Instance { return r.sourceRole }

// PreBound returns the pre-binding of the role, or nil.
func (r *Instance) PreBound() *GroupingSpec { return r.preBound }

// IsPreBound reports whether a pre-binding (including null) was decided.
func (r *Instance) IsPreBound() bool { return r.preBound != nil }

// IsBound reports whether the role ended bound to a non-null grouping.
func (r *Instance) IsBound() bool { return r.isBound }

// Grouping returns the final grouping: non-nil for bound roles and for roles
// bound to the null grouping.
func (r *Instance) Grouping() *Grouping { return r.grouping }

// State returns the terminal state of the role.
func (r *Instance) State() State {
	switch {
	case r.isBound:
		return StateBound
	case r.grouping.IsNull():
		return StateNull
	default:
		return StateUnbound
	}
}

// rootSource follows sourceRole links to the role that owns the grouping.
// The sourcing graph is acyclic by the time this is called.
func (r *Instance) rootSource() *Instance {
	cur := r
	for cur.sourceRole != nil {
		cur = cur.sourceRole
	}
	return cur
}

// resolvable reports whether r's grouping will be non-null: either it is
// pre-bound to dimensions or it sources, transitively, from such a role.
func (r *Instance) resolvable() bool {
	seen := make(map[*Instance]bool)
	for cur := r; cur != nil && !seen[cur]; cur = cur.sourceRole {
		seen[cur] = true
		if cur.preBound != nil {
			return !cur.preBound.Null
		}
	}
	return false
}
