package role

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartcore/pkg/dimension"
	"github.com/matzehuels/chartcore/pkg/errors"
)

type phase int

const (
	phaseCreated phase = iota
	phaseInitialized
	phaseDimensionsFinished
	phaseBound
	phaseFailed
)

var phaseNames = map[phase]string{
	phaseCreated:            "created",
	phaseInitialized:        "initialized",
	phaseDimensionsFinished: "dimensions-finished",
	phaseBound:              "bound",
	phaseFailed:             "failed",
}

// Binder resolves a list of role declarations in three ordered phases.
// A Binder is single-use and not safe for concurrent use.
type Binder struct {
	ctx    Context
	logger *log.Logger
	roles  []*Instance
	byKey  map[string]*Instance
	byName map[string]*Instance // primary instance per declared name
	phase  phase
}

// NewBinder validates the declarations and creates one instance per role.
// Declaration order is kept as the role index.
func NewBinder(decls []Declaration, ctx Context) (*Binder, error) {
	if ctx.Registry == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "role binder requires a dimension registry")
	}

	b := &Binder{
		ctx:    ctx,
		logger: ctx.logger(),
		roles:  make([]*Instance, 0, len(decls)),
		byKey:  make(map[string]*Instance, len(decls)),
		byName: make(map[string]*Instance, len(decls)),
	}

	for i, d := range decls {
		if err := errors.ValidateName("role", d.Name); err != nil {
			return nil, err
		}
		if d.Scope != "" {
			if err := errors.ValidateName("role scope", d.Scope); err != nil {
				return nil, err
			}
		}
		r := newInstance(d, i)
		if _, dup := b.byKey[r.Key()]; dup {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "duplicate role %q", r.Key())
		}
		if primary, ok := b.byName[d.Name]; ok {
			r.primary = primary
		} else {
			b.byName[d.Name] = r
		}
		b.roles = append(b.roles, r)
		b.byKey[r.Key()] = r
	}
	return b, nil
}

// Lookup finds a role by key, or by declared name, in which case the primary
// instance is returned.
func (b *Binder) Lookup(name string) (*Instance, bool) {
	if r, ok := b.byKey[name]; ok {
		return r, true
	}
	r, ok := b.byName[name]
	return r, ok
}

// Roles returns the role instances in declaration order.
func (b *Binder) Roles() []*Instance {
	out := make([]*Instance, len(b.roles))
	copy(out, b.roles)
	return out
}

func (b *Binder) enter(want phase, name string) error {
	if b.phase != want {
		return errors.New(errors.ErrCodePhaseOrder,
			"role binder: %s called in phase %q, want %q", name, phaseNames[b.phase], phaseNames[want])
	}
	return nil
}

func (b *Binder) fail(err error) error {
	b.phase = phaseFailed
	return err
}

// =============================================================================
// Phase 1 - Init
// =============================================================================

// initPlan is the decision taken for one role from its configuration,
// before anything is committed.
type initPlan struct {
	opts   Options
	source *Instance
	spec   *GroupingSpec
}

// Init reads every role's configuration, resolves "from" references, applies
// explicit pre-bindings and defaults secondary roles to their primary.
//
// All lookups and the cycle check run before the registry is touched, so a
// failed Init leaves the registry unchanged.
func (b *Binder) Init() error {
	if err := b.enter(phaseCreated, "Init"); err != nil {
		return err
	}

	plans := make([]initPlan, len(b.roles))
	for i, r := range b.roles {
		p := initPlan{opts: b.ctx.config(r).Options()}
		switch {
		case p.opts.From != "":
			src, ok := b.Lookup(p.opts.From)
			if !ok {
				return b.fail(errors.New(errors.ErrCodeRoleNotFound,
					"role %q: source role %q does not exist", r.Key(), p.opts.From))
			}
			p.source = src
			if p.opts.Dimensions != nil || p.opts.DimensionsNull {
				b.logger.Debug("role has both from and dimensions; dimensions ignored", "role", r.Key(), "from", src.Key())
			}
		case p.opts.DimensionsNull:
			p.spec = &GroupingSpec{Null: true}
		case p.opts.Dimensions != nil:
			names, err := splitDimensionNames(*p.opts.Dimensions)
			if err != nil {
				return b.fail(errors.Wrap(errors.ErrCodeInvalidConfig, err, "role %q", r.Key()))
			}
			p.spec = &GroupingSpec{DimensionNames: names}
		}
		if p.source == nil && p.spec == nil && !r.IsPrimary() {
			p.source = r.primary
		}
		plans[i] = p
	}

	next := make([]int, len(b.roles))
	for i, p := range plans {
		next[i] = -1
		if p.source != nil {
			next[i] = p.source.index
		}
	}
	if err := b.checkCycles(next); err != nil {
		return b.fail(err)
	}

	for i, r := range b.roles {
		p := plans[i]
		if p.opts.IsReversed != nil {
			r.isReversed = *p.opts.IsReversed
		}
		if p.opts.LegendVisible != nil {
			r.legendVisible = *p.opts.LegendVisible
		}
		r.sourceRole = p.source
		if p.spec != nil {
			for _, name := range p.spec.DimensionNames {
				if _, err := b.ctx.Registry.Define(name); err != nil {
					return b.fail(errors.Wrap(errors.ErrCodeInternal, err, "role %q: define dimension %q", r.Key(), name))
				}
			}
			r.preBound = p.spec
			_, r.claimsDefaults = p.spec.single()
		}
	}

	b.phase = phaseInitialized
	return nil
}

func (b *Binder) checkCycles(next []int) error {
	cycle := findSourceCycle(next)
	if cycle == nil {
		return nil
	}
	keys := make([]string, len(cycle))
	for i, idx := range cycle {
		keys[i] = b.roles[idx].Key()
	}
	return errors.New(errors.ErrCodeRoleCycle, "role source cycle: %s", strings.Join(keys, " -> "))
}

func (b *Binder) sourceEdges() []int {
	next := make([]int, len(b.roles))
	for i, r := range b.roles {
		next[i] = -1
		if r.sourceRole != nil {
			next[i] = r.sourceRole.index
		}
	}
	return next
}

// =============================================================================
// Phase 2 - DimensionsFinished
// =============================================================================

// DimensionsFinished resolves roles that are neither pre-bound nor sourced to
// a resolvable role, first from their default dimension and then from their default source role,
// and applies role dimension defaults under the single-claimant rule.
func (b *Binder) DimensionsFinished() error {
	if err := b.enter(phaseInitialized, "DimensionsFinished"); err != nil {
		return err
	}

	for _, r := range b.defaultDimensionOrder() {
		if r.preBound != nil || r.decl.DefaultDimension == "" {
			continue
		}
		if r.sourceRole != nil && r.sourceRole.resolvable() {
			continue
		}
		if err := b.bindDefaultDimension(r); err != nil {
			return b.fail(err)
		}
		if r.preBound != nil && r.sourceRole != nil {
			b.logger.Debug("source role unresolvable; using default dimension", "role", r.Key(), "source", r.sourceRole.Key())
			r.sourceRole = nil
		}
	}

	b.resolveDefaultSources()

	if err := b.applyDimensionDefaults(); err != nil {
		return b.fail(err)
	}

	if err := b.checkCycles(b.sourceEdges()); err != nil {
		return b.fail(err)
	}

	b.phase = phaseDimensionsFinished
	return nil
}

// defaultDimensionOrder returns the roles ordered by their distance from the
// root of their source chain, so a source has settled before the roles that
// source from it are considered. Declaration order breaks ties.
func (b *Binder) defaultDimensionOrder() []*Instance {
	depth := func(r *Instance) int {
		d := 0
		for cur := r.sourceRole; cur != nil && d <= len(b.roles); cur = cur.sourceRole {
			d++
		}
		return d
	}
	order := make([]*Instance, len(b.roles))
	copy(order, b.roles)
	sort.SliceStable(order, func(i, j int) bool { return depth(order[i]) < depth(order[j]) })
	return order
}

func (b *Binder) bindDefaultDimension(r *Instance) error {
	reg := b.ctx.Registry
	name, wildcard := r.decl.defaultDimensionPattern()

	if !wildcard {
		switch {
		case reg.Has(name):
			r.preBound = &GroupingSpec{DimensionNames: []string{name}}
			r.claimsDefaults = true
		case r.decl.AutoCreateDimension:
			if _, err := reg.Define(name); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "role %q: create dimension %q", r.Key(), name)
			}
			r.preBound = &GroupingSpec{DimensionNames: []string{name}}
			r.claimsDefaults = true
		default:
			b.logger.Debug("default dimension not found", "role", r.Key(), "dimension", name)
		}
		return nil
	}

	matches := reg.MatchPrefix(name)
	switch {
	case len(matches) > 0:
		names := make([]string, len(matches))
		for i, d := range matches {
			names[i] = d.Name
		}
		r.preBound = &GroupingSpec{DimensionNames: names}
	case r.decl.AutoCreateDimension && name != "":
		if _, err := reg.Define(name); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "role %q: create dimension %q", r.Key(), name)
		}
		r.preBound = &GroupingSpec{DimensionNames: []string{name}}
		r.claimsDefaults = true
	default:
		b.logger.Debug("no dimension matches default prefix", "role", r.Key(), "prefix", name)
	}
	return nil
}

// resolveDefaultSources links open roles to their default source role when
// that role ends up bound. It iterates to a fixed point so that chains are
// honored regardless of declaration order. A link is only made to a role that
// already resolves to dimensions, which cannot close a cycle.
func (b *Binder) resolveDefaultSources() {
	open := func(r *Instance) bool {
		return r.preBound == nil && r.sourceRole == nil && r.decl.DefaultSourceRole != ""
	}

	for changed := true; changed; {
		changed = false
		for _, r := range b.roles {
			if !open(r) {
				continue
			}
			src, ok := b.Lookup(r.decl.DefaultSourceRole)
			if !ok || src == r || !src.resolvable() {
				continue
			}
			r.sourceRole = src
			changed = true
		}
	}

	for _, r := range b.roles {
		if open(r) {
			if _, ok := b.Lookup(r.decl.DefaultSourceRole); !ok {
				b.logger.Debug("default source role not found", "role", r.Key(), "source", r.decl.DefaultSourceRole)
			}
			r.sourceRole = nil
		}
	}
}

// applyDimensionDefaults applies a role's DimensionDefaults to a dimension
// only when that role is the single role explicitly pre-bound to it.
func (b *Binder) applyDimensionDefaults() error {
	claimants := make(map[string][]*Instance)
	var order []string
	for _, r := range b.roles {
		if !r.claimsDefaults {
			continue
		}
		name, ok := r.preBound.single()
		if !ok {
			continue
		}
		if _, seen := claimants[name]; !seen {
			order = append(order, name)
		}
		claimants[name] = append(claimants[name], r)
	}

	for _, name := range order {
		rs := claimants[name]
		if len(rs) != 1 {
			b.logger.Debug("dimension claimed by several roles; defaults skipped", "dimension", name, "roles", len(rs))
			continue
		}
		defaults := rs[0].decl.DimensionDefaults
		if defaults.IsZero() {
			continue
		}
		if err := b.ctx.Registry.SetDefaults(name, defaults); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "role %q: apply defaults to %q", rs[0].Key(), name)
		}
	}
	return nil
}

// =============================================================================
// Phase 3 - Bind
// =============================================================================

// Bind materializes every pre-binding against schema and lets sourced roles
// adopt their source's grouping. It returns the frozen role set.
func (b *Binder) Bind(schema *dimension.Schema) (*Set, error) {
	if err := b.enter(phaseDimensionsFinished, "Bind"); err != nil {
		return nil, err
	}
	if schema == nil {
		return nil, b.fail(errors.New(errors.ErrCodeInvalidInput, "role binder: nil dimension schema"))
	}
	if err := b.checkCycles(b.sourceEdges()); err != nil {
		return nil, b.fail(err)
	}

	memo := make(map[*GroupingSpec]*Grouping)
	for _, r := range b.roles {
		if r.preBound == nil {
			continue
		}
		g, ok := memo[r.preBound]
		if !ok {
			var err error
			if g, err = materialize(r.preBound, schema); err != nil {
				b.logger.Warn("role left unbound", "role", r.Key(), "err", err)
				continue
			}
			memo[r.preBound] = g
		}
		r.grouping = g
		r.isBound = !g.IsNull()
	}

	for _, r := range b.roles {
		if r.preBound != nil || r.sourceRole == nil {
			continue
		}
		if root := r.rootSource(); root.isBound {
			r.grouping = root.grouping
			r.isBound = true
		}
	}

	b.phase = phaseBound
	return newSet(b), nil
}

// Bind runs all three phases over decls: Init, DimensionsFinished, registry
// finalization and Bind.
func Bind(decls []Declaration, ctx Context) (*Set, error) {
	b, err := NewBinder(decls, ctx)
	if err != nil {
		return nil, err
	}
	if err := b.Init(); err != nil {
		return nil, err
	}
	if err := b.DimensionsFinished(); err != nil {
		return nil, err
	}
	return b.Bind(ctx.Registry.Finalize())
}

// String summarizes the binder state for debugging.
func (b *Binder) String() string {
	return fmt.Sprintf("role.Binder{roles: %d, phase: %s}", len(b.roles), phaseNames[b.phase])
}
