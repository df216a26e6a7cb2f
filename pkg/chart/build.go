package chart

import (
	"github.com/matzehuels/chartcore/pkg/dimension"
	"github.com/matzehuels/chartcore/pkg/errors"
	"github.com/matzehuels/chartcore/pkg/panel"
	"github.com/matzehuels/chartcore/pkg/role"
)

// Validate checks the static parts of the definition: names, role keys,
// binding values, value types and the panel tree.
func (d *Definition) Validate() error {
	if len(d.Roles) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "chart declares no roles")
	}
	if _, err := d.Declarations(); err != nil {
		return err
	}
	if _, err := d.RoleConfig(); err != nil {
		return err
	}
	if _, err := d.Registry(); err != nil {
		return err
	}
	if d.Root != nil {
		if _, err := d.Root.Build(); err != nil {
			return err
		}
	}
	return nil
}

// Declarations converts the role definitions into binder declarations, in
// file order.
func (d *Definition) Declarations() ([]role.Declaration, error) {
	decls := make([]role.Declaration, 0, len(d.Roles))
	seen := make(map[string]bool, len(d.Roles))
	for _, r := range d.Roles {
		if err := errors.ValidateName("role", r.Name); err != nil {
			return nil, err
		}
		if seen[r.Key()] {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "duplicate role %q", r.Key())
		}
		seen[r.Key()] = true

		meta, err := r.Defaults.metadata()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "role %q defaults", r.Key())
		}
		decls = append(decls, role.Declaration{
			Name:                r.Name,
			Scope:               r.Scope,
			DefaultDimension:    r.DefaultDimension,
			DefaultSourceRole:   r.DefaultSourceRole,
			DimensionDefaults:   meta,
			AutoCreateDimension: r.AutoCreate,
			Required:            r.Required,
		})
	}
	return decls, nil
}

// RoleConfig decodes the raw bindings. Bindings for undeclared roles are
// rejected.
func (d *Definition) RoleConfig() (role.ConfigMap, error) {
	keys := make(map[string]bool, len(d.Roles))
	for _, r := range d.Roles {
		keys[r.Key()] = true
	}
	cfg := make(role.ConfigMap, len(d.Bindings))
	for key, raw := range d.Bindings {
		if !keys[key] {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "binding for undeclared role %q", key)
		}
		v, err := role.ParseValue(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "binding %q", key)
		}
		cfg[key] = v
	}
	return cfg, nil
}

// Registry returns a new dimension registry holding the declared dimensions.
func (d *Definition) Registry() (*dimension.Registry, error) {
	reg := dimension.NewRegistry()
	for _, dd := range d.Dimensions {
		if err := errors.ValidateName("dimension", dd.Name); err != nil {
			return nil, err
		}
		if reg.Has(dd.Name) {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "duplicate dimension %q", dd.Name)
		}
		meta, err := MetadataDef{ValueType: dd.ValueType, Label: dd.Label, Format: dd.Format}.metadata()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "dimension %q", dd.Name)
		}
		if _, err := reg.DefineWith(dd.Name, meta); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "dimension %q", dd.Name)
		}
	}
	return reg, nil
}

func (m MetadataDef) metadata() (dimension.Metadata, error) {
	vt, err := dimension.ParseValueType(m.ValueType)
	if err != nil {
		return dimension.Metadata{}, err
	}
	return dimension.Metadata{ValueType: vt, Label: m.Label, Format: m.Format}, nil
}

// Build converts the panel definition and its children into a panel tree.
func (p *PanelDef) Build() (*panel.Panel, error) {
	if err := errors.ValidateName("panel", p.Name); err != nil {
		return nil, err
	}
	out := panel.New(p.Name)

	var err error
	if out.Anchor, err = panel.ParseAnchor(p.Anchor); err != nil {
		return nil, p.invalid(err)
	}
	if out.Align, err = panel.ParseAlign(p.Align); err != nil {
		return nil, p.invalid(err)
	}

	dims := []struct {
		src Length
		dst *panel.Length
	}{
		{p.Width, &out.Size.Width},
		{p.Height, &out.Size.Height},
		{p.MinWidth, &out.MinSize.Width},
		{p.MinHeight, &out.MinSize.Height},
		{p.MaxWidth, &out.MaxSize.Width},
		{p.MaxHeight, &out.MaxSize.Height},
	}
	for _, d := range dims {
		if *d.dst, err = panel.ParseLength(string(d.src)); err != nil {
			return nil, p.invalid(err)
		}
	}
	if out.Margins, err = panel.ParseSides(string(p.Margins)); err != nil {
		return nil, p.invalid(err)
	}
	if out.Paddings, err = panel.ParseSides(string(p.Paddings)); err != nil {
		return nil, p.invalid(err)
	}
	if p.BorderWidth < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "panel %q: negative border width", p.Name)
	}
	out.BorderWidth = p.BorderWidth

	if out.Measurer, err = p.measurer(); err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(p.Children))
	for i := range p.Children {
		c := &p.Children[i]
		if names[c.Name] {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "panel %q: duplicate child %q", p.Name, c.Name)
		}
		names[c.Name] = true
		child, err := c.Build()
		if err != nil {
			return nil, err
		}
		if err := out.Add(child); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "panel %q", p.Name)
		}
	}
	return out, nil
}

// measurer builds the fixed-demand measurer of a leaf, or nil.
func (p *PanelDef) measurer() (panel.Measurer, error) {
	if p.Content == nil && p.RequestPaddings == "" {
		return nil, nil
	}
	var request *panel.Insets
	if p.RequestPaddings != "" {
		sides, err := panel.ParseSides(string(p.RequestPaddings))
		if err != nil {
			return nil, p.invalid(err)
		}
		in, ok := absoluteInsets(sides)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "panel %q: request_paddings must be absolute", p.Name)
		}
		request = &in
	}
	content := p.Content
	return panel.MeasureFunc(func(req panel.MeasureRequest) panel.Measurement {
		m := panel.Measurement{Size: req.ClientSize}
		if content != nil {
			m.Size = panel.Size{Width: content.Width, Height: content.Height}
		}
		if request != nil {
			r := *request
			m.RequestPaddings = &r
		}
		return m
	}), nil
}

func absoluteInsets(s panel.Sides) (panel.Insets, bool) {
	var in panel.Insets
	for _, side := range []struct {
		l   panel.Length
		dst *float64
	}{{s.Top, &in.Top}, {s.Right, &in.Right}, {s.Bottom, &in.Bottom}, {s.Left, &in.Left}} {
		if side.l.IsPercent() {
			return panel.Insets{}, false
		}
		*side.dst, _ = side.l.Resolve(0)
	}
	return in, true
}

func (p *PanelDef) invalid(err error) error {
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "panel %q", p.Name)
}
