package io

import (
	"io"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/matzehuels/chartcore/pkg/chart"
	"github.com/matzehuels/chartcore/pkg/errors"
)

type hclChart struct {
	Name       string         `hcl:"name,optional"`
	Dimensions []hclDimension `hcl:"dimension,block"`
	Roles      []hclRole      `hcl:"role,block"`
	Bindings   cty.Value      `hcl:"bindings,optional"`
	Panels     []hclPanel     `hcl:"panel,block"`
}

type hclDimension struct {
	Name      string `hcl:"name,label"`
	ValueType string `hcl:"value_type,optional"`
	Label     string `hcl:"label,optional"`
	Format    string `hcl:"format,optional"`
}

type hclMetadata struct {
	ValueType string `hcl:"value_type,optional"`
	Label     string `hcl:"label,optional"`
	Format    string `hcl:"format,optional"`
}

type hclRole struct {
	Name              string       `hcl:"name,label"`
	Scope             string       `hcl:"scope,optional"`
	DefaultDimension  string       `hcl:"default_dimension,optional"`
	DefaultSourceRole string       `hcl:"default_source_role,optional"`
	AutoCreate        bool         `hcl:"auto_create,optional"`
	Required          bool         `hcl:"required,optional"`
	Defaults          *hclMetadata `hcl:"defaults,block"`
}

type hclContent struct {
	Width  float64 `hcl:"width"`
	Height float64 `hcl:"height"`
}

type hclPanel struct {
	Name            string      `hcl:"name,label"`
	Anchor          string      `hcl:"anchor,optional"`
	Align           string      `hcl:"align,optional"`
	Width           string      `hcl:"width,optional"`
	Height          string      `hcl:"height,optional"`
	MinWidth        string      `hcl:"min_width,optional"`
	MinHeight       string      `hcl:"min_height,optional"`
	MaxWidth        string      `hcl:"max_width,optional"`
	MaxHeight       string      `hcl:"max_height,optional"`
	Margins         string      `hcl:"margins,optional"`
	Paddings        string      `hcl:"paddings,optional"`
	BorderWidth     float64     `hcl:"border_width,optional"`
	RequestPaddings string      `hcl:"request_paddings,optional"`
	Content         *hclContent `hcl:"content,block"`
	Children        []hclPanel  `hcl:"panel,block"`
}

// ReadHCL decodes an HCL chart definition. filename is used in diagnostics.
// ReadHCL does not close r.
func ReadHCL(r io.Reader, filename string) (*chart.Definition, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read hcl chart")
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, diags, "parse hcl chart")
	}

	var raw hclChart
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, diags, "decode hcl chart")
	}
	return raw.definition()
}

func (c *hclChart) definition() (*chart.Definition, error) {
	def := &chart.Definition{Name: c.Name}

	for _, d := range c.Dimensions {
		def.Dimensions = append(def.Dimensions, chart.DimensionDef{
			Name: d.Name, ValueType: d.ValueType, Label: d.Label, Format: d.Format,
		})
	}

	for _, r := range c.Roles {
		rd := chart.RoleDef{
			Name:              r.Name,
			Scope:             r.Scope,
			DefaultDimension:  r.DefaultDimension,
			DefaultSourceRole: r.DefaultSourceRole,
			AutoCreate:        r.AutoCreate,
			Required:          r.Required,
		}
		if r.Defaults != nil {
			rd.Defaults = chart.MetadataDef{ValueType: r.Defaults.ValueType, Label: r.Defaults.Label, Format: r.Defaults.Format}
		}
		def.Roles = append(def.Roles, rd)
	}

	if !c.Bindings.IsNull() {
		native, err := ctyToNative(c.Bindings)
		if err != nil {
			return nil, err
		}
		bindings, ok := native.(map[string]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "bindings must be an object")
		}
		def.Bindings = bindings
	}

	switch len(c.Panels) {
	case 0:
	case 1:
		root := c.Panels[0].definition()
		def.Root = &root
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "only one top-level panel is allowed, got %d", len(c.Panels))
	}
	return def, nil
}

func (p *hclPanel) definition() chart.PanelDef {
	pd := chart.PanelDef{
		Name:            p.Name,
		Anchor:          p.Anchor,
		Align:           p.Align,
		Width:           chart.Length(p.Width),
		Height:          chart.Length(p.Height),
		MinWidth:        chart.Length(p.MinWidth),
		MinHeight:       chart.Length(p.MinHeight),
		MaxWidth:        chart.Length(p.MaxWidth),
		MaxHeight:       chart.Length(p.MaxHeight),
		Margins:         chart.Length(p.Margins),
		Paddings:        chart.Length(p.Paddings),
		BorderWidth:     p.BorderWidth,
		RequestPaddings: chart.Length(p.RequestPaddings),
	}
	if p.Content != nil {
		pd.Content = &chart.ContentDef{Width: p.Content.Width, Height: p.Content.Height}
	}
	for i := range p.Children {
		pd.Children = append(pd.Children, p.Children[i].definition())
	}
	return pd
}

// ctyToNative converts an evaluated HCL value into plain Go values: string,
// float64, bool, []any, map[string]any or nil.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "convert number")
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			out[key.AsString()] = native
		}
		return out, nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported value of type %s", ty.FriendlyName())
	}
}
