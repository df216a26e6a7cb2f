package chart

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/chartcore/pkg/dimension"
	"github.com/matzehuels/chartcore/pkg/errors"
	"github.com/matzehuels/chartcore/pkg/panel"
	"github.com/matzehuels/chartcore/pkg/role"
)

func sample() *Definition {
	return &Definition{
		Name:       "sales",
		Dimensions: []DimensionDef{{Name: "region", ValueType: "string"}},
		Roles: []RoleDef{
			{Name: "series", Required: true},
			{Name: "value", Defaults: MetadataDef{ValueType: "number"}},
			{Name: "color", DefaultSourceRole: "series"},
		},
		Bindings: map[string]any{
			"series": "region",
			"value":  map[string]any{"dimensions": "amount"},
		},
		Root: &PanelDef{
			Name: "root", Width: Px(400), Height: Px(300), Margins: "5 10%",
			Children: []PanelDef{
				{Name: "title", Anchor: "top", Content: &ContentDef{Width: 100, Height: 20}},
				{Name: "plot"},
			},
		},
	}
}

func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Definition)
		code   errors.Code
	}{
		{"valid", func(*Definition) {}, ""},
		{"no roles", func(d *Definition) { d.Roles = nil }, errors.ErrCodeInvalidConfig},
		{"duplicate role", func(d *Definition) { d.Roles = append(d.Roles, RoleDef{Name: "color"}) }, errors.ErrCodeInvalidConfig},
		{"undeclared binding", func(d *Definition) { d.Bindings["size"] = "x" }, errors.ErrCodeInvalidConfig},
		{"bad binding", func(d *Definition) { d.Bindings["color"] = 3 }, errors.ErrCodeInvalidConfig},
		{"bad value type", func(d *Definition) { d.Dimensions[0].ValueType = "money" }, errors.ErrCodeInvalidConfig},
		{"bad anchor", func(d *Definition) { d.Root.Children[0].Anchor = "middle" }, errors.ErrCodeInvalidConfig},
		{"bad length", func(d *Definition) { d.Root.Width = "wide" }, errors.ErrCodeInvalidConfig},
		{"duplicate child", func(d *Definition) { d.Root.Children[1].Name = "title" }, errors.ErrCodeInvalidConfig},
		{"percent request", func(d *Definition) { d.Root.Children[1].RequestPaddings = "10%" }, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sample()
			tt.mutate(d)
			err := d.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestDefinition_BindsEndToEnd(t *testing.T) {
	d := sample()
	decls, err := d.Declarations()
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := d.RoleConfig()
	if err != nil {
		t.Fatal(err)
	}
	reg, err := d.Registry()
	if err != nil {
		t.Fatal(err)
	}

	set, err := role.Bind(decls, role.Context{Registry: reg, Config: cfg})
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	color, _ := set.Lookup("color")
	series, _ := set.Lookup("series")
	if color.Grouping() != series.Grouping() {
		t.Error("color does not share the series grouping")
	}
	amount, ok := reg.Get("amount")
	if !ok || amount.ValueType != dimension.ValueTypeNumber {
		t.Errorf("amount = %+v, want value type number", amount)
	}
}

func TestPanelDef_Build(t *testing.T) {
	root, err := sample().Root.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if root.Margins.Left != panel.Percent(10) || root.Margins.Top != panel.Abs(5) {
		t.Errorf("Margins = %v", root.Margins)
	}
	children := root.Children()
	if len(children) != 2 || children[0].Anchor != panel.AnchorTop {
		t.Fatalf("children = %v", children)
	}
	if children[0].Measurer == nil || children[1].Measurer != nil {
		t.Error("only the title should have a measurer")
	}
	if err := root.Layout(nil, panel.LayoutOptions{}); err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	title, _ := children[0].Result()
	if title.Size.Height != 20 {
		t.Errorf("title height = %v, want 20", title.Size.Height)
	}
}

func TestLength_Unmarshal(t *testing.T) {
	var p PanelDef
	src := `{"name":"p","width":120,"height":"50%","margins":"5 10","min_width":12.5}`
	if err := json.Unmarshal([]byte(src), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := PanelDef{Name: "p", Width: "120", Height: "50%", Margins: "5 10", MinWidth: "12.5"}
	if p.Name != want.Name || p.Width != want.Width || p.Height != want.Height || p.Margins != want.Margins || p.MinWidth != want.MinWidth {
		t.Errorf("got %+v, want %+v", p, want)
	}

	if err := json.Unmarshal([]byte(`{"width":true}`), &p); err == nil {
		t.Error("Unmarshal() of bool width error = nil")
	}
}
