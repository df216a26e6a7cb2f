package dot

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/chartcore/pkg/chart"
	"github.com/matzehuels/chartcore/pkg/pipeline"
)

func report(t *testing.T) *pipeline.Report {
	t.Helper()
	def := &chart.Definition{
		Name:       "sales",
		Dimensions: []chart.DimensionDef{{Name: "region", ValueType: "string"}},
		Roles: []chart.RoleDef{
			{Name: "series", Required: true},
			{Name: "color", DefaultSourceRole: "series"},
			{Name: "size"},
		},
		Bindings: map[string]any{"series": "region", "size": nil},
		Root: &chart.PanelDef{
			Name: "root", Width: chart.Px(200), Height: chart.Px(100),
			Children: []chart.PanelDef{
				{Name: "legend", Anchor: "right", Align: "start", Content: &chart.ContentDef{Width: 40, Height: 30}},
				{Name: "empty", Anchor: "top"},
				{Name: "plot"},
			},
		},
	}
	res, err := pipeline.NewRunner(nil, nil, nil).Execute(context.Background(), def, pipeline.Options{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	return res.Report
}

func TestRolesDOT(t *testing.T) {
	src := RolesDOT(report(t), Options{Detailed: true})

	for _, want := range []string{
		`"dim:region" [label="region\nstring", shape=ellipse`,
		`"role:series" -> "dim:region";`,
		`"role:color" -> "role:series" [style=dashed, label="from"];`,
		`"role:size" [label="size\nnull", fillcolor=lightgrey`,
		`label="series\nbound, required"`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("RolesDOT() missing %q\n%s", want, src)
		}
	}
	if strings.Contains(src, `"role:color" -> "dim:region"`) {
		t.Error("sourced role should point at its source, not the dimension")
	}
}

func TestPanelsDOT(t *testing.T) {
	src := PanelsDOT(report(t), Options{Detailed: true})

	for _, want := range []string{
		`"root" -> "root/legend";`,
		`"root" -> "root/plot";`,
		`"root/legend" [label="legend\nright / start\n40x100 @ (160, 0)"]`,
		`"root/empty" [label="empty\ntop / center\n0x0 @`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("PanelsDOT() missing %q\n%s", want, src)
		}
	}
	for _, line := range strings.Split(src, "\n") {
		if strings.Contains(line, `"root/empty" [`) && !strings.Contains(line, `style="rounded,filled,dashed"`) {
			t.Errorf("invisible panel should be dashed: %s", line)
		}
	}

	empty := PanelsDOT(&pipeline.Report{}, Options{})
	if strings.Contains(empty, "->") {
		t.Errorf("PanelsDOT() of a report without panels has edges:\n%s", empty)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := normalizeViewBox(in)
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if string(got) != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if !bytes.Equal(normalizeViewBox(plain), plain) {
		t.Error("normalizeViewBox() changed an svg without viewBox")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), RolesDOT(report(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("series")) {
		t.Errorf("RenderSVG() output does not look like the role graph: %.200s", svg)
	}
}
