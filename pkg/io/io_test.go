package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/chartcore/pkg/chart"
	"github.com/matzehuels/chartcore/pkg/errors"
	"github.com/matzehuels/chartcore/pkg/pipeline"
)

const salesHCL = `
name = "sales"

dimension "region" {
  value_type = "string"
}

role "series" {
  required = true
}

role "value" {
  defaults {
    value_type = "number"
  }
}

role "color" {
  default_source_role = "series"
}

bindings = {
  series = "region"
  value  = { dimensions = "amount" }
  "plot2.size" = null
}

panel "root" {
  width   = 400
  height  = 300
  margins = "5 10%"

  panel "title" {
    anchor = "top"
    content {
      width  = 100
      height = 20
    }
  }

  panel "plot" {}
}
`

const salesTOML = `
name = "sales"

[[dimensions]]
name = "region"
value_type = "string"

[[roles]]
name = "series"
required = true

[[roles]]
name = "value"
[roles.defaults]
value_type = "number"

[[roles]]
name = "color"
default_source_role = "series"

[bindings]
series = "region"
value = { dimensions = "amount" }

[root]
name = "root"
width = 400
height = 300
margins = "5 10%"

[[root.children]]
name = "title"
anchor = "top"
content = { width = 100.0, height = 20.0 }

[[root.children]]
name = "plot"
`

const salesJSON = `{
  "name": "sales",
  "dimensions": [{"name": "region", "value_type": "string"}],
  "roles": [
    {"name": "series", "required": true},
    {"name": "value", "defaults": {"value_type": "number"}},
    {"name": "color", "default_source_role": "series"}
  ],
  "bindings": {"series": "region", "value": {"dimensions": "amount"}},
  "root": {
    "name": "root", "width": 400, "height": 300, "margins": "5 10%",
    "children": [
      {"name": "title", "anchor": "top", "content": {"width": 100, "height": 20}},
      {"name": "plot"}
    ]
  }
}`

func checkSales(t *testing.T, def *chart.Definition) {
	t.Helper()
	if def.Name != "sales" || len(def.Roles) != 3 || len(def.Dimensions) != 1 {
		t.Fatalf("definition = %+v", def)
	}
	if def.Roles[1].Defaults.ValueType != "number" || def.Roles[2].DefaultSourceRole != "series" {
		t.Errorf("roles = %+v", def.Roles)
	}
	if def.Bindings["series"] != "region" {
		t.Errorf("bindings[series] = %v", def.Bindings["series"])
	}
	value, ok := def.Bindings["value"].(map[string]any)
	if !ok || value["dimensions"] != "amount" {
		t.Errorf("bindings[value] = %v", def.Bindings["value"])
	}
	if def.Root == nil || def.Root.Width != "400" || def.Root.Margins != "5 10%" {
		t.Fatalf("root = %+v", def.Root)
	}
	if len(def.Root.Children) != 2 || def.Root.Children[0].Content == nil || def.Root.Children[0].Content.Height != 20 {
		t.Errorf("children = %+v", def.Root.Children)
	}
	if err := def.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		format Format
		src    string
	}{
		{FormatJSON, salesJSON},
		{FormatTOML, salesTOML},
		{FormatHCL, salesHCL},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			def, err := Read(strings.NewReader(tt.src), tt.format, "sales."+string(tt.format))
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			checkSales(t, def)
		})
	}
}

func TestReadHCL_NullBinding(t *testing.T) {
	def, err := ReadHCL(strings.NewReader(salesHCL), "sales.hcl")
	if err != nil {
		t.Fatal(err)
	}
	v, ok := def.Bindings["plot2.size"]
	if !ok || v != nil {
		t.Errorf("bindings[plot2.size] = %v, %v; want nil, true", v, ok)
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		src    string
	}{
		{"json syntax", FormatJSON, `{"roles": [`},
		{"json unknown field", FormatJSON, `{"roles": [], "colour": 1}`},
		{"toml syntax", FormatTOML, `roles = [`},
		{"toml unknown key", FormatTOML, "colour = 1\n"},
		{"hcl syntax", FormatHCL, `role "x" {`},
		{"hcl unknown block", FormatHCL, `axis "x" {}`},
		{"hcl two roots", FormatHCL, "panel \"a\" {}\npanel \"b\" {}\n"},
		{"hcl bindings not object", FormatHCL, `bindings = "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.src), tt.format, "chart")
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("Read() error = %v, want INVALID_FORMAT", err)
			}
		})
	}

	if _, err := Read(strings.NewReader(""), "yaml", "chart"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Read(yaml) error = %v, want UNSUPPORTED", err)
	}
}

func TestImportChart(t *testing.T) {
	dir := t.TempDir()
	for name, src := range map[string]string{"a.json": salesJSON, "b.toml": salesTOML, "c.hcl": salesHCL} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
		def, err := ImportChart(path)
		if err != nil {
			t.Fatalf("ImportChart(%s) error = %v", name, err)
		}
		checkSales(t, def)
	}

	if _, err := ImportChart(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := ImportChart(filepath.Join(dir, "chart.yaml")); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("bad extension error = %v, want INVALID_PATH", err)
	}
}

func TestWriteChart_RoundTrip(t *testing.T) {
	def, err := ReadHCL(strings.NewReader(salesHCL), "sales.hcl")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteChart(&buf, def); err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	checkSales(t, got)
}

func TestExportReport(t *testing.T) {
	def, err := ReadJSON(strings.NewReader(salesJSON))
	if err != nil {
		t.Fatal(err)
	}
	report := pipeline.NewReport(def, "abc", nil, nil)

	path := filepath.Join(t.TempDir(), "report.json")
	if err := ExportReport(report, path); err != nil {
		t.Fatalf("ExportReport() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := pipeline.UnmarshalReport(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != report.ID || got.Hash != "abc" || got.Chart != "sales" {
		t.Errorf("exported report = %+v", got)
	}
}
