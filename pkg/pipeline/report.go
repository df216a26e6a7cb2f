package pipeline

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/chartcore/pkg/cache"
	"github.com/matzehuels/chartcore/pkg/chart"
	"github.com/matzehuels/chartcore/pkg/dimension"
	"github.com/matzehuels/chartcore/pkg/errors"
	"github.com/matzehuels/chartcore/pkg/panel"
	"github.com/matzehuels/chartcore/pkg/role"
)

// Report is the serializable outcome of a pipeline run.
type Report struct {
	// ID identifies the run that computed the report.
	ID         string            `json:"id"`
	Chart      string            `json:"chart,omitempty"`
	Hash       string            `json:"hash"`
	Dimensions []DimensionReport `json:"dimensions"`
	Roles      []RoleReport      `json:"roles"`
	Root       *PanelReport      `json:"root,omitempty"`
}

// DimensionReport describes a dimension of the finalized schema.
type DimensionReport struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
	dimension.Metadata
}

// RoleReport describes the resolution of one role.
type RoleReport struct {
	Key           string   `json:"key"`
	Name          string   `json:"name"`
	State         string   `json:"state"`
	Dimensions    []string `json:"dimensions,omitempty"`
	Source        string   `json:"source,omitempty"`
	Primary       string   `json:"primary,omitempty"`
	Reversed      bool     `json:"reversed,omitempty"`
	LegendVisible bool     `json:"legend_visible"`
	Required      bool     `json:"required,omitempty"`
}

// PanelReport is the solved geometry of a panel and its descendants.
type PanelReport struct {
	Name     string             `json:"name"`
	Anchor   string             `json:"anchor"`
	Align    string             `json:"align,omitempty"`
	Layout   panel.LayoutResult `json:"layout"`
	Children []*PanelReport     `json:"children,omitempty"`
}

// NewReport summarizes a binding and a solved panel tree. root may be nil.
func NewReport(def *chart.Definition, hash string, b *Binding, root *panel.Panel) *Report {
	r := &Report{
		ID:         uuid.NewString(),
		Chart:      def.Name,
		Hash:       hash,
		Dimensions: []DimensionReport{},
		Roles:      []RoleReport{},
	}
	if b != nil {
		for _, d := range b.Schema.Dimensions() {
			r.Dimensions = append(r.Dimensions, DimensionReport{Name: d.Name, Index: d.Index(), Metadata: d.Metadata})
		}
		for _, inst := range b.Roles.Roles() {
			r.Roles = append(r.Roles, newRoleReport(inst))
		}
	}
	if root != nil {
		r.Root = newPanelReport(root)
	}
	return r
}

func newRoleReport(inst *role.Instance) RoleReport {
	rr := RoleReport{
		Key:           inst.Key(),
		Name:          inst.Name(),
		State:         inst.State().String(),
		Reversed:      inst.IsReversed(),
		LegendVisible: inst.LegendVisible(),
		Required:      inst.Declaration().Required,
	}
	rr.Dimensions = inst.Grouping().DimensionNames()
	if src := inst.SourceRole(); src != nil {
		rr.Source = src.Key()
	}
	if p := inst.Primary(); p != nil {
		rr.Primary = p.Key()
	}
	return rr
}

func newPanelReport(p *panel.Panel) *PanelReport {
	pr := &PanelReport{Name: p.Name, Anchor: p.Anchor.String()}
	if p.Anchor.IsSide() {
		pr.Align = p.Align.String()
	}
	if res, ok := p.Result(); ok {
		pr.Layout = res
	}
	for _, c := range p.Children() {
		pr.Children = append(pr.Children, newPanelReport(c))
	}
	return pr
}

// Role returns the report of the role with the given key.
func (r *Report) Role(key string) (RoleReport, bool) {
	for _, rr := range r.Roles {
		if rr.Key == key {
			return rr, true
		}
	}
	return RoleReport{}, false
}

// Panel returns the report of the panel at the slash-separated path, e.g.
// "root/legend".
func (r *Report) Panel(path string) (*PanelReport, bool) {
	if r.Root == nil {
		return nil, false
	}
	var found *PanelReport
	r.Root.walk("", func(p string, pr *PanelReport) {
		if p == path {
			found = pr
		}
	})
	return found, found != nil
}

func (pr *PanelReport) walk(prefix string, fn func(string, *PanelReport)) {
	path := pr.Name
	if prefix != "" {
		path = prefix + "/" + pr.Name
	}
	fn(path, pr)
	for _, c := range pr.Children {
		c.walk(path, fn)
	}
}

// MarshalReport encodes a report as JSON.
func MarshalReport(r *Report) ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalReport decodes a report produced by MarshalReport.
func UnmarshalReport(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode report")
	}
	return &r, nil
}

// HashDefinition returns the content hash of a chart definition. Equal
// definitions hash equally regardless of binding map order.
func HashDefinition(def *chart.Definition) (string, error) {
	data, err := json.Marshal(def)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode definition")
	}
	return cache.Hash(data), nil
}
