package role_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chartcore/pkg/dimension"
	"github.com/matzehuels/chartcore/pkg/errors"
	"github.com/matzehuels/chartcore/pkg/role"
)

func strPtr(s string) *string { return &s }

func bind(t *testing.T, reg *dimension.Registry, decls []role.Declaration, cfg role.ConfigMap) *role.Set {
	t.Helper()
	set, err := role.Bind(decls, role.Context{Registry: reg, Config: cfg})
	require.NoError(t, err)
	require.NotNil(t, set)
	return set
}

func mustLookup(t *testing.T, set *role.Set, name string) *role.Instance {
	t.Helper()
	r, ok := set.Lookup(name)
	require.True(t, ok, "role %q not found", name)
	return r
}

func TestBind_FromTakesPrecedenceOverDimensions(t *testing.T) {
	reg := dimension.NewRegistry()
	set := bind(t, reg,
		[]role.Declaration{{Name: "series"}, {Name: "color"}},
		role.ConfigMap{
			"series": role.Dimensions("region"),
			"color":  role.WithOptions(role.Options{From: "series", Dimensions: strPtr("product")}),
		})

	series := mustLookup(t, set, "series")
	color := mustLookup(t, set, "color")

	assert.Same(t, series, color.SourceRole())
	assert.False(t, color.IsPreBound())
	assert.Same(t, series.Grouping(), color.Grouping())
	assert.False(t, reg.Has("product"), "ignored dimensions must not be defined")
}

func TestBind_ChainSharesGroupingIdentity(t *testing.T) {
	reg := dimension.NewRegistry()
	decls := []role.Declaration{
		{Name: "c", DefaultSourceRole: "b"},
		{Name: "b"},
		{Name: "a"},
	}
	set := bind(t, reg, decls, role.ConfigMap{
		"a": role.Dimensions("dimA"),
		"b": role.WithOptions(role.Options{From: "a"}),
	})

	a, b, c := mustLookup(t, set, "a"), mustLookup(t, set, "b"), mustLookup(t, set, "c")
	require.True(t, a.IsBound())
	assert.Same(t, a.Grouping(), b.Grouping())
	assert.Same(t, a.Grouping(), c.Grouping())
	assert.True(t, c.IsBound())
	assert.Same(t, b, c.SourceRole())
}

func TestBind_SourceCyclesFail(t *testing.T) {
	tests := []struct {
		name  string
		decls []role.Declaration
		cfg   role.ConfigMap
	}{
		{
			name:  "self",
			decls: []role.Declaration{{Name: "a"}},
			cfg:   role.ConfigMap{"a": role.WithOptions(role.Options{From: "a"})},
		},
		{
			name:  "two",
			decls: []role.Declaration{{Name: "a"}, {Name: "b"}},
			cfg: role.ConfigMap{
				"a": role.WithOptions(role.Options{From: "b"}),
				"b": role.WithOptions(role.Options{From: "a"}),
			},
		},
		{
			name:  "three",
			decls: []role.Declaration{{Name: "a"}, {Name: "b"}, {Name: "c"}},
			cfg: role.ConfigMap{
				"a": role.WithOptions(role.Options{From: "b"}),
				"b": role.WithOptions(role.Options{From: "c"}),
				"c": role.WithOptions(role.Options{From: "a", Dimensions: strPtr("x")}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := dimension.NewRegistry()
			set, err := role.Bind(tt.decls, role.Context{Registry: reg, Config: tt.cfg})
			require.Error(t, err)
			assert.Nil(t, set)
			assert.True(t, errors.Is(err, errors.ErrCodeRoleCycle))
			assert.True(t, errors.IsConfiguration(err))
			assert.Zero(t, reg.Len(), "failed bind must not define dimensions")
		})
	}
}

func TestBind_MissingFromIsConfigurationError(t *testing.T) {
	reg := dimension.NewRegistry()
	_, err := role.Bind(
		[]role.Declaration{{Name: "a"}, {Name: "b"}},
		role.Context{Registry: reg, Config: role.ConfigMap{
			"a": role.Dimensions("dimA"),
			"b": role.WithOptions(role.Options{From: "nope"}),
		}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeRoleNotFound))
	assert.False(t, reg.Has("dimA"))
}

func TestBind_DimensionDefaults(t *testing.T) {
	number := dimension.Metadata{ValueType: dimension.ValueTypeNumber}
	date := dimension.Metadata{ValueType: dimension.ValueTypeDate}

	t.Run("single claimant", func(t *testing.T) {
		reg := dimension.NewRegistry()
		bind(t, reg,
			[]role.Declaration{{Name: "A", DimensionDefaults: number}},
			role.ConfigMap{"A": role.WithOptions(role.Options{Dimensions: strPtr("dimA")})})

		d, ok := reg.Get("dimA")
		require.True(t, ok)
		assert.Equal(t, dimension.ValueTypeNumber, d.ValueType)
	})

	t.Run("two claimants", func(t *testing.T) {
		reg := dimension.NewRegistry()
		bind(t, reg,
			[]role.Declaration{
				{Name: "A", DimensionDefaults: number},
				{Name: "B", DimensionDefaults: date},
			},
			role.ConfigMap{"A": role.Dimensions("dimA"), "B": role.Dimensions("dimA")})

		d, ok := reg.Get("dimA")
		require.True(t, ok)
		assert.Equal(t, dimension.ValueType(""), d.ValueType)
	})

	t.Run("sourced roles do not claim", func(t *testing.T) {
		reg := dimension.NewRegistry()
		bind(t, reg,
			[]role.Declaration{
				{Name: "A", DimensionDefaults: number},
				{Name: "B", DimensionDefaults: date},
			},
			role.ConfigMap{"A": role.Dimensions("dimA"), "B": role.WithOptions(role.Options{From: "A"})})

		d, _ := reg.Get("dimA")
		assert.Equal(t, dimension.ValueTypeNumber, d.ValueType)
	})

	t.Run("existing metadata kept", func(t *testing.T) {
		reg := dimension.NewRegistry()
		_, err := reg.DefineWith("dimA", date)
		require.NoError(t, err)
		bind(t, reg,
			[]role.Declaration{{Name: "A", DefaultDimension: "dimA", DimensionDefaults: number}},
			nil)

		d, _ := reg.Get("dimA")
		assert.Equal(t, dimension.ValueTypeDate, d.ValueType)
	})
}

func TestBind_DefaultDimension(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		decl     role.Declaration
		want     []string
		defined  []string
	}{
		{
			name:     "exact match",
			existing: []string{"year"},
			decl:     role.Declaration{Name: "x", DefaultDimension: "year"},
			want:     []string{"year"},
		},
		{
			name:     "exact ignores prefix matches",
			existing: []string{"year1", "year2"},
			decl:     role.Declaration{Name: "x", DefaultDimension: "year"},
		},
		{
			name:    "exact auto create",
			decl:    role.Declaration{Name: "x", DefaultDimension: "year", AutoCreateDimension: true},
			want:    []string{"year"},
			defined: []string{"year"},
		},
		{
			name:     "wildcard multi",
			existing: []string{"dimA1", "other", "dimA2"},
			decl:     role.Declaration{Name: "x", DefaultDimension: "dimA*"},
			want:     []string{"dimA1", "dimA2"},
		},
		{
			name:     "wildcard single",
			existing: []string{"dimA1", "other"},
			decl:     role.Declaration{Name: "x", DefaultDimension: "dimA*"},
			want:     []string{"dimA1"},
		},
		{
			name:    "wildcard auto create prefix",
			decl:    role.Declaration{Name: "x", DefaultDimension: "dimA*", AutoCreateDimension: true},
			want:    []string{"dimA"},
			defined: []string{"dimA"},
		},
		{
			name: "wildcard no match",
			decl: role.Declaration{Name: "x", DefaultDimension: "dimA*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := dimension.NewRegistry()
			for _, n := range tt.existing {
				_, err := reg.Define(n)
				require.NoError(t, err)
			}
			set := bind(t, reg, []role.Declaration{tt.decl}, nil)
			r := mustLookup(t, set, "x")

			if tt.want == nil {
				assert.False(t, r.IsBound())
				assert.Equal(t, role.StateUnbound, r.State())
				return
			}
			require.True(t, r.IsBound())
			assert.Equal(t, tt.want, r.Grouping().DimensionNames())
			assert.Equal(t, len(tt.want) == 1, r.Grouping().IsSingleDimension())
			for _, n := range tt.defined {
				assert.True(t, reg.Has(n))
			}
		})
	}
}

func TestBind_DefaultDimensionWhenSourceUnresolvable(t *testing.T) {
	tests := []struct {
		name       string
		decls      []role.Declaration
		cfg        role.ConfigMap
		role       string
		want       []string
		wantSource string
	}{
		{
			name:  "from unbound role",
			decls: []role.Declaration{{Name: "a"}, {Name: "b", DefaultDimension: "x"}},
			cfg:   role.ConfigMap{"b": role.WithOptions(role.Options{From: "a"})},
			role:  "b",
			want:  []string{"x"},
		},
		{
			name:  "from null role",
			decls: []role.Declaration{{Name: "a"}, {Name: "b", DefaultDimension: "x"}},
			cfg:   role.ConfigMap{"a": role.Null(), "b": role.WithOptions(role.Options{From: "a"})},
			role:  "b",
			want:  []string{"x"},
		},
		{
			name:  "secondary of unbound primary",
			decls: []role.Declaration{{Name: "color"}, {Name: "color", Scope: "plot2", DefaultDimension: "x"}},
			role:  "plot2.color",
			want:  []string{"x"},
		},
		{
			name:       "source resolved by its own default keeps sourcing",
			decls:      []role.Declaration{{Name: "b", DefaultDimension: "x"}, {Name: "a", DefaultDimension: "y"}},
			cfg:        role.ConfigMap{"b": role.WithOptions(role.Options{From: "a"})},
			role:       "b",
			want:       []string{"y"},
			wantSource: "a",
		},
		{
			name:  "chain falls back at every link",
			decls: []role.Declaration{{Name: "c", DefaultDimension: "x"}, {Name: "b"}, {Name: "a"}},
			cfg: role.ConfigMap{
				"c": role.WithOptions(role.Options{From: "b"}),
				"b": role.WithOptions(role.Options{From: "a"}),
			},
			role: "c",
			want: []string{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := dimension.NewRegistry()
			for _, n := range []string{"x", "y"} {
				_, err := reg.Define(n)
				require.NoError(t, err)
			}
			set := bind(t, reg, tt.decls, tt.cfg)
			r := mustLookup(t, set, tt.role)

			require.Equal(t, role.StateBound, r.State())
			assert.Equal(t, tt.want, r.Grouping().DimensionNames())
			if tt.wantSource == "" {
				assert.Nil(t, r.SourceRole())
				return
			}
			require.NotNil(t, r.SourceRole())
			assert.Equal(t, tt.wantSource, r.SourceRole().Key())
		})
	}
}

func TestGrouping_UnboundIsNotNull(t *testing.T) {
	reg := dimension.NewRegistry()
	set := bind(t, reg,
		[]role.Declaration{{Name: "open"}, {Name: "empty"}},
		role.ConfigMap{"empty": role.Null()})

	open := mustLookup(t, set, "open")
	empty := mustLookup(t, set, "empty")

	assert.Equal(t, role.StateUnbound, open.State())
	assert.Nil(t, open.Grouping())
	assert.False(t, open.Grouping().IsNull())
	assert.Equal(t, "unbound", open.Grouping().String())
	assert.Nil(t, open.Grouping().DimensionNames())

	assert.Equal(t, role.StateNull, empty.State())
	assert.True(t, empty.Grouping().IsNull())
	assert.Same(t, role.NullGrouping(), empty.Grouping())
	assert.Equal(t, "null", empty.Grouping().String())
}

func TestBind_NullBinding(t *testing.T) {
	tests := []struct {
		name string
		cfg  role.Value
	}{
		{"null value", role.Null()},
		{"dimensions null", role.WithOptions(role.Options{DimensionsNull: true})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := dimension.NewRegistry()
			set := bind(t, reg,
				[]role.Declaration{{Name: "color", DefaultDimension: "dimA", AutoCreateDimension: true, Required: true}},
				role.ConfigMap{"color": tt.cfg})

			r := mustLookup(t, set, "color")
			assert.True(t, r.IsPreBound())
			assert.False(t, r.IsBound())
			assert.Equal(t, role.StateNull, r.State())
			assert.Same(t, role.NullGrouping(), r.Grouping())
			assert.False(t, reg.Has("dimA"), "null pre-binding suppresses the default dimension")
			assert.True(t, errors.Is(set.CheckRequired(), errors.ErrCodeRoleRequired))
		})
	}
}

func TestBind_DefaultSourceRoleIsOpportunistic(t *testing.T) {
	t.Run("unbound target", func(t *testing.T) {
		reg := dimension.NewRegistry()
		set := bind(t, reg,
			[]role.Declaration{{Name: "a"}, {Name: "b", DefaultSourceRole: "a"}},
			nil)

		b := mustLookup(t, set, "b")
		assert.Nil(t, b.SourceRole())
		assert.Equal(t, role.StateUnbound, b.State())
	})

	t.Run("null target", func(t *testing.T) {
		reg := dimension.NewRegistry()
		set := bind(t, reg,
			[]role.Declaration{{Name: "a"}, {Name: "b", DefaultSourceRole: "a"}},
			role.ConfigMap{"a": role.Null()})

		b := mustLookup(t, set, "b")
		assert.Nil(t, b.SourceRole())
		assert.False(t, b.IsBound())
	})

	t.Run("missing target", func(t *testing.T) {
		reg := dimension.NewRegistry()
		set := bind(t, reg, []role.Declaration{{Name: "b", DefaultSourceRole: "ghost"}}, nil)
		assert.Nil(t, mustLookup(t, set, "b").SourceRole())
	})

	t.Run("target bound by default dimension", func(t *testing.T) {
		reg := dimension.NewRegistry()
		_, _ = reg.Define("year")
		set := bind(t, reg,
			[]role.Declaration{{Name: "b", DefaultSourceRole: "a"}, {Name: "a", DefaultDimension: "year"}},
			nil)

		a, b := mustLookup(t, set, "a"), mustLookup(t, set, "b")
		assert.Same(t, a, b.SourceRole())
		assert.Same(t, a.Grouping(), b.Grouping())
	})

	t.Run("own default dimension wins", func(t *testing.T) {
		reg := dimension.NewRegistry()
		_, _ = reg.Define("year")
		_, _ = reg.Define("month")
		set := bind(t, reg,
			[]role.Declaration{
				{Name: "a", DefaultDimension: "year"},
				{Name: "b", DefaultDimension: "month", DefaultSourceRole: "a"},
			},
			nil)

		b := mustLookup(t, set, "b")
		assert.Nil(t, b.SourceRole())
		assert.Equal(t, []string{"month"}, b.Grouping().DimensionNames())
	})
}

func TestBind_SecondaryDefaultsToPrimary(t *testing.T) {
	reg := dimension.NewRegistry()
	set := bind(t, reg,
		[]role.Declaration{{Name: "color"}, {Name: "color", Scope: "plot2"}, {Name: "color", Scope: "plot3"}},
		role.ConfigMap{"color": role.Dimensions("region"), "plot3.color": role.Dimensions("product")})

	primary := mustLookup(t, set, "color")
	second := mustLookup(t, set, "plot2.color")
	third := mustLookup(t, set, "plot3.color")

	assert.True(t, primary.IsPrimary())
	assert.Same(t, primary, second.Primary())
	assert.Same(t, primary, second.SourceRole())
	assert.Same(t, primary.Grouping(), second.Grouping())
	assert.Nil(t, third.SourceRole())
	assert.Equal(t, []string{"product"}, third.Grouping().DimensionNames())
}

func TestBind_OptionsAndMultipleDimensions(t *testing.T) {
	reg := dimension.NewRegistry()
	yes, no := true, false
	set := bind(t, reg,
		[]role.Declaration{{Name: "series"}},
		role.ConfigMap{"series": role.WithOptions(role.Options{
			IsReversed:    &yes,
			LegendVisible: &no,
			Dimensions:    strPtr("region, product"),
		})})

	r := mustLookup(t, set, "series")
	assert.True(t, r.IsReversed())
	assert.False(t, r.LegendVisible())
	assert.Equal(t, []string{"region", "product"}, r.Grouping().DimensionNames())
	assert.Equal(t, []string{"region", "product"}, reg.Names())
	assert.Len(t, set.Bound(), 1)
}

func TestBind_UnknownDimensionLeavesRoleUnbound(t *testing.T) {
	reg := dimension.NewRegistry()
	b, err := role.NewBinder([]role.Declaration{{Name: "a"}},
		role.Context{Registry: reg, Config: role.ConfigMap{"a": role.Dimensions("dimA")}})
	require.NoError(t, err)
	require.NoError(t, b.Init())
	require.NoError(t, b.DimensionsFinished())

	set, err := b.Bind(dimension.NewRegistry().Finalize())
	require.NoError(t, err)
	assert.Equal(t, role.StateUnbound, mustLookup(t, set, "a").State())
}

func TestBinder_PhaseOrder(t *testing.T) {
	reg := dimension.NewRegistry()
	b, err := role.NewBinder([]role.Declaration{{Name: "a"}}, role.Context{Registry: reg})
	require.NoError(t, err)

	assert.True(t, errors.Is(b.DimensionsFinished(), errors.ErrCodePhaseOrder))
	_, err = b.Bind(reg.Finalize())
	assert.True(t, errors.Is(err, errors.ErrCodePhaseOrder))

	require.NoError(t, b.Init())
	assert.True(t, errors.Is(b.Init(), errors.ErrCodePhaseOrder))
}

func TestNewBinder_Validation(t *testing.T) {
	tests := []struct {
		name  string
		decls []role.Declaration
		ctx   role.Context
	}{
		{"nil registry", []role.Declaration{{Name: "a"}}, role.Context{}},
		{"empty name", []role.Declaration{{Name: ""}}, role.Context{Registry: dimension.NewRegistry()}},
		{"duplicate key", []role.Declaration{{Name: "a"}, {Name: "a"}}, role.Context{Registry: dimension.NewRegistry()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := role.NewBinder(tt.decls, tt.ctx)
			assert.Error(t, err)
		})
	}
}

func TestSet_CheckRequired(t *testing.T) {
	reg := dimension.NewRegistry()
	set := bind(t, reg,
		[]role.Declaration{{Name: "x", Required: true}, {Name: "y", Required: true}},
		role.ConfigMap{"x": role.Dimensions("dimX")})

	err := set.CheckRequired()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeRoleRequired))
	assert.True(t, strings.HasSuffix(err.Error(), "not bound: y"), err.Error())
}
