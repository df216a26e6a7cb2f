package dimension_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chartcore/pkg/dimension"
)

func TestRegistry_DefineIsIdempotent(t *testing.T) {
	r := dimension.NewRegistry()

	a, err := r.Define("dimA")
	require.NoError(t, err)
	again, err := r.Define("dimA")
	require.NoError(t, err)

	assert.Same(t, a, again) // the existing definition is returned
	assert.Equal(t, 1, r.Len())
	assert.True(t, r.Has("dimA"))
	assert.False(t, r.Has("dimB"))
}

func TestRegistry_DefineRejectsEmptyName(t *testing.T) {
	r := dimension.NewRegistry()
	_, err := r.Define("")
	assert.ErrorIs(t, err, dimension.ErrInvalidName)
}

func TestRegistry_DefineWithKeepsExistingMetadata(t *testing.T) {
	r := dimension.NewRegistry()
	_, err := r.DefineWith("dimA", dimension.Metadata{ValueType: dimension.ValueTypeDate})
	require.NoError(t, err)

	d, err := r.DefineWith("dimA", dimension.Metadata{ValueType: dimension.ValueTypeNumber})
	require.NoError(t, err)
	assert.Equal(t, dimension.ValueTypeDate, d.ValueType)
}

func TestRegistry_SetDefaultsFillsOnlyUnsetFields(t *testing.T) {
	r := dimension.NewRegistry()
	_, err := r.DefineWith("dimA", dimension.Metadata{Label: "Sales"})
	require.NoError(t, err)

	err = r.SetDefaults("dimA", dimension.Metadata{ValueType: dimension.ValueTypeNumber, Label: "ignored"})
	require.NoError(t, err)

	d, ok := r.Get("dimA")
	require.True(t, ok)
	assert.Equal(t, dimension.ValueTypeNumber, d.ValueType)
	assert.Equal(t, "Sales", d.Label)
}

func TestRegistry_SetDefaultsUnknownDimension(t *testing.T) {
	r := dimension.NewRegistry()
	err := r.SetDefaults("missing", dimension.Metadata{ValueType: dimension.ValueTypeNumber})
	assert.ErrorIs(t, err, dimension.ErrUnknownDimension)
}

func TestRegistry_MatchPrefixKeepsDiscoveryOrder(t *testing.T) {
	r := dimension.NewRegistry()
	for _, n := range []string{"dimA2", "other", "dimA1", "dimB"} {
		_, err := r.Define(n)
		require.NoError(t, err)
	}

	var names []string
	for _, d := range r.MatchPrefix("dimA") {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"dimA2", "dimA1"}, names)
	assert.Empty(t, r.MatchPrefix("zzz"))
}

func TestRegistry_FinalizeFreezes(t *testing.T) {
	r := dimension.NewRegistry()
	_, err := r.DefineWith("dimA", dimension.Metadata{ValueType: dimension.ValueTypeString})
	require.NoError(t, err)

	s := r.Finalize()
	assert.True(t, r.Finalized())

	_, err = r.Define("dimB")
	assert.ErrorIs(t, err, dimension.ErrFinalized)
	assert.ErrorIs(t, r.SetDefaults("dimA", dimension.Metadata{}), dimension.ErrFinalized)

	d, ok := s.Lookup("dimA")
	require.True(t, ok)
	assert.Equal(t, dimension.ValueTypeString, d.ValueType)
	assert.Equal(t, 0, d.Index())
	assert.Equal(t, []string{"dimA"}, s.Names())
	assert.Len(t, s.Dimensions(), 1)
}

func TestSchema_IsIsolatedFromRegistry(t *testing.T) {
	r := dimension.NewRegistry()
	orig, err := r.Define("dimA")
	require.NoError(t, err)

	s := r.Finalize()
	orig.Label = "mutated after finalize"

	d, _ := s.Lookup("dimA")
	assert.Empty(t, d.Label)
}

func TestParseValueType(t *testing.T) {
	tests := []struct {
		in      string
		want    dimension.ValueType
		wantErr bool
	}{
		{"number", dimension.ValueTypeNumber, false},
		{"Number", dimension.ValueTypeNumber, false},
		{" date ", dimension.ValueTypeDate, false},
		{"", dimension.ValueTypeUnset, false},
		{"currency", dimension.ValueTypeUnset, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := dimension.ParseValueType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, dimension.ErrUnknownValueType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetadata_IsZero(t *testing.T) {
	assert.True(t, dimension.Metadata{}.IsZero())
	assert.False(t, dimension.Metadata{Format: "0.00"}.IsZero())
}
