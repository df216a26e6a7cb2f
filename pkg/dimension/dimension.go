package dimension

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFinalized is returned when a registry is mutated after Finalize.
	ErrFinalized = errors.New("dimension registry is finalized")

	// ErrUnknownDimension is returned by [Registry.SetDefaults] when the
	// named dimension has not been defined.
	ErrUnknownDimension = errors.New("unknown dimension")

	// ErrInvalidName is returned by [Registry.Define] for an empty name.
	ErrInvalidName = errors.New("dimension name must not be empty")

	// ErrUnknownValueType is returned by [ParseValueType].
	ErrUnknownValueType = errors.New("unknown value type")
)

// ValueType tags the kind of values a dimension holds.
// The zero value means the type has not been decided yet.
type ValueType string

// Known value types.
const (
	ValueTypeUnset   ValueType = ""
	ValueTypeAny     ValueType = "any"
	ValueTypeString  ValueType = "string"
	ValueTypeNumber  ValueType = "number"
	ValueTypeDate    ValueType = "date"
	ValueTypeBoolean ValueType = "boolean"
)

var valueTypes = map[string]ValueType{
	"":        ValueTypeUnset,
	"any":     ValueTypeAny,
	"string":  ValueTypeString,
	"number":  ValueTypeNumber,
	"date":    ValueTypeDate,
	"boolean": ValueTypeBoolean,
}

// ParseValueType converts a case-insensitive name into a ValueType.
func ParseValueType(s string) (ValueType, error) {
	if vt, ok := valueTypes[strings.ToLower(strings.TrimSpace(s))]; ok {
		return vt, nil
	}
	return ValueTypeUnset, fmt.Errorf("%w: %q", ErrUnknownValueType, s)
}

// Metadata describes a dimension. Role declarations carry a Metadata value as
// their dimension defaults.
type Metadata struct {
	ValueType ValueType `json:"valueType,omitempty"`
	Label     string    `json:"label,omitempty"`
	Format    string    `json:"format,omitempty"`
}

// IsZero reports whether no field is set.
func (m Metadata) IsZero() bool {
	return m == Metadata{}
}

// withDefaults returns m with every unset field taken from d.
func (m Metadata) withDefaults(d Metadata) Metadata {
	if m.ValueType == ValueTypeUnset {
		m.ValueType = d.ValueType
	}
	if m.Label == "" {
		m.Label = d.Label
	}
	if m.Format == "" {
		m.Format = d.Format
	}
	return m
}

// Dimension is a named slot for data values.
type Dimension struct {
	Name string
	Metadata

	index int
}

// Index returns the discovery position of the dimension in its registry.
func (d *Dimension) Index() int { return d.index }

// String returns the dimension name.
func (d *Dimension) String() string { return d.Name }
