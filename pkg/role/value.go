package role

import (
	"fmt"
	"strings"

	"github.com/matzehuels/chartcore/pkg/errors"
)

// ValueKind discriminates the configuration a user supplied for a role.
type ValueKind int

const (
	// ValueAbsent means no configuration at all.
	ValueAbsent ValueKind = iota
	// ValueNull explicitly binds the role to the null grouping.
	ValueNull
	// ValueDimensions is the bare-string shorthand for {dimensions: "..."}.
	ValueDimensions
	// ValueOptions is a structured configuration.
	ValueOptions
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueDimensions:
		return "dimensions"
	case ValueOptions:
		return "options"
	default:
		return "absent"
	}
}

// Options is the structured form of a role configuration.
type Options struct {
	IsReversed    *bool
	LegendVisible *bool

	// From names the role to source from. It takes precedence over Dimensions.
	From string

	// Dimensions is a dimension name, or several separated by commas.
	// nil means the key was absent.
	Dimensions *string

	// DimensionsNull records an explicit "dimensions: null".
	DimensionsNull bool
}

// Value is the closed union of role configurations:
// absent, null, a dimension-name string or structured Options.
//
// The zero value is Absent.
type Value struct {
	kind ValueKind
	dims string
	opts Options
}

// Absent returns the "no configuration" value.
func Absent() Value { return Value{} }

// Null returns the explicit null-grouping value.
func Null() Value { return Value{kind: ValueNull} }

// Dimensions returns the bare-string shorthand value.
func Dimensions(spec string) Value { return Value{kind: ValueDimensions, dims: spec} }

// WithOptions returns a structured value.
func WithOptions(o Options) Value { return Value{kind: ValueOptions, opts: o} }

// Kind returns the variant of v.
func (v Value) Kind() ValueKind { return v.kind }

// Options returns v normalized to its structured form.
func (v Value) Options() Options {
	switch v.kind {
	case ValueNull:
		return Options{DimensionsNull: true}
	case ValueDimensions:
		s := v.dims
		return Options{Dimensions: &s}
	case ValueOptions:
		return v.opts
	default:
		return Options{}
	}
}

// ParseValue converts loosely-typed configuration, as decoded from JSON, TOML
// or HCL, into a Value:
//   - nil becomes Null
//   - a string becomes the Dimensions shorthand
//   - a map becomes Options; recognized keys are isReversed, legendVisible,
//     legend.visible, from and dimensions (string or nil). The key null set to
//     true stands for Null in formats that have no null literal.
//
// Unrecognized map keys are ignored. Wrongly typed values are configuration
// errors.
func ParseValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return Value{}, errors.New(errors.ErrCodeInvalidConfig, "role dimensions cannot be empty")
		}
		return Dimensions(v), nil
	case map[string]any:
		return parseOptions(v)
	default:
		return Value{}, errors.New(errors.ErrCodeInvalidConfig, "unsupported role configuration of type %T", raw)
	}
}

func parseOptions(m map[string]any) (Value, error) {
	if isNull, ok := m["null"].(bool); ok && isNull {
		return Null(), nil
	}

	var o Options
	var err error
	if o.IsReversed, err = optionalBool(m, "isReversed"); err != nil {
		return Value{}, err
	}
	if o.LegendVisible, err = optionalBool(m, "legendVisible"); err != nil {
		return Value{}, err
	}
	if legend, ok := m["legend"]; ok {
		lm, ok := legend.(map[string]any)
		if !ok {
			return Value{}, errors.New(errors.ErrCodeInvalidConfig, "legend must be an object, got %T", legend)
		}
		visible, err := optionalBool(lm, "visible")
		if err != nil {
			return Value{}, err
		}
		if visible != nil {
			o.LegendVisible = visible
		}
	}

	if from, ok := m["from"]; ok && from != nil {
		s, ok := from.(string)
		if !ok {
			return Value{}, errors.New(errors.ErrCodeInvalidConfig, "from must be a role name, got %T", from)
		}
		o.From = strings.TrimSpace(s)
	}

	if dims, ok := m["dimensions"]; ok {
		switch d := dims.(type) {
		case nil:
			o.DimensionsNull = true
		case string:
			if strings.TrimSpace(d) == "" {
				return Value{}, errors.New(errors.ErrCodeInvalidConfig, "role dimensions cannot be empty")
			}
			o.Dimensions = &d
		default:
			return Value{}, errors.New(errors.ErrCodeInvalidConfig, "dimensions must be a string or null, got %T", dims)
		}
	}

	return WithOptions(o), nil
}

func optionalBool(m map[string]any, key string) (*bool, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s must be a boolean, got %T", key, raw)
	}
	return &b, nil
}

// splitDimensionNames parses a comma-separated grouping specification.
func splitDimensionNames(spec string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(spec, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			return nil, fmt.Errorf("empty dimension name in %q", spec)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}
