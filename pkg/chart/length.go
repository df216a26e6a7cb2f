package chart

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Length is a length or sides shorthand as written in a chart file. Files may
// use a bare number for pixels or a string such as "25%" or "5 10%".
type Length string

// Px returns the Length of an absolute number of pixels.
func Px(v float64) Length { return Length(strconv.FormatFloat(v, 'f', -1, 64)) }

// UnmarshalJSON accepts a JSON number or string.
func (l *Length) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return l.set(v)
}

// UnmarshalTOML accepts a TOML integer, float or string.
func (l *Length) UnmarshalTOML(v any) error { return l.set(v) }

func (l *Length) set(v any) error {
	switch x := v.(type) {
	case nil:
		*l = ""
	case string:
		*l = Length(x)
	case float64:
		*l = Px(x)
	case int64:
		*l = Length(strconv.FormatInt(x, 10))
	default:
		return fmt.Errorf("length must be a number or string, got %T", v)
	}
	return nil
}
