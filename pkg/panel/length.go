package panel

import (
	"fmt"
	"math"
	"strconv"
)

// Unit is the unit of a [Length].
type Unit uint8

const (
	// UnitAuto marks an unset length. It is the zero value.
	UnitAuto Unit = iota
	// UnitAbsolute is a length in output units (pixels).
	UnitAbsolute
	// UnitPercent is a percentage of a reference length.
	UnitPercent
)

// Length is an absolute or percentage length. The zero value is auto.
type Length struct {
	Value float64
	Unit  Unit
}

// Abs returns an absolute length.
func Abs(v float64) Length { return Length{Value: v, Unit: UnitAbsolute} }

// Percent returns a length of pct percent of the reference (Percent(25) is 25%).
func Percent(pct float64) Length { return Length{Value: pct, Unit: UnitPercent} }

// Auto returns the unset length.
func Auto() Length { return Length{} }

// IsAuto reports whether l is unset.
func (l Length) IsAuto() bool { return l.Unit == UnitAuto }

// IsPercent reports whether l is relative to a reference length.
func (l Length) IsPercent() bool { return l.Unit == UnitPercent }

// Resolve returns the length in absolute units against ref. Auto resolves to
// (0, false).
func (l Length) Resolve(ref float64) (float64, bool) {
	switch l.Unit {
	case UnitAbsolute:
		return l.Value, true
	case UnitPercent:
		return l.Value / 100 * ref, true
	default:
		return 0, false
	}
}

// fraction is the share of the reference a percentage length takes.
func (l Length) fraction() float64 {
	if l.Unit != UnitPercent {
		return 0
	}
	return l.Value / 100
}

func (l Length) String() string {
	switch l.Unit {
	case UnitAbsolute:
		return strconv.FormatFloat(l.Value, 'f', -1, 64)
	case UnitPercent:
		return strconv.FormatFloat(l.Value, 'f', -1, 64) + "%"
	default:
		return "auto"
	}
}

// MarshalText renders the length in the syntax accepted by [ParseLength].
func (l Length) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText parses the syntax accepted by [ParseLength].
func (l *Length) UnmarshalText(b []byte) error {
	v, err := ParseLength(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Axis selects the horizontal or vertical dimension of a box.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "height"
	}
	return "width"
}

// ortho returns the other axis.
func (a Axis) ortho() Axis { return 1 - a }

var axes = [2]Axis{Horizontal, Vertical}

// Size is a resolved width and height.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Get returns the length of s along a.
func (s Size) Get(a Axis) float64 {
	if a == Vertical {
		return s.Height
	}
	return s.Width
}

// Set sets the length of s along a.
func (s *Size) Set(a Axis, v float64) {
	if a == Vertical {
		s.Height = v
	} else {
		s.Width = v
	}
}

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.Width, s.Height) }

// Point is a position relative to the parent's client box.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dims is a declared width and height, each possibly auto or a percentage.
type Dims struct {
	Width  Length
	Height Length
}

// Get returns the declared length along a.
func (d Dims) Get(a Axis) Length {
	if a == Vertical {
		return d.Height
	}
	return d.Width
}

// Sides holds declared lengths for the four sides of a box.
// Left and right resolve against the reference width, top and bottom against
// the reference height.
type Sides struct {
	Top    Length
	Right  Length
	Bottom Length
	Left   Length
}

// Uniform returns Sides with the same length on every side.
func Uniform(l Length) Sides { return Sides{Top: l, Right: l, Bottom: l, Left: l} }

// resolve converts s to absolute insets against ref. Auto sides are zero.
func (s Sides) resolve(ref Size) Insets {
	v := func(l Length, r float64) float64 {
		x, _ := l.Resolve(r)
		return x
	}
	return Insets{
		Top:    v(s.Top, ref.Height),
		Right:  v(s.Right, ref.Width),
		Bottom: v(s.Bottom, ref.Height),
		Left:   v(s.Left, ref.Width),
	}
}

// fraction returns the summed percentage share of s along a.
func (s Sides) fraction(a Axis) float64 {
	if a == Vertical {
		return s.Top.fraction() + s.Bottom.fraction()
	}
	return s.Left.fraction() + s.Right.fraction()
}

func (s Sides) String() string {
	return fmt.Sprintf("%s %s %s %s", s.Top, s.Right, s.Bottom, s.Left)
}

// MarshalText renders s in the four-value form of [ParseSides].
func (s Sides) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText parses the shorthand accepted by [ParseSides].
func (s *Sides) UnmarshalText(b []byte) error {
	v, err := ParseSides(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Insets are resolved side lengths.
type Insets struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Along returns the summed insets along a.
func (in Insets) Along(a Axis) float64 {
	if a == Vertical {
		return in.Top + in.Bottom
	}
	return in.Left + in.Right
}

// Sum returns the total insets per axis.
func (in Insets) Sum() Size {
	return Size{Width: in.Along(Horizontal), Height: in.Along(Vertical)}
}

func (in Insets) add(v float64) Insets {
	return Insets{Top: in.Top + v, Right: in.Right + v, Bottom: in.Bottom + v, Left: in.Left + v}
}

func (in Insets) plus(o Insets) Insets {
	return Insets{Top: in.Top + o.Top, Right: in.Right + o.Right, Bottom: in.Bottom + o.Bottom, Left: in.Left + o.Left}
}

// within reports whether every side of in differs from o by at most tol.
func (in Insets) within(o Insets, tol float64) bool {
	return math.Abs(in.Top-o.Top) <= tol &&
		math.Abs(in.Right-o.Right) <= tol &&
		math.Abs(in.Bottom-o.Bottom) <= tol &&
		math.Abs(in.Left-o.Left) <= tol
}
