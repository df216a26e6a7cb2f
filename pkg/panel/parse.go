package panel

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	lengthLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n,]+`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)`},
		{Name: "Unit", Pattern: `%|px`},
		{Name: "Ident", Pattern: `[A-Za-z]+`},
	})

	lengthParser = participle.MustBuild[lengthExpr](
		participle.Lexer(lengthLexer),
		participle.Elide("Whitespace"),
	)

	sidesParser = participle.MustBuild[sidesExpr](
		participle.Lexer(lengthLexer),
		participle.Elide("Whitespace"),
	)
)

type lengthExpr struct {
	Auto   bool     `parser:"  @'auto'"`
	Number *float64 `parser:"| @Number"`
	Unit   string   `parser:"  @Unit?"`
}

type sidesExpr struct {
	Lengths []*lengthExpr `parser:"@@+"`
}

func (e *lengthExpr) length() (Length, error) {
	if e.Auto || e.Number == nil {
		return Auto(), nil
	}
	if *e.Number < 0 {
		return Length{}, fmt.Errorf("negative length %g", *e.Number)
	}
	if e.Unit == "%" {
		return Percent(*e.Number), nil
	}
	return Abs(*e.Number), nil
}

// ParseLength parses "120", "120px", "25%" or "auto". The empty string is auto.
func ParseLength(s string) (Length, error) {
	if strings.TrimSpace(s) == "" {
		return Auto(), nil
	}
	expr, err := lengthParser.ParseString("", s)
	if err != nil {
		return Length{}, fmt.Errorf("parse length %q: %w", s, err)
	}
	l, err := expr.length()
	if err != nil {
		return Length{}, fmt.Errorf("parse length %q: %w", s, err)
	}
	return l, nil
}

// ParseSides parses a shorthand of one to four lengths, in the order used by
// CSS box properties:
//
//	"5"           all sides
//	"5 10%"       top/bottom, left/right
//	"5 10% 0"     top, left/right, bottom
//	"5 10% 0 2"   top, right, bottom, left
//
// Commas may be used in place of spaces.
func ParseSides(s string) (Sides, error) {
	if strings.TrimSpace(s) == "" {
		return Sides{}, nil
	}
	expr, err := sidesParser.ParseString("", s)
	if err != nil {
		return Sides{}, fmt.Errorf("parse sides %q: %w", s, err)
	}
	if n := len(expr.Lengths); n > 4 {
		return Sides{}, fmt.Errorf("parse sides %q: want 1 to 4 lengths, got %d", s, n)
	}
	ls := make([]Length, len(expr.Lengths))
	for i, e := range expr.Lengths {
		if ls[i], err = e.length(); err != nil {
			return Sides{}, fmt.Errorf("parse sides %q: %w", s, err)
		}
	}
	switch len(ls) {
	case 1:
		return Uniform(ls[0]), nil
	case 2:
		return Sides{Top: ls[0], Right: ls[1], Bottom: ls[0], Left: ls[1]}, nil
	case 3:
		return Sides{Top: ls[0], Right: ls[1], Bottom: ls[2], Left: ls[1]}, nil
	default:
		return Sides{Top: ls[0], Right: ls[1], Bottom: ls[2], Left: ls[3]}, nil
	}
}
