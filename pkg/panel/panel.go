package panel

import (
	"errors"
	"fmt"
	"strings"
)

// Anchor is the side a panel docks to inside its parent, or fill.
type Anchor uint8

const (
	AnchorFill Anchor = iota
	AnchorTop
	AnchorBottom
	AnchorLeft
	AnchorRight
)

var anchorNames = map[Anchor]string{
	AnchorFill:   "fill",
	AnchorTop:    "top",
	AnchorBottom: "bottom",
	AnchorLeft:   "left",
	AnchorRight:  "right",
}

func (a Anchor) String() string {
	if s, ok := anchorNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Anchor(%d)", uint8(a))
}

// ParseAnchor parses an anchor name. The empty string is fill.
func ParseAnchor(s string) (Anchor, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AnchorFill, nil
	}
	for a, name := range anchorNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAnchor, s)
}

// IsSide reports whether a docks to a side.
func (a Anchor) IsSide() bool { return a != AnchorFill }

// lengthAxis is the axis parallel to the docked side: the length a side
// panel spans. Its orthogonal axis is the one it consumes from its parent.
func (a Anchor) lengthAxis() Axis {
	if a == AnchorLeft || a == AnchorRight {
		return Vertical
	}
	return Horizontal
}

// Align positions a side panel along the length of its side.
type Align uint8

const (
	AlignCenter Align = iota
	AlignStart
	AlignEnd
	// AlignPageCenter centers against the parent's whole client box instead of
	// the space remaining after earlier siblings docked.
	AlignPageCenter
)

var alignNames = map[Align]string{
	AlignCenter:     "center",
	AlignStart:      "start",
	AlignEnd:        "end",
	AlignPageCenter: "page-center",
}

func (a Align) String() string {
	if s, ok := alignNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Align(%d)", uint8(a))
}

// ParseAlign parses an alignment name. The empty string is center.
func ParseAlign(s string) (Align, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AlignCenter, nil
	}
	for a, name := range alignNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlign, s)
}

var (
	// ErrReentrantLayout is returned when Layout is called on a panel whose
	// layout is already in progress.
	ErrReentrantLayout = errors.New("panel: re-entrant layout")

	// ErrAttached is returned by [Panel.Add] for a panel that already has a
	// parent or is an ancestor of the receiver.
	ErrAttached = errors.New("panel: already attached")

	// ErrUnknownAnchor is returned by [ParseAnchor].
	ErrUnknownAnchor = errors.New("unknown anchor")

	// ErrUnknownAlign is returned by [ParseAlign].
	ErrUnknownAlign = errors.New("unknown align")
)

// Panel is a node of the layout tree.
//
// The exported fields are the declared constraints. Changing them, or the
// children, after a layout requires [Panel.InvalidateLayout].
type Panel struct {
	Name   string
	Anchor Anchor
	Align  Align

	Size    Dims
	MinSize Dims
	MaxSize Dims

	Margins     Sides
	Paddings    Sides
	BorderWidth float64

	// Measurer demands a content size for a leaf panel. nil means the leaf
	// takes whatever client box it is given.
	Measurer Measurer

	parent   *Panel
	children []*Panel

	state  State
	result LayoutResult
}

// New returns an empty fill panel.
func New(name string) *Panel {
	return &Panel{Name: name}
}

// Add appends children in docking order.
func (p *Panel) Add(children ...*Panel) error {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.parent != nil || c.isAncestorOf(p) {
			return fmt.Errorf("%w: %q", ErrAttached, c.Name)
		}
		c.parent = p
		p.children = append(p.children, c)
	}
	p.InvalidateLayout()
	return nil
}

// MustAdd is like Add but panics on error.
func (p *Panel) MustAdd(children ...*Panel) *Panel {
	if err := p.Add(children...); err != nil {
		panic(err)
	}
	return p
}

func (p *Panel) isAncestorOf(q *Panel) bool {
	for cur := q; cur != nil; cur = cur.parent {
		if cur == p {
			return true
		}
	}
	return false
}

// Parent returns the parent panel, or nil for a root.
func (p *Panel) Parent() *Panel { return p.parent }

// Children returns the children in docking order.
func (p *Panel) Children() []*Panel {
	out := make([]*Panel, len(p.children))
	copy(out, p.children)
	return out
}

// IsLeaf reports whether p has no children.
func (p *Panel) IsLeaf() bool { return len(p.children) == 0 }

// Walk visits p and its descendants depth-first, parents before children.
// Returning false from fn skips the panel's children.
func (p *Panel) Walk(fn func(p *Panel, depth int) bool) {
	p.walk(fn, 0)
}

func (p *Panel) walk(fn func(*Panel, int) bool, depth int) {
	if !fn(p, depth) {
		return
	}
	for _, c := range p.children {
		c.walk(fn, depth+1)
	}
}

// Count returns the number of panels in the subtree rooted at p.
func (p *Panel) Count() int {
	n := 0
	p.Walk(func(*Panel, int) bool { n++; return true })
	return n
}

// Path returns the slash-separated names from the root to p.
func (p *Panel) Path() string {
	var parts []string
	for cur := p; cur != nil; cur = cur.parent {
		parts = append(parts, cur.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

func (p *Panel) String() string {
	return fmt.Sprintf("panel %q (%s)", p.Name, p.Anchor)
}
