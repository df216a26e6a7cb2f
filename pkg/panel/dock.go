package panel

import (
	"math"

	"github.com/charmbracelet/log"
)

// childLayoutFunc lays out one child and returns its result.
type childLayoutFunc func(c *Panel, opts LayoutOptions) (LayoutResult, error)

// dock runs the dock-layout cycle of a panel with children.
type dock struct {
	owner  *Panel
	sides  []*Panel
	fills  []*Panel
	logger *log.Logger
	layout childLayoutFunc
}

func newDock(owner *Panel, logger *log.Logger) *dock {
	d := &dock{owner: owner, logger: logger, layout: layoutChild}
	for _, c := range owner.children {
		if c.Anchor.IsSide() {
			d.sides = append(d.sides, c)
		} else {
			d.fills = append(d.fills, c)
		}
	}
	return d
}

func layoutChild(c *Panel, opts LayoutOptions) (LayoutResult, error) {
	if err := c.Layout(nil, opts); err != nil {
		return LayoutResult{}, err
	}
	return c.result, nil
}

// attempt is the working state of one pass of the dock cycle.
type attempt struct {
	number     int
	clientSize Size
	remaining  Size
	margins    Insets
	pending    []*Panel
}

func newAttempt(number int, clientSize Size, children []*Panel) attempt {
	return attempt{
		number:     number,
		clientSize: clientSize,
		remaining:  clientSize,
		pending:    append([]*Panel(nil), children...),
	}
}

// last reports whether no further attempt is allowed after this one.
func (at attempt) last() bool { return at.number >= maxDockAttempts }

// outcome is how one attempt ended.
type outcome struct {
	// grow is the client growth requested by a child; zero when the attempt
	// completed.
	grow Size
	// placed holds the final geometry of every child.
	placed map[*Panel]LayoutResult
}

func (o outcome) restart() bool { return o.grow.Width > 0 || o.grow.Height > 0 }

// run docks the children into a client box of the given size and returns
// the client size finally used, which exceeds clientSize when children
// demanded more space, and the number of attempts made.
func (d *dock) run(clientSize Size) (Size, int, error) {
	for n := 1; ; n++ {
		at := newAttempt(n, clientSize, d.owner.children)
		out, err := d.pass(at)
		if err != nil {
			return Size{}, n, err
		}
		if !out.restart() {
			for c, res := range out.placed {
				c.result = res
			}
			return clientSize, n, nil
		}
		clientSize.Width += out.grow.Width
		clientSize.Height += out.grow.Height
	}
}

// pass lays out side children in order, then fill children, against the
// working state of one attempt.
func (d *dock) pass(at attempt) (outcome, error) {
	out := outcome{placed: make(map[*Panel]LayoutResult, len(at.pending))}

	for len(at.pending) > 0 {
		c := at.pending[0]
		at.pending = at.pending[1:]
		if !c.Anchor.IsSide() {
			continue
		}

		res, err := d.layoutWithPaddings(c, at.remaining)
		if err != nil {
			return outcome{}, err
		}

		a := c.Anchor.lengthAxis()
		if inc := res.SizeIncrease.Get(a); inc > epsilon {
			if !at.last() {
				out.grow.Set(a, inc)
				return out, nil
			}
			d.logger.Warn("dock attempts exhausted; growth ignored",
				"panel", c.Path(), "axis", a, "increase", inc)
		}

		res.Position = at.place(c, res.Size)
		out.placed[c] = res
	}

	for _, c := range d.fills {
		res, err := d.layoutWithPaddings(c, at.remaining)
		if err != nil {
			return outcome{}, err
		}
		for _, a := range axes {
			inc := res.SizeIncrease.Get(a)
			if inc <= epsilon {
				continue
			}
			if !at.last() {
				out.grow.Set(a, inc)
				continue
			}
			d.logger.Warn("dock attempts exhausted; growth ignored",
				"panel", c.Path(), "axis", a, "increase", inc)
		}
		if out.restart() {
			return out, nil
		}
		res.Position = Point{
			X: at.margins.Left + (at.remaining.Width-res.Size.Width)/2,
			Y: at.margins.Top + (at.remaining.Height-res.Size.Height)/2,
		}
		out.placed[c] = res
	}
	return out, nil
}

// layoutWithPaddings lays out c in the remaining box and honors padding
// requests from its content with a bounded child-local retry.
func (d *dock) layoutWithPaddings(c *Panel, remaining Size) (LayoutResult, error) {
	avail, ref := remaining, remaining
	opts := LayoutOptions{
		Force:         true,
		SizeAvailable: &avail,
		SizeRef:       &ref,
		CanChange:     true,
		Logger:        d.logger,
	}

	for n := 1; ; n++ {
		res, err := d.layout(c, opts)
		if err != nil {
			return LayoutResult{}, err
		}
		req := res.RequestPaddings
		if req == nil || req.within(res.Paddings, paddingTolerance) {
			return res, nil
		}
		if n >= maxPaddingAttempts {
			d.logger.Warn("padding attempts exhausted; request ignored", "panel", c.Path())
			return res, nil
		}
		p := *req
		opts.Paddings = &p
	}
}

// place positions a side child and consumes its length from the remaining
// box. Invisible children have zero size and consume nothing.
func (at *attempt) place(c *Panel, size Size) Point {
	var pos Point
	switch c.Anchor {
	case AnchorTop:
		pos = Point{X: at.alignOffset(c.Align, Horizontal, size), Y: at.margins.Top}
		at.margins.Top += size.Height
	case AnchorBottom:
		pos = Point{X: at.alignOffset(c.Align, Horizontal, size), Y: at.clientSize.Height - at.margins.Bottom - size.Height}
		at.margins.Bottom += size.Height
	case AnchorLeft:
		pos = Point{X: at.margins.Left, Y: at.alignOffset(c.Align, Vertical, size)}
		at.margins.Left += size.Width
	case AnchorRight:
		pos = Point{X: at.clientSize.Width - at.margins.Right - size.Width, Y: at.alignOffset(c.Align, Vertical, size)}
		at.margins.Right += size.Width
	}
	consumed := c.Anchor.lengthAxis().ortho()
	at.remaining.Set(consumed, math.Max(0, at.remaining.Get(consumed)-size.Get(consumed)))
	return pos
}

// alignOffset positions a child of the given size along a.
func (at *attempt) alignOffset(align Align, a Axis, size Size) float64 {
	start := at.margins.Left
	if a == Vertical {
		start = at.margins.Top
	}
	free := at.remaining.Get(a) - size.Get(a)
	switch align {
	case AlignStart:
		return start
	case AlignEnd:
		return start + free
	case AlignPageCenter:
		return (at.clientSize.Get(a) - size.Get(a)) / 2
	default:
		return start + free/2
	}
}
