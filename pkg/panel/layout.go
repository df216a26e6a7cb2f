package panel

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartcore/pkg/errors"
)

const (
	// maxDockAttempts bounds the outer dock-layout cycle.
	maxDockAttempts = 5
	// maxPaddingAttempts bounds the child-local padding retry.
	maxPaddingAttempts = 4
	// maxGrowthIterations bounds how often a panel grows to fit its content.
	maxGrowthIterations = 5
	// paddingTolerance is the difference below which a padding request is
	// considered already satisfied.
	paddingTolerance = 0.1
	// epsilon absorbs floating point noise in size comparisons.
	epsilon = 1e-9
)

// State is the layout state of a panel.
type State uint8

const (
	StateUncomputed State = iota
	StateComputing
	StateComputed
)

func (s State) String() string {
	switch s {
	case StateComputing:
		return "computing"
	case StateComputed:
		return "computed"
	default:
		return "uncomputed"
	}
}

// MeasureRequest is what a leaf panel's Measurer is asked to fill.
type MeasureRequest struct {
	// ClientSize is the content box currently available.
	ClientSize Size
	// MinClient and MaxClient bound the content box implied by the panel's
	// min and max sizes. MaxClient is +Inf along unbounded axes.
	MinClient Size
	MaxClient Size
	// Paddings are the paddings in effect.
	Paddings Insets
}

// Measurement is a leaf's answer to a MeasureRequest.
type Measurement struct {
	// Size is the demanded content size.
	Size Size
	// RequestPaddings asks the parent for different paddings, e.g. when
	// labels overflow the content box. nil keeps the current paddings.
	RequestPaddings *Insets
}

// Measurer computes the content size a leaf panel demands.
type Measurer interface {
	Measure(req MeasureRequest) Measurement
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(req MeasureRequest) Measurement

// Measure implements Measurer.
func (f MeasureFunc) Measure(req MeasureRequest) Measurement { return f(req) }

// Fixed returns a Measurer that always demands the given content size.
func Fixed(width, height float64) Measurer {
	return MeasureFunc(func(MeasureRequest) Measurement {
		return Measurement{Size: Size{Width: width, Height: height}}
	})
}

// LayoutOptions controls a single Layout call.
type LayoutOptions struct {
	// Force recomputes an already computed layout.
	Force bool

	// SizeAvailable is the space offered by the caller. A root panel without
	// it must declare absolute width and height.
	SizeAvailable *Size

	// SizeRef is the reference for percentage lengths. Defaults to
	// SizeAvailable, or to the declared size of a root.
	SizeRef *Size

	// Margins and Paddings replace the resolved declared values.
	Margins  *Insets
	Paddings *Insets

	// CanChange allows the panel to report padding requests from its content.
	CanChange bool

	// Logger receives soft overflow warnings. nil discards them.
	Logger *log.Logger
}

func (o LayoutOptions) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// LayoutResult is the geometry computed for one panel.
type LayoutResult struct {
	// Size is the outer size including margins, paddings and border.
	Size Size `json:"size"`
	// ClientSize is the content box: Size minus margins and paddings.
	ClientSize Size `json:"client_size"`
	// ContentSize is what the content demanded at the final iteration.
	ContentSize Size `json:"content_size"`
	// Margins and Paddings are resolved, border included.
	Margins  Insets `json:"margins"`
	Paddings Insets `json:"paddings"`
	// Position is the offset inside the parent's client box.
	Position Point `json:"position"`
	// SizeIncrease is how much Size exceeds the available size per axis.
	SizeIncrease Size `json:"size_increase"`
	// RequestPaddings is the padding change asked for by the content, when
	// the layout allowed changes.
	RequestPaddings *Insets `json:"request_paddings,omitempty"`
	// Attempts counts dock-cycle attempts of the final iteration (0 for leaves).
	Attempts int  `json:"attempts"`
	Visible  bool `json:"visible"`
}

// State returns the layout state of p.
func (p *Panel) State() State { return p.state }

// Result returns the last computed layout. ok is false until p is computed.
func (p *Panel) Result() (LayoutResult, bool) {
	if p.state != StateComputed {
		return LayoutResult{}, false
	}
	return p.result, true
}

// InvalidateLayout discards the layout of p and all its descendants.
func (p *Panel) InvalidateLayout() {
	p.Walk(func(q *Panel, _ int) bool {
		q.state = StateUncomputed
		q.result = LayoutResult{}
		return true
	})
}

// Layout computes the geometry of p and its subtree.
//
// available overrides opts.SizeAvailable when non-nil. Laying out a computed
// panel is a no-op unless opts.Force is set.
func (p *Panel) Layout(available *Size, opts LayoutOptions) error {
	if available != nil {
		opts.SizeAvailable = available
	}
	switch p.state {
	case StateComputing:
		return errors.Wrap(errors.ErrCodeInternal, ErrReentrantLayout, "layout %s", p.Path())
	case StateComputed:
		if !opts.Force {
			return nil
		}
	}

	p.state = StateComputing
	res, err := p.compute(opts)
	if err != nil {
		p.state = StateUncomputed
		p.result = LayoutResult{}
		return err
	}
	p.result = res
	p.state = StateComputed
	return nil
}

// box is the resolved declared geometry of a panel for one reference size.
type box struct {
	min, max Size
	margins  Insets
	paddings Insets
	pct      [2]float64 // percentage share of margins and paddings per axis
}

func (p *Panel) compute(opts LayoutOptions) (LayoutResult, error) {
	avail, ref, err := p.references(opts)
	if err != nil {
		return LayoutResult{}, err
	}

	var size Size
	for _, a := range axes {
		size.Set(a, p.initialLength(a, avail, ref))
	}

	b := p.resolveBox(ref, opts)
	size = clamp(size, b.min, b.max)

	var (
		refGrowth Size
		client    Size
		content   Size
		request   *Insets
		attempts  int
	)
	for iter := 0; ; iter++ {
		grownRef := Size{Width: ref.Width + refGrowth.Width, Height: ref.Height + refGrowth.Height}
		b = p.resolveBox(grownRef, opts)
		spaces := b.margins.plus(b.paddings).Sum()
		client = Size{
			Width:  math.Max(0, size.Width-spaces.Width),
			Height: math.Max(0, size.Height-spaces.Height),
		}

		req := MeasureRequest{
			ClientSize: client,
			MinClient: Size{
				Width:  math.Max(0, b.min.Width-spaces.Width),
				Height: math.Max(0, b.min.Height-spaces.Height),
			},
			MaxClient: Size{Width: b.max.Width - spaces.Width, Height: b.max.Height - spaces.Height},
			Paddings:  b.paddings,
		}
		content, request, attempts, err = p.measure(req, opts)
		if err != nil {
			return LayoutResult{}, err
		}

		grew := false
		for _, a := range axes {
			excess := content.Get(a) - client.Get(a)
			if excess <= epsilon || iter >= maxGrowthIterations {
				continue
			}
			if b.pct[a] >= 1 {
				continue
			}
			next := math.Min(size.Get(a)+excess/(1-b.pct[a]), b.max.Get(a))
			delta := next - size.Get(a)
			if delta <= epsilon {
				continue
			}
			size.Set(a, next)
			refGrowth.Set(a, refGrowth.Get(a)+delta)
			grew = true
		}
		if !grew {
			break
		}
	}

	for _, a := range axes {
		if over := content.Get(a) - client.Get(a); over > epsilon {
			opts.logger().Warn("content overflows panel", "panel", p.Path(), "axis", a, "overflow", over)
		}
	}

	res := LayoutResult{
		Size:        size,
		ClientSize:  client,
		ContentSize: content,
		Margins:     b.margins,
		Paddings:    b.paddings,
		Attempts:    attempts,
		Visible:     client.Width > 0 && client.Height > 0,
	}
	if opts.CanChange && request != nil {
		r := *request
		res.RequestPaddings = &r
	}
	if !res.Visible {
		res.Size = Size{}
		res.ClientSize = Size{}
	}
	res.SizeIncrease = Size{
		Width:  math.Max(0, res.Size.Width-avail.Width),
		Height: math.Max(0, res.Size.Height-avail.Height),
	}
	return res, nil
}

// references returns the available and reference sizes of a layout call.
// Without an available size the declared size is used, which then has to be
// absolute on both axes.
func (p *Panel) references(opts LayoutOptions) (avail, ref Size, err error) {
	if opts.SizeAvailable != nil {
		avail = *opts.SizeAvailable
	} else {
		for _, a := range axes {
			l := p.Size.Get(a)
			if l.Unit != UnitAbsolute {
				return Size{}, Size{}, errors.New(errors.ErrCodeGeometry,
					"panel %s: %s is %s and no available size was given", p.Path(), a, l)
			}
			avail.Set(a, l.Value)
		}
	}
	ref = avail
	if opts.SizeRef != nil {
		ref = *opts.SizeRef
	}
	return avail, ref, nil
}

// initialLength is the length of p along a before content growth. Auto
// lengths take the available space, except the axis a side panel consumes
// from its parent, which starts empty and grows to its content.
func (p *Panel) initialLength(a Axis, avail, ref Size) float64 {
	if v, ok := p.Size.Get(a).Resolve(ref.Get(a)); ok {
		return v
	}
	if p.Anchor.IsSide() && p.parent != nil && a == p.Anchor.lengthAxis().ortho() {
		return 0
	}
	return avail.Get(a)
}

func (p *Panel) resolveBox(ref Size, opts LayoutOptions) box {
	var b box
	for _, a := range axes {
		lo, _ := p.MinSize.Get(a).Resolve(ref.Get(a))
		hi, ok := p.MaxSize.Get(a).Resolve(ref.Get(a))
		if !ok {
			hi = math.Inf(1)
		}
		b.min.Set(a, lo)
		b.max.Set(a, math.Max(lo, hi))
	}

	half := p.BorderWidth / 2
	if opts.Margins != nil {
		b.margins = *opts.Margins
	} else {
		b.margins = p.Margins.resolve(ref).add(half)
		b.pct[Horizontal] += p.Margins.fraction(Horizontal)
		b.pct[Vertical] += p.Margins.fraction(Vertical)
	}
	if opts.Paddings != nil {
		b.paddings = *opts.Paddings
	} else {
		b.paddings = p.Paddings.resolve(ref).add(half)
		b.pct[Horizontal] += p.Paddings.fraction(Horizontal)
		b.pct[Vertical] += p.Paddings.fraction(Vertical)
	}
	return b
}

func clamp(s, lo, hi Size) Size {
	return Size{
		Width:  math.Min(math.Max(s.Width, lo.Width), hi.Width),
		Height: math.Min(math.Max(s.Height, lo.Height), hi.Height),
	}
}

// measure runs the content step: the dock cycle for a panel with children,
// the Measurer for a leaf.
func (p *Panel) measure(req MeasureRequest, opts LayoutOptions) (Size, *Insets, int, error) {
	if !p.IsLeaf() {
		d := newDock(p, opts.logger())
		size, attempts, err := d.run(req.ClientSize)
		return size, nil, attempts, err
	}
	if p.Measurer == nil {
		return req.ClientSize, nil, 0, nil
	}
	m := p.Measurer.Measure(req)
	return m.Size, m.RequestPaddings, 0, nil
}
