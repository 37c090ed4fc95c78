package weft

import "strings"

// Control is a mutable, stateful node in the persistent render tree.
// One control exists per materialized primitive view, and it survives
// reconciliation for as long as the view occupying its slot keeps the
// same shape. Widget authors implementing custom layout implement this
// directly instead of composing views.
//
// Propose negotiates size top-down: the parent offers an available size
// (either axis may be Inf) and the control answers with the size it
// resolves to, positioning its children in the same pass. Paint writes
// the control's own cells; the renderer then descends into Children in
// tree order, so descendants overwrite ancestors.
type Control interface {
	Propose(available Size) Size
	SetPosition(p Position)
	Position() Position
	Size() Size
	Paint(buf *Buffer, x, y int)
	Children() []Control
}

// Flexible is implemented by controls that want an even share of their
// stack's leftover space instead of an intrinsic size. Spacer is the
// canonical implementation.
type Flexible interface {
	Flexible() bool
}

// controlState tracks the control lifecycle. Transitions are synchronous
// and driven only by the reconcile/layout/render cycle.
type controlState uint8

const (
	controlUnbuilt controlState = iota
	controlBuilt
	controlUpdated
	controlDestroyed
)

// baseControl carries the geometry and lifecycle every control shares.
type baseControl struct {
	size  Size
	pos   Position
	state controlState
	token uint64
}

// SetPosition implements Control.
func (b *baseControl) SetPosition(p Position) { b.pos = p }

// Position implements Control.
func (b *baseControl) Position() Position { return b.pos }

// Size implements Control.
func (b *baseControl) Size() Size { return b.size }

// Children implements Control. Leaf controls have none.
func (b *baseControl) Children() []Control { return nil }

// setSize records a resolved size, clamping malformed (negative)
// requests to zero. Layout never aborts a frame.
func (b *baseControl) setSize(s Size) {
	b.size = s.Clamped()
}

// destroy marks the control and its subtree destroyed and releases
// child ownership.
func destroyControl(c Control) {
	for _, child := range c.Children() {
		destroyControl(child)
	}
	if lc, ok := c.(interface{ markDestroyed() }); ok {
		lc.markDestroyed()
	}
}

func (b *baseControl) markDestroyed() { b.state = controlDestroyed }

// textControl renders one or more lines of text.
type textControl struct {
	baseControl
	content string
	style   Style
	wrap    bool

	lines []string // resolved at propose time
}

// Propose computes the intrinsic text size, clipped to the offer.
func (t *textControl) Propose(available Size) Size {
	if t.wrap && available.Width.Finite() {
		t.lines = wrapText(t.content, available.Width.Int())
	} else {
		t.lines = strings.Split(t.content, "\n")
	}
	w := 0
	for _, l := range t.lines {
		if lw := DisplayWidth(l); lw > w {
			w = lw
		}
	}
	size := Size{
		Width:  MinExt(Ext(w), available.Width),
		Height: MinExt(Ext(len(t.lines)), available.Height),
	}
	t.setSize(size)
	return t.size
}

// Paint implements Control.
func (t *textControl) Paint(buf *Buffer, x, y int) {
	maxW := t.size.Width.Int()
	for i, line := range t.lines {
		if i >= t.size.Height.Int() {
			break
		}
		buf.WriteStringClipped(x, y+i, line, t.style, maxW)
	}
}

// spacerControl is invisible flexible space.
type spacerControl struct {
	baseControl
	minLength int
}

// Flexible implements Flexible.
func (s *spacerControl) Flexible() bool { return true }

// FlexMinimum implements FlexMinimum.
func (s *spacerControl) FlexMinimum() int { return s.minLength }

// Propose accepts whatever finite space it is offered; the enclosing
// stack decides the actual share and accounts the floor along its own
// axis. An unbounded axis collapses to zero, since there is nothing
// concrete to fill.
func (s *spacerControl) Propose(available Size) Size {
	w := available.Width
	h := available.Height
	if !w.Finite() {
		w = Ext(0)
	}
	if !h.Finite() {
		h = Ext(0)
	}
	s.setSize(Size{Width: w, Height: h})
	return s.size
}

// Paint implements Control. Spacers are invisible.
func (s *spacerControl) Paint(buf *Buffer, x, y int) {}

// emptyControl occupies no space and paints nothing.
type emptyControl struct {
	baseControl
}

// Propose implements Control.
func (e *emptyControl) Propose(available Size) Size {
	e.setSize(ZeroSize)
	return e.size
}

// Paint implements Control.
func (e *emptyControl) Paint(buf *Buffer, x, y int) {}

// paddingControl insets a single child on its active edges.
type paddingControl struct {
	baseControl
	edges Edges
	inset int
	child Control
}

func (p *paddingControl) insets() (left, right, top, bottom int) {
	if p.edges.Has(EdgeLeft) {
		left = p.inset
	}
	if p.edges.Has(EdgeRight) {
		right = p.inset
	}
	if p.edges.Has(EdgeTop) {
		top = p.inset
	}
	if p.edges.Has(EdgeBottom) {
		bottom = p.inset
	}
	return
}

// Propose offers the child the available size minus insets, then adds
// the insets back around the child's answer. A negative inner offer
// clamps to zero on that axis.
func (p *paddingControl) Propose(available Size) Size {
	left, right, top, bottom := p.insets()
	inner := Size{
		Width:  available.Width.Sub(Ext(left + right)).ClampZero(),
		Height: available.Height.Sub(Ext(top + bottom)).ClampZero(),
	}
	childSize := p.child.Propose(inner)
	p.child.SetPosition(Position{X: left, Y: top})
	p.setSize(Size{
		Width:  childSize.Width.Add(Ext(left + right)),
		Height: childSize.Height.Add(Ext(top + bottom)),
	})
	return p.size
}

// Paint implements Control. Padding itself is invisible.
func (p *paddingControl) Paint(buf *Buffer, x, y int) {}

// Children implements Control.
func (p *paddingControl) Children() []Control { return []Control{p.child} }

// frameControl clamps its child between explicit bounds, on the way down
// (the offer is clamped before the child sees it) and on the way up (the
// child's answer is clamped into [min, max]).
type frameControl struct {
	baseControl
	minW, maxW Extended
	minH, maxH Extended
	alignment  Alignment
	child      Control
}

// Propose implements Control.
func (f *frameControl) Propose(available Size) Size {
	offer := Size{
		Width:  available.Width.Clamp(f.minW, f.maxW),
		Height: available.Height.Clamp(f.minH, f.maxH),
	}
	childSize := f.child.Propose(offer)
	resolved := Size{
		Width:  childSize.Width.Clamp(f.minW, f.maxW).ClampZero(),
		Height: childSize.Height.Clamp(f.minH, f.maxH).ClampZero(),
	}
	// Where a bound forces the frame larger than the child, cap at what
	// was actually available so an Inf max doesn't leak upward.
	resolved.Width = MinExt(resolved.Width, MaxExt(available.Width, childSize.Width))
	resolved.Height = MinExt(resolved.Height, MaxExt(available.Height, childSize.Height))
	f.setSize(resolved)
	f.child.SetPosition(f.alignment.place(childSize, f.size))
	return f.size
}

// Paint implements Control.
func (f *frameControl) Paint(buf *Buffer, x, y int) {}

// Children implements Control.
func (f *frameControl) Children() []Control { return []Control{f.child} }

// backgroundControl fills the child's bounds before the child paints.
type backgroundControl struct {
	baseControl
	color Color
	child Control
}

// Propose implements Control.
func (bg *backgroundControl) Propose(available Size) Size {
	childSize := bg.child.Propose(available)
	bg.child.SetPosition(Position{})
	bg.setSize(childSize)
	return bg.size
}

// Paint fills the bounds; the child overwrites in tree order.
func (bg *backgroundControl) Paint(buf *Buffer, x, y int) {
	if !bg.size.Width.Finite() || !bg.size.Height.Finite() {
		return
	}
	cell := NewCell(' ', DefaultStyle().Background(bg.color))
	buf.FillRect(x, y, bg.size.Width.Int(), bg.size.Height.Int(), cell)
}

// Children implements Control.
func (bg *backgroundControl) Children() []Control { return []Control{bg.child} }

// borderControl draws a box and insets its child by one on every edge.
type borderControl struct {
	baseControl
	look  BorderStyle
	style Style
	child Control
}

// Propose implements Control.
func (bc *borderControl) Propose(available Size) Size {
	inner := Size{
		Width:  available.Width.Sub(Ext(2)).ClampZero(),
		Height: available.Height.Sub(Ext(2)).ClampZero(),
	}
	childSize := bc.child.Propose(inner)
	bc.child.SetPosition(Position{X: 1, Y: 1})
	bc.setSize(Size{
		Width:  childSize.Width.Add(Ext(2)),
		Height: childSize.Height.Add(Ext(2)),
	})
	return bc.size
}

// Paint implements Control.
func (bc *borderControl) Paint(buf *Buffer, x, y int) {
	if !bc.size.Width.Finite() || !bc.size.Height.Finite() {
		return
	}
	buf.DrawBorder(x, y, bc.size.Width.Int(), bc.size.Height.Int(), bc.look, bc.style)
}

// Children implements Control.
func (bc *borderControl) Children() []Control { return []Control{bc.child} }

// paintTree paints a control subtree in tree order: the control first,
// then its children left to right, each at its absolute position.
// Clipping happens in the buffer, so a terminal shrink mid-frame just
// drops the writes that no longer fit.
func paintTree(buf *Buffer, c Control, x, y int) {
	c.Paint(buf, x, y)
	for _, child := range c.Children() {
		p := child.Position()
		paintTree(buf, child, x+p.X, y+p.Y)
	}
}
