package weft

// Size is a width and height in character cells. Either axis may be
// infinite, meaning the axis is unconstrained.
type Size struct {
	Width  Extended
	Height Extended
}

// ZeroSize is the additive identity for stacking.
var ZeroSize = Size{}

// SizeOf returns a finite size.
func SizeOf(w, h int) Size {
	return Size{Width: Ext(w), Height: Ext(h)}
}

// IsZero reports whether both axes are zero.
func (s Size) IsZero() bool {
	return s == ZeroSize
}

// Union returns the per-axis maximum of s and o.
func (s Size) Union(o Size) Size {
	return Size{
		Width:  MaxExt(s.Width, o.Width),
		Height: MaxExt(s.Height, o.Height),
	}
}

// Clamped limits both axes to be non-negative.
func (s Size) Clamped() Size {
	return Size{Width: s.Width.ClampZero(), Height: s.Height.ClampZero()}
}

// Position is a cell coordinate, relative to the parent control unless
// stated otherwise. (0,0) is top-left.
type Position struct {
	X, Y int
}

// Offset returns p moved by dx, dy.
func (p Position) Offset(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Add returns the component-wise sum of two positions.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Edges is a bit-set of the four sides of a rectangle.
type Edges uint8

const (
	EdgeTop Edges = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight

	EdgesHorizontal = EdgeLeft | EdgeRight
	EdgesVertical   = EdgeTop | EdgeBottom
	EdgesAll        = EdgesHorizontal | EdgesVertical
)

// Has reports whether all edges in q are present in e.
func (e Edges) Has(q Edges) bool {
	return e&q == q
}

// Union returns the edges present in either set.
func (e Edges) Union(o Edges) Edges {
	return e | o
}

// Intersect returns the edges present in both sets.
func (e Edges) Intersect(o Edges) Edges {
	return e & o
}

// HorizontalAlignment places content along the x axis.
type HorizontalAlignment uint8

const (
	AlignLeading HorizontalAlignment = iota
	AlignCenterX
	AlignTrailing
)

// VerticalAlignment places content along the y axis.
type VerticalAlignment uint8

const (
	AlignTop VerticalAlignment = iota
	AlignCenterY
	AlignBottom
)

// Alignment combines a horizontal and vertical placement.
type Alignment struct {
	Horizontal HorizontalAlignment
	Vertical   VerticalAlignment
}

// The nine named alignments.
var (
	TopLeading     = Alignment{AlignLeading, AlignTop}
	Top            = Alignment{AlignCenterX, AlignTop}
	TopTrailing    = Alignment{AlignTrailing, AlignTop}
	Leading        = Alignment{AlignLeading, AlignCenterY}
	Center         = Alignment{AlignCenterX, AlignCenterY}
	Trailing       = Alignment{AlignTrailing, AlignCenterY}
	BottomLeading  = Alignment{AlignLeading, AlignBottom}
	Bottom         = Alignment{AlignCenterX, AlignBottom}
	BottomTrailing = Alignment{AlignTrailing, AlignBottom}
)

// place returns the offset of a child of size inner within a container of
// size outer. Slack distributes according to the alignment; a child larger
// than its container pins to the leading/top edge.
func (a Alignment) place(inner, outer Size) Position {
	var p Position
	if inner.Width.Finite() && outer.Width.Finite() {
		slack := outer.Width.Int() - inner.Width.Int()
		if slack > 0 {
			switch a.Horizontal {
			case AlignCenterX:
				p.X = slack / 2
			case AlignTrailing:
				p.X = slack
			}
		}
	}
	if inner.Height.Finite() && outer.Height.Finite() {
		slack := outer.Height.Int() - inner.Height.Int()
		if slack > 0 {
			switch a.Vertical {
			case AlignCenterY:
				p.Y = slack / 2
			case AlignBottom:
				p.Y = slack
			}
		}
	}
	return p
}
