package weft

import "fmt"

// View is an immutable description of a piece of UI. Composite views
// return another view from Body; primitive views (Text, VStack, Spacer...)
// return nil and are materialized directly into controls by the
// reconciler. Views carry no identity beyond their position in the tree
// unless given an explicit key in a ForEach.
//
// Body must be pure: no side effects, no stored state. State lives in
// State cells and on Controls, never on view values.
type View interface {
	Body() View
}

// TextView displays a string. Multi-line content paints one row per line.
type TextView struct {
	Content string
	Style   Style
	Wrap    bool
}

// Text creates a text view.
func Text(s string) TextView {
	return TextView{Content: s}
}

// Textf creates a text view with printf-style formatting.
func Textf(format string, args ...any) TextView {
	return TextView{Content: fmt.Sprintf(format, args...)}
}

// Styled returns the text with the given style.
func (t TextView) Styled(s Style) TextView { t.Style = s; return t }

// Wrapped returns the text with word wrapping enabled.
func (t TextView) Wrapped() TextView { t.Wrap = true; return t }

// Body implements View. Text is primitive.
func (TextView) Body() View { return nil }

// Axis is the stacking direction of a StackView.
type Axis uint8

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// StackView lays out children along one axis. Children that report
// themselves flexible (Spacer) divide the space left over after the
// fixed children take their intrinsic sizes.
type StackView struct {
	Axis      Axis
	Alignment Alignment
	Children  []View
}

// VStack stacks children top to bottom.
func VStack(children ...View) StackView {
	return StackView{Axis: AxisVertical, Alignment: TopLeading, Children: children}
}

// HStack stacks children left to right.
func HStack(children ...View) StackView {
	return StackView{Axis: AxisHorizontal, Alignment: TopLeading, Children: children}
}

// Align returns the stack with the given cross-axis alignment.
func (s StackView) Align(a Alignment) StackView { s.Alignment = a; return s }

// Body implements View. Stacks are structural.
func (StackView) Body() View { return nil }

// SpacerView is flexible empty space: it requests an even share of
// whatever its enclosing stack has left over.
type SpacerView struct {
	// MinLength is the smallest extent along the stack axis.
	MinLength int
}

// Spacer creates a flexible spacer.
func Spacer() SpacerView {
	return SpacerView{}
}

// Min returns the spacer with a minimum length along the stacking axis.
func (s SpacerView) Min(n int) SpacerView { s.MinLength = n; return s }

// Body implements View. Spacer is primitive.
func (SpacerView) Body() View { return nil }

// EmptyView renders nothing and occupies no space.
type EmptyView struct{}

// Empty creates an empty view.
func Empty() EmptyView { return EmptyView{} }

// Body implements View. Empty is primitive.
func (EmptyView) Body() View { return nil }

// PaddingView insets its child on the active edges.
type PaddingView struct {
	Child View
	Edges Edges
	Inset int
}

// Pad insets the child by n on all four edges.
func Pad(child View, n int) PaddingView {
	return PaddingView{Child: child, Edges: EdgesAll, Inset: n}
}

// PadEdges insets the child by n on the given edges only.
func PadEdges(child View, edges Edges, n int) PaddingView {
	return PaddingView{Child: child, Edges: edges, Inset: n}
}

// Body implements View. Padding is structural.
func (PaddingView) Body() View { return nil }

// FrameView clamps its child's size between explicit bounds and aligns
// the child within the resulting frame.
type FrameView struct {
	Child     View
	MinW      Extended
	MaxW      Extended
	MinH      Extended
	MaxH      Extended
	Alignment Alignment
}

// Frame wraps the child in an unconstrained frame. Chain the bound
// setters to constrain it.
func Frame(child View) FrameView {
	return FrameView{
		Child:     child,
		MinW:      NegInf,
		MaxW:      Inf,
		MinH:      NegInf,
		MaxH:      Inf,
		Alignment: Center,
	}
}

// MinWidth sets the lower width bound.
func (f FrameView) MinWidth(n int) FrameView { f.MinW = Ext(n); return f }

// MaxWidth sets the upper width bound.
func (f FrameView) MaxWidth(n int) FrameView { f.MaxW = Ext(n); return f }

// MinHeight sets the lower height bound.
func (f FrameView) MinHeight(n int) FrameView { f.MinH = Ext(n); return f }

// MaxHeight sets the upper height bound.
func (f FrameView) MaxHeight(n int) FrameView { f.MaxH = Ext(n); return f }

// Width fixes the width exactly.
func (f FrameView) Width(n int) FrameView {
	f.MinW, f.MaxW = Ext(n), Ext(n)
	return f
}

// Height fixes the height exactly.
func (f FrameView) Height(n int) FrameView {
	f.MinH, f.MaxH = Ext(n), Ext(n)
	return f
}

// Align sets how the child sits inside the frame when smaller than it.
func (f FrameView) Align(a Alignment) FrameView { f.Alignment = a; return f }

// Body implements View. Frame is structural.
func (FrameView) Body() View { return nil }

// BackgroundView fills its child's bounds with a color before the child
// paints over it.
type BackgroundView struct {
	Child View
	Color Color
}

// Background fills the child's bounds with the given color.
func Background(child View, c Color) BackgroundView {
	return BackgroundView{Child: child, Color: c}
}

// Body implements View. Background is structural.
func (BackgroundView) Body() View { return nil }

// BorderView draws a box around its child, insetting the child by one
// cell on every edge.
type BorderView struct {
	Child View
	Look  BorderStyle
	Style Style
}

// Bordered draws a single-line border around the child.
func Bordered(child View) BorderView {
	return BorderView{Child: child, Look: BorderSingle}
}

// BorderedWith draws a border with the given rune set and style.
func BorderedWith(child View, look BorderStyle, style Style) BorderView {
	return BorderView{Child: child, Look: look, Style: style}
}

// Body implements View. Border is structural.
func (BorderView) Body() View { return nil }

// ConditionalView renders one of two branches. The branches are distinct
// shapes: switching always rebuilds the slot's control subtree, which is
// what makes `if` state-safe.
type ConditionalView struct {
	Cond bool
	Then View
	Els  View
}

// If renders then when cond is true, and nothing otherwise.
// Chain Else for the false branch.
func If(cond bool, then View) ConditionalView {
	return ConditionalView{Cond: cond, Then: then, Els: EmptyView{}}
}

// Else sets the false branch.
func (c ConditionalView) Else(v View) ConditionalView { c.Els = v; return c }

// Body implements View. Conditionals are structural.
func (ConditionalView) Body() View { return nil }

// ForEachView expands into one child per item. Children carry explicit
// identity keys so reconciliation can match them across reorders.
type ForEachView struct {
	Keys     []string
	Children []View
}

// ForEach renders one view per item, keyed by position. Insertions and
// removals in the middle of the slice rebuild the children after them;
// use ForEachID when items move.
func ForEach[T any](items []T, render func(T) View) ForEachView {
	f := ForEachView{
		Keys:     make([]string, len(items)),
		Children: make([]View, len(items)),
	}
	for i, item := range items {
		f.Keys[i] = fmt.Sprintf("%d", i)
		f.Children[i] = render(item)
	}
	return f
}

// ForEachID renders one view per item, keyed by the id function.
// Matched keys keep their control (and any widget state) across
// reorders; unmatched old keys are destroyed and new keys built.
func ForEachID[T any](items []T, id func(T) string, render func(T) View) ForEachView {
	f := ForEachView{
		Keys:     make([]string, len(items)),
		Children: make([]View, len(items)),
	}
	for i, item := range items {
		f.Keys[i] = id(item)
		f.Children[i] = render(item)
	}
	return f
}

// Body implements View. ForEach is structural.
func (ForEachView) Body() View { return nil }
