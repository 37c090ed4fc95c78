package weft

// FlexMinimum is implemented by flexible controls that refuse to shrink
// below a floor along the stacking axis.
type FlexMinimum interface {
	FlexMinimum() int
}

// stackControl lays children out along one axis.
//
// Distribution along the stacking axis: fixed children take their
// intrinsic sizes, then whatever remains (clamped at zero) divides
// evenly among the flexible children. When at least one flexible child
// is present and the offer is finite, the children fill it exactly;
// with no flexible children the stack takes its content size, which may
// overflow past the viewport rather than fail.
//
// The cross-axis size is the maximum of the children's cross sizes.
// Layout is one top-down propose pass with positions assigned in the
// same traversal, so a child's size can depend only on what the stack
// offers, never on a sibling.
type stackControl struct {
	baseControl
	axis      Axis
	alignment Alignment
	children  []Control
}

// Children implements Control.
func (st *stackControl) Children() []Control { return st.children }

// Paint implements Control. The stack itself is invisible.
func (st *stackControl) Paint(buf *Buffer, x, y int) {}

func main2d(axis Axis, s Size) Extended {
	if axis == AxisVertical {
		return s.Height
	}
	return s.Width
}

func cross2d(axis Axis, s Size) Extended {
	if axis == AxisVertical {
		return s.Width
	}
	return s.Height
}

func size2d(axis Axis, main, cross Extended) Size {
	if axis == AxisVertical {
		return Size{Width: cross, Height: main}
	}
	return Size{Width: main, Height: cross}
}

func isFlexible(c Control) bool {
	f, ok := c.(Flexible)
	return ok && f.Flexible()
}

func flexFloor(c Control) int {
	if fm, ok := c.(FlexMinimum); ok {
		return fm.FlexMinimum()
	}
	return 0
}

// Propose implements Control.
func (st *stackControl) Propose(available Size) Size {
	availMain := main2d(st.axis, available)

	// Fixed pass: intrinsic sizes for non-flexible children, floors for
	// flexible ones.
	fixedSum := Ext(0)
	maxCross := Ext(0)
	flexCount := 0
	for _, child := range st.children {
		if isFlexible(child) {
			flexCount++
			fixedSum = fixedSum.Add(Ext(flexFloor(child)))
			continue
		}
		childSize := child.Propose(available)
		fixedSum = fixedSum.Add(main2d(st.axis, childSize))
		maxCross = MaxExt(maxCross, cross2d(st.axis, childSize))
	}

	// Distribute the leftover evenly across flexible children. An
	// unbounded offer leaves nothing concrete to fill, so flexible
	// children collapse to their floors there.
	remaining := availMain.Sub(fixedSum).ClampZero()
	if !remaining.Finite() {
		remaining = Ext(0)
	}
	if flexCount > 0 {
		share := remaining.Int() / flexCount
		extra := remaining.Int() % flexCount
		i := 0
		for _, child := range st.children {
			if !isFlexible(child) {
				continue
			}
			main := flexFloor(child) + share
			if i < extra {
				main++
			}
			i++
			child.Propose(size2d(st.axis, Ext(main), Ext(0)))
		}
	}

	ownMain := fixedSum
	if flexCount > 0 {
		ownMain = fixedSum.Add(remaining)
	}
	ownCross := maxCross
	st.setSize(size2d(st.axis, ownMain, ownCross))

	// Position pass, same traversal: advance along the main axis and
	// align each child across it.
	cursor := 0
	for _, child := range st.children {
		childSize := child.Size()
		slackOuter := size2d(st.axis, main2d(st.axis, childSize), ownCross)
		p := st.alignment.place(childSize, slackOuter)
		if st.axis == AxisVertical {
			p.Y = cursor
		} else {
			p.X = cursor
		}
		child.SetPosition(p)
		if m := main2d(st.axis, childSize); m.Finite() {
			cursor += m.Int()
		}
	}
	return st.size
}
