package weft

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// maxBodyDepth bounds composite body evaluation. A composite whose body
// never reaches a primitive is a programming error; the reconciler
// surfaces it instead of looping forever.
const maxBodyDepth = 128

// ErrRecursionLimit reports a composite view that recursed past
// maxBodyDepth without bottoming out in a primitive.
var ErrRecursionLimit = errors.New("weft: view body recursion limit exceeded")

// Node is one slot in the reconciliation tree. It pairs the view value
// that currently occupies the slot with the control materialized for
// it, and owns the child nodes. A node lives from the first build of
// its slot until a later reconciliation removes or reshapes the slot.
type Node struct {
	view     View   // resolved structural/primitive view
	shape    string // shape signature; controls are reused only on a match
	control  Control
	children []*Node
	keys     []string // child identity keys, parallel to children
}

// Control returns the control materialized for this slot.
func (n *Node) Control() Control { return n.control }

// tokenCounter tags each built control with a unique creation token, so
// identity preservation is observable.
var tokenCounter atomic.Uint64

func nextToken() uint64 {
	return tokenCounter.Add(1)
}

// resolve unwraps a view to the structural or primitive view the slot
// materializes: composites are unwrapped through Body, conditionals
// through the active branch. The returned signature encodes every
// branch taken plus the terminal kind, so the two arms of a conditional
// are always distinct shapes even when they end in the same primitive.
func resolve(v View) (View, string, error) {
	sig := ""
	for depth := 0; depth <= maxBodyDepth; depth++ {
		if v == nil {
			v = EmptyView{}
		}
		if c, ok := v.(ConditionalView); ok {
			if c.Cond {
				sig += "t."
				v = c.Then
			} else {
				sig += "e."
				v = c.Els
			}
			continue
		}
		if body := v.Body(); body != nil {
			v = body
			continue
		}
		return v, sig + shapeName(v), nil
	}
	return nil, "", ErrRecursionLimit
}

// shapeName returns the shape tag for a resolved view. The set of
// primitive kinds is closed; the reconciler dispatches on it with a
// single exhaustive switch.
func shapeName(v View) string {
	switch vv := v.(type) {
	case TextView:
		return "text"
	case StackView:
		if vv.Axis == AxisVertical {
			return "vstack"
		}
		return "hstack"
	case SpacerView:
		return "spacer"
	case EmptyView:
		return "empty"
	case PaddingView:
		return "pad"
	case FrameView:
		return "frame"
	case BackgroundView:
		return "background"
	case BorderView:
		return "border"
	case ForEachView:
		return "foreach"
	default:
		// A resolved view is primitive by construction; anything else
		// slipped through a nil Body on an unknown type.
		return fmt.Sprintf("unknown:%T", v)
	}
}

// childEntry is one keyed slot in a container's child list.
type childEntry struct {
	key  string
	view View
}

// flattenChildren expands a stack's child list into keyed entries.
// ForEach views splice in their items under their own keys; everything
// else is keyed by position. Only composite bodies are peeked through
// here — conditionals stay opaque so their branch signature survives
// into the child slot's own resolution.
func flattenChildren(children []View) ([]childEntry, error) {
	entries := make([]childEntry, 0, len(children))
	for i, child := range children {
		peeked, err := peekForEach(child)
		if err != nil {
			return nil, err
		}
		if fe, ok := peeked.(ForEachView); ok {
			for j, item := range fe.Children {
				entries = append(entries, childEntry{key: fmt.Sprintf("%d#%s", i, fe.Keys[j]), view: item})
			}
			continue
		}
		entries = append(entries, childEntry{key: fmt.Sprintf("%d", i), view: child})
	}
	return entries, nil
}

// peekForEach unwraps composite bodies just far enough to see whether a
// child is a ForEach.
func peekForEach(v View) (View, error) {
	for depth := 0; depth <= maxBodyDepth; depth++ {
		if v == nil {
			return EmptyView{}, nil
		}
		if _, ok := v.(ConditionalView); ok {
			return v, nil
		}
		if _, ok := v.(ForEachView); ok {
			return v, nil
		}
		if body := v.Body(); body != nil {
			v = body
			continue
		}
		return v, nil
	}
	return nil, ErrRecursionLimit
}
