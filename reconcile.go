package weft

// Reconcile folds a new view value into the control tree rooted at
// prev. When prev is nil the whole subtree is built; when the slot's
// shape is unchanged the existing controls are mutated in place,
// preserving their identity and any control-local state; when the
// shape changed, the old subtree is destroyed and rebuilt. No partial
// reuse happens across heterogeneous shapes.
func Reconcile(prev *Node, v View) (*Node, error) {
	rv, sig, err := resolve(v)
	if err != nil {
		return nil, err
	}
	if prev != nil && prev.shape == sig {
		if err := updateNode(prev, rv); err != nil {
			return nil, err
		}
		return prev, nil
	}
	if prev != nil {
		destroyNode(prev)
	}
	return buildNode(rv, sig)
}

// destroyNode releases a subtree: controls transition to destroyed and
// child ownership cascades.
func destroyNode(n *Node) {
	if n.control != nil {
		destroyControl(n.control)
	}
	for _, child := range n.children {
		destroyNode(child)
	}
	n.children = nil
	n.keys = nil
}

// buildNode materializes a control subtree for a freshly resolved view.
func buildNode(rv View, sig string) (*Node, error) {
	n := &Node{view: rv, shape: sig}
	switch vv := rv.(type) {
	case TextView:
		n.control = &textControl{
			baseControl: baseControl{state: controlBuilt, token: nextToken()},
			content:     vv.Content,
			style:       vv.Style,
			wrap:        vv.Wrap,
		}

	case SpacerView:
		n.control = &spacerControl{
			baseControl: baseControl{state: controlBuilt, token: nextToken()},
			minLength:   vv.MinLength,
		}

	case EmptyView:
		n.control = &emptyControl{baseControl{state: controlBuilt, token: nextToken()}}

	case StackView:
		st := &stackControl{
			baseControl: baseControl{state: controlBuilt, token: nextToken()},
			axis:        vv.Axis,
			alignment:   vv.Alignment,
		}
		entries, err := flattenChildren(vv.Children)
		if err != nil {
			return nil, err
		}
		if err := n.buildChildren(entries); err != nil {
			return nil, err
		}
		st.children = n.childControls()
		n.control = st

	case ForEachView:
		// A ForEach outside a stack behaves as a vertical stack of its
		// keyed children.
		st := &stackControl{
			baseControl: baseControl{state: controlBuilt, token: nextToken()},
			axis:        AxisVertical,
			alignment:   TopLeading,
		}
		entries := make([]childEntry, len(vv.Children))
		for i, child := range vv.Children {
			entries[i] = childEntry{key: "#" + vv.Keys[i], view: child}
		}
		if err := n.buildChildren(entries); err != nil {
			return nil, err
		}
		st.children = n.childControls()
		n.control = st

	case PaddingView:
		child, err := n.buildSingleChild(vv.Child)
		if err != nil {
			return nil, err
		}
		n.control = &paddingControl{
			baseControl: baseControl{state: controlBuilt, token: nextToken()},
			edges:       vv.Edges,
			inset:       vv.Inset,
			child:       child,
		}

	case FrameView:
		child, err := n.buildSingleChild(vv.Child)
		if err != nil {
			return nil, err
		}
		n.control = &frameControl{
			baseControl: baseControl{state: controlBuilt, token: nextToken()},
			minW:        vv.MinW,
			maxW:        vv.MaxW,
			minH:        vv.MinH,
			maxH:        vv.MaxH,
			alignment:   vv.Alignment,
			child:       child,
		}

	case BackgroundView:
		child, err := n.buildSingleChild(vv.Child)
		if err != nil {
			return nil, err
		}
		n.control = &backgroundControl{
			baseControl: baseControl{state: controlBuilt, token: nextToken()},
			color:       vv.Color,
			child:       child,
		}

	case BorderView:
		child, err := n.buildSingleChild(vv.Child)
		if err != nil {
			return nil, err
		}
		n.control = &borderControl{
			baseControl: baseControl{state: controlBuilt, token: nextToken()},
			look:        vv.Look,
			style:       vv.Style,
			child:       child,
		}

	default:
		logger().Warn("unknown view kind, rendering nothing", "shape", sig)
		n.control = &emptyControl{baseControl{state: controlBuilt, token: nextToken()}}
	}
	return n, nil
}

// buildChildren builds child nodes for keyed entries.
func (n *Node) buildChildren(entries []childEntry) error {
	n.children = make([]*Node, 0, len(entries))
	n.keys = make([]string, 0, len(entries))
	for _, e := range entries {
		child, err := Reconcile(nil, e.view)
		if err != nil {
			return err
		}
		n.children = append(n.children, child)
		n.keys = append(n.keys, e.key)
	}
	return nil
}

// buildSingleChild builds the sole child slot of a wrapper view.
func (n *Node) buildSingleChild(v View) (Control, error) {
	child, err := Reconcile(nil, v)
	if err != nil {
		return nil, err
	}
	n.children = []*Node{child}
	n.keys = []string{"0"}
	return child.control, nil
}

// childControls gathers the controls of the child nodes, in order.
func (n *Node) childControls() []Control {
	cs := make([]Control, len(n.children))
	for i, child := range n.children {
		cs[i] = child.control
	}
	return cs
}

// updateNode mutates an existing subtree in place. The shapes already
// matched, so every type assertion here holds by construction.
func updateNode(n *Node, rv View) error {
	n.view = rv
	switch vv := rv.(type) {
	case TextView:
		c := n.control.(*textControl)
		c.content = vv.Content
		c.style = vv.Style
		c.wrap = vv.Wrap
		c.state = controlUpdated

	case SpacerView:
		c := n.control.(*spacerControl)
		c.minLength = vv.MinLength
		c.state = controlUpdated

	case EmptyView:
		n.control.(*emptyControl).state = controlUpdated

	case StackView:
		c := n.control.(*stackControl)
		c.alignment = vv.Alignment
		c.state = controlUpdated
		entries, err := flattenChildren(vv.Children)
		if err != nil {
			return err
		}
		if err := n.updateChildren(entries); err != nil {
			return err
		}
		c.children = n.childControls()

	case ForEachView:
		c := n.control.(*stackControl)
		c.state = controlUpdated
		entries := make([]childEntry, len(vv.Children))
		for i, child := range vv.Children {
			entries[i] = childEntry{key: "#" + vv.Keys[i], view: child}
		}
		if err := n.updateChildren(entries); err != nil {
			return err
		}
		c.children = n.childControls()

	case PaddingView:
		c := n.control.(*paddingControl)
		c.edges = vv.Edges
		c.inset = vv.Inset
		c.state = controlUpdated
		child, err := n.updateSingleChild(vv.Child)
		if err != nil {
			return err
		}
		c.child = child

	case FrameView:
		c := n.control.(*frameControl)
		c.minW, c.maxW = vv.MinW, vv.MaxW
		c.minH, c.maxH = vv.MinH, vv.MaxH
		c.alignment = vv.Alignment
		c.state = controlUpdated
		child, err := n.updateSingleChild(vv.Child)
		if err != nil {
			return err
		}
		c.child = child

	case BackgroundView:
		c := n.control.(*backgroundControl)
		c.color = vv.Color
		c.state = controlUpdated
		child, err := n.updateSingleChild(vv.Child)
		if err != nil {
			return err
		}
		c.child = child

	case BorderView:
		c := n.control.(*borderControl)
		c.look = vv.Look
		c.style = vv.Style
		c.state = controlUpdated
		child, err := n.updateSingleChild(vv.Child)
		if err != nil {
			return err
		}
		c.child = child
	}
	return nil
}

// updateChildren reconciles a container's child slots against new keyed
// entries. Matched keys update in their new position, keeping their
// control; unmatched old keys are destroyed; unmatched new keys are
// built. Reordering therefore moves state with the key, not the index.
func (n *Node) updateChildren(entries []childEntry) error {
	old := make(map[string]*Node, len(n.children))
	for i, child := range n.children {
		old[n.keys[i]] = child
	}

	children := make([]*Node, 0, len(entries))
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		prev := old[e.key]
		if prev != nil {
			delete(old, e.key)
		}
		child, err := Reconcile(prev, e.view)
		if err != nil {
			return err
		}
		children = append(children, child)
		keys = append(keys, e.key)
	}

	for _, orphan := range old {
		destroyNode(orphan)
	}
	n.children = children
	n.keys = keys
	return nil
}

// updateSingleChild reconciles a wrapper's sole child slot.
func (n *Node) updateSingleChild(v View) (Control, error) {
	var prev *Node
	if len(n.children) > 0 {
		prev = n.children[0]
	}
	child, err := Reconcile(prev, v)
	if err != nil {
		return nil, err
	}
	n.children = []*Node{child}
	n.keys = []string{"0"}
	return child.control, nil
}
