package tree

// Flatten projects the tree into the flat list of visible nodes, depth
// first, ancestors before descendants. A node is visible when every
// ancestor is expanded; the root is always visible. Depth and IsLast are
// set on each node as it is emitted.
func Flatten(root *Node, exp *Expansion) []*Node {
	if root == nil {
		return nil
	}
	root.Depth = 0
	root.IsLast = true
	return appendVisible(make([]*Node, 0, 64), root, exp)
}

func appendVisible(visible []*Node, n *Node, exp *Expansion) []*Node {
	visible = append(visible, n)
	if !n.IsDir || !exp.IsExpanded(n.Path) {
		return visible
	}
	last := len(n.children) - 1
	for i, child := range n.children {
		child.Depth = n.Depth + 1
		child.IsLast = i == last
		visible = appendVisible(visible, child, exp)
	}
	return visible
}

// FindParentIndex returns the index of the parent of visible[i], or -1
// for the root. The parent is the nearest preceding node one level
// shallower.
func FindParentIndex(visible []*Node, i int) int {
	if i < 0 || i >= len(visible) {
		return -1
	}
	depth := visible[i].Depth
	if depth == 0 {
		return -1
	}
	for j := i - 1; j >= 0; j-- {
		if visible[j].Depth == depth-1 {
			return j
		}
	}
	return -1
}

// FindFirstChild returns the index of the first visible child of
// visible[i], or -1 when it has none. Children immediately follow their
// parent in the flattened order.
func FindFirstChild(visible []*Node, i int) int {
	if i < 0 || i >= len(visible)-1 {
		return -1
	}
	if visible[i+1].Depth == visible[i].Depth+1 {
		return i + 1
	}
	return -1
}
