package tree

// Node is a single entry in the filesystem tree. Path is the stable
// identity used for expansion state and reload reconciliation. Depth and
// IsLast describe the node's place in the flattened projection and are
// set by Flatten.
type Node struct {
	Name   string
	Path   string
	Depth  int
	IsDir  bool
	IsLast bool
	Size   int64

	children []*Node
}

// Children returns the node's direct children in display order.
func (n *Node) Children() []*Node {
	return n.children
}

// HasChildren reports whether the node has loaded children.
func (n *Node) HasChildren() bool {
	return len(n.children) > 0
}

// AddChild appends a child node.
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)
}

// CountChildren returns the number of direct child files and directories.
func (n *Node) CountChildren() (files, dirs int) {
	for _, c := range n.children {
		if c.IsDir {
			dirs++
		} else {
			files++
		}
	}
	return files, dirs
}
