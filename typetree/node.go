package typetree

// PropertyNode is one node in the documentation tree: a named field and
// its nested shape. A parent exclusively owns its children — trees are
// never shared between callers and carry no back-references.
type PropertyNode struct {
	Name           string
	TypeAnnotation string
	Description    string
	Required       bool
	Deprecated     bool
	DefaultValue   string
	Children       []*PropertyNode
	Depth          int

	// Truncated is set when the depth guard cut recursion at this node.
	Truncated bool
	// Cyclic is set when this node's signature was already being
	// decomposed on the active call chain.
	Cyclic bool
	// ParseFailed is set when the shape parser could not classify the
	// signature; TypeAnnotation then carries the raw text.
	ParseFailed bool
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *PropertyNode) Clone() *PropertyNode {
	if n == nil {
		return nil
	}
	out := *n
	if n.Children != nil {
		out.Children = make([]*PropertyNode, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = child.Clone()
		}
	}
	return &out
}

// Walk calls fn for every node in the subtree in depth-first order,
// stopping early if fn returns false.
func (n *PropertyNode) Walk(fn func(*PropertyNode) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}
