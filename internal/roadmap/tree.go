package roadmap

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the node's children.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n *Node) int {
	var total int
	Walk(n, func(*Node, int) bool {
		total++
		return true
	})
	return total
}

// Depth returns the number of levels in the tree rooted at n.
func Depth(n *Node) int {
	var deepest int
	Walk(n, func(_ *Node, depth int) bool {
		deepest = max(deepest, depth+1)
		return true
	})
	return deepest
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := *n
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Clone()
		}
	}
	return &cp
}

// Clone returns a deep copy of r.
func (r *Roadmap) Clone() *Roadmap {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Root = r.Root.Clone()
	return &cp
}
