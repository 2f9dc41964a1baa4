package model

// ViewNode is the render-ready shape produced by both builders.
// Spouse is nested one way only, so a tree of ViewNodes never cycles.
type ViewNode struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	RelativeName string      `json:"relative_name,omitempty"`
	Gender       string      `json:"gender"`
	Age          *int        `json:"age,omitempty"`
	HouseNo      string      `json:"house_no,omitempty"`
	RoleLabel    string      `json:"role_label,omitempty"`
	IsVirtual    bool        `json:"is_virtual"`
	Spouse       *ViewNode   `json:"spouse,omitempty"`
	Children     []*ViewNode `json:"children"`
}

// Walk visits n, its spouse subtree and its children depth first.
func (n *ViewNode) Walk(fn func(*ViewNode)) {
	if n == nil {
		return
	}
	fn(n)
	n.Spouse.Walk(fn)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Depth counts generations below and including n. Spouses share a generation.
func (n *ViewNode) Depth() int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	if d := n.Spouse.Depth() - 1; d > deepest {
		deepest = d
	}
	return deepest + 1
}
