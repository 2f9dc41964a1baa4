package inference

import "kinship-engine/internal/model"

// View renders the forest as nested nodes, one per root. A spouse is
// nested under the node it is attached to and never the other way round.
func (f *Forest) View() []*model.ViewNode {
	out := make([]*model.ViewNode, 0, len(f.Roots))
	for _, r := range f.Roots {
		out = append(out, f.view(r))
	}
	return out
}

func (f *Forest) view(i int) *model.ViewNode {
	n := &f.Nodes[i]
	v := &model.ViewNode{
		ID:           n.ID,
		Name:         n.Name,
		RelativeName: n.RelativeName,
		Gender:       n.Gender,
		Age:          copyAge(n.Age),
		HouseNo:      n.HouseNo,
		RoleLabel:    n.RelationLabel,
		IsVirtual:    n.IsVirtual,
		Children:     make([]*model.ViewNode, 0, len(n.Children)),
	}
	if n.Spouse != NoNode && f.Nodes[n.Spouse].Parent == i {
		v.Spouse = f.view(n.Spouse)
	}
	for _, c := range n.Children {
		v.Children = append(v.Children, f.view(c))
	}
	return v
}
