// Package inference rebuilds a household's family forest from flat voter
// records using name matching plus age and gender heuristics.
//
// Nodes live in a single arena (Forest.Nodes) and refer to each other by
// index. Node i is input member i; synthesized ancestors are appended
// after the real members.
package inference

import "kinship-engine/internal/model"

// NoNode marks an absent index reference.
const NoNode = -1

// Heuristic policy. A spouse link needs a female member within
// SpouseMaxAgeGap years of the person she names; a parent link needs the
// named person to be more than ParentMinAgeGap years older.
const (
	SpouseMaxAgeGap = 20
	ParentMinAgeGap = 15

	// VirtualAgeOffset is added to the eldest known child's age to
	// estimate a synthesized ancestor's age.
	VirtualAgeOffset = 25
	// VirtualFallbackAge is used when no child's age is known.
	VirtualFallbackAge = 60
)

type Node struct {
	ID           string
	Name         string
	RelativeName string
	Gender       string
	Age          *int
	HouseNo      string

	Children []int
	// Spouse is symmetric: Nodes[a].Spouse == b iff Nodes[b].Spouse == a.
	Spouse int
	// Parent is the node this one hangs under, either as a child or as
	// the spouse attached to it. NoNode for roots.
	Parent int

	IsRoot        bool
	IsVirtual     bool
	RelationLabel string
}

type Forest struct {
	Nodes []Node
	Roots []int

	keys map[string]int
}

// Real returns the number of non-virtual nodes.
func (f *Forest) Real() int {
	n := 0
	for i := range f.Nodes {
		if !f.Nodes[i].IsVirtual {
			n++
		}
	}
	return n
}

// anchoredUnder reports whether target is start or one of its anchors.
func (f *Forest) anchoredUnder(start, target int) bool {
	for p := start; p != NoNode; p = f.Nodes[p].Parent {
		if p == target {
			return true
		}
	}
	return false
}

func newNode(m model.Member) Node {
	return Node{
		ID:           m.ID,
		Name:         m.Name,
		RelativeName: m.RelativeName,
		Gender:       m.Gender,
		Age:          copyAge(m.Age),
		HouseNo:      m.HouseNo,
		Children:     []int{},
		Spouse:       NoNode,
		Parent:       NoNode,
		IsRoot:       true,
	}
}

func copyAge(a *int) *int {
	if a == nil {
		return nil
	}
	v := *a
	return &v
}
