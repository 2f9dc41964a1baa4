package inference

import (
	"strconv"
	"strings"

	"kinship-engine/internal/names"
	"kinship-engine/internal/roles"
)

const (
	virtualIDPrefix = "virtual-"
	virtualMarker   = " (कुलपिता)"
	virtualGender   = "Male"
)

type rootGroup struct {
	key     string
	members []int
}

// GroupVirtualRoots gathers roots that name the same unresolved relative
// under one synthesized ancestor. Groups need a non-empty key and at least
// two members. The new root order keeps every ungrouped root where it was
// and puts each ancestor where its key was first seen.
func GroupVirtualRoots(f *Forest) {
	var groups []rootGroup
	groupOf := make(map[int]int, len(f.Roots))
	byKey := make(map[string]int)

	for _, r := range f.Roots {
		key := names.Normalize(f.Nodes[r].RelativeName)
		if key == "" {
			continue
		}
		// A key naming a real member was resolved, just not classified.
		if _, ok := f.keys[key]; ok {
			continue
		}
		g, ok := byKey[key]
		if !ok {
			g = len(groups)
			byKey[key] = g
			groups = append(groups, rootGroup{key: key})
		}
		groups[g].members = append(groups[g].members, r)
		groupOf[r] = g
	}

	taken := make(map[string]struct{}, len(f.Nodes))
	for i := range f.Nodes {
		taken[f.Nodes[i].ID] = struct{}{}
	}

	ordinal := 0
	emitted := make([]int, len(groups))
	for i := range emitted {
		emitted[i] = NoNode
	}

	roots := make([]int, 0, len(f.Roots))
	for _, r := range f.Roots {
		g, grouped := groupOf[r]
		if !grouped || len(groups[g].members) < 2 {
			roots = append(roots, r)
			continue
		}
		if emitted[g] != NoNode {
			continue
		}
		emitted[g] = f.synthesize(groups[g].members, nextVirtualID(&ordinal, taken))
		roots = append(roots, emitted[g])
	}
	f.Roots = roots
}

// synthesize appends a virtual ancestor over members and returns its index.
func (f *Forest) synthesize(members []int, id string) int {
	v := len(f.Nodes)

	var eldest *int
	for _, m := range members {
		if a := f.Nodes[m].Age; a != nil && (eldest == nil || *a > *eldest) {
			eldest = a
		}
	}
	age := VirtualFallbackAge
	if eldest != nil {
		age = *eldest + VirtualAgeOffset
	}

	f.Nodes = append(f.Nodes, Node{
		ID:       id,
		Name:     strings.TrimSpace(f.Nodes[members[0]].RelativeName) + virtualMarker,
		Gender:   virtualGender,
		Age:      &age,
		Children: append([]int(nil), members...),
		Spouse:   NoNode,
		Parent:   NoNode,
		IsRoot:   true,

		IsVirtual: true,
	})

	for _, m := range members {
		child := &f.Nodes[m]
		child.Parent = v
		child.IsRoot = false
		child.RelationLabel = roles.Child(names.IsFemale(child.Gender))
	}
	return v
}

func nextVirtualID(ordinal *int, taken map[string]struct{}) string {
	for {
		*ordinal++
		id := virtualIDPrefix + strconv.Itoa(*ordinal)
		if _, ok := taken[id]; !ok {
			taken[id] = struct{}{}
			return id
		}
	}
}
