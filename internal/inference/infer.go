package inference

import (
	"fmt"

	"kinship-engine/internal/model"
	"kinship-engine/internal/names"
	"kinship-engine/internal/roles"
)

// Build runs Infer followed by GroupVirtualRoots.
func Build(members []model.Member) (*Forest, []model.Message) {
	f, msgs := Infer(members)
	GroupVirtualRoots(f)
	return f, msgs
}

// Infer links members into spouse and parent/child pairs by matching each
// member's relative name against the other members' names. Every member
// ends up in exactly one place: a root, someone's child or someone's spouse.
func Infer(members []model.Member) (*Forest, []model.Message) {
	f := &Forest{
		Nodes: make([]Node, 0, len(members)),
		keys:  make(map[string]int, len(members)),
	}
	for _, m := range members {
		f.Nodes = append(f.Nodes, newNode(m))
	}

	var msgs []model.Message

	// Last write wins on colliding keys.
	for i := range f.Nodes {
		key := names.Normalize(f.Nodes[i].Name)
		if key == "" {
			continue
		}
		if prev, ok := f.keys[key]; ok {
			msgs = append(msgs, model.Message{
				Level:    model.LevelWarning,
				Code:     model.CodeDuplicateName,
				Message:  fmt.Sprintf("Name %q of member %s shadows member %s for relative matching", f.Nodes[i].Name, f.Nodes[i].ID, f.Nodes[prev].ID),
				MemberID: f.Nodes[prev].ID,
			})
		}
		f.keys[key] = i
	}

	for i := range f.Nodes {
		key := names.Normalize(f.Nodes[i].RelativeName)
		if key == "" {
			continue
		}
		r, ok := f.keys[key]
		if !ok || r == i {
			continue
		}
		if msg, ok := f.link(i, r); ok {
			msgs = append(msgs, msg)
		}
	}

	f.Roots = make([]int, 0, len(f.Nodes))
	for i := range f.Nodes {
		if f.Nodes[i].Parent == NoNode {
			f.Roots = append(f.Roots, i)
		}
	}
	return f, msgs
}

// link classifies member i against the relative r it names. The returned
// message, if any, explains why no link was made.
func (f *Forest) link(i, r int) (model.Message, bool) {
	member, rel := &f.Nodes[i], &f.Nodes[r]
	if member.Age == nil || rel.Age == nil {
		return model.Message{
			Level:    model.LevelInfo,
			Code:     model.CodeAgeUnknown,
			Message:  fmt.Sprintf("Age of %s or %s is unknown, relation not inferred", member.ID, rel.ID),
			MemberID: member.ID,
		}, true
	}

	ageDiff := *rel.Age - *member.Age
	female := names.IsFemale(member.Gender)
	switch {
	case female && abs(ageDiff) < SpouseMaxAgeGap:
		return f.marry(i, r)
	case ageDiff > ParentMinAgeGap:
		return f.adopt(r, i)
	}
	return model.Message{}, false
}

// marry attaches wife i to husband r.
func (f *Forest) marry(i, r int) (model.Message, bool) {
	wife, husband := &f.Nodes[i], &f.Nodes[r]
	if husband.Spouse == i {
		return model.Message{}, false
	}
	if wife.Spouse != NoNode || husband.Spouse != NoNode {
		return model.Message{
			Level:    model.LevelWarning,
			Code:     model.CodeSpouseConflict,
			Message:  fmt.Sprintf("%s or %s already has a spouse, %s left unlinked", wife.ID, husband.ID, wife.ID),
			MemberID: wife.ID,
		}, true
	}
	if wife.Parent != NoNode || f.anchoredUnder(r, i) {
		return cycleSkipped(wife.ID, husband.ID), true
	}

	wife.Spouse, husband.Spouse = r, i
	wife.Parent = r
	wife.IsRoot = false
	wife.RelationLabel = roles.Wife()
	return model.Message{}, false
}

// adopt attaches child c under parent p.
func (f *Forest) adopt(p, c int) (model.Message, bool) {
	parent, child := &f.Nodes[p], &f.Nodes[c]
	if child.Parent != NoNode || f.anchoredUnder(p, c) {
		return cycleSkipped(child.ID, parent.ID), true
	}

	parent.Children = append(parent.Children, c)
	child.Parent = p
	child.IsRoot = false
	child.RelationLabel = roles.Child(names.IsFemale(child.Gender))
	return model.Message{}, false
}

func cycleSkipped(member, relative string) model.Message {
	return model.Message{
		Level:    model.LevelWarning,
		Code:     model.CodeCycleSkipped,
		Message:  fmt.Sprintf("Linking %s to %s would make them their own ancestor", member, relative),
		MemberID: member,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
