// Package classified assembles a head-centric family view from edges that
// an upstream classifier has already tagged with relationship types.
package classified

import (
	"errors"
	"fmt"

	"kinship-engine/internal/model"
	"kinship-engine/internal/names"
	"kinship-engine/internal/roles"
)

// ErrNoHead is returned when neither the descriptor nor any edge names a head.
var ErrNoHead = errors.New("household has no head of household")

var (
	childTypes        = types(model.RelSon, model.RelDaughter)
	siblingTypes      = types(model.RelBrother, model.RelSister)
	siblingSpouses    = types(model.RelSpouse, model.RelSisterInLaw, model.RelBrotherInLaw, model.RelDaughterInLaw, model.RelSonInLaw)
	siblingChildTypes = types(model.RelNiece, model.RelNephew)
	childSpouses      = types(model.RelSonInLaw, model.RelDaughterInLaw)
	headSpouses       = types(model.RelSpouse)
)

func types(ts ...model.RelationshipType) map[model.RelationshipType]bool {
	set := make(map[model.RelationshipType]bool, len(ts))
	for _, t := range ts {
		set[t] = true
	}
	return set
}

type assembler struct {
	edges []model.Edge
	used  []bool
	// anchors holds the head, its children and its siblings. Only edges
	// pointing elsewhere may be left out of the tree.
	anchors map[string]bool
	msgs    []model.Message
}

// Assemble builds the head's tree. The head's children are, in order: own
// children (with their spouses), siblings (with spouses and children) and
// every other relative as a flat leaf. An edge without a slot of its own is
// still shown as another relative when it points at the head, a child or a
// sibling. Edges pointing anywhere else are reported as orphans and left out.
func Assemble(h model.Household) (*model.ViewNode, []model.Message, error) {
	a := &assembler{
		edges:   h.Relationships,
		used:    make([]bool, len(h.Relationships)),
		anchors: make(map[string]bool),
	}

	head, err := a.resolveHead(h)
	if err != nil {
		return nil, nil, err
	}
	a.anchors[head.ID] = true
	a.dedupe(head.ID)

	head.Spouse = a.take(headSpouses, head.ID)

	children := a.takeAll(childTypes, head.ID)
	for _, c := range children {
		a.anchors[c.ID] = true
		c.Spouse = a.take(childSpouses, c.ID)
	}

	siblings := a.takeAll(siblingTypes, head.ID)
	for _, s := range siblings {
		a.anchors[s.ID] = true
		s.Spouse = a.take(siblingSpouses, s.ID)
		s.Children = append(s.Children, a.takeAll(siblingChildTypes, s.ID)...)
	}

	others := a.takeOthers()
	others = append(others, a.takeLeftovers()...)

	head.Children = make([]*model.ViewNode, 0, len(children)+len(siblings)+len(others))
	head.Children = append(head.Children, children...)
	head.Children = append(head.Children, siblings...)
	head.Children = append(head.Children, others...)

	return head, a.msgs, nil
}

func (a *assembler) resolveHead(h model.Household) (*model.ViewNode, error) {
	if h.Head != nil && h.Head.ID != "" {
		for i, e := range a.edges {
			if e.MemberID == h.Head.ID {
				a.used[i] = true
			}
		}
		return &model.ViewNode{
			ID:        h.Head.ID,
			Name:      h.Head.Name,
			Gender:    h.Head.Gender,
			Age:       copyAge(h.Head.Age),
			HouseNo:   h.Head.HouseNo,
			RoleLabel: roles.Label(model.RelHead),
			Children:  []*model.ViewNode{},
		}, nil
	}

	for i, e := range a.edges {
		if e.IsHead() {
			a.used[i] = true
			head := node(e)
			head.RoleLabel = roles.Label(model.RelHead)
			return head, nil
		}
	}
	return nil, fmt.Errorf("assemble %d edges: %w", len(a.edges), ErrNoHead)
}

// dedupe keeps the first edge per member and retires any further ones,
// including extra edges that describe the head.
func (a *assembler) dedupe(headID string) {
	seen := map[string]bool{headID: true}
	for i, e := range a.edges {
		if e.MemberID == headID {
			a.used[i] = true
			continue
		}
		if a.used[i] {
			continue
		}
		if e.IsHead() {
			a.used[i] = true
			a.warn(model.CodeDuplicateEdge, e.MemberID, fmt.Sprintf("Member %s is tagged as head but %s already heads the household", e.MemberID, headID))
			continue
		}
		if seen[e.MemberID] {
			a.used[i] = true
			a.warn(model.CodeDuplicateEdge, e.MemberID, fmt.Sprintf("Member %s has more than one relationship edge, extra %q ignored", e.MemberID, e.RelationshipType))
			continue
		}
		seen[e.MemberID] = true
	}
}

// take consumes the first unused edge of one of the given types pointing at target.
func (a *assembler) take(want map[model.RelationshipType]bool, target string) *model.ViewNode {
	for i, e := range a.edges {
		if !a.used[i] && want[e.RelationshipType] && e.Points(target) {
			return a.consume(i)
		}
	}
	return nil
}

func (a *assembler) takeAll(want map[model.RelationshipType]bool, target string) []*model.ViewNode {
	var out []*model.ViewNode
	for i, e := range a.edges {
		if !a.used[i] && want[e.RelationshipType] && e.Points(target) {
			out = append(out, a.consume(i))
		}
	}
	return out
}

// takeOthers consumes "other" edges and edges with unknown codes, wherever
// they point.
func (a *assembler) takeOthers() []*model.ViewNode {
	var out []*model.ViewNode
	for i, e := range a.edges {
		if a.used[i] {
			continue
		}
		known := roles.IsKnown(e.RelationshipType)
		if known && e.RelationshipType != model.RelOther {
			continue
		}
		if !known {
			a.info(model.CodeUnknownRelationship, e.MemberID, fmt.Sprintf("Relationship %q of member %s is not recognised, shown as other relative", e.RelationshipType, e.MemberID))
		}
		out = append(out, a.consume(i))
	}
	return out
}

func (a *assembler) consume(i int) *model.ViewNode {
	a.used[i] = true
	return node(a.edges[i])
}

// takeLeftovers consumes the edges no slot accepted. Those pointing at an
// anchor become flat leaves, the rest are orphans.
func (a *assembler) takeLeftovers() []*model.ViewNode {
	var out []*model.ViewNode
	for i, e := range a.edges {
		if a.used[i] {
			continue
		}
		switch {
		case e.RelatedTo == nil:
			a.warn(model.CodeOrphanEdge, e.MemberID, fmt.Sprintf("Member %s (%s) has no related member", e.MemberID, e.RelationshipType))
		case a.anchors[e.RelatedTo.ID]:
			a.info(model.CodeUnplacedEdge, e.MemberID, fmt.Sprintf("Member %s (%s of %s) has no slot of its own, shown as other relative", e.MemberID, e.RelationshipType, e.RelatedTo.ID))
			out = append(out, a.consume(i))
		default:
			a.warn(model.CodeOrphanEdge, e.MemberID, fmt.Sprintf("Member %s (%s) points at %s, who is not the head, a child or a sibling", e.MemberID, e.RelationshipType, e.RelatedTo.ID))
		}
	}
	return out
}

func (a *assembler) warn(code, memberID, msg string) {
	a.msgs = append(a.msgs, model.Message{Level: model.LevelWarning, Code: code, Message: msg, MemberID: memberID})
}

func (a *assembler) info(code, memberID, msg string) {
	a.msgs = append(a.msgs, model.Message{Level: model.LevelInfo, Code: code, Message: msg, MemberID: memberID})
}

func node(e model.Edge) *model.ViewNode {
	label := roles.Label(e.RelationshipType)
	if e.RelationshipType == model.RelSpouse && names.IsMale(e.Gender) {
		label = roles.Husband()
	}
	return &model.ViewNode{
		ID:        e.MemberID,
		Name:      e.Name,
		Gender:    e.Gender,
		Age:       copyAge(e.Age),
		RoleLabel: label,
		Children:  []*model.ViewNode{},
	}
}

func copyAge(a *int) *int {
	if a == nil {
		return nil
	}
	v := *a
	return &v
}
