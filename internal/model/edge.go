package model

type RelationshipType string

const (
	RelHead          RelationshipType = "head"
	RelSpouse        RelationshipType = "spouse"
	RelSon           RelationshipType = "son"
	RelDaughter      RelationshipType = "daughter"
	RelBrother       RelationshipType = "brother"
	RelSister        RelationshipType = "sister"
	RelNiece         RelationshipType = "niece"
	RelNephew        RelationshipType = "nephew"
	RelDaughterInLaw RelationshipType = "daughter-in-law"
	RelSonInLaw      RelationshipType = "son-in-law"
	RelSisterInLaw   RelationshipType = "sister-in-law"
	RelBrotherInLaw  RelationshipType = "brother-in-law"
	RelOther         RelationshipType = "other"
)

const (
	ToHeadSelf  = "self"
	ToHeadOther = "other"
)

type RelatedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Edge is one classifier output: the member it describes plus the
// relationship it holds to RelatedTo.
type Edge struct {
	MemberID           string           `json:"member_id"`
	Name               string           `json:"name"`
	Gender             string           `json:"gender"`
	Age                *int             `json:"age,omitempty"`
	RelationshipType   RelationshipType `json:"relationship_type"`
	RelationshipToHead string           `json:"relationship_to_head"`
	RelatedTo          *RelatedRef      `json:"related_to,omitempty"`
}

// IsHead reports whether the edge describes the head of household.
func (e Edge) IsHead() bool {
	return e.RelationshipType == RelHead || e.RelationshipToHead == ToHeadSelf
}

// Points reports whether the edge targets the member with the given id.
func (e Edge) Points(id string) bool {
	return e.RelatedTo != nil && e.RelatedTo.ID == id
}

// Household is the classified-path descriptor for one house.
type Household struct {
	Head          *Member `json:"head,omitempty"`
	Relationships []Edge  `json:"relationships"`
	WardNo        string  `json:"ward_no"`
	HouseNo       string  `json:"house_no"`
	MemberCount   int     `json:"member_count"`
}
