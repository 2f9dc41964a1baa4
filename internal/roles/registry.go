package roles

import "kinship-engine/internal/model"

var registry = map[model.RelationshipType]string{
	model.RelHead:          "मुखिया",
	model.RelSpouse:        "पत्नी",
	model.RelSon:           "पुत्र",
	model.RelDaughter:      "पुत्री",
	model.RelBrother:       "भाई",
	model.RelSister:        "बहन",
	model.RelNiece:         "भतीजी",
	model.RelNephew:        "भतीजा",
	model.RelDaughterInLaw: "बहू",
	model.RelSonInLaw:      "दामाद",
	model.RelSisterInLaw:   "भाभी",
	model.RelBrotherInLaw:  "जीजा",
	model.RelOther:         "रिश्तेदार",
}

const husband = "पति"

// Label returns the display label for a relationship code.
// Unknown codes come back unchanged.
func Label(code model.RelationshipType) string {
	if l, ok := registry[code]; ok {
		return l
	}
	return string(code)
}

func IsKnown(code model.RelationshipType) bool {
	_, ok := registry[code]
	return ok
}

// Wife is the label given to a member inferred to be someone's spouse.
func Wife() string {
	return registry[model.RelSpouse]
}

// Husband labels a spouse known to be male.
func Husband() string {
	return husband
}

func Child(female bool) string {
	if female {
		return registry[model.RelDaughter]
	}
	return registry[model.RelSon]
}
