package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kinship-engine/internal/model"
)

func TestLabel(t *testing.T) {
	assert.Equal(t, "बहू", Label("daughter-in-law"))
	assert.Equal(t, "मुखिया", Label(model.RelHead))
	assert.Equal(t, "रिश्तेदार", Label(model.RelOther))
}

func TestLabel_UnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t, "unrecognized_code", Label("unrecognized_code"))
	assert.Equal(t, "", Label(""))
	assert.False(t, IsKnown("unrecognized_code"))
}

func TestEveryRelationshipTypeHasLabel(t *testing.T) {
	all := []model.RelationshipType{
		model.RelHead, model.RelSpouse, model.RelSon, model.RelDaughter,
		model.RelBrother, model.RelSister, model.RelNiece, model.RelNephew,
		model.RelDaughterInLaw, model.RelSonInLaw, model.RelSisterInLaw,
		model.RelBrotherInLaw, model.RelOther,
	}
	for _, code := range all {
		assert.True(t, IsKnown(code), code)
		assert.NotEqual(t, string(code), Label(code), code)
	}
}

func TestGenderedLabels(t *testing.T) {
	assert.Equal(t, "पुत्री", Child(true))
	assert.Equal(t, "पुत्र", Child(false))
	assert.Equal(t, "पत्नी", Wife())
	assert.Equal(t, "पति", Husband())
}
