package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinship-engine/internal/model"
)

func TestInferFromFlatRecords(t *testing.T) {
	req := &model.InferRequest{
		HouseholdID: "ward9-h12",
		Members: []model.Member{
			{ID: "1", Name: "Shyam", Gender: "Male", Age: model.KnownAge(60), HouseNo: "12"},
			{ID: "2", Name: "Ram", RelativeName: "Shyam", Gender: "Male", Age: model.KnownAge(30), HouseNo: "12"},
			{ID: "3", Name: "Sita", RelativeName: "Ram", Gender: "Female", Age: model.KnownAge(28), HouseNo: "12"},
			{ID: "4", Name: "Luv", RelativeName: "Mohan", Gender: "Male", Age: model.KnownAge(20), HouseNo: "12"},
			{ID: "5", Name: "Kush", RelativeName: "Mohan", Gender: "Male", Age: model.KnownAge(22), HouseNo: "12"},
		},
	}

	resp := InferFromFlatRecords(req)

	md := resp.Metadata
	assert.Equal(t, model.OutcomeSuccess, md.Outcome)
	assert.Equal(t, "ward9-h12", md.HouseholdID)
	assert.Equal(t, model.PathInferred, md.Path)
	_, err := uuid.Parse(md.RequestID)
	require.NoError(t, err)
	_, err = time.Parse(time.RFC3339, md.StartedAt)
	require.NoError(t, err)

	require.NotNil(t, resp.Result.Messages)
	assert.Empty(t, resp.Result.Messages)
	assert.Equal(t, model.TreeStats{Members: 5, Virtual: 1, Roots: 2, Generations: 2}, resp.Result.Stats)

	roots := resp.Result.Roots
	require.Len(t, roots, 2)
	assert.Equal(t, "Shyam", roots[0].Name)
	assert.Equal(t, "Sita", roots[0].Children[0].Spouse.Name)
	assert.True(t, roots[1].IsVirtual)
	assert.Len(t, roots[1].Children, 2)
}

func TestInferFromFlatRecords_WarningsMakeOutcomePartial(t *testing.T) {
	resp := InferFromFlatRecords(&model.InferRequest{
		HouseholdID: "h",
		Members: []model.Member{
			{ID: "1", Name: "Ram", Gender: "Male", Age: model.KnownAge(40)},
			{ID: "2", Name: "Sita", RelativeName: "Ram", Gender: "Female", Age: model.KnownAge(38)},
			{ID: "3", Name: "Gita", RelativeName: "Ram", Gender: "Female", Age: model.KnownAge(36)},
			{ID: "4", Name: "Hari", RelativeName: "Ram", Gender: "Male"},
		},
	})

	assert.Equal(t, model.OutcomePartial, resp.Metadata.Outcome)
	msgs := resp.Result.Messages
	require.Len(t, msgs, 2)
	for i, m := range msgs {
		assert.Equal(t, i, m.ID)
	}
	assert.Equal(t, model.CodeSpouseConflict, msgs[0].Code)
	assert.Equal(t, model.CodeAgeUnknown, msgs[1].Code)
	assert.Equal(t, 4, resp.Result.Stats.Members)
}

func TestInferFromFlatRecords_InfoOnlyStaysSuccess(t *testing.T) {
	resp := InferFromFlatRecords(&model.InferRequest{
		HouseholdID: "h",
		Members: []model.Member{
			{ID: "1", Name: "Ram", Gender: "Male"},
			{ID: "2", Name: "Hari", RelativeName: "Ram", Gender: "Male", Age: model.KnownAge(10)},
		},
	})
	assert.Equal(t, model.OutcomeSuccess, resp.Metadata.Outcome)
	require.Len(t, resp.Result.Messages, 1)
	assert.Equal(t, model.LevelInfo, resp.Result.Messages[0].Level)
}

func TestInferFromFlatRecords_EmptyHousehold(t *testing.T) {
	resp := InferFromFlatRecords(&model.InferRequest{HouseholdID: "empty"})
	assert.Equal(t, model.OutcomeSuccess, resp.Metadata.Outcome)
	require.NotNil(t, resp.Result.Roots)
	assert.Empty(t, resp.Result.Roots)
	assert.Equal(t, model.TreeStats{}, resp.Result.Stats)
}

func TestAssembleFromClassifiedEdges(t *testing.T) {
	req := &model.ClassifiedRequest{
		HouseholdID: "ward9-h4",
		Household: model.Household{
			Head: &model.Member{ID: "h", Name: "Harish", Gender: "Male", Age: model.KnownAge(60)},
			Relationships: []model.Edge{
				{MemberID: "w", Name: "Kamla", Gender: "Female", RelationshipType: model.RelSpouse, RelatedTo: &model.RelatedRef{ID: "h"}},
				{MemberID: "s", Name: "Ravi", Gender: "Male", RelationshipType: model.RelSon, RelatedTo: &model.RelatedRef{ID: "h"}},
				{MemberID: "x", Name: "Raju", Gender: "Male", RelationshipType: model.RelNephew, RelatedTo: &model.RelatedRef{ID: "nobody"}},
			},
		},
	}

	resp := AssembleFromClassifiedEdges(req)

	assert.Equal(t, model.PathClassified, resp.Metadata.Path)
	assert.Equal(t, model.OutcomePartial, resp.Metadata.Outcome)
	require.Len(t, resp.Result.Roots, 1)
	head := resp.Result.Roots[0]
	assert.Equal(t, "Kamla", head.Spouse.Name)
	assert.Len(t, head.Children, 1)
	require.Len(t, resp.Result.Messages, 1)
	assert.Equal(t, model.CodeOrphanEdge, resp.Result.Messages[0].Code)
	assert.Equal(t, model.TreeStats{Members: 3, Roots: 1, Generations: 2}, resp.Result.Stats)
}

func TestAssembleFromClassifiedEdges_NoHeadFails(t *testing.T) {
	resp := AssembleFromClassifiedEdges(&model.ClassifiedRequest{
		HouseholdID: "h",
		Household: model.Household{Relationships: []model.Edge{
			{MemberID: "s", Name: "Ravi", RelationshipType: model.RelSon, RelatedTo: &model.RelatedRef{ID: "h"}},
		}},
	})

	assert.Equal(t, model.OutcomeFailure, resp.Metadata.Outcome)
	assert.Empty(t, resp.Result.Roots)
	require.Len(t, resp.Result.Messages, 1)
	assert.Equal(t, model.CodeNoHead, resp.Result.Messages[0].Code)
	assert.Equal(t, model.LevelCritical, resp.Result.Messages[0].Level)
}

func TestProcess_Dispatch(t *testing.T) {
	flat := Process(model.HouseholdJob{HouseholdID: "a", Members: []model.Member{{ID: "1", Name: "Ram"}}})
	assert.Equal(t, model.PathInferred, flat.Metadata.Path)

	cls := Process(model.HouseholdJob{
		HouseholdID: "b",
		Members:     []model.Member{{ID: "1", Name: "Ram"}},
		Classified:  &model.Household{Head: &model.Member{ID: "1", Name: "Ram"}},
	})
	assert.Equal(t, model.PathClassified, cls.Metadata.Path)
	assert.Equal(t, "b", cls.Metadata.HouseholdID)
}
