package inference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinship-engine/internal/model"
)

func TestBuild_VirtualAncestorForSharedRelative(t *testing.T) {
	members := []model.Member{
		member("1", "Ram", "Mohan", "Male", 30),
		member("2", "Gita", "Shri Mohan", "Female", 35),
		member("3", "Kamla", "", "Female", 70),
	}

	f, msgs := Build(members)
	require.Empty(t, msgs)
	require.Len(t, f.Roots, 2)

	v := f.Nodes[f.Roots[0]]
	assert.True(t, v.IsVirtual)
	assert.True(t, v.IsRoot)
	assert.Equal(t, "virtual-1", v.ID)
	assert.Equal(t, "Mohan (कुलपिता)", v.Name)
	assert.Equal(t, "Male", v.Gender)
	require.NotNil(t, v.Age)
	assert.Equal(t, 35+VirtualAgeOffset, *v.Age)
	assert.Equal(t, []int{0, 1}, v.Children)

	assert.Equal(t, "पुत्र", f.Nodes[0].RelationLabel)
	assert.Equal(t, "पुत्री", f.Nodes[1].RelationLabel)
	assert.False(t, f.Nodes[0].IsRoot)
	assert.False(t, f.Nodes[1].IsRoot)

	assert.Equal(t, 2, f.Roots[1])
	assert.Equal(t, 3, f.Real())
}

func TestBuild_SingleCitationStaysPlainRoot(t *testing.T) {
	f, _ := Build([]model.Member{
		member("1", "Ram", "Mohan", "Male", 30),
		member("2", "Gita", "Sohan", "Female", 25),
	})
	assert.Equal(t, []int{0, 1}, f.Roots)
	assert.Len(t, f.Nodes, 2)
}

func TestBuild_EmptyRelativeNamesNeverGrouped(t *testing.T) {
	f, _ := Build([]model.Member{
		member("1", "Ram", "", "Male", 30),
		member("2", "Gita", "Shri", "Female", 25),
		member("3", "Sohan", "  ", "Male", 20),
	})
	assert.Equal(t, []int{0, 1, 2}, f.Roots)
	assert.Len(t, f.Nodes, 3)
}

func TestBuild_ResolvedButUnclassifiedRelativeNotVirtualised(t *testing.T) {
	// Both name a real Mohan whose age is unknown.
	f, msgs := Build([]model.Member{
		{ID: "1", Name: "Mohan", Gender: "Male"},
		member("2", "Ram", "Mohan", "Male", 30),
		member("3", "Shyam", "Mohan", "Male", 28),
	})
	assert.Equal(t, []string{model.CodeAgeUnknown, model.CodeAgeUnknown}, codes(msgs))
	assert.Equal(t, []int{0, 1, 2}, f.Roots)
	assert.Len(t, f.Nodes, 3)
}

func TestBuild_FallbackAgeWhenNoChildAgeKnown(t *testing.T) {
	f, _ := Build([]model.Member{
		{ID: "1", Name: "Ram", RelativeName: "Mohan", Gender: "Male"},
		{ID: "2", Name: "Shyam", RelativeName: "Mohan", Gender: "Male"},
	})
	require.Len(t, f.Roots, 1)
	v := f.Nodes[f.Roots[0]]
	require.NotNil(t, v.Age)
	assert.Equal(t, VirtualFallbackAge, *v.Age)
}

func TestBuild_GroupOrderFollowsFirstSeenKey(t *testing.T) {
	f, _ := Build([]model.Member{
		member("1", "A", "Sohan", "Male", 30),
		member("2", "B", "", "Male", 31),
		member("3", "C", "Mohan", "Male", 32),
		member("4", "D", "Sohan", "Male", 33),
		member("5", "E", "Mohan", "Male", 34),
	})
	require.Len(t, f.Roots, 3)
	assert.True(t, strings.HasPrefix(f.Nodes[f.Roots[0]].Name, "Sohan"))
	assert.Equal(t, 1, f.Roots[1])
	assert.True(t, strings.HasPrefix(f.Nodes[f.Roots[2]].Name, "Mohan"))
	assert.Equal(t, "virtual-1", f.Nodes[f.Roots[0]].ID)
	assert.Equal(t, "virtual-2", f.Nodes[f.Roots[2]].ID)
}

func TestBuild_VirtualIDAvoidsRealIDs(t *testing.T) {
	f, _ := Build([]model.Member{
		member("virtual-1", "Ram", "Mohan", "Male", 30),
		member("2", "Shyam", "Mohan", "Male", 28),
	})
	require.Len(t, f.Roots, 1)
	assert.Equal(t, "virtual-2", f.Nodes[f.Roots[0]].ID)
}

func TestBuild_VirtualGroupKeepsSubtrees(t *testing.T) {
	f, _ := Build([]model.Member{
		member("1", "Ram", "Mohan", "Male", 40),
		member("2", "Sita", "Ram", "Female", 38),
		member("3", "Shyam", "Mohan", "Male", 45),
		member("4", "Luv", "Ram", "Male", 15),
	})
	view := f.View()
	require.Len(t, view, 1)
	root := view[0]
	assert.True(t, root.IsVirtual)
	require.Len(t, root.Children, 2)
	ram := root.Children[0]
	require.NotNil(t, ram.Spouse)
	assert.Equal(t, "Sita", ram.Spouse.Name)
	require.Len(t, ram.Children, 1)
	assert.Equal(t, "Luv", ram.Children[0].Name)
	assert.Equal(t, 3, root.Depth())
}
