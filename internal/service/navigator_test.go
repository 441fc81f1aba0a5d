package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *CourseTree {
	return &CourseTree{
		ID:    "course-1",
		Title: "Onboarding",
		Modules: []ModuleNode{
			{
				ID: "mod-a", Title: "A", SortOrder: 1,
				Items: []ContentNode{
					{ID: "a1", ModuleID: "mod-a", Title: "a1", SortOrder: 1},
					{ID: "a2", ModuleID: "mod-a", Title: "a2", SortOrder: 2},
				},
			},
			{ID: "mod-b", Title: "B", SortOrder: 2},
			{
				ID: "mod-d", Title: "D", SortOrder: 3,
				Items: []ContentNode{
					{ID: "d1", ModuleID: "mod-d", Title: "d1", SortOrder: 1},
				},
			},
		},
	}
}

func TestFlattenTreeSkipsEmptyModules(t *testing.T) {
	flat := FlattenTree(sampleTree())

	require.Len(t, flat, 3)
	assert.Equal(t, []string{"a1", "a2", "d1"}, []string{flat[0].ID, flat[1].ID, flat[2].ID})
}

func TestFlattenNilTree(t *testing.T) {
	assert.Nil(t, FlattenTree(nil))
}

func TestNeighborsMiddleCrossesModuleBoundary(t *testing.T) {
	nav := ComputeNeighbors(sampleTree(), "a2")

	require.NotNil(t, nav.Prev)
	require.NotNil(t, nav.Next)
	assert.Equal(t, "a1", nav.Prev.ContentItemID)
	// 下一项跨过空模块 B 落到 D 的第一项
	assert.Equal(t, "d1", nav.Next.ContentItemID)
	assert.Equal(t, "mod-d", nav.Next.ModuleID)
}

func TestNeighborsAtBoundaries(t *testing.T) {
	tree := sampleTree()

	first := ComputeNeighbors(tree, "a1")
	assert.Nil(t, first.Prev)
	require.NotNil(t, first.Next)
	assert.Equal(t, "a2", first.Next.ContentItemID)

	last := ComputeNeighbors(tree, "d1")
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Prev)
	assert.Equal(t, "a2", last.Prev.ContentItemID)
}

func TestNeighborsUnknownID(t *testing.T) {
	nav := ComputeNeighbors(sampleTree(), "nope")

	assert.Nil(t, nav.Prev)
	assert.Nil(t, nav.Next)
}

func TestNeighborsSingleItemTree(t *testing.T) {
	tree := &CourseTree{
		Modules: []ModuleNode{
			{ID: "m", Items: []ContentNode{{ID: "only", ModuleID: "m"}}},
		},
	}

	nav := ComputeNeighbors(tree, "only")
	assert.Nil(t, nav.Prev)
	assert.Nil(t, nav.Next)
}
