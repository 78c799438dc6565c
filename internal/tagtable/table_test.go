package tagtable

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RichMorin/dtags/internal/types"
)

func ref(tag, id, file string, line int) types.Ref {
	return types.Ref{Tag: tag, Identity: id, File: file, Line: line}
}

func TestInsertAndTags(t *testing.T) {
	table := New()
	table.Insert(ref("zebra", "id1", "b.rst", 1), "body1")
	table.Insert(ref("apple", "id2", "a.rst", 5), "body2")
	table.Insert(ref("mango", "id3", "c.rst", 9), "body3")

	assert.Equal(t, []string{"apple", "mango", "zebra"}, table.Tags())
	assert.Equal(t, 3, table.Count())
}

func TestDefinitionsOrderedByRefCount(t *testing.T) {
	table := New()
	// Majority variant: three occurrences.
	table.Insert(ref("x", "common", "a.rst", 1), "common body")
	table.Insert(ref("x", "common", "b.rst", 1), "common body")
	table.Insert(ref("x", "common", "c.rst", 1), "common body")
	// Minority variant: one occurrence.
	table.Insert(ref("x", "outlier", "d.rst", 1), "outlier body")

	defs := table.Definitions("x")
	require.Len(t, defs, 2)
	assert.Equal(t, "outlier", defs[0].Identity, "minority variants come first")
	assert.Equal(t, "common", defs[1].Identity)
}

func TestDefinitionsTieBreakOnIdentity(t *testing.T) {
	table := New()
	table.Insert(ref("x", "bbb", "a.rst", 1), "b")
	table.Insert(ref("x", "aaa", "b.rst", 1), "a")

	defs := table.Definitions("x")
	require.Len(t, defs, 2)
	assert.Equal(t, "aaa", defs[0].Identity)
}

func TestRefsOrderedByFileThenLine(t *testing.T) {
	table := New()
	table.Insert(ref("x", "id", "b.rst", 3), "body")
	table.Insert(ref("x", "id", "a.rst", 9), "body")
	table.Insert(ref("x", "id", "a.rst", 2), "body")

	defs := table.Definitions("x")
	require.Len(t, defs, 1)
	refs := defs[0].Refs
	require.Len(t, refs, 3)
	assert.Equal(t, "a.rst:2", refs[0].Location())
	assert.Equal(t, "a.rst:9", refs[1].Location())
	assert.Equal(t, "b.rst:3", refs[2].Location())
}

func TestConsistency(t *testing.T) {
	table := New()
	table.Insert(ref("same", "id1", "a.rst", 1), "body")
	table.Insert(ref("same", "id1", "b.rst", 1), "body")
	table.Insert(ref("split", "id1", "a.rst", 5), "one")
	table.Insert(ref("split", "id2", "b.rst", 5), "two")

	assert.True(t, table.Consistent("same"))
	assert.False(t, table.Consistent("split"))
	assert.True(t, table.Consistent("unknown"), "unknown tags are vacuously consistent")
	assert.Equal(t, []string{"split"}, table.Inconsistent())
}

func TestDefinitionsMatchingConsistencyOnly(t *testing.T) {
	table := New()
	table.Insert(ref("same", "id1", "a.rst", 1), "body")
	table.Insert(ref("split", "id1", "a.rst", 5), "one")
	table.Insert(ref("split", "id2", "b.rst", 5), "two")

	sel := &types.Selector{ConsistencyOnly: true}
	defs := table.DefinitionsMatching(sel)
	require.Len(t, defs, 2)
	for _, td := range defs {
		assert.Equal(t, "split", td.Tag)
	}
}

func TestDefinitionsMatchingPattern(t *testing.T) {
	table := New()
	table.Insert(ref("install_node", "id1", "a.rst", 1), "n")
	table.Insert(ref("install_ruby", "id2", "a.rst", 9), "r")
	table.Insert(ref("remove_node", "id3", "a.rst", 20), "x")

	sel := &types.Selector{Pattern: regexp.MustCompile(`^install_`)}
	defs := table.DefinitionsMatching(sel)
	require.Len(t, defs, 2)
	assert.Equal(t, "install_node", defs[0].Tag)
	assert.Equal(t, "install_ruby", defs[1].Tag)
}

func TestRefsMatching(t *testing.T) {
	table := New()
	table.Insert(ref("a", "id1", "z.rst", 4), "body")
	table.Insert(ref("a", "id1", "a.rst", 8), "body")
	table.Insert(ref("b", "id2", "m.rst", 2), "body")

	refs := table.RefsMatching(&types.Selector{})
	require.Len(t, refs, 3)
	// Tag order first, then file/line within a definition.
	assert.Equal(t, "a.rst:8", refs[0].Location())
	assert.Equal(t, "z.rst:4", refs[1].Location())
	assert.Equal(t, "m.rst:2", refs[2].Location())
}

func TestInsertKeepsFirstBody(t *testing.T) {
	table := New()
	table.Insert(ref("x", "id", "a.rst", 1), "the body")
	table.Insert(ref("x", "id", "b.rst", 1), "the body")

	defs := table.Definitions("x")
	require.Len(t, defs, 1)
	assert.Equal(t, "the body", defs[0].Body)
	assert.Len(t, defs[0].Refs, 2)
}
