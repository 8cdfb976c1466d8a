package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCondenseGraphCollapsesLinearChain(t *testing.T) {
	g := testGraph(4, 8)
	batch, err := newRecordBatch(encodeRecord(1, '0', "AAAAGGGG", "IIIIIIII"), 8)
	require.NoError(t, err)
	_, err = buildGraph(g, batch)
	require.NoError(t, err)

	head := g.index.get([]byte("AAAA"))
	require.NotNil(t, head)

	identifyRoots(g)
	condenseGraph(g)

	assert.True(t, head.IsCondensed)
	assert.Equal(t, "AAAAGGGG", string(head.Seq))
	assert.Empty(t, head.To)

	// Every absorbed interior node is marked filtered.
	mid := g.index.get([]byte("AAAG"))
	require.NotNil(t, mid)
	assert.True(t, mid.IsFiltered)
}

func TestCondenseGraphStopsAtBranchPoint(t *testing.T) {
	g := testGraph(4, 9)
	data := append(
		encodeRecord(1, '0', "ACGATCCCC", "IIIIIIIII"),
		encodeRecord(1, '0', "ACGATGGGG", "IIIIIIIII")...,
	)
	batch, err := newRecordBatch(data, 9)
	require.NoError(t, err)
	g.cfg.MinNodeFrequency = 1
	_, err = buildGraph(g, batch)
	require.NoError(t, err)

	identifyRoots(g)
	condenseGraph(g)

	head := g.index.get([]byte("ACGA"))
	require.NotNil(t, head)
	assert.True(t, head.IsCondensed)
	// Condensation absorbs the fork node itself (it still has exactly one
	// incoming edge) but stops there, since it has two outgoing edges; the
	// condensed head inherits both branch successors.
	require.Len(t, head.To, 2)
}
