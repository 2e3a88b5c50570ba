package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type node struct {
	val  int
	next *node
}

func TestAllocReturnsDistinctStablePointers(t *testing.T) {
	a := New[node](4)
	var nodes []*node
	for i := 0; i < 10; i++ {
		n := a.Alloc()
		n.val = i
		nodes = append(nodes, n)
	}
	for i, n := range nodes {
		require.Equal(t, i, n.val, "allocation %d was overwritten by growth", i)
	}
}

func TestAllocZeroesMemory(t *testing.T) {
	a := New[node](2)
	n := a.Alloc()
	require.Zero(t, n.val)
	require.Nil(t, n.next)
}

func TestReleaseDropsChunks(t *testing.T) {
	a := New[node](4)
	a.Alloc()
	a.Release()
	n := a.Alloc()
	require.NotNil(t, n)
}

func TestDefaultChunkSize(t *testing.T) {
	a := New[node](0)
	require.Equal(t, 256, a.chunkSize)
}
