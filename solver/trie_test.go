package solver

import (
	"testing"

	"snakeoracle/graph"

	"github.com/stretchr/testify/require"
)

func TestTrieInsertAndFind(t *testing.T) {
	tr := newTrie()

	id := tr.insert([]graph.Vertex{0, 1, 3})
	require.Equal(t, 3, tr.depth(id))
	require.Equal(t, []graph.Vertex{0, 1, 3}, tr.pathToRoot(id))
	require.Equal(t, graph.Vertex(0), tr.tail(id))
	require.Equal(t, 3, tr.live)

	t.Run("inserting a shared prefix reuses nodes", func(t *testing.T) {
		other := tr.insert([]graph.Vertex{0, 1, 2})

		require.NotEqual(t, id, other)
		require.Equal(t, tr.parent(id), tr.parent(other))
		require.Equal(t, 4, tr.live)
	})

	t.Run("inserting twice returns the same node", func(t *testing.T) {
		require.Equal(t, id, tr.insert([]graph.Vertex{0, 1, 3}))
	})

	t.Run("finding", func(t *testing.T) {
		require.Equal(t, id, tr.find([]graph.Vertex{0, 1, 3}))
		require.Equal(t, noNode, tr.find([]graph.Vertex{0, 3}))
		require.Equal(t, root, tr.find(nil))
	})
}

func TestTrieDetachAndPrune(t *testing.T) {
	tr := newTrie()
	a := tr.insert([]graph.Vertex{0, 1, 2})
	b := tr.insert([]graph.Vertex{0, 1, 3})
	mid := tr.parent(a)

	t.Run("detaching a node with children panics", func(t *testing.T) {
		require.Panics(t, func() { tr.detach(mid) })
	})

	tr.detach(a)
	require.Equal(t, []NodeID{b}, tr.children(mid))
	require.Equal(t, 3, tr.live)

	t.Run("freed slots are reused", func(t *testing.T) {
		c := tr.insert([]graph.Vertex{0, 1, 4})

		require.Equal(t, a, c)
		require.Equal(t, []NodeID{b, c}, tr.children(mid))
		tr.detach(c)
	})

	t.Run("pruning climbs to the root", func(t *testing.T) {
		survivor := tr.prune(b)

		require.Equal(t, root, survivor)
		require.Empty(t, tr.children(root))
		require.Equal(t, 0, tr.live)
	})

	t.Run("pruning stops at a node with state", func(t *testing.T) {
		keep := tr.insert([]graph.Vertex{5, 6})
		leaf := tr.insert([]graph.Vertex{5, 6, 7})
		tr.nodes[keep].state = &layerState{}

		require.Equal(t, keep, tr.prune(leaf))
		require.Equal(t, 2, tr.live)
	})
}

func TestTrieAppendPathReusesBuffer(t *testing.T) {
	tr := newTrie()
	long := tr.insert([]graph.Vertex{3, 2, 1, 0})
	short := tr.insert([]graph.Vertex{3, 2})

	buf := tr.appendPath(nil, long)
	require.Equal(t, []graph.Vertex{3, 2, 1, 0}, buf)

	buf = tr.appendPath(buf, short)
	require.Equal(t, []graph.Vertex{3, 2}, buf)
	require.Equal(t, 4, cap(buf))
}

func TestTrieEach(t *testing.T) {
	tr := newTrie()
	tr.insert([]graph.Vertex{0, 1})
	tr.insert([]graph.Vertex{1, 0})
	tr.detach(tr.find([]graph.Vertex{1, 0}))

	var seen [][]graph.Vertex
	tr.each(func(id NodeID) {
		seen = append(seen, tr.pathToRoot(id))
	})

	require.ElementsMatch(t, [][]graph.Vertex{{0}, {0, 1}, {1}}, seen)
}
