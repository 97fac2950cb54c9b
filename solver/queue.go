package solver

import (
	"math/big"

	"snakeoracle/graph"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// entry is a pending score update: node reached at cost, with the target
// that was placed, or none for an entry that still has to be chopped.
type entry struct {
	cost  *big.Int
	seq   uint64
	node  NodeID
	apple graph.Vertex
}

// entryComparator orders by cost and breaks ties by insertion order, so runs
// on the same graph pop entries identically.
func entryComparator(a, b interface{}) int {
	ea, eb := a.(entry), b.(entry)
	if c := ea.cost.Cmp(eb.cost); c != 0 {
		return c
	}
	switch {
	case ea.seq < eb.seq:
		return -1
	case ea.seq > eb.seq:
		return 1
	}
	return 0
}

type queue struct {
	heap *binaryheap.Heap
	seq  uint64
}

func newQueue() *queue {
	return &queue{heap: binaryheap.NewWith(entryComparator)}
}

// push queues an entry. cost is not copied and must not change afterwards.
func (q *queue) push(cost *big.Int, id NodeID, apple graph.Vertex) {
	q.seq++
	q.heap.Push(entry{cost: cost, seq: q.seq, node: id, apple: apple})
}

func (q *queue) pop() (entry, bool) {
	v, ok := q.heap.Pop()
	if !ok {
		return entry{}, false
	}
	return v.(entry), true
}

func (q *queue) len() int {
	return q.heap.Size()
}
