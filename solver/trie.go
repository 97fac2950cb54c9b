package solver

import (
	"fmt"

	"snakeoracle/graph"
)

// NodeID indexes a node of the trie arena.
type NodeID int32

const (
	root   NodeID = 0
	noNode NodeID = -1
)

// node is one configuration: the path from the root to the node lists the
// body from tail to head.
type node struct {
	value    graph.Vertex
	parent   NodeID
	depth    int32
	children []NodeID
	state    *layerState // set once the backward build reaches the node
}

// trie stores every configuration once, in an arena of nodes with a freelist
// for pruned slots.
type trie struct {
	nodes []node
	free  []NodeID
	live  int
}

func newTrie() *trie {
	t := &trie{nodes: make([]node, 1, 1024)}
	t.nodes[root] = node{value: -1, parent: noNode}
	return t
}

func (t *trie) value(id NodeID) graph.Vertex {
	return t.nodes[id].value
}

func (t *trie) parent(id NodeID) NodeID {
	return t.nodes[id].parent
}

func (t *trie) depth(id NodeID) int {
	return int(t.nodes[id].depth)
}

// tail returns the first cell of the configuration of id.
func (t *trie) tail(id NodeID) graph.Vertex {
	for t.nodes[id].depth > 1 {
		id = t.nodes[id].parent
	}
	return t.nodes[id].value
}

func (t *trie) children(id NodeID) []NodeID {
	return t.nodes[id].children
}

// child returns the child of id holding v, or noNode.
func (t *trie) child(id NodeID, v graph.Vertex) NodeID {
	for _, c := range t.nodes[id].children {
		if t.nodes[c].value == v {
			return c
		}
	}
	return noNode
}

// findOrCreateChild returns the child of id holding v, linking a new node if
// there is none yet.
func (t *trie) findOrCreateChild(id NodeID, v graph.Vertex) NodeID {
	if c := t.child(id, v); c != noNode {
		return c
	}

	n := node{value: v, parent: id, depth: t.nodes[id].depth + 1}
	var c NodeID
	if k := len(t.free); k > 0 {
		c = t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[c] = n
	} else {
		c = NodeID(len(t.nodes))
		t.nodes = append(t.nodes, n)
	}
	t.nodes[id].children = append(t.nodes[id].children, c)
	t.live++
	return c
}

// insert returns the node of the configuration, creating missing nodes.
func (t *trie) insert(snake []graph.Vertex) NodeID {
	id := root
	for _, v := range snake {
		id = t.findOrCreateChild(id, v)
	}
	return id
}

// find returns the node of the configuration, or noNode.
func (t *trie) find(snake []graph.Vertex) NodeID {
	id := root
	for _, v := range snake {
		if id = t.child(id, v); id == noNode {
			return noNode
		}
	}
	return id
}

// pathToRoot rebuilds the configuration of id, tail first. It walks the whole
// branch, so hot loops should avoid it.
func (t *trie) pathToRoot(id NodeID) []graph.Vertex {
	return t.appendPath(nil, id)
}

// appendPath writes the configuration of id into buf[:0], growing it as needed.
func (t *trie) appendPath(buf []graph.Vertex, id NodeID) []graph.Vertex {
	n := t.depth(id)
	if cap(buf) < n {
		buf = make([]graph.Vertex, n)
	}
	buf = buf[:n]
	for i := n - 1; i >= 0; i-- {
		buf[i] = t.nodes[id].value
		id = t.nodes[id].parent
	}
	return buf
}

// detach unlinks a childless node from its parent and frees its slot.
func (t *trie) detach(id NodeID) {
	n := &t.nodes[id]
	if id == root || len(n.children) > 0 {
		panic(fmt.Sprintf("cannot detach node %d with %d children", id, len(n.children)))
	}

	siblings := t.nodes[n.parent].children
	for i, c := range siblings {
		if c == id {
			t.nodes[n.parent].children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}

	*n = node{value: -1, parent: noNode, depth: -1}
	t.free = append(t.free, id)
	t.live--
}

// prune removes id and then every ancestor left without children, stopping at
// the root or at a node that carries build state. It returns the first node
// that survives.
func (t *trie) prune(id NodeID) NodeID {
	for id != root && len(t.nodes[id].children) == 0 && t.nodes[id].state == nil {
		parent := t.nodes[id].parent
		t.detach(id)
		id = parent
	}
	return id
}

// each calls fn for every live configuration node.
func (t *trie) each(fn func(id NodeID)) {
	for i := 1; i < len(t.nodes); i++ {
		if t.nodes[i].depth > 0 {
			fn(NodeID(i))
		}
	}
}
