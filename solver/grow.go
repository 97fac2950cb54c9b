package solver

import (
	"snakeoracle/graph"
	"snakeoracle/utils"
)

const none graph.Vertex = -1

// grower runs the depth-first search for safe-winning configurations of full
// length. Alongside the trie it keeps the subgraph of edges a Hamiltonian
// completion could still use: body edges count towards degrees, edges out of
// body cells other than the head are cut.
type grower struct {
	g    *graph.Graph
	t    *trie
	area int

	length     int
	current    NodeID
	firstHead  graph.Vertex
	secondHead graph.Vertex
	endPoint   graph.Vertex

	possible [][]graph.Vertex
	degrees  []int
	occupied []bool

	// flood fill scratch
	seen  []int
	stamp int
	flood []graph.Vertex

	terminals []NodeID
}

func newGrower(g *graph.Graph, t *trie) *grower {
	area := g.Area()
	gr := &grower{
		g:        g,
		t:        t,
		area:     area,
		endPoint: none,
		possible: make([][]graph.Vertex, area),
		degrees:  make([]int, area),
		occupied: make([]bool, area),
		seen:     make([]int, area),
	}
	for v := 0; v < area; v++ {
		neighbors := g.Neighbors(graph.Vertex(v))
		gr.possible[v] = append(make([]graph.Vertex, 0, len(neighbors)), neighbors...)
		gr.degrees[v] = len(neighbors)
	}
	return gr
}

// grow seeds every two-cell configuration and searches below it. It returns
// the terminal nodes, i.e. the safe-winning configurations of full length.
func (gr *grower) grow() []NodeID {
	for v := 0; v < gr.area; v++ {
		first := graph.Vertex(v)
		gr.firstHead = first
		start := gr.t.findOrCreateChild(root, first)
		gr.current = start
		gr.length = 1
		gr.occupied[first] = true
		for _, second := range gr.g.Neighbors(first) {
			gr.secondHead = second
			gr.t.findOrCreateChild(start, second)
			gr.search(second)
		}
		gr.occupied[first] = false
		gr.t.prune(start)
	}
	return gr.terminals
}

// search walks one branch with an explicit stack. A head popped while already
// occupied marks the way back out of its subtree.
func (gr *grower) search(second graph.Vertex) {
	stack := []graph.Vertex{second}
	for len(stack) > 0 {
		head := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if gr.occupied[head] {
			gr.unoccupy()
			continue
		}
		gr.occupy(head)
		stack = append(stack, head)

		if gr.length == gr.area {
			gr.terminals = append(gr.terminals, gr.current)
			continue
		}

		if gr.safeWinningIsImpossible(head) {
			continue
		}

		for _, next := range gr.possible[head] {
			gr.t.findOrCreateChild(gr.current, next)
			stack = append(stack, next)
		}
	}
}

// occupy moves the head onto a child of the current node. The body edge
// between the old and new head becomes definite and every other possible edge
// of the old head is cut.
func (gr *grower) occupy(head graph.Vertex) {
	gr.length++
	prev := gr.t.value(gr.current)
	gr.current = gr.t.child(gr.current, head)
	gr.occupied[head] = true

	gr.degrees[head]++
	gr.degrees[prev]++

	for len(gr.possible[prev]) > 0 {
		k := len(gr.possible[prev]) - 1
		neighbor := gr.possible[prev][k]
		gr.possible[prev] = gr.possible[prev][:k]
		gr.possible[neighbor] = removeVertex(gr.possible[neighbor], prev)
		gr.degrees[neighbor]--
		gr.degrees[prev]--
	}
}

// unoccupy exactly reverses the last occupy, deleting the node if nothing
// below it survived.
func (gr *grower) unoccupy() {
	head := gr.t.value(gr.current)
	parent := gr.t.parent(gr.current)
	if gr.length != gr.area && len(gr.t.children(gr.current)) == 0 {
		gr.t.detach(gr.current)
	}
	gr.current = parent

	prev := gr.t.value(gr.current)
	gr.occupied[head] = false
	gr.length--

	gr.degrees[prev]--
	gr.degrees[head]--

	for _, neighbor := range gr.g.Neighbors(prev) {
		if gr.occupied[neighbor] {
			continue
		}
		gr.possible[neighbor] = append(gr.possible[neighbor], prev)
		gr.possible[prev] = append(gr.possible[prev], neighbor)
		gr.degrees[prev]++
		gr.degrees[neighbor]++
	}
}

func removeVertex(list []graph.Vertex, v graph.Vertex) []graph.Vertex {
	i := utils.FindIndex(list, v)
	if i < 0 {
		panic("possible edge missing its reverse")
	}
	return append(list[:i], list[i+1:]...)
}
