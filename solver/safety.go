package solver

import (
	"snakeoracle/graph"
)

// safeWinningIsImpossible reports whether no safe-winning completion exists
// below the configuration whose head was just placed.
func (gr *grower) safeWinningIsImpossible(head graph.Vertex) bool {
	// the head needs somewhere to go
	if len(gr.possible[head]) == 0 {
		return true
	}
	if gr.impossibleByDegrees() {
		return true
	}
	if gr.emptySpaceIsDisconnected(head) {
		return true
	}
	return gr.unsafeWithTwoApples()
}

// impossibleByDegrees rules out a Hamiltonian completion when some vertex has
// degree 0 or more than two have degree 1. As a side effect it records the
// degree-1 vertex other than the first head, where any completion must end.
func (gr *grower) impossibleByDegrees() bool {
	count := 0
	gr.endPoint = none
	for v, d := range gr.degrees {
		if d == 0 {
			return true
		}
		if d == 1 {
			count++
			if count == 3 {
				return true
			}
			if graph.Vertex(v) != gr.firstHead {
				gr.endPoint = graph.Vertex(v)
			}
		}
	}
	return false
}

// emptySpaceIsDisconnected flood fills the possible-edge subgraph from a free
// neighbour of the head and checks it reaches every free cell.
func (gr *grower) emptySpaceIsDisconnected(head graph.Vertex) bool {
	gr.stamp++
	start := gr.possible[head][0]
	gr.seen[head] = gr.stamp
	gr.seen[start] = gr.stamp
	reached := 1

	stack := append(gr.flood[:0], start)
	for len(stack) > 0 {
		y := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, z := range gr.possible[y] {
			if gr.seen[z] == gr.stamp {
				continue
			}
			gr.seen[z] = gr.stamp
			reached++
			stack = append(stack, z)
		}
	}
	gr.flood = stack

	return reached != gr.area-gr.length
}

// unsafeWithTwoApples looks at the forced end point z, its only free
// neighbour y, and the first two body cells a, b. The configuration is kept
// when one of the arrangements below is present and dropped otherwise.
func (gr *grower) unsafeWithTwoApples() bool {
	z := gr.endPoint
	if z == none {
		return false
	}

	y := gr.possible[z][0]
	if gr.occupied[y] {
		// y - z: won in one
		return false
	}

	a, b := gr.firstHead, gr.secondHead
	if gr.g.Adjacent(a, z) {
		// x - y - z - a - b: Hamiltonian cycle
		return false
	}
	if gr.g.Adjacent(b, z) {
		// x - y - z - b - a
		return false
	}

	for _, x := range gr.possible[y] {
		if x == z {
			continue
		}
		if gr.g.Adjacent(a, x) {
			// x - a - b - ... - z - y: cycle, then the kamikaze
			return false
		}
	}

	if gr.g.Adjacent(a, y) || gr.g.Adjacent(b, y) {
		// depends on the board
		return false
	}

	return true
}
