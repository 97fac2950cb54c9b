package solver

import (
	"snakeoracle/graph"
)

// Class labels a full-length safe-winning configuration by how it closes up.
type Class int

const (
	Unclassified Class = iota
	HamiltonianCycle
	Theta
)

func (c Class) String() string {
	switch c {
	case HamiltonianCycle:
		return "hamiltonian-cycle"
	case Theta:
		return "theta"
	default:
		return "unclassified"
	}
}

// classify inspects the first two cells a, b and last two cells y, z of a
// full configuration. z next to a closes a Hamiltonian cycle; y next to a and
// z next to b spans a theta subgraph.
func classify(g *graph.Graph, snake []graph.Vertex) Class {
	n := len(snake)
	if n < 2 {
		return Unclassified
	}
	a, b := snake[0], snake[1]
	y, z := snake[n-2], snake[n-1]
	if g.Adjacent(z, a) {
		return HamiltonianCycle
	}
	if g.Adjacent(y, a) && g.Adjacent(z, b) {
		return Theta
	}
	return Unclassified
}

// GrowthStats counts the outcome of the safe-winning enumeration.
type GrowthStats struct {
	FullSnakes        int // terminal configurations
	HamiltonianCycles int
	Thetas            int
	Configurations    int // live trie nodes after growth
	States            int // sum over configurations of the free cells a target may take
}

func (s *Solver) countAndClassify() GrowthStats {
	stats := GrowthStats{FullSnakes: len(s.terminals)}

	var buf []graph.Vertex
	for _, id := range s.terminals {
		buf = s.trie.appendPath(buf, id)
		switch classify(s.graph, buf) {
		case HamiltonianCycle:
			stats.HamiltonianCycles++
		case Theta:
			stats.Thetas++
		}
	}

	s.trie.each(func(id NodeID) {
		stats.Configurations++
		stats.States += s.area - s.trie.depth(id)
	})
	return stats
}
