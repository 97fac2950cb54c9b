package graph

import (
	"snakeoracle/utils"

	"github.com/pkg/errors"
)

var (
	// ErrEmpty is returned when a graph has no vertices.
	ErrEmpty = errors.New("graph: no vertices")

	// ErrMalformed is returned when an adjacency is not a simple undirected graph.
	ErrMalformed = errors.New("graph: malformed adjacency")
)

// Vertex identifies a cell of the board, in [0, Area()).
type Vertex int

// Graph is an immutable finite simple undirected graph addressed by dense
// vertex ids. Neighbour order is preserved from construction.
type Graph struct {
	neighbors [][]Vertex
}

// New validates an adjacency list and wraps it in a Graph.
// adjacency[v] lists the neighbours of vertex v.
func New(adjacency [][]int) (*Graph, error) {
	area := len(adjacency)
	if area == 0 {
		return nil, ErrEmpty
	}

	neighbors := make([][]Vertex, area)
	for v, list := range adjacency {
		neighbors[v] = make([]Vertex, 0, len(list))
		for _, u := range list {
			if u < 0 || u >= area {
				return nil, errors.Wrapf(ErrMalformed, "vertex %d lists out of range neighbour %d", v, u)
			}
			if u == v {
				return nil, errors.Wrapf(ErrMalformed, "self loop at vertex %d", v)
			}
			if utils.FindIndex(neighbors[v], Vertex(u)) >= 0 {
				return nil, errors.Wrapf(ErrMalformed, "vertex %d lists neighbour %d twice", v, u)
			}
			neighbors[v] = append(neighbors[v], Vertex(u))
		}
	}

	// Every edge needs its reverse
	for v, list := range adjacency {
		for _, u := range list {
			if utils.FindIndex(neighbors[u], Vertex(v)) < 0 {
				return nil, errors.Wrapf(ErrMalformed, "edge %d-%d has no reverse", v, u)
			}
		}
	}

	return &Graph{neighbors: neighbors}, nil
}

// Area is the number of vertices.
func (g *Graph) Area() int {
	return len(g.neighbors)
}

// Neighbors returns the ordered neighbours of v. The slice must not be modified.
func (g *Graph) Neighbors(v Vertex) []Vertex {
	return g.neighbors[v]
}

// Adjacent reports whether u and v share an edge.
func (g *Graph) Adjacent(u, v Vertex) bool {
	return utils.FindIndex(g.neighbors[u], v) >= 0
}

// Adjacency returns a copy of the adjacency list in the form accepted by New.
func (g *Graph) Adjacency() [][]int {
	out := make([][]int, len(g.neighbors))
	for v, list := range g.neighbors {
		out[v] = make([]int, len(list))
		for i, u := range list {
			out[v][i] = int(u)
		}
	}
	return out
}
