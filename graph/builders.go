package graph

import (
	"github.com/pkg/errors"
)

// Grid builds the rows x cols grid graph. Cell (i, j) is vertex i*cols + j
// and its neighbours are listed left, right, up, down.
func Grid(rows, cols int) (*Graph, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.Wrapf(ErrEmpty, "grid %dx%d", rows, cols)
	}
	adjacency := make([][]int, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			index := i*cols + j
			var nb []int
			if j > 0 {
				nb = append(nb, index-1)
			}
			if j < cols-1 {
				nb = append(nb, index+1)
			}
			if i > 0 {
				nb = append(nb, index-cols)
			}
			if i < rows-1 {
				nb = append(nb, index+cols)
			}
			adjacency = append(adjacency, nb)
		}
	}
	return New(adjacency)
}

// Cycle builds the cycle 0-1-...-(n-1)-0. Needs n >= 3 to stay simple.
func Cycle(n int) (*Graph, error) {
	if n < 3 {
		return nil, errors.Wrapf(ErrMalformed, "cycle needs at least 3 vertices, got %d", n)
	}
	adjacency := make([][]int, n)
	for v := 0; v < n; v++ {
		adjacency[v] = []int{(v + n - 1) % n, (v + 1) % n}
	}
	return New(adjacency)
}

// Path builds the path 0-1-...-(n-1).
func Path(n int) (*Graph, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrEmpty, "path of %d vertices", n)
	}
	adjacency := make([][]int, n)
	for v := 0; v < n; v++ {
		if v > 0 {
			adjacency[v] = append(adjacency[v], v-1)
		}
		if v < n-1 {
			adjacency[v] = append(adjacency[v], v+1)
		}
	}
	return New(adjacency)
}

// Star builds a centre vertex 0 joined to leaves 1..leaves.
func Star(leaves int) (*Graph, error) {
	if leaves < 1 {
		return nil, errors.Wrapf(ErrMalformed, "star needs at least one leaf, got %d", leaves)
	}
	adjacency := make([][]int, leaves+1)
	for leaf := 1; leaf <= leaves; leaf++ {
		adjacency[0] = append(adjacency[0], leaf)
		adjacency[leaf] = []int{0}
	}
	return New(adjacency)
}
