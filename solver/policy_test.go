package solver

import (
	"math/big"
	"testing"

	"snakeoracle/graph"

	"github.com/stretchr/testify/require"
)

func permutations(cells []graph.Vertex, fn func([]graph.Vertex)) {
	var rec func(k int)
	rec = func(k int) {
		if k == len(cells) {
			fn(cells)
			return
		}
		for i := k; i < len(cells); i++ {
			cells[k], cells[i] = cells[i], cells[k]
			rec(k + 1)
			cells[k], cells[i] = cells[i], cells[k]
		}
	}
	rec(0)
}

// playAll plays every start against every order of targets, which are
// equally likely, and checks each move on the way.
func playAll(t *testing.T, g *graph.Graph, p *Policy) *big.Rat {
	total, games := 0, 0
	for v := 0; v < g.Area(); v++ {
		start := graph.Vertex(v)
		var rest []graph.Vertex
		for u := 0; u < g.Area(); u++ {
			if u != v {
				rest = append(rest, graph.Vertex(u))
			}
		}
		permutations(rest, func(apples []graph.Vertex) {
			p.StartNewGame(start)
			snake := []graph.Vertex{start}
			for _, apple := range apples {
				path := p.FindPath(apple)
				require.NotEmpty(t, path)
				require.Equal(t, apple, path[len(path)-1])
				for _, head := range path {
					require.True(t, g.Adjacent(snake[len(snake)-1], head))
					if head != apple {
						snake = snake[1:]
					}
					for _, cell := range snake {
						require.NotEqual(t, cell, head, "head ran into the body")
					}
					snake = append(snake, head)
				}
				require.Equal(t, snake, p.Snake())
				total += len(path)
			}
			games++
		})
	}
	return big.NewRat(int64(total), int64(games))
}

func TestPolicyPlaysTheOptimalValue(t *testing.T) {
	for _, g := range []*graph.Graph{
		must(graph.Grid(2, 2)),
		must(graph.Cycle(5)),
		must(graph.Grid(2, 3)),
	} {
		s := New(g)
		result, err := s.Solve()
		require.NoError(t, err)
		p, err := s.Policy()
		require.NoError(t, err)

		mean := playAll(t, g, p)

		require.Equal(t, result.Value.RatString(), mean.RatString())
	}
}

func TestPolicyBeforeSolve(t *testing.T) {
	s := New(must(graph.Cycle(4)))

	_, err := s.Policy()
	require.Error(t, err)

	_, err = s.Grow()
	require.NoError(t, err)
	_, err = s.Policy()
	require.Error(t, err, "growing alone builds no move table")

	_, err = s.Reachability()
	require.Error(t, err)
}

func TestPolicyNext(t *testing.T) {
	// 0 1
	// 2 3
	s := New(must(graph.Grid(2, 2)))
	_, err := s.Solve()
	require.NoError(t, err)
	p, err := s.Policy()
	require.NoError(t, err)

	t.Run("eating the target ahead", func(t *testing.T) {
		next, ok := p.Next([]graph.Vertex{0, 1}, 3)

		require.True(t, ok)
		require.Equal(t, graph.Vertex(3), next)
	})

	t.Run("only way forward", func(t *testing.T) {
		next, ok := p.Next([]graph.Vertex{0, 1, 3}, 2)

		require.True(t, ok)
		require.Equal(t, graph.Vertex(2), next)
	})

	t.Run("target on the body", func(t *testing.T) {
		_, ok := p.Next([]graph.Vertex{0, 1}, 0)

		require.False(t, ok)
	})

	t.Run("unknown configuration", func(t *testing.T) {
		_, ok := p.Next([]graph.Vertex{0, 3}, 1)

		require.False(t, ok)
	})
}

func TestPolicyMoveTable(t *testing.T) {
	g := must(graph.Cycle(4))
	s := New(g)
	_, err := s.Solve()
	require.NoError(t, err)
	p, err := s.Policy()
	require.NoError(t, err)

	entries := 0
	p.MoveTable(func(snake []graph.Vertex, apple, next graph.Vertex) bool {
		entries++
		require.True(t, g.Adjacent(snake[len(snake)-1], next))

		got, ok := p.Next(snake, apple)
		require.True(t, ok)
		require.Equal(t, next, got)
		return true
	})
	// 4 starts with 3 targets, 8 pairs with 2, 8 triples with 1
	require.Equal(t, 4*3+8*2+8*1, entries)

	t.Run("stopping early", func(t *testing.T) {
		calls := 0
		p.MoveTable(func(snake []graph.Vertex, apple, next graph.Vertex) bool {
			calls++
			return calls < 5
		})

		require.Equal(t, 5, calls)
	})
}
