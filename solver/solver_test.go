package solver

import (
	"fmt"
	"math/big"
	"testing"

	"snakeoracle/graph"
	"snakeoracle/metrics"

	"github.com/stretchr/testify/require"
)

// cycleValue is the expected number of moves on the k-cycle. A snake of
// length three or more can only go forward; a shorter one picks the nearer
// way round.
func cycleValue(k int) *big.Rat {
	value := new(big.Rat)
	nearest := func(free int) *big.Rat {
		sum := 0
		for d := 1; d <= free; d++ {
			sum += min(d, k-d)
		}
		return big.NewRat(int64(sum), int64(free))
	}
	for length := k - 1; length >= 3; length-- {
		value.Add(value, big.NewRat(int64(k-length+1), 2))
	}
	if k >= 3 {
		value.Add(value, nearest(k-2))
	}
	value.Add(value, nearest(k-1))
	return value
}

func TestSolveSquare(t *testing.T) {
	s := New(must(graph.Grid(2, 2)))

	result, err := s.Solve()

	require.NoError(t, err)
	require.Equal(t, "23/6", result.Value.RatString())
	require.Equal(t, "92", result.Numerator.String())
	require.Equal(t, "24", result.Denominator.String())
	require.InDelta(t, 23.0/6.0, result.Float(), 1e-12)
	require.Len(t, result.Starts, 4)
	for v, start := range result.Starts {
		require.Equal(t, "23/6", start.RatString(), "start %d", v)
	}
}

func TestSolveCycles(t *testing.T) {
	for _, k := range []int{3, 4, 5, 6, 7} {
		s := New(must(graph.Cycle(k)))

		result, err := s.Solve()

		require.NoError(t, err)
		require.Equal(t, cycleValue(k).RatString(), result.Value.RatString(), "C%d", k)
	}
}

func TestSolveSmallGraphs(t *testing.T) {
	t.Run("triangle", func(t *testing.T) {
		result, err := New(must(graph.Cycle(3))).Solve()

		require.NoError(t, err)
		require.Equal(t, "2", result.Value.RatString())
	})

	t.Run("single edge", func(t *testing.T) {
		result, err := New(must(graph.Path(2))).Solve()

		require.NoError(t, err)
		require.Equal(t, "1", result.Value.RatString())
	})

	t.Run("single vertex", func(t *testing.T) {
		_, err := New(must(graph.New([][]int{{}}))).Solve()

		require.ErrorIs(t, err, ErrNoSolution)
	})

	t.Run("star without a Hamiltonian path", func(t *testing.T) {
		_, err := New(must(graph.Star(3))).Solve()

		require.ErrorIs(t, err, ErrNoSolution)
	})

	t.Run("above the area limit", func(t *testing.T) {
		_, err := New(must(graph.Grid(2, 3)), WithMaxArea(5)).Solve()

		require.ErrorIs(t, err, ErrTooLarge)
	})
}

func TestSolveGrids(t *testing.T) {
	tests := []struct {
		rows, cols           int
		full, cycles, thetas int
		value                string
	}{
		{2, 2, 8, 8, 0, "23/6"},
		{2, 3, 16, 12, 0, "145/18"},
		{3, 3, 32, 0, 16, "196513/11340"},
		{2, 4, 20, 16, 0, "23663/1680"},
		{3, 4, 84, 48, 0, "175897/6600"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d", tt.rows, tt.cols), func(t *testing.T) {
			g := must(graph.Grid(tt.rows, tt.cols))

			result, err := New(g).Solve()

			require.NoError(t, err)
			require.Equal(t, tt.full, result.Growth.FullSnakes)
			require.Equal(t, tt.cycles, result.Growth.HamiltonianCycles)
			require.Equal(t, tt.thetas, result.Growth.Thetas)
			require.Equal(t, tt.value, result.Value.RatString())
			// every target costs at least one move
			require.GreaterOrEqual(t, result.Value.Cmp(big.NewRat(int64(g.Area()-1), 1)), 0)
		})
	}
}

func TestSolvePathHasNoSolution(t *testing.T) {
	// both Hamiltonian paths start at an end, so no start in the middle resolves
	s := New(must(graph.Path(4)))

	growth, err := s.Grow()
	require.NoError(t, err)
	require.Equal(t, 2, growth.FullSnakes)

	_, err = s.Solve()

	require.ErrorIs(t, err, ErrNoSolution)
}

func TestSolveIsDeterministic(t *testing.T) {
	g := must(graph.Grid(2, 3))

	first, err := New(g).Solve()
	require.NoError(t, err)

	s := New(g)
	second, err := s.Solve()
	require.NoError(t, err)
	third, err := s.Solve()
	require.NoError(t, err)

	require.Equal(t, first.Value.RatString(), second.Value.RatString())
	require.Equal(t, first.Numerator.String(), second.Numerator.String())
	require.Equal(t, first.Denominator.String(), second.Denominator.String())
	require.Equal(t, second.Value.RatString(), third.Value.RatString(), "solving twice on the same solver")
}

func TestSolveResolvesEveryLayer(t *testing.T) {
	g := must(graph.Grid(2, 3))
	s := New(g)

	_, err := s.Solve()
	require.NoError(t, err)

	s.trie.each(func(id NodeID) {
		st := s.state(id)
		if st == nil || !st.resolved {
			return
		}
		require.Len(t, st.moves, g.Area()-s.trie.depth(id))

		// no move costs less than the denominator in force for this
		// layer, (area-length-1)!
		floor := new(big.Int).MulRange(1, int64(g.Area()-s.trie.depth(id)-1))

		// the score is the sum of the move costs
		sum := new(big.Int)
		for apple, m := range st.moves {
			sum.Add(sum, m.cost)
			require.GreaterOrEqual(t, m.cost.Cmp(floor), 0, "move cost %s below %s", m.cost, floor)

			next := s.trie.depth(m.next)
			require.Contains(t, []int{s.trie.depth(id), s.trie.depth(id) + 1}, next)
			if next > s.trie.depth(id) {
				require.Equal(t, apple, s.trie.value(m.next), "growing must eat the target")
			}
		}
		require.Equal(t, 0, sum.Cmp(&st.score))
	})
}

func TestSolveCollectsMetrics(t *testing.T) {
	collector := metrics.NewCollector()
	s := New(must(graph.Cycle(5)), WithMetrics(collector))

	result, err := s.Solve()

	require.NoError(t, err)
	require.Equal(t, 5, result.Metric.Area)
	require.NotEmpty(t, result.Metric.RunID)
	require.Equal(t, 10, result.Metric.HamiltonianCycles)
	require.Len(t, result.Metric.Layers, 4)
	for i, layer := range result.Metric.Layers {
		require.Equal(t, 4-i, layer.Length)
		require.Equal(t, layer.Discovered, layer.Resolved, "every configuration on a cycle is resolved")
	}
	require.Equal(t, 5, result.Metric.Layers[3].Resolved)
}
