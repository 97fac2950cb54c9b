package experiments

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snakeoracle/config"
	"snakeoracle/graph"
	"snakeoracle/movestore"
	"snakeoracle/solver"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.Graph = config.GraphConfig{Kind: "cycle", Vertices: 4}
	cfg.Simulate.Games = 200
	cfg.Output.MetricsDir = t.TempDir()
	cfg.Output.MoveStore = filepath.Join(t.TempDir(), "moves")
	cfg.Output.Prometheus = filepath.Join(t.TempDir(), "snake.prom")
	return cfg
}

func TestRunSolve(t *testing.T) {
	cfg := testConfig(t)

	run, err := RunSolve(cfg)

	require.NoError(t, err)
	require.Equal(t, "23/6", run.Result.Value.RatString())

	layers, err := filepath.Glob(filepath.Join(cfg.Output.MetricsDir, "solve", "*", "layer_records.csv"))
	require.NoError(t, err)
	require.Len(t, layers, 1)

	prom, err := os.ReadFile(cfg.Output.Prometheus)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(prom), "snakeoracle_layers_total 3"), string(prom))

	t.Run("simulate", func(t *testing.T) {
		summary, err := run.Simulate()

		require.NoError(t, err)
		require.Equal(t, 200, summary.Games)
		require.Zero(t, summary.Failures)
		require.InDelta(t, run.Result.Float(), summary.MeanMoves, 0.3)

		games, err := filepath.Glob(filepath.Join(cfg.Output.MetricsDir, "simulate", "*", "game_records.csv"))
		require.NoError(t, err)
		require.Len(t, games, 1)
	})

	t.Run("export", func(t *testing.T) {
		count, err := run.Export()
		require.NoError(t, err)
		require.Equal(t, 36, count)

		store, err := movestore.Open(cfg.Output.MoveStore)
		require.NoError(t, err)
		defer store.Close()
		next, ok, err := store.Lookup([]graph.Vertex{0, 1, 2}, 3)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, graph.Vertex(3), next)
	})

	t.Run("reachability", func(t *testing.T) {
		stats, err := run.Reachability()

		require.NoError(t, err)
		require.Equal(t, 8, stats.TotalWins)
	})
}

func TestRunSolveErrors(t *testing.T) {
	t.Run("no solution", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Graph = config.GraphConfig{Kind: "star", Vertices: 3}

		_, err := RunSolve(cfg)

		require.ErrorIs(t, err, solver.ErrNoSolution)
	})

	t.Run("too large", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.MaxArea = 3

		_, err := RunSolve(cfg)

		require.ErrorIs(t, err, solver.ErrTooLarge)
	})
}
