package experiments

import (
	"fmt"

	"snakeoracle/config"
	"snakeoracle/engine"
	"snakeoracle/metrics"
	"snakeoracle/movestore"
	"snakeoracle/solver"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Run is a solved graph ready to be played or exported.
type Run struct {
	Solver *solver.Solver
	Result *solver.Result
	Config config.Config
}

// RunSolve builds the configured graph, solves it and stores the layer
// records, plus the Prometheus textfile when one is configured.
func RunSolve(cfg config.Config) (*Run, error) {
	g, err := cfg.BuildGraph()
	if err != nil {
		return nil, err
	}

	collector := metrics.NewCollector()
	var reg *prometheus.Registry
	if cfg.Output.Prometheus != "" {
		reg = prometheus.NewRegistry()
		collector = metrics.Multi(collector, metrics.NewPrometheusCollector(reg))
	}

	log.Info().Msgf("solving a %s graph of %d vertices...", cfg.Graph.Kind, g.Area())
	s := solver.New(g, solver.WithMaxArea(cfg.MaxArea), solver.WithMetrics(collector))
	result, err := s.Solve()
	if err != nil {
		return nil, err
	}
	log.Info().Msgf("expected moves %s (%.6f)", result.Value.RatString(), result.Float())

	if cfg.Output.MetricsDir != "" {
		writer, err := metrics.NewWriter(cfg.Output.MetricsDir, "solve", result.Metric.RunID)
		if err != nil {
			return nil, err
		}
		if err = writer.WriteLayerRecords(result.Metric); err != nil {
			return nil, fmt.Errorf("failed to write layer records: %w", err)
		}
		log.Info().Str("dir", writer.Dir()).Msg("stored layer records")
	}

	if reg != nil {
		if err = prometheus.WriteToTextfile(cfg.Output.Prometheus, reg); err != nil {
			return nil, fmt.Errorf("failed to write prometheus textfile: %w", err)
		}
		log.Info().Str("file", cfg.Output.Prometheus).Msg("stored prometheus metrics")
	}

	return &Run{Solver: s, Result: result, Config: cfg}, nil
}

// Simulate plays the optimal policy and stores the game records.
func (r *Run) Simulate() (engine.Summary, error) {
	policy, err := r.Solver.Policy()
	if err != nil {
		return engine.Summary{}, err
	}
	g, err := r.Config.BuildGraph()
	if err != nil {
		return engine.Summary{}, err
	}

	games := r.Config.Simulate.Games
	log.Info().Msgf("playing %d games with seed %d...", games, r.Config.Simulate.Seed)
	summary, records := engine.NewLocalEngine(g, policy, r.Config.Simulate.Seed).Run(games)

	if r.Config.Output.MetricsDir != "" {
		writer, err := metrics.NewWriter(r.Config.Output.MetricsDir, "simulate", r.Result.Metric.RunID)
		if err != nil {
			return summary, err
		}
		if err = writer.WriteGameRecords(records); err != nil {
			return summary, fmt.Errorf("failed to write game records: %w", err)
		}
		log.Info().Str("dir", writer.Dir()).Msg("stored game records")
	}
	return summary, nil
}

// Export writes the move table to the configured badger directory.
func (r *Run) Export() (int, error) {
	policy, err := r.Solver.Policy()
	if err != nil {
		return 0, err
	}
	if r.Config.Output.MoveStore == "" {
		return 0, fmt.Errorf("no move store directory configured")
	}
	store, err := movestore.Open(r.Config.Output.MoveStore)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	return store.Save(policy)
}

// Reachability reports how much of the move table optimal play visits.
func (r *Run) Reachability() (solver.ReachStats, error) {
	stats, err := r.Solver.Reachability()
	if err != nil {
		return stats, err
	}
	log.Info().
		Int("total_nodes", stats.TotalNodes).
		Int("total_states", stats.TotalStates).
		Int("total_wins", stats.TotalWins).
		Int("reached_nodes", stats.ReachedNodes).
		Int("reached_states", stats.ReachedStates).
		Int("reached_wins", stats.ReachedWins).
		Msg("reachability")
	return stats, nil
}
