package main

import (
	"fmt"
	"os"
	"time"

	"snakeoracle/config"
	"snakeoracle/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "snakeoracle",
		Short: "Exact optimal expected moves for snake on small graphs",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			applyFlags(cmd)
			if err := cfg.Validate(); err != nil {
				return err
			}
			zerolog.SetGlobalLevel(cfg.Level())
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
			return nil
		},
		SilenceUsage: true,
	}

	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Compute the exact expected number of moves",
		RunE:  runSolve,
	}

	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Solve, then play random games with the optimal policy",
		RunE:  runSimulate,
	}

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Solve, then write the move table to a badger directory",
		RunE:  runExport,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML run configuration")
	rootCmd.PersistentFlags().String("kind", "", "graph kind: grid, cycle, path or star")
	rootCmd.PersistentFlags().Int("rows", 0, "grid rows")
	rootCmd.PersistentFlags().Int("cols", 0, "grid columns")
	rootCmd.PersistentFlags().Int("vertices", 0, "cycle or path length, star leaves")
	rootCmd.PersistentFlags().Int("max-area", 0, "largest area to attempt")
	rootCmd.PersistentFlags().String("log-level", "", "zerolog level")
	rootCmd.PersistentFlags().String("metrics-dir", "", "directory for CSV records")

	solveCmd.Flags().String("prom-file", "", "write Prometheus gauges to this textfile")
	solveCmd.Flags().Bool("reach", false, "report how much of the move table optimal play visits")

	simulateCmd.Flags().Int("games", 0, "number of games")
	simulateCmd.Flags().Uint64("seed", 0, "seed for starts and targets")

	exportCmd.Flags().String("store", "", "badger directory for the move table")

	rootCmd.AddCommand(solveCmd, simulateCmd, exportCmd)
}

// applyFlags overrides the loaded config with every flag set explicitly.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("kind") {
		cfg.Graph.Kind, _ = flags.GetString("kind")
	}
	if flags.Changed("rows") {
		cfg.Graph.Rows, _ = flags.GetInt("rows")
	}
	if flags.Changed("cols") {
		cfg.Graph.Cols, _ = flags.GetInt("cols")
	}
	if flags.Changed("vertices") {
		cfg.Graph.Vertices, _ = flags.GetInt("vertices")
	}
	if flags.Changed("max-area") {
		cfg.MaxArea, _ = flags.GetInt("max-area")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("metrics-dir") {
		cfg.Output.MetricsDir, _ = flags.GetString("metrics-dir")
	}
	if flags.Changed("prom-file") {
		cfg.Output.Prometheus, _ = flags.GetString("prom-file")
	}
	if flags.Changed("games") {
		cfg.Simulate.Games, _ = flags.GetInt("games")
	}
	if flags.Changed("seed") {
		cfg.Simulate.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("store") {
		cfg.Output.MoveStore, _ = flags.GetString("store")
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	run, err := experiments.RunSolve(cfg)
	if err != nil {
		return err
	}
	growth := run.Result.Growth
	fmt.Fprintf(cmd.OutOrStdout(), "full snakes:        %d\n", growth.FullSnakes)
	fmt.Fprintf(cmd.OutOrStdout(), "hamiltonian cycles: %d\n", growth.HamiltonianCycles)
	fmt.Fprintf(cmd.OutOrStdout(), "thetas:             %d\n", growth.Thetas)
	fmt.Fprintf(cmd.OutOrStdout(), "expected moves:     %s = %.6f\n", run.Result.Value.RatString(), run.Result.Float())

	if reach, _ := cmd.Flags().GetBool("reach"); reach {
		stats, err := run.Reachability()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "nodes:  %d total, %d reached\n", stats.TotalNodes, stats.ReachedNodes)
		fmt.Fprintf(cmd.OutOrStdout(), "states: %d total, %d reached\n", stats.TotalStates, stats.ReachedStates)
		fmt.Fprintf(cmd.OutOrStdout(), "wins:   %d total, %d reached\n", stats.TotalWins, stats.ReachedWins)
	}
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	run, err := experiments.RunSolve(cfg)
	if err != nil {
		return err
	}
	summary, err := run.Simulate()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "games: %d, failures: %d\n", summary.Games, summary.Failures)
	fmt.Fprintf(cmd.OutOrStdout(), "mean moves: %.6f (exact %.6f)\n", summary.MeanMoves, run.Result.Float())
	for i, moves := range summary.MovesPerApple {
		fmt.Fprintf(cmd.OutOrStdout(), "  target %d: %.4f\n", i+1, moves)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	run, err := experiments.RunSolve(cfg)
	if err != nil {
		return err
	}
	count, err := run.Export()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored %d moves in %s\n", count, cfg.Output.MoveStore)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
