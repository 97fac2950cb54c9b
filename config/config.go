// Package config loads a run description from YAML.
package config

import (
	"os"

	"snakeoracle/graph"
	"snakeoracle/meta"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type GraphConfig struct {
	Kind      string  `yaml:"kind"` // grid, cycle, path, star or explicit
	Rows      int     `yaml:"rows"`
	Cols      int     `yaml:"cols"`
	Vertices  int     `yaml:"vertices"` // cycle and path length, star leaves
	Adjacency [][]int `yaml:"adjacency"`
}

type SimulateConfig struct {
	Games int    `yaml:"games"`
	Seed  uint64 `yaml:"seed"`
}

type OutputConfig struct {
	MetricsDir string `yaml:"metrics_dir"`
	MoveStore  string `yaml:"move_store"`
	Prometheus string `yaml:"prometheus"` // textfile for the gauges, empty to skip
}

type Config struct {
	Graph    GraphConfig    `yaml:"graph"`
	MaxArea  int            `yaml:"max_area"`
	LogLevel string         `yaml:"log_level"`
	Simulate SimulateConfig `yaml:"simulate"`
	Output   OutputConfig   `yaml:"output"`
}

func Default() Config {
	return Config{
		Graph:    GraphConfig{Kind: "grid", Rows: 2, Cols: 3},
		MaxArea:  meta.MAX_AREA,
		LogLevel: "info",
		Simulate: SimulateConfig{Games: meta.GAMES, Seed: meta.SEED},
		Output:   OutputConfig{MetricsDir: meta.METRICS_DIR},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Graph.Kind {
	case "grid":
		if c.Graph.Rows < 1 || c.Graph.Cols < 1 {
			return errors.Wrapf(ErrInvalid, "grid needs positive rows and cols, got %dx%d", c.Graph.Rows, c.Graph.Cols)
		}
	case "cycle", "path", "star":
		if c.Graph.Vertices < 1 {
			return errors.Wrapf(ErrInvalid, "%s needs a positive vertex count", c.Graph.Kind)
		}
	case "explicit":
		if len(c.Graph.Adjacency) == 0 {
			return errors.Wrap(ErrInvalid, "explicit graph needs an adjacency list")
		}
	default:
		return errors.Wrapf(ErrInvalid, "unknown graph kind %q", c.Graph.Kind)
	}
	if c.MaxArea < 1 {
		return errors.Wrapf(ErrInvalid, "max_area must be positive, got %d", c.MaxArea)
	}
	if c.Simulate.Games < 0 {
		return errors.Wrapf(ErrInvalid, "simulate.games must not be negative, got %d", c.Simulate.Games)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalid, "log_level %q", c.LogLevel)
	}
	return nil
}

// BuildGraph constructs the configured graph.
func (c Config) BuildGraph() (*graph.Graph, error) {
	switch c.Graph.Kind {
	case "grid":
		return graph.Grid(c.Graph.Rows, c.Graph.Cols)
	case "cycle":
		return graph.Cycle(c.Graph.Vertices)
	case "path":
		return graph.Path(c.Graph.Vertices)
	case "star":
		return graph.Star(c.Graph.Vertices)
	case "explicit":
		return graph.New(c.Graph.Adjacency)
	}
	return nil, errors.Wrapf(ErrInvalid, "unknown graph kind %q", c.Graph.Kind)
}

// Level returns the zerolog level, falling back to info.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
