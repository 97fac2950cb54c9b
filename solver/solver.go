package solver

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"snakeoracle/graph"
	"snakeoracle/meta"
	"snakeoracle/metrics"

	"github.com/rs/zerolog/log"
)

// DefaultMaxArea bounds the graphs Solve accepts unless WithMaxArea says
// otherwise. The number of configurations grows exponentially in the area.
const DefaultMaxArea = meta.MAX_AREA

var (
	// ErrNoSolution means some start vertex has no safe-winning strategy.
	ErrNoSolution = errors.New("no safe-winning strategy")
	// ErrTooLarge means the graph exceeds the configured area limit.
	ErrTooLarge = errors.New("graph too large")
)

type Option func(s *Solver)

func WithMaxArea(area int) Option {
	return func(s *Solver) {
		if area > 0 {
			s.maxArea = area
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *Solver) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

// Solver computes the exact optimal expected number of moves needed to fill a
// graph with the snake, the start vertex and every target drawn uniformly.
type Solver struct {
	graph   *graph.Graph
	area    int
	maxArea int
	metrics metrics.Collector

	trie        *trie
	terminals   []NodeID
	layer       []NodeID // resolved configurations of the last finished length
	queue       *queue
	denominator *big.Int
	growth      GrowthStats
}

func New(g *graph.Graph, options ...Option) *Solver {
	s := &Solver{ // Default values
		graph:   g,
		area:    g.Area(),
		maxArea: DefaultMaxArea,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Result holds the exact value and what it was assembled from.
type Result struct {
	Value       *big.Rat   // expected moves over a uniform start
	Numerator   *big.Int   // sum of the start scores
	Denominator *big.Int   // product of the free-cell counts, times the area
	Starts      []*big.Rat // expected moves from each start vertex
	Growth      GrowthStats
	Metric      metrics.BuildMetric
}

func (r *Result) Float() float64 {
	f, _ := r.Value.Float64()
	return f
}

// Grow enumerates the full-length safe-winning configurations from scratch
// and classifies them. Solve calls it first.
func (s *Solver) Grow() (GrowthStats, error) {
	if s.area > s.maxArea {
		return GrowthStats{}, fmt.Errorf("%w: area %d exceeds the limit of %d", ErrTooLarge, s.area, s.maxArea)
	}

	s.trie = newTrie()
	s.queue = newQueue()
	s.denominator = big.NewInt(1)
	s.layer = nil

	start := time.Now()
	s.terminals = newGrower(s.graph, s.trie).grow()
	s.growth = s.countAndClassify()
	log.Info().
		Int("area", s.area).
		Int("full_snakes", s.growth.FullSnakes).
		Int("hamiltonian_cycles", s.growth.HamiltonianCycles).
		Int("thetas", s.growth.Thetas).
		Int("configurations", s.growth.Configurations).
		Int("states", s.growth.States).
		Dur("elapsed", time.Since(start)).
		Msg("safe-winning configurations grown")
	return s.growth, nil
}

// Solve runs the enumeration and the backward build from scratch. After a
// successful Solve the solver answers policy queries for the same graph.
func (s *Solver) Solve() (*Result, error) {
	if s.area < 2 {
		return nil, fmt.Errorf("%w: a single cell leaves no target to eat", ErrNoSolution)
	}

	s.metrics.Start(s.area)
	growth, err := s.Grow()
	if err != nil {
		return nil, err
	}
	s.metrics.SetGrowth(growth.FullSnakes, growth.HamiltonianCycles, growth.Thetas)
	if len(s.terminals) == 0 {
		return nil, fmt.Errorf("%w: no full-length safe-winning configuration", ErrNoSolution)
	}

	s.seed()
	for length := s.area - 1; length >= 1; length-- {
		s.step(length)
	}

	result, err := s.aggregate()
	if err != nil {
		return nil, err
	}
	result.Metric = s.metrics.Complete()
	log.Info().
		Str("value", result.Value.RatString()).
		Float64("approx", result.Float()).
		Msg("expected moves computed")
	return result, nil
}

// seed gives every terminal a zero score and queues it as the first layer.
func (s *Solver) seed() {
	s.layer = make([]NodeID, 0, len(s.terminals))
	for _, id := range s.terminals {
		st := s.attach(id, s.trie.tail(id))
		st.resolved = true
		s.layer = append(s.layer, id)
		s.queue.push(&st.score, id, none)
	}
}

func (s *Solver) step(length int) {
	expandStart := time.Now()
	discovered := s.buildLayer(length)
	expandTime := time.Since(expandStart)

	scoreStart := time.Now()
	s.assignScores(length, discovered)
	scoreTime := time.Since(scoreStart)

	layer := metrics.LayerMetric{
		Length:     length,
		Discovered: len(discovered),
		Resolved:   len(s.layer),
		TrieNodes:  s.trie.live,
		ExpandTime: expandTime,
		ScoreTime:  scoreTime,
	}
	s.metrics.AddLayer(layer)
	log.Debug().
		Int("length", length).
		Int("discovered", layer.Discovered).
		Int("resolved", layer.Resolved).
		Int("trie_nodes", layer.TrieNodes).
		Dur("expand", expandTime).
		Dur("score", scoreTime).
		Msg("layer built")
}

// aggregate averages the one-cell scores over every start vertex.
func (s *Solver) aggregate() (*Result, error) {
	numerator := new(big.Int)
	starts := make([]*big.Rat, s.area)
	for _, id := range s.layer {
		st := s.mustState(id)
		numerator.Add(numerator, &st.score)
		starts[s.trie.value(id)] = new(big.Rat).SetFrac(&st.score, s.denominator)
	}
	if len(s.layer) < s.area {
		for v, r := range starts {
			if r == nil {
				return nil, fmt.Errorf("%w: start vertex %d unresolved", ErrNoSolution, v)
			}
		}
	}

	denominator := new(big.Int).Mul(s.denominator, big.NewInt(int64(s.area)))
	return &Result{
		Value:       new(big.Rat).SetFrac(numerator, denominator),
		Numerator:   numerator,
		Denominator: denominator,
		Starts:      starts,
		Growth:      s.growth,
	}, nil
}
