package metrics

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// LayerMetric describes one length of the backward build.
type LayerMetric struct {
	Length     int           // configuration length of the layer
	Discovered int           // configurations found by reverse moves
	Resolved   int           // configurations with a move for every target
	TrieNodes  int           // live trie nodes after the layer
	ExpandTime time.Duration // time spent discovering the layer
	ScoreTime  time.Duration // time spent propagating scores
}

// BuildMetric summarises a whole run of the exact solver.
type BuildMetric struct {
	RunID             string
	Area              int
	FullSnakes        int
	HamiltonianCycles int
	Thetas            int
	StartTime         time.Time
	Duration          time.Duration
	Layers            []LayerMetric
}

// GameMetric describes one game played by the engine.
type GameMetric struct {
	Start         int   // starting vertex
	TotalMoves    int   // moves over the whole game
	MovesPerApple []int // moves spent on each target, in order
	Failed        bool  // an illegal move ended the game
	Duration      time.Duration
}

type Collector interface {
	Start(area int)
	SetGrowth(fullSnakes, cycles, thetas int)
	AddLayer(layer LayerMetric)
	Complete() BuildMetric
}

type collector struct {
	mu     sync.Mutex
	metric BuildMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(area int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metric = BuildMetric{
		RunID:     uuid.NewString(),
		Area:      area,
		StartTime: time.Now(),
	}
}

func (m *collector) SetGrowth(fullSnakes, cycles, thetas int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metric.FullSnakes = fullSnakes
	m.metric.HamiltonianCycles = cycles
	m.metric.Thetas = thetas
}

func (m *collector) AddLayer(layer LayerMetric) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metric.Layers = append(m.metric.Layers, layer)
}

func (m *collector) Complete() BuildMetric {
	m.mu.Lock()
	defer m.mu.Unlock()

	metric := m.metric
	metric.Duration = time.Since(m.metric.StartTime)
	metric.Layers = append([]LayerMetric(nil), m.metric.Layers...)
	return metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(area int)                           {}
func (m *dummyCollector) SetGrowth(fullSnakes, cycles, thetas int) {}
func (m *dummyCollector) AddLayer(layer LayerMetric)               {}
func (m *dummyCollector) Complete() BuildMetric                    { return BuildMetric{} }

// Multi fans every call out to several collectors. Complete reports the
// first collector's metric.
func Multi(collectors ...Collector) Collector {
	return multiCollector(collectors)
}

type multiCollector []Collector

func (m multiCollector) Start(area int) {
	for _, c := range m {
		c.Start(area)
	}
}

func (m multiCollector) SetGrowth(fullSnakes, cycles, thetas int) {
	for _, c := range m {
		c.SetGrowth(fullSnakes, cycles, thetas)
	}
}

func (m multiCollector) AddLayer(layer LayerMetric) {
	for _, c := range m {
		c.AddLayer(layer)
	}
}

func (m multiCollector) Complete() BuildMetric {
	var metric BuildMetric
	for i, c := range m {
		if got := c.Complete(); i == 0 {
			metric = got
		}
	}
	return metric
}
