package engine

import (
	"time"

	"snakeoracle/graph"
	"snakeoracle/metrics"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// LocalEngine plays games in process. Targets are drawn uniformly from the
// free cells, which are kept in a swap-remove list for constant time updates.
type LocalEngine struct {
	graph  *graph.Graph
	player Player
	rng    *rand.Rand

	occupied []bool
	next     []graph.Vertex // cell the snake moved to from here
	free     []graph.Vertex
	index    []int // position of each free cell in free
}

func NewLocalEngine(g *graph.Graph, player Player, seed uint64) *LocalEngine {
	area := g.Area()
	return &LocalEngine{
		graph:    g,
		player:   player,
		rng:      rand.New(rand.NewSource(seed)),
		occupied: make([]bool, area),
		next:     make([]graph.Vertex, area),
		free:     make([]graph.Vertex, 0, area),
		index:    make([]int, area),
	}
}

func (e *LocalEngine) reset() {
	e.free = e.free[:0]
	for v := range e.occupied {
		e.occupied[v] = false
		e.index[v] = v
		e.free = append(e.free, graph.Vertex(v))
	}
}

// take removes v from the free list.
func (e *LocalEngine) take(v graph.Vertex) {
	i := e.index[v]
	last := e.free[len(e.free)-1]
	e.free[i] = last
	e.index[last] = i
	e.free = e.free[:len(e.free)-1]
	e.occupied[v] = true
}

// swap frees the old tail and occupies the new head in one step.
func (e *LocalEngine) swap(tail, head graph.Vertex) {
	i := e.index[head]
	e.free[i] = tail
	e.index[tail] = i
	e.occupied[tail] = false
	e.occupied[head] = true
}

func (e *LocalEngine) Play() metrics.GameMetric {
	start := time.Now()
	area := e.graph.Area()
	e.reset()

	first := e.free[e.rng.Intn(len(e.free))]
	e.take(first)
	e.player.StartNewGame(first)
	head, tail := first, first

	metric := metrics.GameMetric{
		Start:         int(first),
		MovesPerApple: make([]int, 0, area-1),
	}
	fail := func(reason string, args ...any) metrics.GameMetric {
		log.Warn().Int("start", int(first)).Int("apple_index", len(metric.MovesPerApple)).Msgf(reason, args...)
		metric.Failed = true
		metric.Duration = time.Since(start)
		return metric
	}

	for len(e.free) > 0 {
		apple := e.free[e.rng.Intn(len(e.free))]
		path := e.player.FindPath(apple)
		if len(path) == 0 || len(path) > MaxMovesPerApple {
			return fail("path of %d moves towards %d", len(path), apple)
		}

		for i, step := range path {
			if !e.graph.Adjacent(head, step) {
				return fail("jump from %d to %d", head, step)
			}
			if step == apple {
				if i != len(path)-1 {
					return fail("path continues after eating %d", apple)
				}
				e.take(apple)
				e.next[head] = apple
				head = apple
				break
			}
			if i == len(path)-1 {
				return fail("path stops before reaching %d", apple)
			}

			// the tail leaves before the head arrives
			vacated := tail
			e.occupied[vacated] = false
			if e.occupied[step] {
				return fail("head ran into the body at %d", step)
			}
			e.occupied[vacated] = true
			if step == vacated {
				// a two-cell snake turning into its own tail: nothing
				// changes on the board
				e.next[head] = step
				tail = e.next[tail]
				head = step
				continue
			}
			e.swap(vacated, step)
			e.next[head] = step
			tail = e.next[tail]
			head = step
		}
		metric.MovesPerApple = append(metric.MovesPerApple, len(path))
		metric.TotalMoves += len(path)
	}

	metric.Duration = time.Since(start)
	return metric
}

// Summary aggregates a batch of games.
type Summary struct {
	Games         int
	Failures      int
	MeanMoves     float64   // mean total moves over the games that finished
	MovesPerApple []float64 // mean moves spent on the i-th target
}

// Run plays games one after another and returns the summary alongside the
// per-game records.
func (e *LocalEngine) Run(games int) (Summary, []metrics.GameRecord) {
	area := e.graph.Area()
	summary := Summary{Games: games, MovesPerApple: make([]float64, area-1)}
	records := make([]metrics.GameRecord, 0, games)

	total := 0
	for i := 0; i < games; i++ {
		metric := e.Play()
		records = append(records, metrics.GameRecord{ID: i + 1, GameMetric: metric})
		if metric.Failed {
			summary.Failures++
			continue
		}
		total += metric.TotalMoves
		for j, moves := range metric.MovesPerApple {
			summary.MovesPerApple[j] += float64(moves)
		}
	}

	if passed := games - summary.Failures; passed > 0 {
		summary.MeanMoves = float64(total) / float64(passed)
		for j := range summary.MovesPerApple {
			summary.MovesPerApple[j] /= float64(passed)
		}
	}
	log.Info().
		Int("games", games).
		Int("failures", summary.Failures).
		Float64("mean_moves", summary.MeanMoves).
		Msg("simulation complete")
	return summary, records
}
