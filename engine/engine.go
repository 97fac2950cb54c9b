package engine

import (
	"snakeoracle/graph"
	"snakeoracle/metrics"
)

// MaxMovesPerApple ends a game as failed when a single target takes longer.
const MaxMovesPerApple = 10000

// Player steers the snake. FindPath returns the head positions visited until
// the head reaches apple, which is always a free cell.
type Player interface {
	StartNewGame(start graph.Vertex)
	FindPath(apple graph.Vertex) []graph.Vertex
}

type Engine interface {
	// Play runs one game from a random start until the board is full or the
	// player makes an illegal move
	Play() metrics.GameMetric
}
