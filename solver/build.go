package solver

import (
	"fmt"
	"math/big"

	"snakeoracle/graph"
	"snakeoracle/utils"
)

// move is the best known way to handle one target position: the node reached
// next and the score of reaching the target from there, already scaled.
type move struct {
	next NodeID
	cost *big.Int
}

// layerState is what the backward build knows about one configuration. The
// score is the sum of the move costs, scaled by the running denominator, and
// becomes final once a move is known for every free cell.
type layerState struct {
	score    big.Int
	moves    map[graph.Vertex]move
	past     []NodeID // configurations one step before this one
	tail     graph.Vertex
	resolved bool
}

func (st *layerState) record(apple graph.Vertex, next NodeID, cost *big.Int) {
	st.moves[apple] = move{next: next, cost: cost}
	st.score.Add(&st.score, cost)
}

func (s *Solver) attach(id NodeID, tail graph.Vertex) *layerState {
	st := &layerState{
		moves: make(map[graph.Vertex]move, s.area-s.trie.depth(id)),
		tail:  tail,
	}
	s.trie.nodes[id].state = st
	return st
}

func (s *Solver) state(id NodeID) *layerState {
	return s.trie.nodes[id].state
}

func (s *Solver) mustState(id NodeID) *layerState {
	st := s.trie.nodes[id].state
	if st == nil {
		panic(fmt.Sprintf("configuration %v reached before it was discovered", s.trie.pathToRoot(id)))
	}
	return st
}

// buildLayer discovers the configurations of the given length: the bodies
// left after eating into a resolved configuration, and then every
// configuration that moves into a discovered one without eating.
func (s *Solver) buildLayer(length int) []NodeID {
	var discovered, pending []NodeID
	for _, id := range s.layer {
		parent := s.trie.parent(id)
		if s.state(parent) != nil {
			continue
		}
		s.attach(parent, s.state(id).tail)
		discovered = append(discovered, parent)
		pending = append(pending, parent)
	}

	var body, snake []graph.Vertex
	for len(pending) > 0 {
		id := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		st := s.state(id)

		// the cell the new tail must touch: the current tail, or for a
		// single cell the cell itself
		body = s.trie.appendPath(body, s.trie.parent(id))
		anchor := s.trie.value(id)
		if len(body) > 0 {
			anchor = body[0]
		}

		for _, tail := range s.graph.Neighbors(anchor) {
			if utils.FindIndex(body, tail) >= 0 {
				continue
			}
			snake = append(append(snake[:0], tail), body...)
			past := s.trie.insert(snake)
			st.past = append(st.past, past)
			if s.state(past) != nil {
				continue
			}
			s.attach(past, tail)
			discovered = append(discovered, past)
			pending = append(pending, past)
		}
	}
	if n := len(discovered); n > 0 && s.trie.depth(discovered[n-1]) != length {
		panic(fmt.Sprintf("layer %d discovered a configuration of length %d", length, s.trie.depth(discovered[n-1])))
	}
	return discovered
}

// assignScores drains the queue in cost order. Chopping a resolved child
// fixes the parent's move for the eaten cell; a move fixed for some target
// spreads to every configuration one step before, unless the target sits on
// the cell that step frees. Configurations with a move for every free cell
// seed the next layer.
func (s *Solver) assignScores(length int, discovered []NodeID) {
	base := new(big.Int).Set(s.denominator)
	for {
		e, ok := s.queue.pop()
		if !ok {
			break
		}
		score := new(big.Int).Add(base, e.cost)

		if e.apple == none {
			parent := s.trie.parent(e.node)
			apple := s.trie.value(e.node)
			st := s.mustState(parent)
			if _, seen := st.moves[apple]; seen {
				continue
			}
			st.record(apple, e.node, score)
			s.queue.push(score, parent, apple)
			continue
		}

		for _, past := range s.mustState(e.node).past {
			st := s.mustState(past)
			if st.tail == e.apple {
				continue
			}
			if _, seen := st.moves[e.apple]; seen {
				continue
			}
			st.record(e.apple, e.node, score)
			s.queue.push(score, past, e.apple)
		}
	}

	free := s.area - length
	resolved := make([]NodeID, 0, len(discovered))
	for _, id := range discovered {
		st := s.state(id)
		if len(st.moves) != free {
			continue
		}
		st.resolved = true
		resolved = append(resolved, id)
		s.queue.push(&st.score, id, none)
	}
	s.layer = resolved
	s.denominator.Mul(s.denominator, big.NewInt(int64(free)))
}
