package solver

import (
	"errors"
	"fmt"

	"snakeoracle/graph"
)

var errNotSolved = errors.New("solver has no move table, call Solve first")

// Policy plays the optimal strategy found by a successful Solve.
type Policy struct {
	s       *Solver
	current NodeID
}

func (s *Solver) Policy() (*Policy, error) {
	if s.trie == nil || s.denominator == nil || len(s.layer) < s.area {
		return nil, errNotSolved
	}
	return &Policy{s: s, current: noNode}, nil
}

// StartNewGame puts a one-cell snake on start.
func (p *Policy) StartNewGame(start graph.Vertex) {
	id := p.s.trie.child(root, start)
	if id == noNode {
		panic(fmt.Sprintf("no configuration for start vertex %d", start))
	}
	p.current = id
}

// FindPath returns the head positions visited until the head reaches apple,
// which must be free, and moves the snake there.
func (p *Policy) FindPath(apple graph.Vertex) []graph.Vertex {
	if p.current == noNode {
		panic("FindPath called before StartNewGame")
	}
	t := p.s.trie
	var path []graph.Vertex
	id := p.current
	for t.value(id) != apple {
		st := p.s.mustState(id)
		m, ok := st.moves[apple]
		if !ok {
			panic(fmt.Sprintf("no move from %v towards %d", t.pathToRoot(id), apple))
		}
		id = m.next
		path = append(path, t.value(id))
	}
	p.current = id
	return path
}

// Snake returns the current configuration, tail first.
func (p *Policy) Snake() []graph.Vertex {
	if p.current == noNode {
		return nil
	}
	return p.s.trie.pathToRoot(p.current)
}

// Next looks up the head's next cell for any configuration, given tail
// first, and a free target cell.
func (p *Policy) Next(snake []graph.Vertex, apple graph.Vertex) (graph.Vertex, bool) {
	id := p.s.trie.find(snake)
	if id == noNode || id == root {
		return none, false
	}
	st := p.s.state(id)
	if st == nil || !st.resolved {
		return none, false
	}
	m, ok := st.moves[apple]
	if !ok {
		return none, false
	}
	return p.s.trie.value(m.next), true
}

// MoveTable calls fn for every target of every resolved configuration with
// the cell the head moves to next. It stops early when fn returns false.
func (p *Policy) MoveTable(fn func(snake []graph.Vertex, apple, next graph.Vertex) bool) {
	t := p.s.trie
	var buf []graph.Vertex
	stop := false
	t.each(func(id NodeID) {
		if stop {
			return
		}
		st := t.nodes[id].state
		if st == nil || !st.resolved || len(st.moves) == 0 {
			return
		}
		buf = t.appendPath(buf, id)
		for apple := graph.Vertex(0); int(apple) < p.s.area; apple++ {
			m, ok := st.moves[apple]
			if !ok {
				continue
			}
			if !fn(buf, apple, t.value(m.next)) {
				stop = true
				return
			}
		}
	})
}
