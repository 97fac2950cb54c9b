package solver

import (
	"snakeoracle/graph"
)

// ReachStats compares the size of the stored move table with the part the
// optimal strategy actually visits. A state is a configuration paired with
// the target currently on the board.
type ReachStats struct {
	TotalNodes    int
	TotalStates   int
	TotalWins     int
	ReachedNodes  int
	ReachedStates int
	ReachedWins   int
}

type reachState struct {
	apple graph.Vertex
	node  NodeID
}

// Reachability walks the move table from every one-cell start, trying every
// target whenever one has just been eaten.
func (s *Solver) Reachability() (ReachStats, error) {
	if _, err := s.Policy(); err != nil {
		return ReachStats{}, err
	}
	t := s.trie
	stats := ReachStats{TotalWins: len(s.terminals)}
	t.each(func(id NodeID) {
		stats.TotalNodes++
		if st := t.nodes[id].state; st != nil {
			stats.TotalStates += len(st.moves)
		}
	})

	seenNodes := make(map[NodeID]struct{})
	seenStates := make(map[reachState]struct{})
	seenWins := make(map[NodeID]struct{})
	visit := func(stack []reachState, next reachState) []reachState {
		if _, ok := seenStates[next]; ok {
			return stack
		}
		seenStates[next] = struct{}{}
		stats.ReachedStates++
		if _, ok := seenNodes[next.node]; !ok {
			seenNodes[next.node] = struct{}{}
			stats.ReachedNodes++
		}
		return append(stack, next)
	}

	// a start behaves as if the target on its cell had just been eaten
	var stack []reachState
	for _, id := range t.children(root) {
		stack = append(stack, reachState{apple: t.value(id), node: id})
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		st := s.mustState(cur.node)

		if cur.apple != t.value(cur.node) {
			stack = visit(stack, reachState{apple: cur.apple, node: st.moves[cur.apple].next})
			continue
		}
		if len(st.moves) == 0 {
			if _, ok := seenWins[cur.node]; !ok {
				seenWins[cur.node] = struct{}{}
				stats.ReachedWins++
			}
			continue
		}
		for apple, m := range st.moves {
			stack = visit(stack, reachState{apple: apple, node: m.next})
		}
	}
	return stats, nil
}
