package solver

import "github.com/katalvlaran/pentti/maze"

// Unreachable is the distance reported for cells BFS never reaches.
const Unreachable = -1

// Distances returns the BFS distance from m's start to every cell in
// row-major order, with Unreachable for walls and sealed-off cells.
// Unlike Solve it does not stop at the first exit.
// Complexity: O(N) time and memory.
func Distances(m *maze.Maze) []int {
	if m == nil || m.Len() == 0 {
		return nil
	}
	dist := make([]int, m.Len())
	for i := range dist {
		dist[i] = Unreachable
	}
	q := newRing(64)
	s := m.Index(m.Start())
	dist[s] = 0
	q.push(int32(s))

	for q.Len() > 0 {
		u := int(q.pop())
		p := m.PointAt(u)
		for _, d := range maze.Directions {
			next := p.Add(d)
			if !m.IsPassable(next) {
				continue
			}
			v := m.Index(next)
			if dist[v] != Unreachable {
				continue
			}
			dist[v] = dist[u] + 1
			q.push(int32(v))
		}
	}
	return dist
}
