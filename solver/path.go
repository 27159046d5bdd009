package solver

import "github.com/katalvlaran/pentti/maze"

// reconstruct walks parent indices from the node at id back to the root and
// returns the cells in root→id order. The walk is iterative, so path length
// is bounded only by memory.
func reconstruct(nodes []node, id int32) []maze.Point {
	n := nodes[id].depth + 1
	path := make([]maze.Point, n)
	for i, cur := n-1, id; cur != noParent; i, cur = i-1, nodes[cur].parent {
		path[i] = nodes[cur].point
	}
	return path
}
