// Package solver finds the shortest 4-directional path from a maze's start
// cell to the nearest exit using breadth-first search.
//
// What
//
//   - Solve expands cells in non-decreasing distance from the start, so the
//     first exit dequeued is reachable by a minimum-length path.
//   - Neighbors are generated in the fixed order up, down, left, right;
//     ties between equal-length paths are broken by that order.
//   - Returns a Result holding the path in start→exit order, or Found=false
//     when no exit is reachable. "No path" is not an error.
//   - Distances computes the full BFS distance field from the start.
//
// How
//
//	Search nodes live in an arena ([]node) and refer to their parent by
//	index; index 0 is always the root with parent -1. The frontier is a
//	growable ring buffer of arena indices with O(1) push/pop, and the visited
//	set is a bitmap indexed by row-major cell index. A cell is marked visited
//	when it is enqueued, never when it is dequeued, so each cell produces at
//	most one node.
//
// Options
//
//   - WithContext: cancellation checked once per dequeue.
//   - WithMaxSteps: budget on dequeues; exceeding it yields ErrStepBudget.
//   - WithOnEnqueue / WithOnDequeue: observation hooks.
//
// Complexity (N = rows × cols)
//
//   - Time:   O(N)   (each cell enqueued at most once, 4 probes per dequeue)
//   - Memory: O(N)   (arena, ring buffer, visited bitmap)
//
// Concurrency
//
//	Solve owns all of its scratch state; concurrent calls against the same
//	*maze.Maze are safe because a Maze is never mutated after construction.
//
// Usage
//
//	m, err := maze.LoadFile("maze.txt")
//	if err != nil {
//		// ErrMalformedMaze, ErrMissingStart, ...
//	}
//	res, err := solver.Solve(m, solver.WithContext(ctx))
//	if err != nil {
//		// ErrNilMaze, ErrOptionViolation, ErrStepBudget, or ctx.Err()
//	}
//	if res.Found {
//		fmt.Println(res.Path) // start ... exit
//	}
package solver
