// Package pentti finds the shortest way out of a text maze.
//
// 🚀 What is pentti?
//
//	A small toolkit around one breadth-first search:
//		• maze/    load and validate rectangular text mazes
//		• solver/  shortest path from the start '^' to the nearest exit 'E'
//		• render/  titles, colored terminal drawings and PNG images
//		• store/   badger-backed cache of solve results
//		• config/  YAML, .env and PENTTI_* settings for the CLI
//		• cmd/pentti  the command-line front end (solve, batch, cache)
//
// ✨ Guarantees
//
//   - Shortest: the returned path has the minimum number of moves.
//   - Deterministic: ties are broken by the fixed Up, Down, Left, Right
//     expansion order, so equal inputs give equal paths.
//   - Immutable inputs: a Maze never changes after it is built and can be
//     solved from many goroutines at once.
//
// Quick start:
//
//	m, err := maze.LoadFile("maze.txt")
//	if err != nil { ... }
//	res, err := solver.Solve(m)
//	if err != nil { ... }
//	fmt.Println(render.Title(res))
//
// An unreachable exit is not an error: Solve returns a Result with
// Found == false.
package pentti
