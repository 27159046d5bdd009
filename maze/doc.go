// Package maze holds a rectangular maze of single-character symbols and
// answers coordinate queries against it.
//
// What:
//
//   - Maze wraps a rectangular grid of runes decoded once into Symbol values.
//   - Locates the start cell ('^', first in row-major order) and every exit
//     cell ('E', in row-major order).
//   - Bounds-checked lookup (SymbolAt) and a passability predicate
//     (IsPassable) used by the solver package.
//
// Why:
//
//   - The search engine needs a read-only view it can probe without caring
//     whether a neighbor is a wall or simply off the grid.
//   - Decoding symbols up front keeps the hot loop free of rune comparisons.
//
// Symbols:
//
//	'#'  Wall   impassable
//	' '  Floor  passable
//	'^'  Start  passable, exactly one expected
//	'E'  Exit   passable, one or more allowed
//	any  Other  passable, raw rune preserved for rendering
//
// Complexity:
//
//   - Parse / FromRows / Load: O(R×C) time and memory.
//   - SymbolAt, IsPassable, IsExit, InBounds: O(1).
//
// Errors:
//
//   - ErrEmptyMaze: no rows or no columns.
//   - ErrMalformedMaze: rows have differing lengths (see *MalformedError).
//   - ErrMissingStart: no '^' symbol present.
//   - ErrOutOfBounds: SymbolAt called with a coordinate outside the grid.
//   - ErrBlockedExit: WithExits asked to place an exit on a wall.
//
// A Maze is immutable once built, so concurrent solves against one instance
// are safe.
package maze
