package render

import (
	"fmt"

	"github.com/katalvlaran/pentti/maze"
	"github.com/katalvlaran/pentti/solver"
)

// Class is the color class of a rendered cell.
type Class uint8

const (
	ClassFloor Class = iota
	ClassWall
	ClassExit
	ClassStart
	ClassPath
)

func (c Class) String() string {
	switch c {
	case ClassFloor:
		return "floor"
	case ClassWall:
		return "wall"
	case ClassExit:
		return "exit"
	case ClassStart:
		return "start"
	case ClassPath:
		return "path"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// ClassOf maps a maze symbol to its base class. Unrecognized symbols are floor.
func ClassOf(s maze.Symbol) Class {
	switch s {
	case maze.Wall:
		return ClassWall
	case maze.Exit:
		return ClassExit
	case maze.Start:
		return ClassStart
	default:
		return ClassFloor
	}
}

// Transform returns a rows×cols grid of classes for m with path painted in.
// Only floor cells become ClassPath; path points outside the grid are ignored.
// Complexity: O(R×C + len(path)).
func Transform(m *maze.Maze, path []maze.Point) [][]Class {
	out := make([][]Class, m.Rows())
	for r := range out {
		out[r] = make([]Class, m.Cols())
		for c := range out[r] {
			s, _ := m.SymbolAt(maze.Point{Row: r, Col: c})
			out[r][c] = ClassOf(s)
		}
	}
	for _, p := range path {
		if !m.InBounds(p) {
			continue
		}
		if out[p.Row][p.Col] == ClassFloor {
			out[p.Row][p.Col] = ClassPath
		}
	}
	return out
}

// Title is the one-line caption for a solve: the number of cells on the
// path when one was found.
func Title(res *solver.Result) string {
	if res != nil && res.Found {
		return fmt.Sprintf("Found shortest path for Pentti, steps: %d", len(res.Path))
	}
	return "No shortest path found to exit"
}
