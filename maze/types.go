package maze

import (
	"errors"
	"fmt"
)

// Sentinel errors for maze construction and lookup.
var (
	// ErrEmptyMaze indicates the input has no rows or no columns.
	ErrEmptyMaze = errors.New("maze: input must have at least one row and one column")
	// ErrMalformedMaze indicates rows of differing lengths.
	ErrMalformedMaze = errors.New("maze: all rows must have the same length")
	// ErrMissingStart indicates no start symbol '^' was found.
	ErrMissingStart = errors.New("maze: no start symbol '^' found")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("maze: coordinate out of bounds")
	// ErrBlockedExit indicates an extra exit was requested on a wall cell.
	ErrBlockedExit = errors.New("maze: exit cannot be placed on a wall")
)

// MalformedError describes the first row whose length differs from row 0.
// It unwraps to ErrMalformedMaze.
type MalformedError struct {
	Row  int // offending row index
	Len  int // its length in cells
	Want int // length of row 0
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%v: row %d has %d cells, want %d", ErrMalformedMaze, e.Row, e.Len, e.Want)
}

func (e *MalformedError) Unwrap() error { return ErrMalformedMaze }

// Recognized source characters.
const (
	WallRune  = '#'
	FloorRune = ' '
	StartRune = '^'
	ExitRune  = 'E'
)

// Symbol is the decoded kind of a maze cell.
type Symbol uint8

const (
	// Floor is open, passable ground (' ').
	Floor Symbol = iota
	// Wall blocks movement ('#').
	Wall
	// Start marks the origin of the search ('^').
	Start
	// Exit marks a goal cell ('E').
	Exit
	// Other is any unrecognized character; it is passable.
	Other
)

// DecodeSymbol maps a source rune to its Symbol.
func DecodeSymbol(r rune) Symbol {
	switch r {
	case WallRune:
		return Wall
	case FloorRune:
		return Floor
	case StartRune:
		return Start
	case ExitRune:
		return Exit
	default:
		return Other
	}
}

// Rune returns the canonical source character for s.
// Other has no canonical character and yields '?'.
func (s Symbol) Rune() rune {
	switch s {
	case Wall:
		return WallRune
	case Floor:
		return FloorRune
	case Start:
		return StartRune
	case Exit:
		return ExitRune
	default:
		return '?'
	}
}

// Passable reports whether a walker may enter a cell holding s.
// Only Wall blocks.
func (s Symbol) Passable() bool { return s != Wall }

func (s Symbol) String() string {
	switch s {
	case Floor:
		return "floor"
	case Wall:
		return "wall"
	case Start:
		return "start"
	case Exit:
		return "exit"
	default:
		return "other"
	}
}

// Point is a (row, column) cell coordinate. The zero value is the top-left cell.
type Point struct {
	Row, Col int
}

// Add returns p moved one step in direction d.
func (p Point) Add(d Direction) Point {
	return Point{Row: p.Row + d.DRow, Col: p.Col + d.DCol}
}

// Adjacent reports whether q differs from p by exactly one step on exactly one axis.
func (p Point) Adjacent(q Point) bool {
	dr, dc := abs(p.Row-q.Row), abs(p.Col-q.Col)
	return dr+dc == 1
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Direction is a unit step on the grid.
type Direction struct {
	DRow, DCol int
	Name       string
}

// The four axis-aligned moves. Diagonals are never generated.
var (
	Up    = Direction{DRow: -1, DCol: 0, Name: "up"}
	Down  = Direction{DRow: 1, DCol: 0, Name: "down"}
	Left  = Direction{DRow: 0, DCol: -1, Name: "left"}
	Right = Direction{DRow: 0, DCol: 1, Name: "right"}
)

// Directions is the fixed neighbor expansion order: up, down, left, right.
// Equal-length paths are tie-broken by this order.
var Directions = [4]Direction{Up, Down, Left, Right}
