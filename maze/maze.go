package maze

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Maze is an immutable rectangular grid of decoded symbols together with
// its start cell and exit cells. Build one with Parse, FromStrings, FromRows,
// Load or LoadFile. The zero value has no cells and no start; solvers
// reject it with ErrEmptyMaze.
type Maze struct {
	rows, cols int
	cells      []Symbol // row-major, len rows*cols
	raw        []rune   // original characters, row-major
	start      Point
	exits      []Point // row-major scan order
	exitAt     []bool  // row-major exit bitmap
}

// FromRows builds a Maze from an already structured 2D array of symbols.
// The input is deep-copied; later mutation of rows does not affect the Maze.
// Returns ErrEmptyMaze, a *MalformedError (ErrMalformedMaze) or ErrMissingStart.
// Complexity: O(R×C).
func FromRows(rows [][]rune) (*Maze, error) {
	// The width is that of the first non-empty row, so a blank row anywhere
	// in otherwise filled input is reported as malformed.
	w := 0
	for _, row := range rows {
		if len(row) > 0 {
			w = len(row)
			break
		}
	}
	if w == 0 {
		return nil, ErrEmptyMaze
	}
	h := len(rows)
	for i, row := range rows {
		if len(row) != w {
			return nil, &MalformedError{Row: i, Len: len(row), Want: w}
		}
	}

	m := &Maze{
		rows:   h,
		cols:   w,
		cells:  make([]Symbol, h*w),
		raw:    make([]rune, h*w),
		exitAt: make([]bool, h*w),
	}
	foundStart := false
	for r, row := range rows {
		for c, ch := range row {
			i := r*w + c
			sym := DecodeSymbol(ch)
			m.raw[i] = ch
			m.cells[i] = sym
			switch sym {
			case Start:
				// first '^' wins; later ones stay passable
				if !foundStart {
					m.start = Point{Row: r, Col: c}
					foundStart = true
				}
			case Exit:
				m.exits = append(m.exits, Point{Row: r, Col: c})
				m.exitAt[i] = true
			}
		}
	}
	if !foundStart {
		return nil, ErrMissingStart
	}

	return m, nil
}

// FromStrings builds a Maze from one string per row.
func FromStrings(lines []string) (*Maze, error) {
	rows := make([][]rune, len(lines))
	for i, l := range lines {
		rows[i] = []rune(l)
	}
	return FromRows(rows)
}

// Parse builds a Maze from text holding one row per line.
// A trailing '\r' on each line and a single trailing newline are ignored.
func Parse(text string) (*Maze, error) {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, ErrEmptyMaze
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return FromStrings(lines)
}

// Load reads a maze from r, one row per line.
func Load(r io.Reader) (*Maze, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("maze: read: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyMaze
	}
	return FromStrings(lines)
}

// LoadFile opens path and reads a maze from it.
func LoadFile(path string) (*Maze, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("maze: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// WithExits returns a copy of m in which the given coordinates are exits in
// addition to the 'E' cells. The symbols themselves are unchanged, so the
// start cell may double as an exit. Duplicates are ignored and the exit list
// stays in row-major order.
// Returns ErrOutOfBounds or ErrBlockedExit for an unusable coordinate.
func (m *Maze) WithExits(extra ...Point) (*Maze, error) {
	out := &Maze{
		rows:   m.rows,
		cols:   m.cols,
		cells:  m.cells, // shared, never written
		raw:    m.raw,
		start:  m.start,
		exitAt: make([]bool, len(m.exitAt)),
	}
	copy(out.exitAt, m.exitAt)
	for _, p := range extra {
		if !m.InBounds(p) {
			return nil, fmt.Errorf("%w: exit %v in %dx%d grid", ErrOutOfBounds, p, m.rows, m.cols)
		}
		if m.cells[m.Index(p)] == Wall {
			return nil, fmt.Errorf("%w: %v", ErrBlockedExit, p)
		}
		out.exitAt[m.Index(p)] = true
	}
	for i, ok := range out.exitAt {
		if ok {
			out.exits = append(out.exits, m.PointAt(i))
		}
	}
	return out, nil
}

// Rows returns the number of rows.
func (m *Maze) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Maze) Cols() int { return m.cols }

// Len returns the total cell count.
func (m *Maze) Len() int { return m.rows * m.cols }

// Start returns the start coordinate.
func (m *Maze) Start() Point { return m.start }

// Exits returns a copy of the exit coordinates in row-major order.
func (m *Maze) Exits() []Point {
	out := make([]Point, len(m.exits))
	copy(out, m.exits)
	return out
}

// InBounds reports whether p lies within the grid.
// Complexity: O(1).
func (m *Maze) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < m.rows && p.Col >= 0 && p.Col < m.cols
}

// Index returns the row-major index of p. p must be in bounds.
func (m *Maze) Index(p Point) int { return p.Row*m.cols + p.Col }

// PointAt is the inverse of Index.
func (m *Maze) PointAt(i int) Point { return Point{Row: i / m.cols, Col: i % m.cols} }

// SymbolAt returns the symbol at p, or ErrOutOfBounds.
func (m *Maze) SymbolAt(p Point) (Symbol, error) {
	if !m.InBounds(p) {
		return 0, fmt.Errorf("%w: %v in %dx%d grid", ErrOutOfBounds, p, m.rows, m.cols)
	}
	return m.cells[m.Index(p)], nil
}

// RuneAt returns the original character at p, or ErrOutOfBounds.
func (m *Maze) RuneAt(p Point) (rune, error) {
	if !m.InBounds(p) {
		return 0, fmt.Errorf("%w: %v in %dx%d grid", ErrOutOfBounds, p, m.rows, m.cols)
	}
	return m.raw[m.Index(p)], nil
}

// IsPassable reports whether p is inside the grid and not a wall.
// Out-of-bounds coordinates are not passable.
func (m *Maze) IsPassable(p Point) bool {
	return m.InBounds(p) && m.cells[m.Index(p)].Passable()
}

// IsExit reports whether p is an exit cell.
func (m *Maze) IsExit(p Point) bool {
	return m.InBounds(p) && m.exitAt[m.Index(p)]
}

// Row returns a copy of the original characters of row r.
// It panics if r is out of range, like slice indexing.
func (m *Maze) Row(r int) []rune {
	out := make([]rune, m.cols)
	copy(out, m.raw[r*m.cols:(r+1)*m.cols])
	return out
}

// String reproduces the maze text, one row per line, without a trailing newline.
func (m *Maze) String() string {
	var b strings.Builder
	b.Grow(m.rows * (m.cols + 1))
	for r := 0; r < m.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(m.raw[r*m.cols : (r+1)*m.cols]))
	}
	return b.String()
}
