// File: solver/solver_test.go
package solver_test

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pentti/maze"
	"github.com/katalvlaran/pentti/solver"
)

// corridor is a 6×7 maze: start (5,2), single exit (0,5), connected through
// the open band on rows 2–4.
var corridor = []string{
	"#####E#",
	"# # # #",
	"#  ## #",
	"##    #",
	"##   ##",
	"##^####",
}

// sealed is corridor with the band cut off from both exits.
var sealed = []string{
	"###E#E#",
	"# # ###",
	"#  ## #",
	"##    #",
	"##   ##",
	"##^####",
}

func mustMaze(t testing.TB, lines []string) *maze.Maze {
	t.Helper()
	m, err := maze.FromStrings(lines)
	require.NoError(t, err)
	return m
}

func pts(xy ...[2]int) []maze.Point {
	out := make([]maze.Point, len(xy))
	for i, p := range xy {
		out[i] = maze.Point{Row: p[0], Col: p[1]}
	}
	return out
}

// checkPath asserts the structural properties every found path must have:
// it starts at the maze start, ends on an exit, never repeats a cell, never
// enters a wall, and moves exactly one orthogonal step at a time.
func checkPath(t *testing.T, m *maze.Maze, res *solver.Result) {
	t.Helper()
	require.NotEmpty(t, res.Path)
	assert.Equal(t, m.Start(), res.Path[0], "path must begin at start")
	assert.True(t, m.IsExit(res.Path[len(res.Path)-1]), "path must end on an exit")
	assert.Equal(t, res.Path[len(res.Path)-1], res.Exit)
	assert.Equal(t, len(res.Path)-1, res.Steps)

	seen := make(map[maze.Point]bool, len(res.Path))
	for i, p := range res.Path {
		assert.False(t, seen[p], "cell %v repeated", p)
		seen[p] = true
		assert.True(t, m.IsPassable(p), "cell %v not passable", p)
		if i > 0 {
			assert.True(t, res.Path[i-1].Adjacent(p), "%v -> %v is not a single step", res.Path[i-1], p)
		}
	}
}

// TestSolve_Corridor finds the single exit through the open band.
// The expected route follows the up/down/left/right tie-break order.
func TestSolve_Corridor(t *testing.T) {
	m := mustMaze(t, corridor)
	res, err := solver.Solve(m)
	require.NoError(t, err)
	require.True(t, res.Found)

	want := pts(
		[2]int{5, 2}, [2]int{4, 2}, [2]int{3, 2}, [2]int{3, 3}, [2]int{3, 4},
		[2]int{3, 5}, [2]int{2, 5}, [2]int{1, 5}, [2]int{0, 5},
	)
	if diff := cmp.Diff(want, res.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 8, res.Steps)
	assert.Equal(t, 9, res.Len())
	assert.Equal(t, maze.Point{Row: 5, Col: 2}, res.Start)
	assert.Equal(t, maze.Point{Row: 0, Col: 5}, res.Exit)
	assert.True(t, res.Contains(maze.Point{Row: 3, Col: 3}))
	assert.False(t, res.Contains(maze.Point{Row: 4, Col: 4}))
	checkPath(t, m, res)
}

// TestSolve_Sealed returns Found=false without an error when every exit is
// walled off.
func TestSolve_Sealed(t *testing.T) {
	m := mustMaze(t, sealed)
	require.Len(t, m.Exits(), 2)

	res, err := solver.Solve(m)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Path)
	assert.Equal(t, 0, res.Steps)
	// every open cell of the band plus the start was enqueued
	assert.Equal(t, 12, res.Visited)
	assert.Equal(t, res.Visited, res.Explored)
}

// TestSolve_NearestExit prefers the strictly closer exit even though the
// farther one comes first in row-major order.
//
//	E   #    exit (0,0): 4 steps
//	#   #
//	# ^ E    exit (2,4): 2 steps
func TestSolve_NearestExit(t *testing.T) {
	m := mustMaze(t, []string{
		"E   #",
		"#   #",
		"# ^ E",
	})
	require.Equal(t, maze.Point{Row: 0, Col: 0}, m.Exits()[0])

	res, err := solver.Solve(m)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, pts([2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4}), res.Path)
	checkPath(t, m, res)
}

// TestSolve_TieBreak picks the exit discovered first by the fixed neighbor
// order when two exits are equally close: left is probed before right.
func TestSolve_TieBreak(t *testing.T) {
	res, err := solver.Solve(mustMaze(t, []string{"E^E"}))
	require.NoError(t, err)
	assert.Equal(t, pts([2]int{0, 1}, [2]int{0, 0}), res.Path)

	// up is probed before left
	res, err = solver.Solve(mustMaze(t, []string{" E", "E^"}))
	require.NoError(t, err)
	assert.Equal(t, pts([2]int{1, 1}, [2]int{0, 1}), res.Path)
}

// TestSolve_StartIsExit succeeds immediately with a single-cell path.
func TestSolve_StartIsExit(t *testing.T) {
	m := mustMaze(t, []string{"###", "#^#", "###"})
	m, err := m.WithExits(m.Start())
	require.NoError(t, err)

	res, err := solver.Solve(m)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, []maze.Point{{Row: 1, Col: 1}}, res.Path)
	assert.Equal(t, 0, res.Steps)
	assert.Equal(t, 1, res.Explored)
}

// TestSolve_NoExits always fails, however open the maze is.
func TestSolve_NoExits(t *testing.T) {
	res, err := solver.Solve(mustMaze(t, []string{"    ", " ^  ", "    "}))
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Path)
	assert.Equal(t, 12, res.Visited)
}

// TestSolve_WalledInStart fails when the start touches only walls and the
// grid edge.
func TestSolve_WalledInStart(t *testing.T) {
	res, err := solver.Solve(mustMaze(t, []string{"^#E", "## "}))
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, 1, res.Visited)
}

// TestSolve_OtherSymbolsPassable walks through unrecognized characters.
func TestSolve_OtherSymbolsPassable(t *testing.T) {
	res, err := solver.Solve(mustMaze(t, []string{"^..x.E"}))
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, 5, res.Steps)
}

// TestSolve_Errors verifies invalid inputs and options are rejected.
func TestSolve_Errors(t *testing.T) {
	if _, err := solver.Solve(nil); !errors.Is(err, solver.ErrNilMaze) {
		t.Errorf("nil maze: want ErrNilMaze, got %v", err)
	}
	m := mustMaze(t, corridor)
	if _, err := solver.Solve(m, solver.WithMaxSteps(-1)); !errors.Is(err, solver.ErrOptionViolation) {
		t.Errorf("negative steps: want ErrOptionViolation, got %v", err)
	}
	if _, err := solver.Solve(&maze.Maze{}); !errors.Is(err, maze.ErrEmptyMaze) {
		t.Errorf("zero-value maze: want ErrEmptyMaze, got %v", err)
	}
	if d := solver.Distances(&maze.Maze{}); d != nil {
		t.Errorf("zero-value maze distances: got %v; want nil", d)
	}
}

// TestSolve_StepBudget stops once the budget of dequeues is spent.
func TestSolve_StepBudget(t *testing.T) {
	m := mustMaze(t, corridor)

	_, err := solver.Solve(m, solver.WithMaxSteps(3))
	assert.ErrorIs(t, err, solver.ErrStepBudget)

	// the exact number of dequeues the corridor needs is enough
	full, err := solver.Solve(m)
	require.NoError(t, err)
	res, err := solver.Solve(m, solver.WithMaxSteps(full.Explored))
	require.NoError(t, err)
	assert.Equal(t, full.Path, res.Path)

	// zero means unlimited
	res, err = solver.Solve(m, solver.WithMaxSteps(0))
	require.NoError(t, err)
	assert.True(t, res.Found)
}

// TestSolve_Cancelled honours an already cancelled context.
func TestSolve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := solver.Solve(mustMaze(t, corridor), solver.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestSolve_Hooks checks that dequeues happen in enqueue order and that
// depths never decrease, which is what makes the search breadth-first.
func TestSolve_Hooks(t *testing.T) {
	var enq, deq []maze.Point
	lastDepth := 0
	res, err := solver.Solve(mustMaze(t, corridor),
		solver.WithOnEnqueue(func(p maze.Point, _ int) { enq = append(enq, p) }),
		solver.WithOnDequeue(func(p maze.Point, d int) {
			if d < lastDepth {
				t.Errorf("depth went from %d to %d at %v", lastDepth, d, p)
			}
			lastDepth = d
			deq = append(deq, p)
		}),
	)
	require.NoError(t, err)
	require.Len(t, enq, res.Visited)
	require.Len(t, deq, res.Explored)
	assert.Equal(t, enq[:len(deq)], deq)

	// nil hooks keep the defaults
	_, err = solver.Solve(mustMaze(t, corridor), solver.WithOnEnqueue(nil), solver.WithOnDequeue(nil), solver.WithContext(nil))
	require.NoError(t, err)
}

// referenceDistances computes shortest step counts by repeated relaxation
// over all cells until nothing changes. It shares no code with the solver.
func referenceDistances(lines []string) [][]int {
	const inf = 1 << 30
	h, w := len(lines), len(lines[0])
	dist := make([][]int, h)
	for r := range dist {
		dist[r] = make([]int, w)
		for c := range dist[r] {
			dist[r][c] = inf
			if lines[r][c] == '^' && !hasStartBefore(lines, r, c) {
				dist[r][c] = 0
			}
		}
	}
	for changed := true; changed; {
		changed = false
		for r := 0; r < h; r++ {
			for c := 0; c < w; c++ {
				if lines[r][c] == '#' {
					continue
				}
				for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
					nr, nc := r+d[0], c+d[1]
					if nr < 0 || nr >= h || nc < 0 || nc >= w || lines[nr][nc] == '#' {
						continue
					}
					if dist[nr][nc]+1 < dist[r][c] {
						dist[r][c] = dist[nr][nc] + 1
						changed = true
					}
				}
			}
		}
	}
	for r := range dist {
		for c := range dist[r] {
			if dist[r][c] == inf {
				dist[r][c] = -1
			}
		}
	}
	return dist
}

func hasStartBefore(lines []string, row, col int) bool {
	for r := 0; r <= row; r++ {
		end := len(lines[r])
		if r == row {
			end = col
		}
		if strings.ContainsRune(lines[r][:end], '^') {
			return true
		}
	}
	return false
}

// randomMaze draws an h×w maze with the given wall density, one start and
// up to three exits.
func randomMaze(rng *rand.Rand, h, w int, density float64) []string {
	cells := make([][]byte, h)
	for r := range cells {
		cells[r] = make([]byte, w)
		for c := range cells[r] {
			cells[r][c] = ' '
			if rng.Float64() < density {
				cells[r][c] = '#'
			}
		}
	}
	cells[rng.Intn(h)][rng.Intn(w)] = '^'
	for i := rng.Intn(4); i > 0; i-- {
		r, c := rng.Intn(h), rng.Intn(w)
		if cells[r][c] != '^' {
			cells[r][c] = 'E'
		}
	}
	lines := make([]string, h)
	for r := range cells {
		lines[r] = string(cells[r])
	}
	return lines
}

// TestSolve_MatchesReference compares Solve and Distances against an
// independent relaxation on many seeded random mazes.
func TestSolve_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		lines := randomMaze(rng, 3+rng.Intn(10), 3+rng.Intn(12), 0.3)
		m := mustMaze(t, lines)
		ref := referenceDistances(lines)

		nearest := -1
		for _, e := range m.Exits() {
			if d := ref[e.Row][e.Col]; d >= 0 && (nearest < 0 || d < nearest) {
				nearest = d
			}
		}

		res, err := solver.Solve(m)
		require.NoError(t, err)
		if nearest < 0 {
			assert.False(t, res.Found, "maze %d:\n%s", i, strings.Join(lines, "\n"))
			assert.Empty(t, res.Path)
		} else {
			require.True(t, res.Found, "maze %d:\n%s", i, strings.Join(lines, "\n"))
			assert.Equal(t, nearest, res.Steps, "maze %d:\n%s", i, strings.Join(lines, "\n"))
			checkPath(t, m, res)
		}

		dist := solver.Distances(m)
		for r := range ref {
			for c := range ref[r] {
				if lines[r][c] == '#' {
					continue
				}
				p := maze.Point{Row: r, Col: c}
				assert.Equal(t, ref[r][c], dist[m.Index(p)], "maze %d cell %v", i, p)
			}
		}
	}
}

// TestSolve_Deterministic runs the same maze repeatedly and concurrently and
// expects identical results.
func TestSolve_Deterministic(t *testing.T) {
	m := mustMaze(t, corridor)
	first, err := solver.Solve(m)
	require.NoError(t, err)

	results := make(chan *solver.Result, 8)
	for i := 0; i < cap(results); i++ {
		go func() {
			res, _ := solver.Solve(m)
			results <- res
		}()
	}
	for i := 0; i < cap(results); i++ {
		res := <-results
		require.NotNil(t, res)
		assert.Equal(t, first.Path, res.Path)
	}
}

// TestDistances covers the nil maze and wall cells.
func TestDistances(t *testing.T) {
	assert.Nil(t, solver.Distances(nil))

	m := mustMaze(t, []string{"^#E", "   "})
	got := solver.Distances(m)
	assert.Equal(t, []int{0, solver.Unreachable, 4, 1, 2, 3}, got)
}
