package solver

import (
	"context"
	"fmt"

	"github.com/katalvlaran/pentti/maze"
)

// noParent marks the root node of the search tree.
const noParent int32 = -1

// node is one arena record: a discovered cell and the index of the node it
// was discovered from. Nodes are appended once and never modified.
type node struct {
	point  maze.Point
	parent int32
	depth  int
}

// walker encapsulates the mutable state of a single solve.
type walker struct {
	maze     *maze.Maze
	opts     Options
	ctx      context.Context
	nodes    []node
	queue    *ring
	visited  []bool
	explored int
}

// Solve runs breadth-first search on m from its start cell to the nearest
// exit, applying any number of functional Options.
// Returns ErrNilMaze, maze.ErrEmptyMaze for a zero-value Maze,
// ErrOptionViolation for bad options, ErrStepBudget when
// WithMaxSteps is exceeded, or the context error on cancellation.
// An unreachable exit is reported as Found=false with a nil error.
func Solve(m *maze.Maze, opts ...Option) (*Result, error) {
	if m == nil {
		return nil, ErrNilMaze
	}
	if m.Len() == 0 {
		return nil, maze.ErrEmptyMaze
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	w := &walker{
		maze:    m,
		opts:    o,
		ctx:     o.Ctx,
		nodes:   make([]node, 0, 64),
		queue:   newRing(64),
		visited: make([]bool, m.Len()),
	}
	w.enqueue(m.Start(), noParent, 0)

	return w.loop()
}

// enqueue marks p visited, appends its node to the arena and pushes the
// node's index onto the frontier.
func (w *walker) enqueue(p maze.Point, parent int32, depth int) {
	w.visited[w.maze.Index(p)] = true
	id := int32(len(w.nodes))
	w.nodes = append(w.nodes, node{point: p, parent: parent, depth: depth})
	w.opts.OnEnqueue(p, depth)
	w.queue.push(id)
}

// loop drains the frontier until an exit is dequeued, the frontier empties,
// the budget runs out, or the context is cancelled.
func (w *walker) loop() (*Result, error) {
	for w.queue.Len() > 0 {
		select {
		case <-w.ctx.Done():
			return nil, w.ctx.Err()
		default:
		}
		if w.opts.MaxSteps > 0 && w.explored >= w.opts.MaxSteps {
			return nil, fmt.Errorf("%w: %d nodes expanded, %d still queued",
				ErrStepBudget, w.explored, w.queue.Len())
		}

		id := w.queue.pop()
		v := w.nodes[id]
		w.explored++
		w.opts.OnDequeue(v.point, v.depth)

		if w.maze.IsExit(v.point) {
			return w.found(id), nil
		}
		w.expand(id, v)
	}

	return &Result{
		Found:    false,
		Start:    w.maze.Start(),
		Explored: w.explored,
		Visited:  len(w.nodes),
	}, nil
}

// expand enqueues every passable, unvisited 4-neighbor of v.
// Off-grid neighbors and walls are skipped alike.
func (w *walker) expand(id int32, v node) {
	for _, d := range maze.Directions {
		next := v.point.Add(d)
		if !w.maze.IsPassable(next) {
			continue
		}
		if w.visited[w.maze.Index(next)] {
			continue
		}
		w.enqueue(next, id, v.depth+1)
	}
}

// found builds the successful Result for the exit node at index id.
func (w *walker) found(id int32) *Result {
	path := reconstruct(w.nodes, id)
	return &Result{
		Path:     path,
		Found:    true,
		Start:    path[0],
		Exit:     path[len(path)-1],
		Steps:    len(path) - 1,
		Explored: w.explored,
		Visited:  len(w.nodes),
	}
}
