// Package solver provides tunable options, error definitions and the result
// type for maze path search.
package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/pentti/maze"
)

// Sentinel errors for Solve.
var (
	// ErrNilMaze is returned if a nil maze pointer is passed.
	ErrNilMaze = errors.New("solver: maze is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("solver: invalid option supplied")

	// ErrStepBudget is returned when the search exceeds WithMaxSteps.
	ErrStepBudget = errors.New("solver: step budget exhausted")
)

// Option configures Solve via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation by Solve.
type Option func(*Options)

// Options holds parameters and callbacks that customize a solve.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// MaxSteps, if > 0, caps the number of dequeued nodes.
	// Zero means no limit.
	MaxSteps int

	// OnEnqueue is called when a cell is discovered, with its distance from start.
	OnEnqueue func(p maze.Point, depth int)

	// OnDequeue is called immediately before a cell is expanded.
	OnDequeue func(p maze.Point, depth int)

	err error
}

// DefaultOptions returns Options with a background context, no step limit
// and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		MaxSteps:  0,
		OnEnqueue: func(maze.Point, int) {},
		OnDequeue: func(maze.Point, int) {},
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxSteps bounds the number of dequeues.
//
//	n > 0: at most n nodes are expanded
//	n == 0: no limit
//	n < 0: ErrOptionViolation
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithOnEnqueue registers a callback run when a cell enters the frontier.
func WithOnEnqueue(fn func(p maze.Point, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue registers a callback run when a cell leaves the frontier.
func WithOnDequeue(fn func(p maze.Point, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// Result is the outcome of a solve. It is never mutated after Solve returns.
//   - Path: cells from start to the reached exit inclusive; empty if not Found.
//   - Found: whether any exit was reached.
//   - Start, Exit: endpoints (Exit is meaningful only when Found).
//   - Steps: number of moves, len(Path)-1, or 0 when not Found.
//   - Explored: nodes dequeued; Visited: cells enqueued.
type Result struct {
	Path     []maze.Point
	Found    bool
	Start    maze.Point
	Exit     maze.Point
	Steps    int
	Explored int
	Visited  int
}

// Len returns the number of cells on the path.
func (r *Result) Len() int { return len(r.Path) }

// Contains reports whether p lies on the path.
func (r *Result) Contains(p maze.Point) bool {
	for _, q := range r.Path {
		if q == p {
			return true
		}
	}
	return false
}
