package store

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/katalvlaran/pentti/maze"
	"github.com/katalvlaran/pentti/solver"
)

// Record is the persisted form of a solver.Result.
type Record struct {
	Rows     int      `json:"rows" msgpack:"rows"`
	Cols     int      `json:"cols" msgpack:"cols"`
	Found    bool     `json:"found" msgpack:"found"`
	Path     [][2]int `json:"path,omitempty" msgpack:"path,omitempty"`
	Steps    int      `json:"steps" msgpack:"steps"`
	Explored int      `json:"explored" msgpack:"explored"`
	Visited  int      `json:"visited" msgpack:"visited"`
	SolvedAt int64    `json:"solved_at" msgpack:"solved_at"` // unix seconds
}

// NewRecord captures res for maze m.
func NewRecord(m *maze.Maze, res *solver.Result, at time.Time) Record {
	rec := Record{
		Rows:     m.Rows(),
		Cols:     m.Cols(),
		Found:    res.Found,
		Steps:    res.Steps,
		Explored: res.Explored,
		Visited:  res.Visited,
		SolvedAt: at.Unix(),
	}
	if len(res.Path) > 0 {
		rec.Path = make([][2]int, len(res.Path))
		for i, p := range res.Path {
			rec.Path[i] = [2]int{p.Row, p.Col}
		}
	}
	return rec
}

// Result rebuilds the solver.Result stored in r.
func (r Record) Result() *solver.Result {
	res := &solver.Result{
		Found:    r.Found,
		Steps:    r.Steps,
		Explored: r.Explored,
		Visited:  r.Visited,
	}
	if len(r.Path) > 0 {
		res.Path = make([]maze.Point, len(r.Path))
		for i, p := range r.Path {
			res.Path[i] = maze.Point{Row: p[0], Col: p[1]}
		}
		res.Start = res.Path[0]
		res.Exit = res.Path[len(res.Path)-1]
	}
	return res
}

// KeyFor returns the cache key of m. Two mazes share a key only if their text
// and exit sets are identical.
func KeyFor(m *maze.Maze) string {
	h := sha256.New()
	h.Write([]byte(m.String()))
	h.Write([]byte{0})
	for _, e := range m.Exits() {
		h.Write([]byte(strconv.Itoa(e.Row)))
		h.Write([]byte{','})
		h.Write([]byte(strconv.Itoa(e.Col)))
		h.Write([]byte{';'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
