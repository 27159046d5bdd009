package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pentti/config"
	"github.com/katalvlaran/pentti/maze"
	"github.com/katalvlaran/pentti/render"
	"github.com/katalvlaran/pentti/solver"
)

// solveReport is the machine-readable form of one solve.
type solveReport struct {
	File     string   `json:"file" yaml:"file"`
	Rows     int      `json:"rows" yaml:"rows"`
	Cols     int      `json:"cols" yaml:"cols"`
	Start    [2]int   `json:"start" yaml:"start,flow"`
	Exits    [][2]int `json:"exits" yaml:"exits,flow"`
	Found    bool     `json:"found" yaml:"found"`
	Steps    int      `json:"steps" yaml:"steps"`
	Path     [][2]int `json:"path" yaml:"path,flow"`
	Explored int      `json:"explored" yaml:"explored"`
	Visited  int      `json:"visited" yaml:"visited"`
	Cached   bool     `json:"cached" yaml:"cached"`
	Title    string   `json:"title" yaml:"title"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func pair(p maze.Point) [2]int { return [2]int{p.Row, p.Col} }

func newSolveReport(file string, m *maze.Maze, res *solver.Result, cached bool) solveReport {
	rep := solveReport{
		File:     file,
		Rows:     m.Rows(),
		Cols:     m.Cols(),
		Start:    pair(m.Start()),
		Exits:    [][2]int{},
		Found:    res.Found,
		Steps:    res.Steps,
		Path:     [][2]int{},
		Explored: res.Explored,
		Visited:  res.Visited,
		Cached:   cached,
		Title:    render.Title(res),
	}
	for _, e := range m.Exits() {
		rep.Exits = append(rep.Exits, pair(e))
	}
	for _, p := range res.Path {
		rep.Path = append(rep.Path, pair(p))
	}
	return rep
}

// writeResult encodes v as JSON or YAML.
func writeResult(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
