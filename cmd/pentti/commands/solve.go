package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pentti/config"
	"github.com/katalvlaran/pentti/internal/ctxlog"
	"github.com/katalvlaran/pentti/maze"
	"github.com/katalvlaran/pentti/render"
	"github.com/katalvlaran/pentti/solver"
	"github.com/katalvlaran/pentti/store"
)

type solveFlags struct {
	format    string
	out       string
	exits     []string
	maxSteps  int
	plain     bool
	cellSize  int
	distances bool
}

func newSolveCmd() *cobra.Command {
	var sf solveFlags
	cmd := &cobra.Command{
		Use:   "solve <maze-file>",
		Short: "Solve one maze and draw the shortest path",
		Long: `Solve reads a maze file, finds the shortest path from the start to the
nearest exit and prints it.

Formats:
  text  title and a drawing of the maze (default)
  json  machine-readable result
  yaml  machine-readable result
  png   image written to --out

An unreachable exit is a normal outcome: the command prints
"No shortest path found to exit" and exits 0.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			applySolveFlags(cmd, cfg, sf)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSolve(cmd, cfg, args[0], sf)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&sf.format, "format", "f", "", "output format: text, json, yaml or png")
	f.StringVarP(&sf.out, "out", "o", "", "write output to this file instead of stdout")
	f.StringArrayVar(&sf.exits, "exit", nil, "extra exit cell as row,col (repeatable)")
	f.IntVar(&sf.maxSteps, "max-steps", 0, "abort after expanding this many cells (0 = unlimited)")
	f.BoolVar(&sf.plain, "plain", false, "draw with characters instead of colors")
	f.IntVar(&sf.cellSize, "cell-size", 0, "PNG pixels per cell")
	f.BoolVar(&sf.distances, "distances", false, "shade explored cells by distance in PNG output")
	return cmd
}

func applySolveFlags(cmd *cobra.Command, cfg *config.Config, sf solveFlags) {
	f := cmd.Flags()
	if f.Changed("format") {
		cfg.Output = sf.format
	}
	if f.Changed("max-steps") {
		cfg.MaxSteps = sf.maxSteps
	}
	if f.Changed("plain") {
		cfg.Plain = sf.plain
	}
	if f.Changed("cell-size") {
		cfg.CellSize = sf.cellSize
	}
}

// parsePoint parses "row,col".
func parsePoint(s string) (maze.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return maze.Point{}, fmt.Errorf("invalid cell %q, want row,col", s)
	}
	r, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	c, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err := errors.Join(err1, err2); err != nil {
		return maze.Point{}, fmt.Errorf("invalid cell %q: %w", s, err)
	}
	return maze.Point{Row: r, Col: c}, nil
}

// loadMaze reads path and adds any extra exits.
func loadMaze(path string, exits []string) (*maze.Maze, error) {
	m, err := maze.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if len(exits) == 0 {
		return m, nil
	}
	pts := make([]maze.Point, 0, len(exits))
	for _, s := range exits {
		p, err := parsePoint(s)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return m.WithExits(pts...)
}

// solveMaze answers from cache when one is given, otherwise runs the solver.
func solveMaze(ctx context.Context, cache *store.Cache, m *maze.Maze, maxSteps int) (*solver.Result, bool, error) {
	opts := []solver.Option{solver.WithContext(ctx), solver.WithMaxSteps(maxSteps)}
	if cache != nil {
		return cache.Solve(ctx, m, opts...)
	}
	res, err := solver.Solve(m, opts...)
	return res, false, err
}

func runSolve(cmd *cobra.Command, cfg *config.Config, path string, sf solveFlags) error {
	ctx := cmd.Context()
	log := ctxlog.FromContext(ctx).With("file", path)

	m, err := loadMaze(path, sf.exits)
	if err != nil {
		return err
	}
	log.Debug("maze loaded", "rows", m.Rows(), "cols", m.Cols(), "start", m.Start().String(), "exits", len(m.Exits()))

	cache, err := openCache(ctx, cfg, false)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
	}

	began := time.Now()
	res, hit, err := solveMaze(ctx, cache, m, cfg.MaxSteps)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Info("solved", "found", res.Found, "steps", res.Steps, "explored", res.Explored,
		"cached", hit, "elapsed", time.Since(began))

	w := cmd.OutOrStdout()
	if sf.out != "" && cfg.Output != config.OutputPNG {
		f, err := os.Create(sf.out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch cfg.Output {
	case config.OutputPNG:
		return writePNGFile(sf.out, m, res, cfg, sf.distances)
	case config.OutputText:
		term := render.NewTerminal(w, cfg.Palette)
		if cfg.Plain {
			term.Plain = true
		}
		_, err := fmt.Fprintln(w, term.Frame(m, res))
		return err
	default:
		return writeResult(w, cfg.Output, newSolveReport(path, m, res, hit))
	}
}

func writePNGFile(path string, m *maze.Maze, res *solver.Result, cfg *config.Config, distances bool) error {
	if path == "" {
		return errors.New("png output needs --out")
	}
	opts := render.ImageOptions{CellSize: cfg.CellSize, Palette: cfg.Palette}
	if distances {
		opts.Distances = solver.Distances(m)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := render.WritePNG(f, m, res.Path, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
