package commands

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/pentti/config"
	"github.com/katalvlaran/pentti/internal/ctxlog"
	"github.com/katalvlaran/pentti/render"
)

// ErrBatchFailed is returned when at least one maze in a batch could not
// be loaded or solved. Unreachable exits do not count as failures.
var ErrBatchFailed = errors.New("pentti: batch had failures")

// batchFormatTable is the batch-only summary table format.
const batchFormatTable = "table"

func newBatchCmd() *cobra.Command {
	var (
		workers  int
		format   string
		maxSteps int
	)
	cmd := &cobra.Command{
		Use:   "batch <maze-file>...",
		Short: "Solve many mazes concurrently",
		Long: `Batch solves every given maze file with a bounded pool of workers and
prints one summary row per file, in argument order.

Files that fail to load are reported in the summary and make the command
exit non-zero after all other files have been processed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			f := cmd.Flags()
			if f.Changed("workers") {
				cfg.Workers = workers
			}
			if f.Changed("max-steps") {
				cfg.MaxSteps = maxSteps
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			switch format {
			case batchFormatTable, config.OutputJSON, config.OutputYAML:
			default:
				return fmt.Errorf("unsupported batch format: %s", format)
			}
			return runBatch(cmd, cfg, args, format)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&workers, "workers", "w", 0, "concurrent solvers (0 = one per CPU)")
	f.StringVarP(&format, "format", "f", batchFormatTable, "output format: table, json or yaml")
	f.IntVar(&maxSteps, "max-steps", 0, "abort a maze after expanding this many cells (0 = unlimited)")
	return cmd
}

func runBatch(cmd *cobra.Command, cfg *config.Config, files []string, format string) error {
	ctx := cmd.Context()
	log := ctxlog.FromContext(ctx)

	cache, err := openCache(ctx, cfg, false)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
	}

	limit := cfg.Workers
	if limit == 0 {
		limit = runtime.NumCPU()
	}
	reports := make([]solveReport, len(files))

	began := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, file := range files {
		g.Go(func() error {
			rep := solveReport{File: file}
			m, err := loadMaze(file, nil)
			if err == nil {
				res, hit, serr := solveMaze(gctx, cache, m, cfg.MaxSteps)
				if serr == nil {
					rep = newSolveReport(file, m, res, hit)
				}
				err = serr
			}
			if err != nil {
				rep.Error = err.Error()
				log.Warn("maze failed", "file", file, "error", err)
			}
			reports[i] = rep
			// Per-file failures are collected, never cancel the group.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		if r.Error != "" {
			failed++
		}
	}
	log.Info("batch finished", "files", len(files), "failed", failed, "workers", limit, "elapsed", time.Since(began))

	out := cmd.OutOrStdout()
	if format == batchFormatTable {
		err = writeBatchTable(out, reports, cfg.Palette)
	} else {
		err = writeResult(out, format, reports)
	}
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrBatchFailed, failed, len(files))
	}
	return nil
}

func writeBatchTable(w io.Writer, reports []solveReport, p render.Palette) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)
	miss := cell.Foreground(p.Merge(render.DefaultPalette).Exit)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("FILE", "SIZE", "FOUND", "STEPS", "EXPLORED", "CACHED", "ERROR").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 2 && row >= 0 && row < len(reports) && reports[row].Error == "" && !reports[row].Found:
				return miss
			default:
				return cell
			}
		})
	for _, rep := range reports {
		size, steps, found, explored := "-", "-", "-", "-"
		if rep.Error == "" {
			size = fmt.Sprintf("%dx%d", rep.Rows, rep.Cols)
			found = strconv.FormatBool(rep.Found)
			explored = strconv.Itoa(rep.Explored)
			if rep.Found {
				steps = strconv.Itoa(rep.Steps)
			}
		}
		t.Row(rep.File, size, found, steps, explored, strconv.FormatBool(rep.Cached), rep.Error)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
