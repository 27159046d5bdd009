package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/katalvlaran/pentti/maze"
	"github.com/katalvlaran/pentti/solver"
)

// plainGlyphs are the characters used when color is disabled.
var plainGlyphs = [...]string{
	ClassFloor: " ",
	ClassWall:  "#",
	ClassExit:  "E",
	ClassStart: "^",
	ClassPath:  ".",
}

// Terminal draws a maze as text. With Plain unset every cell is a block of
// background color; with Plain set it falls back to glyphs.
type Terminal struct {
	Palette   Palette
	Plain     bool
	CellWidth int // characters per cell, default 2

	renderer *lipgloss.Renderer
}

// NewTerminal returns a Terminal whose color profile is detected from w.
// Writers without color support (pipes, files, NO_COLOR) get Plain set.
func NewTerminal(w io.Writer, p Palette) *Terminal {
	r := lipgloss.NewRenderer(w)
	return &Terminal{
		Palette:   p.Merge(DefaultPalette),
		Plain:     r.ColorProfile() == termenv.Ascii,
		CellWidth: 2,
		renderer:  r,
	}
}

// SetColorProfile forces a color profile, overriding detection.
func (t *Terminal) SetColorProfile(p termenv.Profile) {
	if t.renderer == nil {
		t.renderer = lipgloss.NewRenderer(io.Discard)
	}
	t.renderer.SetColorProfile(p)
	t.Plain = p == termenv.Ascii
}

func (t *Terminal) cellWidth() int {
	if t.CellWidth <= 0 {
		return 2
	}
	return t.CellWidth
}

func (t *Terminal) style() lipgloss.Style {
	if t.renderer != nil {
		return t.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// Render returns the drawing of m with path highlighted, one line per row.
func (t *Terminal) Render(m *maze.Maze, path []maze.Point) string {
	grid := Transform(m, path)
	w := t.cellWidth()

	var styles [5]lipgloss.Style
	if !t.Plain {
		for c := range styles {
			styles[c] = t.style().Background(t.Palette.Color(Class(c)))
		}
	}

	lines := make([]string, len(grid))
	var b strings.Builder
	for r, row := range grid {
		b.Reset()
		for _, c := range row {
			if t.Plain {
				b.WriteString(strings.Repeat(plainGlyphs[c], w))
				continue
			}
			b.WriteString(styles[c].Render(strings.Repeat(" ", w)))
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Frame renders the title above the drawing, the way the solve command
// prints it.
func (t *Terminal) Frame(m *maze.Maze, res *solver.Result) string {
	var path []maze.Point
	if res != nil {
		path = res.Path
	}
	title := Title(res)
	if !t.Plain {
		fg := t.Palette.Path
		if res == nil || !res.Found {
			fg = t.Palette.Exit
		}
		title = t.style().Bold(true).Foreground(fg).Render(title)
	}
	return title + "\n" + t.Render(m, path)
}
