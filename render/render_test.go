// File: render/render_test.go
package render

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pentti/maze"
	"github.com/katalvlaran/pentti/solver"
)

var corridor = []string{
	"#####E#",
	"# # # #",
	"#  ## #",
	"##    #",
	"##   ##",
	"##^####",
}

func solved(t *testing.T, lines []string) (*maze.Maze, *solver.Result) {
	t.Helper()
	m, err := maze.FromStrings(lines)
	require.NoError(t, err)
	res, err := solver.Solve(m)
	require.NoError(t, err)
	return m, res
}

// TestTransform keeps the grid shape, maps each symbol to its class and
// paints the path over floor cells only.
func TestTransform(t *testing.T) {
	m, res := solved(t, corridor)
	grid := Transform(m, res.Path)

	require.Len(t, grid, 6)
	for _, row := range grid {
		require.Len(t, row, 7)
	}
	assert.Equal(t, ClassWall, grid[0][0])
	assert.Equal(t, ClassFloor, grid[1][1])
	assert.Equal(t, ClassStart, grid[5][2], "start keeps its class on the path")
	assert.Equal(t, ClassExit, grid[0][5], "exit keeps its class on the path")
	assert.Equal(t, ClassPath, grid[3][3])
	assert.Equal(t, ClassFloor, grid[4][4], "off-path floor untouched")

	paths := 0
	for _, row := range grid {
		for _, c := range row {
			if c == ClassPath {
				paths++
			}
		}
	}
	assert.Equal(t, len(res.Path)-2, paths)
}

// TestTransform_OtherSymbolsAndStrayPoints treats unknown runes as floor and
// ignores points outside the grid.
func TestTransform_OtherSymbolsAndStrayPoints(t *testing.T) {
	m, err := maze.FromStrings([]string{"^xE"})
	require.NoError(t, err)
	grid := Transform(m, []maze.Point{{Row: 0, Col: 1}, {Row: 9, Col: 9}})
	assert.Equal(t, [][]Class{{ClassStart, ClassPath, ClassExit}}, grid)
}

func TestTitle(t *testing.T) {
	_, res := solved(t, corridor)
	assert.Equal(t, "Found shortest path for Pentti, steps: 9", Title(res))
	assert.Equal(t, "No shortest path found to exit", Title(&solver.Result{}))
	assert.Equal(t, "No shortest path found to exit", Title(nil))
}

// TestTerminal_Plain draws the solved corridor with glyphs.
func TestTerminal_Plain(t *testing.T) {
	m, res := solved(t, corridor)
	term := &Terminal{Plain: true, CellWidth: 1}

	want := strings.Join([]string{
		"#####E#",
		"# # #.#",
		"#  ##.#",
		"##....#",
		"##.  ##",
		"##^####",
	}, "\n")
	assert.Equal(t, want, term.Render(m, res.Path))

	frame := term.Frame(m, res)
	assert.True(t, strings.HasPrefix(frame, "Found shortest path for Pentti, steps: 9\n"))

	wide := (&Terminal{Plain: true}).Render(m, nil)
	assert.Equal(t, "##########EE##", strings.Split(wide, "\n")[0])
}

// TestTerminal_Color checks that a colored drawing still has one line per row
// and the right visible width whatever color profile is detected.
func TestTerminal_Color(t *testing.T) {
	m, res := solved(t, corridor)
	var buf bytes.Buffer
	term := NewTerminal(&buf, Palette{})
	assert.Equal(t, DefaultPalette, term.Palette)
	assert.True(t, term.Plain, "a buffer has no color support")
	term.SetColorProfile(termenv.TrueColor)
	require.False(t, term.Plain)

	out := term.Render(m, res.Path)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	for _, l := range lines {
		assert.Equal(t, 14, lipglossWidth(l))
	}
	assert.Contains(t, term.Frame(m, &solver.Result{}), "No shortest path found to exit")
}

// TestImage checks dimensions and cell colors of the PNG image.
func TestImage(t *testing.T) {
	m, res := solved(t, corridor)
	img, err := NewImage(m, res.Path, ImageOptions{CellSize: 4})
	require.NoError(t, err)

	assert.Equal(t, 28, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())

	rgba := func(c color.Color) color.RGBA { return color.RGBAModel.Convert(c).(color.RGBA) }
	// pixel (x=col*4, y=row*4)
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, rgba(img.At(0, 0)), "wall")
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, rgba(img.At(5*4+3, 0)), "exit")
	assert.Equal(t, color.RGBA{0xff, 0xd7, 0, 0xff}, rgba(img.At(2*4, 5*4+1)), "start")
	assert.Equal(t, color.RGBA{0, 0x80, 0, 0xff}, rgba(img.At(3*4, 3*4)), "path")
	assert.Equal(t, color.RGBA{0xc0, 0xc0, 0xc0, 0xff}, rgba(img.At(1*4, 1*4)), "floor")
	assert.Equal(t, color.Transparent, img.At(-1, 0))
	assert.Equal(t, color.Transparent, img.At(28, 0))
}

// TestImage_Distances tints reached floor cells and leaves sealed ones alone.
func TestImage_Distances(t *testing.T) {
	m, err := maze.FromStrings([]string{"^  #  E"})
	require.NoError(t, err)
	img, err := NewImage(m, nil, ImageOptions{CellSize: 1, Distances: solver.Distances(m)})
	require.NoError(t, err)

	floor := color.RGBA{0xc0, 0xc0, 0xc0, 0xff}
	near := img.At(1, 0).(color.RGBA)
	far := img.At(2, 0).(color.RGBA)
	assert.NotEqual(t, floor, near)
	assert.NotEqual(t, near, far)
	assert.Equal(t, floor, img.At(4, 0), "unreached floor keeps base color")

	_, err = NewImage(m, nil, ImageOptions{Distances: []int{0}})
	assert.Error(t, err)
}

// TestWritePNG round-trips through the PNG decoder.
func TestWritePNG(t *testing.T) {
	m, res := solved(t, corridor)
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, m, res.Path, ImageOptions{CellSize: 2}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 14, img.Bounds().Dx())
	assert.Equal(t, 12, img.Bounds().Dy())

	err = WritePNG(&buf, m, nil, ImageOptions{Palette: Palette{Wall: "black"}})
	assert.Error(t, err)
}

func TestPalette(t *testing.T) {
	p := Palette{Path: "#00f"}.Merge(DefaultPalette)
	assert.Equal(t, DefaultPalette.Wall, p.Wall)
	require.NoError(t, p.Validate())

	c, err := parseHex(p.Path)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 0xff, 0xff}, c)

	for _, bad := range []string{"", "#12", "#gggggg", "red"} {
		_, err := parseHex(lipglossColor(bad))
		assert.Error(t, err, bad)
	}
	assert.Equal(t, "path", ClassPath.String())
	assert.Equal(t, "Class(9)", Class(9).String())
}
