package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/katalvlaran/pentti/maze"
)

// ImageOptions configures Image.
type ImageOptions struct {
	// CellSize is the edge of one cell in pixels. Zero means 16.
	CellSize int
	// Palette overrides DefaultPalette entries that are set.
	Palette Palette
	// Distances, when non-nil, tints reached floor cells toward
	// Palette.Explored in proportion to their distance from the start.
	// It must be the row-major slice returned by solver.Distances.
	Distances []int
}

// Image is an image.Image of a maze with its path highlighted. Each cell is
// drawn as a CellSize×CellSize square.
type Image struct {
	grid   [][]Class
	colors [5]color.RGBA
	tint   [][]color.RGBA // nil unless Distances was given
	cell   int
	w, h   int
}

// NewImage builds an Image of m with path highlighted.
// It fails only if the palette holds an invalid color or Distances has the
// wrong length.
func NewImage(m *maze.Maze, path []maze.Point, opts ImageOptions) (*Image, error) {
	pal := opts.Palette.Merge(DefaultPalette)
	if err := pal.Validate(); err != nil {
		return nil, err
	}
	if opts.Distances != nil && len(opts.Distances) != m.Len() {
		return nil, fmt.Errorf("render: distances has %d entries, maze has %d cells", len(opts.Distances), m.Len())
	}
	cell := opts.CellSize
	if cell <= 0 {
		cell = 16
	}

	img := &Image{
		grid: Transform(m, path),
		cell: cell,
		w:    m.Cols() * cell,
		h:    m.Rows() * cell,
	}
	for c := range img.colors {
		img.colors[c], _ = parseHex(pal.Color(Class(c)))
	}
	if opts.Distances != nil {
		explored, _ := parseHex(pal.Explored)
		img.tint = tintGrid(img.grid, opts.Distances, img.colors[ClassFloor], explored)
	}
	return img, nil
}

// tintGrid precomputes the color of every reached floor cell, fading from
// near (strong tint) to far (weak tint).
func tintGrid(grid [][]Class, dist []int, floor, explored color.RGBA) [][]color.RGBA {
	maxDist := 0
	for _, d := range dist {
		maxDist = max(maxDist, d)
	}
	cols := 0
	if len(grid) > 0 {
		cols = len(grid[0])
	}
	out := make([][]color.RGBA, len(grid))
	for r, row := range grid {
		out[r] = make([]color.RGBA, len(row))
		for c, cl := range row {
			out[r][c] = floor
			d := dist[r*cols+c]
			if cl != ClassFloor || d < 0 {
				continue
			}
			// weight in (0,1]: 1 at the start, approaching 0 at the farthest cell
			wt := 1.0 - float64(d)/float64(maxDist+1)
			out[r][c] = lerp(floor, explored, wt)
		}
	}
	return out
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}

func (img *Image) ColorModel() color.Model { return color.RGBAModel }

func (img *Image) Bounds() image.Rectangle { return image.Rect(0, 0, img.w, img.h) }

// At returns the color of pixel (x, y); pixels outside Bounds are transparent.
func (img *Image) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= img.w || y >= img.h {
		return color.Transparent
	}
	r, c := y/img.cell, x/img.cell
	cl := img.grid[r][c]
	if img.tint != nil && cl == ClassFloor {
		return img.tint[r][c]
	}
	return img.colors[cl]
}

// WritePNG encodes an image of m with path highlighted to w.
func WritePNG(w io.Writer, m *maze.Maze, path []maze.Point, opts ImageOptions) error {
	img, err := NewImage(m, path, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}
