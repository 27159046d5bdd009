package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette assigns a color to each Class. Colors are "#RRGGBB" hex strings.
type Palette struct {
	Floor    lipgloss.Color `yaml:"floor"`
	Wall     lipgloss.Color `yaml:"wall"`
	Exit     lipgloss.Color `yaml:"exit"`
	Start    lipgloss.Color `yaml:"start"`
	Path     lipgloss.Color `yaml:"path"`
	Explored lipgloss.Color `yaml:"explored"`
}

// DefaultPalette is silver floor, black walls, red exits, gold start and a
// green path.
var DefaultPalette = Palette{
	Floor:    lipgloss.Color("#c0c0c0"),
	Wall:     lipgloss.Color("#000000"),
	Exit:     lipgloss.Color("#ff0000"),
	Start:    lipgloss.Color("#ffd700"),
	Path:     lipgloss.Color("#008000"),
	Explored: lipgloss.Color("#87ceeb"),
}

// Color returns the palette entry for c.
func (p Palette) Color(c Class) lipgloss.Color {
	switch c {
	case ClassWall:
		return p.Wall
	case ClassExit:
		return p.Exit
	case ClassStart:
		return p.Start
	case ClassPath:
		return p.Path
	default:
		return p.Floor
	}
}

// Merge returns p with every empty entry filled from base.
func (p Palette) Merge(base Palette) Palette {
	pick := func(c, d lipgloss.Color) lipgloss.Color {
		if c == "" {
			return d
		}
		return c
	}
	return Palette{
		Floor:    pick(p.Floor, base.Floor),
		Wall:     pick(p.Wall, base.Wall),
		Exit:     pick(p.Exit, base.Exit),
		Start:    pick(p.Start, base.Start),
		Path:     pick(p.Path, base.Path),
		Explored: pick(p.Explored, base.Explored),
	}
}

// Validate reports the first entry that is not a "#RRGGBB" color.
func (p Palette) Validate() error {
	for name, c := range map[string]lipgloss.Color{
		"floor": p.Floor, "wall": p.Wall, "exit": p.Exit,
		"start": p.Start, "path": p.Path, "explored": p.Explored,
	} {
		if _, err := parseHex(c); err != nil {
			return fmt.Errorf("render: palette %s: %w", name, err)
		}
	}
	return nil
}

// parseHex converts "#RRGGBB" (or "#RGB") to an opaque RGBA color.
func parseHex(c lipgloss.Color) (color.RGBA, error) {
	s := strings.TrimPrefix(string(c), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", string(c))
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", string(c))
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
