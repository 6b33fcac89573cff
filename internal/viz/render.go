package viz

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/san-kum/fireworks/internal/sim"
)

const (
	CursorHome = "\033[H"
	blank      = ' '
)

// ErrOutput wraps failures writing a frame to the terminal stream.
var ErrOutput = errors.New("viz: write frame")

type Options struct {
	Palette string
	Glyphs  string
	Color   bool
}

type Renderer struct {
	glyphs []rune
	color  bool
	styles []lipgloss.Style
	status lipgloss.Style
	accent lipgloss.Style
	canvas *Canvas
}

func NewRenderer(opts Options) *Renderer {
	glyphs := []rune(opts.Glyphs)
	if len(glyphs) == 0 {
		glyphs = []rune{'*'}
	}

	lg := lipgloss.NewRenderer(io.Discard)
	if opts.Color {
		lg.SetColorProfile(termenv.ANSI256)
	} else {
		lg.SetColorProfile(termenv.Ascii)
	}

	palette := GetPalette(opts.Palette)
	styles := make([]lipgloss.Style, len(palette.Colors))
	for i, c := range palette.Colors {
		styles[i] = lg.NewStyle().Foreground(c)
	}

	return &Renderer{
		glyphs: glyphs,
		color:  opts.Color,
		styles: styles,
		status: lg.NewStyle().Foreground(lipgloss.Color("245")),
		accent: lg.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	}
}

// Glyph picks the ramp entry for a remaining-life fraction: the first glyph
// for a fresh spark, the last one for a spark about to expire.
func (r *Renderer) Glyph(fade float64) rune {
	n := len(r.glyphs)
	idx := int((1 - fade) * float64(n))
	return r.glyphs[clamp(idx, 0, n-1)]
}

// Rasterize plots every particle into the renderer's canvas, cleared first.
// The canvas is reused until the size changes.
func (r *Renderer) Rasterize(particles []sim.Particle, width, height int) *Canvas {
	c := r.canvas
	if c == nil || c.Width != max(width, 0) || c.Height != max(height, 0) {
		c = NewCanvas(width, height)
		r.canvas = c
	} else {
		c.Clear()
	}
	for _, p := range particles {
		c.Plot(p.X, p.Y, p.Fade(), p.Hue)
	}
	return c
}

// Grid serializes the particles row by row, without any cursor movement.
func (r *Renderer) Grid(particles []sim.Particle, width, height int) string {
	c := r.Rasterize(particles, width, height)

	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.Width; col++ {
			cell := c.At(col, row)
			if !cell.Set {
				b.WriteRune(blank)
				continue
			}
			b.WriteString(r.cell(cell))
		}
	}
	return b.String()
}

// Frame is Grid prefixed with the cursor-home escape.
func (r *Renderer) Frame(particles []sim.Particle, width, height int) string {
	return CursorHome + r.Grid(particles, width, height)
}

// Draw writes one frame in a single write. A non-empty status is shown on
// the line below the grid.
func (r *Renderer) Draw(w io.Writer, particles []sim.Particle, width, height int, status string) error {
	frame := r.Frame(particles, width, height)
	if status != "" {
		frame += "\n" + r.Status(status)
	}
	if _, err := io.WriteString(w, frame); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	return nil
}

func (r *Renderer) Status(text string) string {
	if !r.color {
		return text
	}
	return r.status.Render(text)
}

func (r *Renderer) Accent(text string) string {
	if !r.color {
		return text
	}
	return r.accent.Render(text)
}

func (r *Renderer) cell(c Cell) string {
	g := string(r.Glyph(c.Fade))
	if !r.color || len(r.styles) == 0 {
		return g
	}
	hue := c.Hue % len(r.styles)
	if hue < 0 {
		hue += len(r.styles)
	}
	return r.styles[hue].Render(g)
}
