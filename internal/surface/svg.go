package surface

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"ovals/internal/domain"
	"ovals/internal/palette"
)

// WriteSVG renders shapes, in order, as an SVG document of the given size.
// Coordinates are rounded to whole pixels and clamped to the int32 range.
func WriteSVG(w io.Writer, width, height int, background string, shapes []domain.Shape) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	if bg, ok := palette.Parse(background); ok && bg.A > 0 {
		canvas.Rect(0, 0, width, height, "fill:"+hex(bg))
	}
	for _, s := range shapes {
		c := s.Box.Center()
		canvas.Ellipse(
			round(c.X), round(c.Y),
			round(s.Box.Width()/2), round(s.Box.Height()/2),
			svgStyle(s.Style),
			fmt.Sprintf(`id="oval-%d"`, s.ID),
		)
	}
	canvas.End()
}

func svgStyle(st domain.Style) string {
	fill, stroke := "none", "none"
	if c, ok := palette.Parse(st.FillColor); ok && c.A > 0 {
		fill = hex(c)
	}
	if c, ok := palette.Parse(st.BorderColor); ok && c.A > 0 {
		stroke = hex(c)
	}
	return fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g", fill, stroke, st.BorderWidth)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// round converts a coordinate to whole pixels, clamped to the int32 range
// SVG consumers accept.
func round(v float64) int {
	v = math.Round(v)
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}
