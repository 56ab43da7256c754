// Package description reads and writes the textual form of the canvas:
//
//	OVAL <id> -> [coords:<x0>,<y0>,<x1>,<y1> | border_width:<w> | fill_color:<c> | border_color:<c>]
//
// one shape per line, in registry order.
package description

import (
	"strconv"
	"strings"

	"ovals/internal/domain"
)

const (
	shapeKeyword   = "OVAL"
	idSeparator    = "->"
	entrySeparator = "|"
	keySeparator   = ":"
	coordSeparator = ","

	KeyCoords      = "coords"
	KeyBorderWidth = "border_width"
	KeyFillColor   = "fill_color"
	KeyBorderColor = "border_color"
)

// Format renders every shape as one canonical line each.
func Format(shapes []domain.Shape) string {
	var sb strings.Builder
	for _, s := range shapes {
		sb.WriteString(FormatShape(s))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatShape renders a single shape without the trailing newline.
func FormatShape(s domain.Shape) string {
	var sb strings.Builder
	sb.WriteString(shapeKeyword)
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(s.ID), 10))
	sb.WriteString(" " + idSeparator + " [")
	sb.WriteString(KeyCoords + keySeparator)
	sb.WriteString(strings.Join([]string{
		formatNumber(s.Box.X0),
		formatNumber(s.Box.Y0),
		formatNumber(s.Box.X1),
		formatNumber(s.Box.Y1),
	}, coordSeparator))
	sb.WriteString(" " + entrySeparator + " ")
	sb.WriteString(KeyBorderWidth + keySeparator + formatNumber(s.Style.BorderWidth))
	sb.WriteString(" " + entrySeparator + " ")
	sb.WriteString(KeyFillColor + keySeparator + s.Style.FillColor)
	sb.WriteString(" " + entrySeparator + " ")
	sb.WriteString(KeyBorderColor + keySeparator + s.Style.BorderColor)
	sb.WriteByte(']')
	return sb.String()
}

// formatNumber writes the shortest decimal that parses back to v and always
// keeps a fractional part, so 10 prints as "10.0".
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
