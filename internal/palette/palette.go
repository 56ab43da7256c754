// Package palette resolves the color strings used in shape styles.
//
// Accepted forms are the SVG/X11 color names (case and spaces ignored, so
// "MidnightBlue" and "midnight blue" both resolve), hex triplets in the
// #rgb, #rrggbb and #rrrrggggbbbb forms, and the empty string, which means
// "no paint".
package palette

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Transparent is what the empty color string resolves to.
var Transparent = color.RGBA{}

// Parse resolves s to an RGBA color.
func Parse(s string) (color.RGBA, bool) {
	if s == "" {
		return Transparent, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	name := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	c, ok := colornames.Map[name]
	return c, ok
}

// Valid reports whether s is an acceptable color string.
func Valid(s string) bool {
	_, ok := Parse(s)
	return ok
}

func parseHex(h string) (color.RGBA, bool) {
	var digits int
	switch len(h) {
	case 3:
		digits = 1
	case 6:
		digits = 2
	case 12:
		digits = 4
	default:
		return color.RGBA{}, false
	}
	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(h[i*digits:(i+1)*digits], 16, 16)
		if err != nil {
			return color.RGBA{}, false
		}
		switch digits {
		case 1:
			rgb[i] = uint8(v * 17)
		case 2:
			rgb[i] = uint8(v)
		case 4:
			rgb[i] = uint8(v >> 8)
		}
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, true
}
