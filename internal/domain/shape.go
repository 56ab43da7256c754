package domain

import "math"

// ShapeID identifies a shape for the lifetime of a session. IDs start at 1.
type ShapeID uint64

// Point is a surface-local pointer position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is an axis-aligned bounding box. X0 <= X1 and Y0 <= Y1.
type Box struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// BoxFromCorners returns the box spanned by two corners in any order.
func BoxFromCorners(a, b Point) Box {
	return Box{
		X0: math.Min(a.X, b.X),
		Y0: math.Min(a.Y, b.Y),
		X1: math.Max(a.X, b.X),
		Y1: math.Max(a.Y, b.Y),
	}
}

func (b Box) Width() float64  { return b.X1 - b.X0 }
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

// Center returns the center of the box.
func (b Box) Center() Point {
	return Point{X: b.X0 + b.Width()/2, Y: b.Y0 + b.Height()/2}
}

// Translate returns the box shifted by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{X0: b.X0 + dx, Y0: b.Y0 + dy, X1: b.X1 + dx, Y1: b.Y1 + dy}
}

// Valid reports whether the corners are ordered and finite.
func (b Box) Valid() bool {
	for _, v := range [4]float64{b.X0, b.Y0, b.X1, b.Y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.X0 <= b.X1 && b.Y0 <= b.Y1
}

// ApproxEqual compares two boxes coordinate by coordinate within eps.
func (b Box) ApproxEqual(o Box, eps float64) bool {
	return math.Abs(b.X0-o.X0) <= eps &&
		math.Abs(b.Y0-o.Y0) <= eps &&
		math.Abs(b.X1-o.X1) <= eps &&
		math.Abs(b.Y1-o.Y1) <= eps
}

// Contains reports whether p lies inside the ellipse inscribed in the box.
// The boundary counts as inside. A box with zero width or height contains nothing.
func (b Box) Contains(p Point) bool {
	a := b.Width() / 2
	h := b.Height() / 2
	if a <= 0 || h <= 0 {
		return false
	}
	c := b.Center()
	dx := p.X - c.X
	dy := p.Y - c.Y
	return (dx*dx)/(a*a)+(dy*dy)/(h*h) <= 1
}

// Style holds the paint attributes of an ellipse. Colors are kept in their
// textual form so they round-trip through the description unchanged.
type Style struct {
	BorderWidth float64 `json:"borderWidth"`
	FillColor   string  `json:"fillColor"`
	BorderColor string  `json:"borderColor"`
}

// Shape is an ellipse described by its bounding box.
type Shape struct {
	ID    ShapeID `json:"id"`
	Box   Box     `json:"box"`
	Style Style   `json:"style"`
}

// ShapeStore is the ordered shape registry shared by gestures and reconciliation.
type ShapeStore interface {
	Create(box Box, style Style, handle Handle) (ShapeID, error)
	Get(id ShapeID) (Shape, bool)
	Handle(id ShapeID) (Handle, bool)
	Has(id ShapeID) bool
	Update(id ShapeID, s Shape) error
	All() []Shape
	Last() (Shape, bool)
	Len() int
}
