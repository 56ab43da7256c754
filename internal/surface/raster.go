package surface

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/fogleman/gg"

	"ovals/internal/domain"
	"ovals/internal/palette"
)

var (
	ErrUnknownHandle = errors.New("unknown ellipse handle")
	ErrUnknownColor  = errors.New("unknown color")
)

func unknownHandle(h domain.Handle) error {
	return fmt.Errorf("handle %d: %w", h, ErrUnknownHandle)
}

type rasterEllipse struct {
	box   domain.Box
	style domain.Style
}

// Raster is an offscreen surface. It keeps every ellipse it was given and
// paints them in creation order whenever an image is requested.
type Raster struct {
	mu         sync.Mutex
	width      int
	height     int
	background string
	next       domain.Handle
	order      []domain.Handle
	items      map[domain.Handle]*rasterEllipse
}

func NewRaster(width, height int, background string) *Raster {
	return &Raster{
		width:      width,
		height:     height,
		background: background,
		items:      make(map[domain.Handle]*rasterEllipse),
	}
}

func (r *Raster) CreateEllipse(box domain.Box, style domain.Style) (domain.Handle, error) {
	if err := checkStyle(style); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.items[r.next] = &rasterEllipse{box: box, style: style}
	r.order = append(r.order, r.next)
	return r.next, nil
}

func (r *Raster) SetEllipseGeometry(h domain.Handle, box domain.Box) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[h]
	if !ok {
		return unknownHandle(h)
	}
	it.box = box
	return nil
}

func (r *Raster) SetEllipseStyle(h domain.Handle, style domain.Style) error {
	if err := checkStyle(style); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[h]
	if !ok {
		return unknownHandle(h)
	}
	it.style = style
	return nil
}

func (r *Raster) Width() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return float64(r.width)
}

func (r *Raster) Height() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return float64(r.height)
}

// Resize changes the size of future renders.
func (r *Raster) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
}

// Render paints the surface.
func (r *Raster) Render() image.Image {
	return r.context().Image()
}

// EncodePNG writes the surface as a PNG image.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.context().EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (r *Raster) context() *gg.Context {
	r.mu.Lock()
	defer r.mu.Unlock()

	dc := gg.NewContext(r.width, r.height)
	if bg, ok := palette.Parse(r.background); ok {
		dc.SetColor(bg)
		dc.Clear()
	}
	for _, h := range r.order {
		it := r.items[h]
		c := it.box.Center()
		dc.DrawEllipse(c.X, c.Y, it.box.Width()/2, it.box.Height()/2)

		fill, _ := palette.Parse(it.style.FillColor)
		if fill.A > 0 {
			dc.SetColor(fill)
			dc.FillPreserve()
		}
		border, _ := palette.Parse(it.style.BorderColor)
		if border.A > 0 && it.style.BorderWidth > 0 {
			dc.SetColor(border)
			dc.SetLineWidth(it.style.BorderWidth)
			dc.StrokePreserve()
		}
		dc.ClearPath()
	}
	return dc
}

func checkStyle(style domain.Style) error {
	for _, c := range []string{style.FillColor, style.BorderColor} {
		if !palette.Valid(c) {
			return fmt.Errorf("%w %q", ErrUnknownColor, c)
		}
	}
	return nil
}
