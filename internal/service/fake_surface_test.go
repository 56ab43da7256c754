package service_test

import (
	"errors"

	"ovals/internal/domain"
)

var errSurfaceDown = errors.New("surface down")

// fakeSurface records what the editor last drew for each handle.
type fakeSurface struct {
	next   domain.Handle
	boxes  map[domain.Handle]domain.Box
	styles map[domain.Handle]domain.Style
	calls  int
	failAt int // fail the n-th call (1-based); 0 never fails
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		boxes:  make(map[domain.Handle]domain.Box),
		styles: make(map[domain.Handle]domain.Style),
	}
}

func (f *fakeSurface) tick() error {
	f.calls++
	if f.failAt != 0 && f.calls >= f.failAt {
		return errSurfaceDown
	}
	return nil
}

func (f *fakeSurface) CreateEllipse(box domain.Box, style domain.Style) (domain.Handle, error) {
	if err := f.tick(); err != nil {
		return 0, err
	}
	f.next++
	f.boxes[f.next] = box
	f.styles[f.next] = style
	return f.next, nil
}

func (f *fakeSurface) SetEllipseGeometry(h domain.Handle, box domain.Box) error {
	if err := f.tick(); err != nil {
		return err
	}
	f.boxes[h] = box
	return nil
}

func (f *fakeSurface) SetEllipseStyle(h domain.Handle, style domain.Style) error {
	if err := f.tick(); err != nil {
		return err
	}
	f.styles[h] = style
	return nil
}

func (f *fakeSurface) Width() float64  { return 600 }
func (f *fakeSurface) Height() float64 { return 400 }

// inSync reports whether every registry entry matches what was drawn.
func inSync(store domain.ShapeStore, f *fakeSurface) bool {
	for _, s := range store.All() {
		h, ok := store.Handle(s.ID)
		if !ok || f.boxes[h] != s.Box || f.styles[h] != s.Style {
			return false
		}
	}
	return true
}
