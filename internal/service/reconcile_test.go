package service_test

import (
	"errors"
	"testing"

	"ovals/internal/description"
	"ovals/internal/domain"
	"ovals/internal/service"
	"ovals/internal/storage"
)

func seedShape(t *testing.T, reg *storage.ShapeRegistry, surf *fakeSurface, box domain.Box) domain.ShapeID {
	t.Helper()
	style := service.DefaultOptions().DefaultStyle
	h, err := surf.CreateEllipse(box, style)
	if err != nil {
		t.Fatalf("create ellipse: %v", err)
	}
	id, err := reg.Create(box, style, h)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return id
}

func TestReconciler_ScaleExample(t *testing.T) {
	reg := storage.NewShapeRegistry()
	surf := newFakeSurface()
	id := seedShape(t, reg, surf, domain.Box{X0: 0, Y0: 0, X1: 10, Y1: 10})

	target := domain.Box{X0: 0, Y0: 0, X1: 20, Y1: 10}
	res, err := service.NewReconciler(reg, surf).Apply(&description.UpdateRequest{ID: id, Box: &target})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.ScaleX != 2 || res.ScaleY != 1 {
		t.Errorf("scale = (%v, %v), want (2, 1)", res.ScaleX, res.ScaleY)
	}
	if res.Notice != nil {
		t.Errorf("unexpected notice %v", res.Notice)
	}
	s, _ := reg.Get(id)
	if s.Box != target {
		t.Errorf("box = %v, want %v", s.Box, target)
	}
	if !inSync(reg, surf) {
		t.Error("registry and surface diverged")
	}
}

func TestReconciler_ScaleAndTranslate(t *testing.T) {
	reg := storage.NewShapeRegistry()
	surf := newFakeSurface()
	id := seedShape(t, reg, surf, domain.Box{X0: 10, Y0: 10, X1: 40, Y1: 30})

	target := domain.Box{X0: 100.3, Y0: 7.7, X1: 133.9, Y1: 19.1}
	res, err := service.NewReconciler(reg, surf).Apply(&description.UpdateRequest{ID: id, Box: &target})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	s, _ := reg.Get(id)
	if s.Box != target {
		t.Errorf("box = %v, want exactly %v", s.Box, target)
	}
	if !res.BoxChanged || res.StyleChanged {
		t.Errorf("unexpected change flags: %+v", res)
	}
}

func TestReconciler_DegenerateBoxAdoptsTarget(t *testing.T) {
	reg := storage.NewShapeRegistry()
	surf := newFakeSurface()
	id := seedShape(t, reg, surf, domain.Box{X0: 5, Y0: 5, X1: 5, Y1: 5})

	target := domain.Box{X0: 1, Y0: 2, X1: 30, Y1: 40}
	res, err := service.NewReconciler(reg, surf).Apply(&description.UpdateRequest{ID: id, Box: &target})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !errors.Is(res.Notice, description.ErrDegenerateScale) {
		t.Errorf("expected degenerate scale notice, got %v", res.Notice)
	}
	s, _ := reg.Get(id)
	if s.Box != target {
		t.Errorf("box = %v, want %v", s.Box, target)
	}
	if !inSync(reg, surf) {
		t.Error("registry and surface diverged")
	}
}

func TestReconciler_CollapseToZeroWidth(t *testing.T) {
	reg := storage.NewShapeRegistry()
	surf := newFakeSurface()
	id := seedShape(t, reg, surf, domain.Box{X0: 0, Y0: 0, X1: 10, Y1: 10})

	target := domain.Box{X0: 3, Y0: 0, X1: 3, Y1: 10}
	res, err := service.NewReconciler(reg, surf).Apply(&description.UpdateRequest{ID: id, Box: &target})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.Notice == nil {
		t.Error("zero scale factor should fall back to direct replacement")
	}
	if s, _ := reg.Get(id); s.Box != target {
		t.Errorf("box = %v, want %v", s.Box, target)
	}
}

func TestReconciler_StyleOnly(t *testing.T) {
	reg := storage.NewShapeRegistry()
	surf := newFakeSurface()
	box := domain.Box{X0: 0, Y0: 0, X1: 10, Y1: 10}
	id := seedShape(t, reg, surf, box)

	w, fill := 4.5, "#ff0000"
	res, err := service.NewReconciler(reg, surf).Apply(&description.UpdateRequest{ID: id, BorderWidth: &w, FillColor: &fill})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.BoxChanged || !res.StyleChanged {
		t.Errorf("unexpected change flags: %+v", res)
	}
	s, _ := reg.Get(id)
	if s.Box != box || s.Style.BorderWidth != 4.5 || s.Style.FillColor != "#ff0000" || s.Style.BorderColor != "midnightblue" {
		t.Errorf("unexpected shape %+v", s)
	}
	if !inSync(reg, surf) {
		t.Error("registry and surface diverged")
	}
}

func TestReconciler_SurfaceFailureLeavesRegistry(t *testing.T) {
	reg := storage.NewShapeRegistry()
	surf := newFakeSurface()
	box := domain.Box{X0: 0, Y0: 0, X1: 10, Y1: 10}
	id := seedShape(t, reg, surf, box)
	surf.failAt = surf.calls + 1

	target := domain.Box{X0: 0, Y0: 0, X1: 5, Y1: 5}
	_, err := service.NewReconciler(reg, surf).Apply(&description.UpdateRequest{ID: id, Box: &target})
	if !errors.Is(err, service.ErrSurfaceContract) {
		t.Fatalf("expected ErrSurfaceContract, got %v", err)
	}
	if s, _ := reg.Get(id); s.Box != box {
		t.Errorf("registry changed despite surface failure: %v", s.Box)
	}
}
