package storage_test

import (
	"errors"
	"testing"

	"ovals/internal/domain"
	"ovals/internal/storage"
)

func TestShapeRegistry_CreateAssignsMonotonicIDs(t *testing.T) {
	r := storage.NewShapeRegistry()
	var ids []domain.ShapeID
	for i := 0; i < 3; i++ {
		id, err := r.Create(domain.Box{X1: 1, Y1: 1}, domain.Style{}, domain.Handle(i+10))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, id)
	}
	for i, id := range ids {
		if id != domain.ShapeID(i+1) {
			t.Errorf("id[%d] = %d, want %d", i, id, i+1)
		}
	}
	if r.Len() != 3 {
		t.Errorf("expected 3 shapes, got %d", r.Len())
	}
}

func TestShapeRegistry_PreservesInsertionOrder(t *testing.T) {
	r := storage.NewShapeRegistry()
	for i := 0; i < 5; i++ {
		r.Create(domain.Box{X0: float64(i), X1: float64(i + 1)}, domain.Style{}, 0)
	}
	all := r.All()
	for i, s := range all {
		if s.Box.X0 != float64(i) {
			t.Errorf("shape %d out of order: x0=%v", i, s.Box.X0)
		}
	}
	last, ok := r.Last()
	if !ok || last.ID != 5 {
		t.Errorf("expected last shape 5, got %d (ok=%v)", last.ID, ok)
	}
}

func TestShapeRegistry_GetReturnsCopy(t *testing.T) {
	r := storage.NewShapeRegistry()
	id, _ := r.Create(domain.Box{X1: 10, Y1: 10}, domain.Style{FillColor: "green"}, 7)

	s, _ := r.Get(id)
	s.Style.FillColor = "red"

	again, _ := r.Get(id)
	if again.Style.FillColor != "green" {
		t.Errorf("registry state leaked through Get: %q", again.Style.FillColor)
	}
	h, ok := r.Handle(id)
	if !ok || h != 7 {
		t.Errorf("expected handle 7, got %d", h)
	}
}

func TestShapeRegistry_UpdateKeepsID(t *testing.T) {
	r := storage.NewShapeRegistry()
	id, _ := r.Create(domain.Box{}, domain.Style{}, 0)

	err := r.Update(id, domain.Shape{ID: 99, Box: domain.Box{X1: 4, Y1: 4}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	s, _ := r.Get(id)
	if s.ID != id || s.Box.X1 != 4 {
		t.Errorf("unexpected shape after update: %+v", s)
	}
	if r.Has(99) {
		t.Error("update must not register a new id")
	}
}

func TestShapeRegistry_UpdateUnknown(t *testing.T) {
	r := storage.NewShapeRegistry()
	err := r.Update(3, domain.Shape{})
	if !errors.Is(err, storage.ErrShapeNotFound) {
		t.Errorf("expected ErrShapeNotFound, got %v", err)
	}
}

func TestShapeRegistry_EmptyLast(t *testing.T) {
	r := storage.NewShapeRegistry()
	if _, ok := r.Last(); ok {
		t.Error("expected no last shape on an empty registry")
	}
	if len(r.All()) != 0 {
		t.Error("expected empty All")
	}
}
