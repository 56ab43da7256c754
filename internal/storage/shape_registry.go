package storage

import (
	"errors"
	"fmt"
	"math"

	"ovals/internal/domain"
)

var (
	// ErrShapeNotFound is returned when an id has no registry entry.
	ErrShapeNotFound = errors.New("shape not found")
	// ErrIDExhausted is returned when the id allocator would wrap.
	ErrIDExhausted = errors.New("shape id space exhausted")
)

type shapeEntry struct {
	shape  domain.Shape
	handle domain.Handle
}

// ShapeRegistry keeps shapes in creation order. It is a plain store with no
// validation and no locking; the editor session serialises access.
type ShapeRegistry struct {
	order   []domain.ShapeID
	entries map[domain.ShapeID]*shapeEntry
	lastID  domain.ShapeID
}

var _ domain.ShapeStore = (*ShapeRegistry)(nil)

func NewShapeRegistry() *ShapeRegistry {
	return &ShapeRegistry{entries: make(map[domain.ShapeID]*shapeEntry)}
}

// Create registers a new shape drawn through handle and returns its id.
func (r *ShapeRegistry) Create(box domain.Box, style domain.Style, handle domain.Handle) (domain.ShapeID, error) {
	if r.lastID == math.MaxUint64 {
		return 0, ErrIDExhausted
	}
	r.lastID++
	id := r.lastID
	r.entries[id] = &shapeEntry{
		shape:  domain.Shape{ID: id, Box: box, Style: style},
		handle: handle,
	}
	r.order = append(r.order, id)
	return id, nil
}

// Get returns a copy of the shape.
func (r *ShapeRegistry) Get(id domain.ShapeID) (domain.Shape, bool) {
	e, ok := r.entries[id]
	if !ok {
		return domain.Shape{}, false
	}
	return e.shape, true
}

// Handle returns the surface handle the shape is drawn with.
func (r *ShapeRegistry) Handle(id domain.ShapeID) (domain.Handle, bool) {
	e, ok := r.entries[id]
	if !ok {
		return 0, false
	}
	return e.handle, true
}

func (r *ShapeRegistry) Has(id domain.ShapeID) bool {
	_, ok := r.entries[id]
	return ok
}

// Update replaces the stored geometry and style. The id of s is ignored.
func (r *ShapeRegistry) Update(id domain.ShapeID, s domain.Shape) error {
	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("update shape %d: %w", id, ErrShapeNotFound)
	}
	s.ID = id
	e.shape = s
	return nil
}

// All returns every shape in creation order.
func (r *ShapeRegistry) All() []domain.Shape {
	out := make([]domain.Shape, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].shape)
	}
	return out
}

// Last returns the most recently created shape.
func (r *ShapeRegistry) Last() (domain.Shape, bool) {
	if len(r.order) == 0 {
		return domain.Shape{}, false
	}
	return r.entries[r.order[len(r.order)-1]].shape, true
}

func (r *ShapeRegistry) Len() int {
	return len(r.order)
}
