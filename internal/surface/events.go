// Package surface holds the drawing surfaces an editor session can drive.
package surface

import (
	"context"
	"sync"

	"ovals/internal/domain"
)

// Frontend events emitted by the Events surface.
const (
	EventEllipseCreated  = "surface:ellipse-created"
	EventEllipseGeometry = "surface:ellipse-geometry"
	EventEllipseStyle    = "surface:ellipse-style"
)

// Emitter is the subset of the app's event emitter the surface needs.
type Emitter interface {
	Emit(ctx context.Context, event string, data any)
}

// EllipseEvent is the payload of every surface event. Fields that did not
// change are omitted.
type EllipseEvent struct {
	Handle uint64        `json:"handle"`
	Box    *domain.Box   `json:"box,omitempty"`
	Style  *domain.Style `json:"style,omitempty"`
}

// Events draws by telling the frontend canvas what to draw.
type Events struct {
	ctx     context.Context
	emitter Emitter

	mu     sync.Mutex
	next   domain.Handle
	known  map[domain.Handle]bool
	width  float64
	height float64
}

func NewEvents(ctx context.Context, emitter Emitter, width, height float64) *Events {
	return &Events{
		ctx:     ctx,
		emitter: emitter,
		known:   make(map[domain.Handle]bool),
		width:   width,
		height:  height,
	}
}

func (e *Events) CreateEllipse(box domain.Box, style domain.Style) (domain.Handle, error) {
	e.mu.Lock()
	e.next++
	h := e.next
	e.known[h] = true
	e.mu.Unlock()

	e.emitter.Emit(e.ctx, EventEllipseCreated, EllipseEvent{Handle: uint64(h), Box: &box, Style: &style})
	return h, nil
}

func (e *Events) SetEllipseGeometry(h domain.Handle, box domain.Box) error {
	if err := e.check(h); err != nil {
		return err
	}
	e.emitter.Emit(e.ctx, EventEllipseGeometry, EllipseEvent{Handle: uint64(h), Box: &box})
	return nil
}

func (e *Events) SetEllipseStyle(h domain.Handle, style domain.Style) error {
	if err := e.check(h); err != nil {
		return err
	}
	e.emitter.Emit(e.ctx, EventEllipseStyle, EllipseEvent{Handle: uint64(h), Style: &style})
	return nil
}

// Resize records the size of the frontend canvas element.
func (e *Events) Resize(width, height float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.width, e.height = width, height
}

func (e *Events) Width() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width
}

func (e *Events) Height() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.height
}

func (e *Events) check(h domain.Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.known[h] {
		return unknownHandle(h)
	}
	return nil
}
