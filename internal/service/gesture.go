package service

import (
	"fmt"

	"ovals/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Gesture state machine — press/move/release on the canvas
// ─────────────────────────────────────────────────────────────

// GestureState is one of Idle, Creating or Moving.
type GestureState interface {
	gestureState()
}

// Idle means no pointer button is held.
type Idle struct{}

// Creating means a press landed on empty canvas and shape ID grows from Anchor.
type Creating struct {
	ID     domain.ShapeID
	Anchor domain.Point
}

// Moving means a press landed on shape ID; Last is the previous pointer position.
type Moving struct {
	ID   domain.ShapeID
	Last domain.Point
}

func (Idle) gestureState()     {}
func (Creating) gestureState() {}
func (Moving) gestureState()   {}

// Gestures turns pointer events into registry and surface updates.
type Gestures struct {
	store   domain.ShapeStore
	surface domain.Surface
	opts    Options
	state   GestureState
}

func NewGestures(store domain.ShapeStore, surface domain.Surface, opts Options) *Gestures {
	return &Gestures{store: store, surface: surface, opts: opts, state: Idle{}}
}

// State returns the current gesture state.
func (g *Gestures) State() GestureState {
	return g.state
}

// Active reports whether a gesture is in progress.
func (g *Gestures) Active() bool {
	_, idle := g.state.(Idle)
	return !idle
}

// HitTest returns the first shape, in registry order, whose ellipse contains p.
func (g *Gestures) HitTest(p domain.Point) (domain.ShapeID, bool) {
	for _, s := range g.store.All() {
		if s.Box.Contains(p) {
			return s.ID, true
		}
	}
	return 0, false
}

// Press starts a gesture. A press that misses every shape creates a new one
// at p; a press on a shape starts dragging it. Presses during a gesture are ignored.
func (g *Gestures) Press(p domain.Point) error {
	if g.Active() {
		return nil
	}
	if id, ok := g.HitTest(p); ok {
		g.state = Moving{ID: id, Last: p}
		return nil
	}

	box := domain.Box{X0: p.X, Y0: p.Y, X1: p.X + g.opts.DefaultWidth, Y1: p.Y + g.opts.DefaultHeight}
	h, err := g.surface.CreateEllipse(box, g.opts.DefaultStyle)
	if err != nil {
		return fmt.Errorf("%w: create ellipse: %w", ErrSurfaceContract, err)
	}
	id, err := g.store.Create(box, g.opts.DefaultStyle, h)
	if err != nil {
		return fmt.Errorf("register shape: %w", err)
	}
	g.state = Creating{ID: id, Anchor: p}
	return nil
}

// Move advances the active gesture. It reports whether a shape changed.
func (g *Gestures) Move(p domain.Point) (bool, error) {
	switch st := g.state.(type) {
	case Creating:
		cur, ok := g.store.Get(st.ID)
		if !ok {
			return false, fmt.Errorf("creating shape %d: not in registry", st.ID)
		}
		next := domain.Box{X0: st.Anchor.X, Y0: st.Anchor.Y, X1: p.X, Y1: p.Y}
		// Only strict growth on both axes; shrinking or crossing the anchor is dropped.
		if next.Width() <= cur.Box.Width() || next.Height() <= cur.Box.Height() {
			return false, nil
		}
		return true, g.setBox(cur, next)

	case Moving:
		cur, ok := g.store.Get(st.ID)
		if !ok {
			return false, fmt.Errorf("moving shape %d: not in registry", st.ID)
		}
		dx, dy := p.X-st.Last.X, p.Y-st.Last.Y
		g.state = Moving{ID: st.ID, Last: p}
		if dx == 0 && dy == 0 {
			return false, nil
		}
		return true, g.setBox(cur, cur.Box.Translate(dx, dy))
	}
	return false, nil
}

// Release ends the active gesture. It reports whether one was active, in
// which case the description must be refreshed.
func (g *Gestures) Release() bool {
	if !g.Active() {
		return false
	}
	g.state = Idle{}
	return true
}

func (g *Gestures) setBox(cur domain.Shape, box domain.Box) error {
	h, _ := g.store.Handle(cur.ID)
	if err := g.surface.SetEllipseGeometry(h, box); err != nil {
		return fmt.Errorf("%w: set geometry of shape %d: %w", ErrSurfaceContract, cur.ID, err)
	}
	cur.Box = box
	return g.store.Update(cur.ID, cur)
}
