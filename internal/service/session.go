package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"ovals/internal/description"
	"ovals/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Session — one editor: canvas shapes plus their description panel
// ─────────────────────────────────────────────────────────────

var (
	// ErrSurfaceContract marks a drawing surface failure. Once it happens the
	// session can no longer keep model and view equal and refuses further work.
	ErrSurfaceContract = errors.New("drawing surface contract violated")
	// ErrGestureActive is returned when text edits are committed mid-gesture.
	ErrGestureActive = errors.New("gesture in progress")
)

// Options are the defaults applied to freshly drawn shapes.
type Options struct {
	DefaultWidth  float64
	DefaultHeight float64
	DefaultStyle  domain.Style
}

// DefaultOptions returns a 1×1 green ellipse with a midnight blue border.
func DefaultOptions() Options {
	return Options{
		DefaultWidth:  1,
		DefaultHeight: 1,
		DefaultStyle: domain.Style{
			BorderWidth: 1,
			FillColor:   "green",
			BorderColor: "midnightblue",
		},
	}
}

// CommitResult summarises one pass over the panel text.
type CommitResult struct {
	Lines   []domain.LineStatus `json:"lines"`
	Updated []domain.ShapeID    `json:"updated"`
	Skipped bool                `json:"skipped"`
}

// Errors counts the lines flagged as erroneous.
func (r CommitResult) Errors() int {
	n := 0
	for _, l := range r.Lines {
		if l.Error {
			n++
		}
	}
	return n
}

// Session owns the shape registry of one editor and is the only way to
// mutate it. Every method holds the session lock for its whole run, so a
// gesture step and a commit pass never interleave.
type Session struct {
	mu         sync.Mutex
	id         string
	store      domain.ShapeStore
	surface    domain.Surface
	emitter    EventEmitter
	opts       Options
	gestures   *Gestures
	reconciler *Reconciler

	described string // last text produced by the serializer
	panel     string // current panel content
	lines     []domain.LineStatus
	failed    error
}

// NewSession creates a Session drawing onto surface.
func NewSession(store domain.ShapeStore, surface domain.Surface, emitter EventEmitter, opts Options) *Session {
	if emitter == nil {
		emitter = NopEmitter{}
	}
	return &Session{
		id:         uuid.New().String(),
		store:      store,
		surface:    surface,
		emitter:    emitter,
		opts:       opts,
		gestures:   NewGestures(store, surface, opts),
		reconciler: NewReconciler(store, surface),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Options returns the defaults applied to freshly drawn shapes.
func (s *Session) Options() Options {
	return s.opts
}

// PointerPress handles a primary button press at surface coordinates.
func (s *Session) PointerPress(_ context.Context, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed != nil {
		return s.failed
	}
	return s.fail(s.gestures.Press(domain.Point{X: x, Y: y}))
}

// PointerMove handles pointer motion.
func (s *Session) PointerMove(_ context.Context, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed != nil {
		return s.failed
	}
	_, err := s.gestures.Move(domain.Point{X: x, Y: y})
	return s.fail(err)
}

// PointerRelease ends the current gesture and refreshes the panel.
func (s *Session) PointerRelease(ctx context.Context, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed != nil {
		return s.failed
	}
	if !s.gestures.Release() {
		return nil
	}
	s.describe(ctx)
	return nil
}

// SetPanelText records the panel content after a keystroke.
func (s *Session) SetPanelText(text string) {
	s.mu.Lock()
	s.panel = text
	s.mu.Unlock()
}

// ApplyDescription replaces the panel text and commits it.
func (s *Session) ApplyDescription(ctx context.Context, text string) (CommitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panel = text
	return s.commit(ctx)
}

// CommitTextEdits parses the panel and reconciles every valid line onto its
// shape. Invalid lines are flagged and leave their shapes untouched. When no
// line is flagged the panel is replaced by the fresh description.
func (s *Session) CommitTextEdits(ctx context.Context) (CommitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx)
}

func (s *Session) commit(ctx context.Context) (CommitResult, error) {
	if s.failed != nil {
		return CommitResult{}, s.failed
	}
	if s.gestures.Active() {
		return CommitResult{}, ErrGestureActive
	}
	if s.panel == s.described && !s.hasErrors() {
		return CommitResult{Lines: s.lines, Skipped: true}, nil
	}

	var res CommitResult
	for _, e := range description.Parse(s.panel, s.store) {
		status := domain.LineStatus{Line: e.Line}
		if e.Err != nil {
			status.Error = true
			status.Kind = e.Err.Kind.String()
			status.Message = e.Err.Message
			res.Lines = append(res.Lines, status)
			continue
		}
		rec, err := s.reconciler.Apply(e.Request)
		if err != nil {
			return res, s.fail(err)
		}
		if rec.Notice != nil {
			status.Kind = description.DegenerateScale.String()
		}
		if rec.BoxChanged || rec.StyleChanged {
			res.Updated = append(res.Updated, rec.ID)
		}
		res.Lines = append(res.Lines, status)
	}
	s.lines = res.Lines

	// The description always tracks the registry, so an unchanged-panel skip
	// can only happen when the panel really matches the shapes.
	s.described = description.Format(s.store.All())
	if res.Errors() == 0 {
		s.panel = s.described
		s.emitter.Emit(ctx, EventDescription, DescriptionEvent{SessionID: s.id, Text: s.described})
	}

	s.emitter.Emit(ctx, EventLineErrors, LineErrorsEvent{SessionID: s.id, Lines: res.Lines})
	if len(res.Updated) > 0 {
		ids := make([]uint64, len(res.Updated))
		for i, id := range res.Updated {
			ids[i] = uint64(id)
		}
		s.emitter.Emit(ctx, EventShapesChanged, ShapesChangedEvent{SessionID: s.id, ShapeIDs: ids})
	}
	return res, nil
}

// Description returns the last serialised description.
func (s *Session) Description() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.described
}

// PanelText returns the current panel content.
func (s *Session) PanelText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel
}

// Shapes returns every shape in creation order.
func (s *Session) Shapes() []domain.Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.All()
}

// Gesture returns the current gesture state.
func (s *Session) Gesture() GestureState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gestures.State()
}

// LineInError reports whether panel line i was rejected by the last commit.
func (s *Session) LineInError(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lines {
		if l.Line == i {
			return l.Error
		}
	}
	return false
}

// LineStatuses returns the classification from the last commit.
func (s *Session) LineStatuses() []domain.LineStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LineStatus(nil), s.lines...)
}

// State returns everything the frontend needs to redraw.
func (s *Session) State() domain.CanvasState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CanvasState{
		SessionID:   s.id,
		Width:       s.surface.Width(),
		Height:      s.surface.Height(),
		Shapes:      s.store.All(),
		Description: s.described,
		Lines:       append([]domain.LineStatus(nil), s.lines...),
	}
}

// Err returns the latched surface failure, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// describe re-serialises the registry into the panel and clears error flags.
func (s *Session) describe(ctx context.Context) {
	s.described = description.Format(s.store.All())
	s.panel = s.described
	s.lines = nil
	s.emitter.Emit(ctx, EventDescription, DescriptionEvent{SessionID: s.id, Text: s.described})
}

func (s *Session) hasErrors() bool {
	for _, l := range s.lines {
		if l.Error {
			return true
		}
	}
	return false
}

// fail latches err when the model and the surface may have diverged.
func (s *Session) fail(err error) error {
	if err == nil {
		return nil
	}
	s.failed = fmt.Errorf("session %s: %w", s.id, err)
	return s.failed
}
