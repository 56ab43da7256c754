package service

import (
	"context"

	"ovals/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// EventEmitter — decouples the editor from the UI runtime
// ─────────────────────────────────────────────────────────────

// Events emitted by the editor session.
const (
	EventDescription   = "canvas:description"    // DescriptionEvent
	EventLineErrors    = "canvas:line-errors"    // LineErrorsEvent
	EventShapesChanged = "canvas:shapes-changed" // ShapesChangedEvent
)

// EventEmitter pushes notifications to whatever renders the editor.
// The Wails app delegates to wailsRuntime.EventsEmit; the MCP server and
// tests use their own implementations.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// DescriptionEvent carries a freshly serialised panel.
type DescriptionEvent struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
}

// LineErrorsEvent lists the classification of every non-blank panel line
// after a commit.
type LineErrorsEvent struct {
	SessionID string              `json:"sessionId"`
	Lines     []domain.LineStatus `json:"lines"`
}

// ShapesChangedEvent names the shapes a commit updated.
type ShapesChangedEvent struct {
	SessionID string   `json:"sessionId"`
	ShapeIDs  []uint64 `json:"shapeIds"`
}

// NopEmitter drops every event.
type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, string, any) {}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}

// Named returns the recorded payloads of one event, oldest first.
func (m *MockEmitter) Named(event string) []any {
	var out []any
	for _, e := range m.Events {
		if e.Event == event {
			out = append(out, e.Data)
		}
	}
	return out
}
