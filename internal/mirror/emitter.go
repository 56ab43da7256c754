package mirror

import (
	"context"
	"log"

	"ovals/internal/service"
)

// Emitter forwards session events and copies every fresh description
// into the mirror file.
type Emitter struct {
	next   service.EventEmitter
	bridge *Bridge
}

func NewEmitter(next service.EventEmitter, bridge *Bridge) *Emitter {
	if next == nil {
		next = service.NopEmitter{}
	}
	return &Emitter{next: next, bridge: bridge}
}

func (e *Emitter) Emit(ctx context.Context, event string, data any) {
	if ev, ok := data.(service.DescriptionEvent); ok && event == service.EventDescription {
		if err := e.bridge.Write(ev.Text); err != nil {
			log.Printf("[mirror] %v", err)
		}
	}
	e.next.Emit(ctx, event, data)
}
