package surface

import (
	"fmt"
	"sync"

	"ovals/internal/domain"
)

// Tee draws every ellipse on several surfaces at once. Its size is the
// size of the first surface.
type Tee struct {
	surfaces []domain.Surface

	mu      sync.Mutex
	next    domain.Handle
	handles map[domain.Handle][]domain.Handle
}

func NewTee(primary domain.Surface, others ...domain.Surface) *Tee {
	return &Tee{
		surfaces: append([]domain.Surface{primary}, others...),
		handles:  make(map[domain.Handle][]domain.Handle),
	}
}

func (t *Tee) CreateEllipse(box domain.Box, style domain.Style) (domain.Handle, error) {
	hs := make([]domain.Handle, len(t.surfaces))
	for i, s := range t.surfaces {
		h, err := s.CreateEllipse(box, style)
		if err != nil {
			return 0, fmt.Errorf("tee surface %d: %w", i, err)
		}
		hs[i] = h
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.handles[t.next] = hs
	return t.next, nil
}

func (t *Tee) SetEllipseGeometry(h domain.Handle, box domain.Box) error {
	return t.each(h, func(s domain.Surface, sh domain.Handle) error {
		return s.SetEllipseGeometry(sh, box)
	})
}

func (t *Tee) SetEllipseStyle(h domain.Handle, style domain.Style) error {
	return t.each(h, func(s domain.Surface, sh domain.Handle) error {
		return s.SetEllipseStyle(sh, style)
	})
}

func (t *Tee) Width() float64  { return t.surfaces[0].Width() }
func (t *Tee) Height() float64 { return t.surfaces[0].Height() }

func (t *Tee) each(h domain.Handle, fn func(domain.Surface, domain.Handle) error) error {
	t.mu.Lock()
	hs, ok := t.handles[h]
	t.mu.Unlock()
	if !ok {
		return unknownHandle(h)
	}
	for i, s := range t.surfaces {
		if err := fn(s, hs[i]); err != nil {
			return fmt.Errorf("tee surface %d: %w", i, err)
		}
	}
	return nil
}
