package service

import (
	"fmt"
	"math"

	"ovals/internal/description"
	"ovals/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Reconciler — applies validated description lines to shapes
// ─────────────────────────────────────────────────────────────

// Reconciliation reports what one update did to its shape.
type Reconciliation struct {
	ID     domain.ShapeID
	Box    domain.Box
	ScaleX float64
	ScaleY float64
	// Notice is description.ErrDegenerateScale when the box could not be
	// scaled and was replaced outright.
	Notice       error
	BoxChanged   bool
	StyleChanged bool
}

// Reconciler rewrites shapes so registry and surface match a request.
type Reconciler struct {
	store   domain.ShapeStore
	surface domain.Surface
}

func NewReconciler(store domain.ShapeStore, surface domain.Surface) *Reconciler {
	return &Reconciler{store: store, surface: surface}
}

// Apply reconciles one validated request. The box is scaled about the current
// top-left corner and then moved onto the requested top-left corner; style
// fields are replaced as given.
func (r *Reconciler) Apply(req *description.UpdateRequest) (Reconciliation, error) {
	cur, ok := r.store.Get(req.ID)
	if !ok {
		return Reconciliation{}, fmt.Errorf("reconcile shape %d: not in registry", req.ID)
	}
	h, _ := r.store.Handle(req.ID)

	res := Reconciliation{ID: req.ID, Box: cur.Box, ScaleX: 1, ScaleY: 1}
	next := cur

	if req.Box != nil && *req.Box != cur.Box {
		res.BoxChanged = true
		next.Box, res.ScaleX, res.ScaleY, res.Notice = fitBox(cur.Box, *req.Box)
		res.Box = next.Box
	}

	if req.BorderWidth != nil {
		next.Style.BorderWidth = *req.BorderWidth
	}
	if req.FillColor != nil {
		next.Style.FillColor = *req.FillColor
	}
	if req.BorderColor != nil {
		next.Style.BorderColor = *req.BorderColor
	}
	res.StyleChanged = next.Style != cur.Style

	if res.BoxChanged {
		if err := r.surface.SetEllipseGeometry(h, next.Box); err != nil {
			return res, fmt.Errorf("%w: set geometry of shape %d: %w", ErrSurfaceContract, req.ID, err)
		}
	}
	if res.StyleChanged {
		if err := r.surface.SetEllipseStyle(h, next.Style); err != nil {
			return res, fmt.Errorf("%w: set style of shape %d: %w", ErrSurfaceContract, req.ID, err)
		}
	}
	if err := r.store.Update(req.ID, next); err != nil {
		return res, err
	}
	return res, nil
}

// fitBox maps cur onto target with independent x/y scale factors anchored at
// cur's top-left corner followed by a translation. When a factor is not a
// finite positive number the target is adopted directly.
func fitBox(cur, target domain.Box) (domain.Box, float64, float64, error) {
	cw, ch := cur.Width(), cur.Height()
	if cw == 0 || ch == 0 {
		return target, 1, 1, description.ErrDegenerateScale
	}
	sx := target.Width() / cw
	sy := target.Height() / ch
	if !finitePositive(sx) || !finitePositive(sy) {
		return target, 1, 1, description.ErrDegenerateScale
	}

	scaled := domain.Box{X0: cur.X0, Y0: cur.Y0, X1: cur.X0 + cw*sx, Y1: cur.Y0 + ch*sy}
	moved := scaled.Translate(target.X0-scaled.X0, target.Y0-scaled.Y0)

	if moved.ApproxEqual(target, tolerance(target)) {
		moved = target
	}
	return moved, sx, sy, nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func tolerance(b domain.Box) float64 {
	m := 1.0
	for _, v := range [4]float64{b.X0, b.Y0, b.X1, b.Y1} {
		m = math.Max(m, math.Abs(v))
	}
	return 1e-9 * m
}
