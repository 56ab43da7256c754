package app

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"ovals/internal/config"
	"ovals/internal/domain"
	"ovals/internal/mirror"
	"ovals/internal/service"
	"ovals/internal/storage"
	"ovals/internal/surface"
)

// EventMirrorEdited tells the frontend that the mirror file was edited
// outside the app and its text was committed.
const EventMirrorEdited = "mirror:edited"

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context
	cfg config.Config

	session *service.Session
	canvas  *surface.Events // draws through frontend events
	raster  *surface.Raster // offscreen copy used for exports
	mirror  *mirror.Bridge
}

// SurfaceInfo describes the drawing surface to the frontend.
type SurfaceInfo struct {
	SessionID  string  `json:"sessionId"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background string  `json:"background"`
}

// New creates a new App.
func New() *App {
	return &App{}
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	cfg, err := config.Load()
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to load config: %v", err)
		return
	}
	a.cfg = cfg

	a.canvas = surface.NewEvents(ctx, a, float64(cfg.Surface.Width), float64(cfg.Surface.Height))
	a.raster = surface.NewRaster(cfg.Surface.Width, cfg.Surface.Height, cfg.Surface.Background)

	var emitter service.EventEmitter = a
	if cfg.Mirror.Enabled {
		bridge, err := mirror.New(cfg.Mirror.Path, a.onMirrorEdited)
		if err != nil {
			wailsRuntime.LogErrorf(ctx, "Failed to create mirror: %v", err)
		} else {
			a.mirror = bridge
			emitter = mirror.NewEmitter(a, bridge)
		}
	}

	a.session = newSession(cfg, surface.NewTee(a.canvas, a.raster), emitter)
	wailsRuntime.LogInfof(ctx, "Editor session %s ready (%dx%d)", a.session.ID(), cfg.Surface.Width, cfg.Surface.Height)
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.mirror != nil {
		a.mirror.Close()
	}
}

// Emit implements service.EventEmitter and surface.Emitter on top of the
// Wails runtime.
func (a *App) Emit(ctx context.Context, event string, data any) {
	wailsRuntime.EventsEmit(ctx, event, data)
}

// onMirrorEdited commits text saved into the mirror file by another program.
func (a *App) onMirrorEdited(text string) {
	if a.session == nil {
		return
	}
	res, err := a.session.ApplyDescription(a.ctx, text)
	if errors.Is(err, service.ErrGestureActive) {
		wailsRuntime.LogInfof(a.ctx, "Mirror edit ignored during a gesture")
		return
	}
	if err != nil {
		wailsRuntime.LogErrorf(a.ctx, "Mirror edit: %v", err)
		return
	}
	wailsRuntime.EventsEmit(a.ctx, EventMirrorEdited, map[string]any{
		"text":  text,
		"lines": res.Lines,
	})
}

// ───── Canvas input ─────

// GetCanvasState returns shapes, description and line flags for a full redraw.
func (a *App) GetCanvasState() domain.CanvasState {
	return a.session.State()
}

// GetDescription returns the last serialized description.
func (a *App) GetDescription() string {
	return a.session.Description()
}

func (a *App) PointerPress(x, y float64) error {
	return a.session.PointerPress(a.ctx, x, y)
}

func (a *App) PointerMove(x, y float64) error {
	return a.session.PointerMove(a.ctx, x, y)
}

func (a *App) PointerRelease(x, y float64) error {
	return a.session.PointerRelease(a.ctx, x, y)
}

// ───── Description panel ─────

// SetPanelText records the panel content; called on every keystroke.
func (a *App) SetPanelText(text string) {
	a.session.SetPanelText(text)
}

// CommitTextEdits applies the panel text to the canvas.
func (a *App) CommitTextEdits() (service.CommitResult, error) {
	return a.session.CommitTextEdits(a.ctx)
}

// GetLineStatuses returns the per-line result of the last commit.
func (a *App) GetLineStatuses() []domain.LineStatus {
	return a.session.LineStatuses()
}

// ───── Surface ─────

// ResizeSurface follows the canvas element when the window is resized.
func (a *App) ResizeSurface(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.canvas.Resize(float64(width), float64(height))
	a.raster.Resize(width, height)
}

func (a *App) GetSurfaceInfo() SurfaceInfo {
	return SurfaceInfo{
		SessionID:  a.session.ID(),
		Width:      a.canvas.Width(),
		Height:     a.canvas.Height(),
		Background: a.cfg.Surface.Background,
	}
}

// ExportPNG renders the canvas and returns it as a data URL.
func (a *App) ExportPNG() (string, error) {
	var buf bytes.Buffer
	if err := a.raster.EncodePNG(&buf); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ExportSVG returns the canvas as an SVG document.
func (a *App) ExportSVG() string {
	var buf bytes.Buffer
	surface.WriteSVG(&buf, int(a.raster.Width()), int(a.raster.Height()), a.cfg.Surface.Background, a.session.Shapes())
	return buf.String()
}

// ───── Helpers ─────

func newSession(cfg config.Config, surf domain.Surface, emitter service.EventEmitter) *service.Session {
	opts := service.Options{
		DefaultWidth:  cfg.Shape.DefaultWidth,
		DefaultHeight: cfg.Shape.DefaultHeight,
		DefaultStyle: domain.Style{
			BorderWidth: cfg.Shape.BorderWidth,
			FillColor:   cfg.Shape.FillColor,
			BorderColor: cfg.Shape.BorderColor,
		},
	}
	return service.NewSession(storage.NewShapeRegistry(), surf, emitter, opts)
}
