package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ovals/internal/config"
	mcpserver "ovals/internal/mcp"
	"ovals/internal/mirror"
	"ovals/internal/service"
	"ovals/internal/surface"
)

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no GUI.
// The session draws on an offscreen raster until interrupted.
func ServeMCP() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	raster := surface.NewRaster(cfg.Surface.Width, cfg.Surface.Height, cfg.Surface.Background)

	var emitter service.EventEmitter = service.NopEmitter{}
	var session *service.Session
	if cfg.Mirror.Enabled {
		bridge, err := mirror.New(cfg.Mirror.Path, func(text string) {
			if session == nil {
				return
			}
			if _, err := session.ApplyDescription(ctx, text); err != nil {
				log.Printf("[mirror] apply edit: %v", err)
			}
		})
		if err != nil {
			log.Fatalf("Failed to create mirror: %v", err)
		}
		defer bridge.Close()
		emitter = mirror.NewEmitter(emitter, bridge)
	}
	session = newSession(cfg, raster, emitter)

	mcpSrv := mcpserver.New(mcpserver.Deps{
		Session:    session,
		Raster:     raster,
		Background: cfg.Surface.Background,
	})

	log.Printf("[MCP] Starting standalone stdio server (session %s)...", session.ID())
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
