package mcpserver

import (
	"bytes"
	"context"

	"ovals/internal/description"
	"ovals/internal/surface"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	descriptionURI = "ovals://description"
	canvasSVGURI   = "ovals://canvas.svg"
)

func (s *Server) registerResources() {
	// ── ovals://description ────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		descriptionURI,
		"Canvas Description",
		mcp.WithResourceDescription("One line per oval, in creation order"),
		mcp.WithMIMEType("text/plain"),
	), s.handleDescriptionResource)

	// ── ovals://canvas.svg ─────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		canvasSVGURI,
		"Canvas as SVG",
		mcp.WithMIMEType("image/svg+xml"),
	), s.handleCanvasSVGResource)
}

func (s *Server) handleDescriptionResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      descriptionURI,
			MIMEType: "text/plain",
			Text:     description.Format(s.session.Shapes()),
		},
	}, nil
}

func (s *Server) handleCanvasSVGResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	var buf bytes.Buffer
	surface.WriteSVG(&buf, int(s.raster.Width()), int(s.raster.Height()), s.background, s.session.Shapes())
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      canvasSVGURI,
			MIMEType: "image/svg+xml",
			Text:     buf.String(),
		},
	}, nil
}
