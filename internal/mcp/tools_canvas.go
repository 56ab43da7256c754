package mcpserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"ovals/internal/description"
	"ovals/internal/domain"
	"ovals/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerCanvasTools() {
	s.mcp.AddTool(mcp.NewTool("list_ovals",
		mcp.WithDescription("List every oval on the canvas with its id, bounding box and style, in creation order"),
	), s.handleListOvals)

	s.mcp.AddTool(mcp.NewTool("draw_oval",
		mcp.WithDescription("Draw a new oval by pressing at (x, y), dragging to (x+width, y+height) and releasing. "+
			"When x and y are omitted the oval is placed in free space. The press must not land on an existing oval."),
		mcp.WithNumber("x", mcp.Description("Left edge (optional)")),
		mcp.WithNumber("y", mcp.Description("Top edge (optional)")),
		mcp.WithNumber("width", mcp.Description("Width of the bounding box"), mcp.Required()),
		mcp.WithNumber("height", mcp.Description("Height of the bounding box"), mcp.Required()),
		mcp.WithString("fillColor", mcp.Description("Fill color name or hex (optional, e.g. gold or #3b82f6)")),
		mcp.WithString("borderColor", mcp.Description("Border color name or hex (optional)")),
		mcp.WithNumber("borderWidth", mcp.Description("Border width (optional)")),
	), s.handleDrawOval)

	s.mcp.AddTool(mcp.NewTool("drag_oval",
		mcp.WithDescription("Move an oval by dragging it from its center by (dx, dy)"),
		mcp.WithNumber("id", mcp.Description("Oval id"), mcp.Required()),
		mcp.WithNumber("dx", mcp.Description("Horizontal offset"), mcp.Required()),
		mcp.WithNumber("dy", mcp.Description("Vertical offset"), mcp.Required()),
	), s.handleDragOval)

	s.mcp.AddTool(mcp.NewTool("render_canvas",
		mcp.WithDescription("Render the canvas to a PNG image"),
	), s.handleRenderCanvas)
}

func (s *Server) handleListOvals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	shapes := s.session.Shapes()
	if shapes == nil {
		shapes = []domain.Shape{}
	}
	return jsonResult(shapes)
}

func (s *Server) handleDrawOval(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	width, err := numberArg(args, "width")
	if err != nil {
		return nil, err
	}
	height, err := numberArg(args, "height")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("width and height must be positive")
	}
	// A drawn oval starts at the default size and can only grow on both axes.
	opts := s.session.Options()
	exact := width == opts.DefaultWidth && height == opts.DefaultHeight
	if !exact && (width <= opts.DefaultWidth || height <= opts.DefaultHeight) {
		return nil, fmt.Errorf("width and height must both exceed the default size %gx%g (or equal it); "+
			"draw larger and use apply_description to shrink", opts.DefaultWidth, opts.DefaultHeight)
	}
	x, hasX, err := optionalNumber(args, "x")
	if err != nil {
		return nil, err
	}
	y, hasY, err := optionalNumber(args, "y")
	if err != nil {
		return nil, err
	}

	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	if !hasX || !hasY {
		boxes := make([]domain.Box, 0)
		for _, sh := range s.session.Shapes() {
			boxes = append(boxes, sh.Box)
		}
		px, py := s.layout.NextPosition(boxes, width, height, s.raster.Width())
		if !hasX {
			x = px
		}
		if !hasY {
			y = py
		}
	}

	if err := s.session.PointerPress(ctx, x, y); err != nil {
		return nil, err
	}
	created, ok := s.session.Gesture().(service.Creating)
	if !ok {
		if err := s.session.PointerRelease(ctx, x, y); err != nil {
			return nil, fmt.Errorf("release after refused draw: %w", err)
		}
		return nil, fmt.Errorf("(%g, %g) lies on an existing oval; use drag_oval to move it", x, y)
	}
	if err := s.session.PointerMove(ctx, x+width, y+height); err != nil {
		return nil, err
	}
	if err := s.session.PointerRelease(ctx, x+width, y+height); err != nil {
		return nil, err
	}
	want := domain.Box{X0: x, Y0: y, X1: x + width, Y1: y + height}
	if drawn, _ := s.shape(created.ID); drawn.Box != want {
		return nil, fmt.Errorf("oval %d drawn as %+v instead of %+v", created.ID, drawn.Box, want)
	}

	if line := styleLine(created.ID, args); line != "" {
		res, err := s.session.ApplyDescription(ctx, line)
		if err != nil {
			return nil, err
		}
		if res.Errors() > 0 {
			return nil, fmt.Errorf("oval %d drawn but style rejected: %s", created.ID, res.Lines[0].Message)
		}
	}

	drawn, _ := s.shape(created.ID)
	return jsonResult(drawn)
}

func (s *Server) handleDragOval(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	rawID, err := numberArg(args, "id")
	if err != nil {
		return nil, err
	}
	dx, err := numberArg(args, "dx")
	if err != nil {
		return nil, err
	}
	dy, err := numberArg(args, "dy")
	if err != nil {
		return nil, err
	}
	id := domain.ShapeID(rawID)

	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	target, ok := s.shape(id)
	if !ok {
		return nil, fmt.Errorf("oval %d not found", id)
	}
	c := target.Box.Center()
	if err := s.session.PointerPress(ctx, c.X, c.Y); err != nil {
		return nil, err
	}
	moving, ok := s.session.Gesture().(service.Moving)
	if !ok || moving.ID != id {
		if err := s.session.PointerRelease(ctx, c.X, c.Y); err != nil {
			return nil, fmt.Errorf("release after refused drag: %w", err)
		}
		return nil, fmt.Errorf("oval %d is covered by an earlier oval at its center", id)
	}
	if err := s.session.PointerMove(ctx, c.X+dx, c.Y+dy); err != nil {
		return nil, err
	}
	if err := s.session.PointerRelease(ctx, c.X+dx, c.Y+dy); err != nil {
		return nil, err
	}
	moved, _ := s.shape(id)
	return jsonResult(moved)
}

func (s *Server) handleRenderCanvas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := s.raster.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
				MIMEType: "image/png",
			},
		},
	}, nil
}

// shape looks an oval up by id.
func (s *Server) shape(id domain.ShapeID) (domain.Shape, bool) {
	for _, sh := range s.session.Shapes() {
		if sh.ID == id {
			return sh, true
		}
	}
	return domain.Shape{}, false
}

// styleLine builds a description line carrying the style arguments of
// draw_oval, or "" when none were given.
func styleLine(id domain.ShapeID, args map[string]any) string {
	var attrs []string
	if v, ok := args["borderWidth"].(float64); ok {
		attrs = append(attrs, description.KeyBorderWidth+":"+strconv.FormatFloat(v, 'f', -1, 64))
	}
	if v, ok := args["fillColor"].(string); ok {
		attrs = append(attrs, description.KeyFillColor+":"+v)
	}
	if v, ok := args["borderColor"].(string); ok {
		attrs = append(attrs, description.KeyBorderColor+":"+v)
	}
	if len(attrs) == 0 {
		return ""
	}
	return fmt.Sprintf("OVAL %d -> [%s]", id, strings.Join(attrs, " | "))
}
